package idl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/solbind/solbind/generator/directive"
	generr "github.com/solbind/solbind/generator/errors"
)

// SupportedVersions lists the document schema versions the loader
// knows how to normalize.
var SupportedVersions = []int{1, 2}

// Load reads the directive's IDL document and normalizes it into the
// canonical program model according to the requested schema version.
func Load(d *directive.Directive) (*Program, error) {
	loc := generr.SourceLocation{File: d.File, Line: 1, Column: 1}

	// Reject unknown versions before touching the document at all
	if d.IDLVersion != 1 && d.IDLVersion != 2 {
		return nil, generr.New(generr.PhaseLoader, generr.ErrUnsupportedVersion,
			fmt.Sprintf("unsupported IDL version: %d. Supported versions: 1, 2", d.IDLVersion), loc)
	}

	content, err := os.ReadFile(d.IDLPath)
	if err != nil {
		return nil, generr.Wrap(generr.PhaseLoader, generr.ErrDocumentUnreadable,
			fmt.Sprintf("failed to read IDL file '%s'", d.IDLPath), loc, err)
	}

	return Decode(content, d.IDLVersion, loc)
}

// Decode normalizes raw document text. Deserialization failures are
// tagged with the schema version that was being matched, so the caller
// can tell which shape was expected.
func Decode(content []byte, version int, loc generr.SourceLocation) (*Program, error) {
	switch version {
	case 1:
		var doc documentV1
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, generr.Wrap(generr.PhaseLoader, generr.ErrDocumentParse,
				fmt.Sprintf("failed to parse as V1 IDL: %s", err), loc, err)
		}
		return &Program{Name: doc.Name, Instructions: doc.Instructions}, nil

	case 2:
		var doc documentV2
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, generr.Wrap(generr.PhaseLoader, generr.ErrDocumentParse,
				fmt.Sprintf("failed to parse as V2 IDL: %s", err), loc, err)
		}
		return &Program{Name: doc.Metadata.Name, Instructions: doc.Instructions}, nil

	default:
		return nil, generr.New(generr.PhaseLoader, generr.ErrUnsupportedVersion,
			fmt.Sprintf("unsupported IDL version: %d. Supported versions: 1, 2", version), loc)
	}
}

// Package directive reads a declarative binding request: a flat
// sequence of key = value pairs naming the module to generate, the IDL
// document to generate it from, and optionally a fixed program id and
// schema version.
package directive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"

	generr "github.com/solbind/solbind/generator/errors"
)

// DefaultIDLVersion is used when a directive omits idl_version
const DefaultIDLVersion = 1

// Recognized directive keys
const (
	KeyName       = "name"
	KeyID         = "id"
	KeyIDLPath    = "idl_path"
	KeyIDLVersion = "idl_version"
)

// Directive is a validated binding request
type Directive struct {
	Name       string
	ID         string // empty when omitted; the emitter substitutes the sentinel
	IDLPath    string
	IDLVersion int

	// File the directive was read from, for error attribution and
	// relative idl_path resolution. Empty for in-memory directives.
	File string
}

// Parser transforms a directive token stream into a Directive
type Parser struct {
	tokens  []Token
	current int
	file    string
}

// NewParser creates a new Parser from a token stream
func NewParser(tokens []Token, file string) *Parser {
	return &Parser{tokens: tokens, file: file}
}

// ParseFile reads and parses one directive file. idl_path is resolved
// relative to the directive file's directory.
func ParseFile(path string, defaultVersion int) (*Directive, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, generr.Wrap(generr.PhaseDirective, generr.ErrDirectiveSyntax,
			fmt.Sprintf("cannot read directive file '%s'", path),
			generr.SourceLocation{File: path}, err)
	}

	d, err := Parse(string(source), path, defaultVersion)
	if err != nil {
		return nil, err
	}

	if !filepath.IsAbs(d.IDLPath) {
		d.IDLPath = filepath.Join(filepath.Dir(path), d.IDLPath)
	}
	return d, nil
}

// Parse parses directive source text into a validated Directive.
// defaultVersion is applied when idl_version is absent; pass
// DefaultIDLVersion unless configuration overrides it.
func Parse(source, file string, defaultVersion int) (*Directive, error) {
	lex := NewLexer(source)
	tokens, lexErrors := lex.ScanTokens()
	if len(lexErrors) > 0 {
		first := lexErrors[0]
		return nil, generr.New(generr.PhaseDirective, generr.ErrDirectiveSyntax,
			first.Message,
			generr.SourceLocation{File: file, Line: first.Line, Column: first.Column})
	}

	return NewParser(tokens, file).Parse(defaultVersion)
}

// Parse consumes the token stream as key = value pairs. Unknown keys
// are a hard error; a duplicate key overwrites the prior value.
func (p *Parser) Parse(defaultVersion int) (*Directive, error) {
	if defaultVersion == 0 {
		defaultVersion = DefaultIDLVersion
	}

	var name, id, idlPath *string
	var idlVersion *int
	var nameLoc generr.SourceLocation

	for !p.isAtEnd() {
		key := p.peek()
		if key.Type != TOKEN_IDENTIFIER {
			return nil, p.errorAt(key, generr.ErrDirectiveSyntax,
				fmt.Sprintf("expected key identifier, found %s", key.Type))
		}
		p.advance()

		if eq := p.peek(); eq.Type != TOKEN_EQUAL {
			return nil, p.errorAt(eq, generr.ErrDirectiveSyntax,
				fmt.Sprintf("expected '=' after key '%s', found %s", key.Lexeme, eq.Type))
		}
		p.advance()

		switch key.Lexeme {
		case KeyName:
			value, err := p.stringValue(key)
			if err != nil {
				return nil, err
			}
			name = &value
			nameLoc = generr.SourceLocation{File: p.file, Line: key.Line, Column: key.Column}
		case KeyID:
			value, err := p.stringValue(key)
			if err != nil {
				return nil, err
			}
			if _, perr := solana.PublicKeyFromBase58(value); perr != nil {
				return nil, generr.Wrap(generr.PhaseDirective, generr.ErrBadProgramID,
					fmt.Sprintf("'id' is not a valid base58 program id: %q", value),
					generr.SourceLocation{File: p.file, Line: key.Line, Column: key.Column}, perr)
			}
			id = &value
		case KeyIDLPath:
			value, err := p.stringValue(key)
			if err != nil {
				return nil, err
			}
			idlPath = &value
		case KeyIDLVersion:
			value, err := p.intValue(key)
			if err != nil {
				return nil, err
			}
			idlVersion = &value
		default:
			return nil, p.errorAt(key, generr.ErrUnknownKey,
				fmt.Sprintf("unknown key '%s'. Expected 'name', 'id', 'idl_path', or 'idl_version'", key.Lexeme))
		}

		// Trailing separators are permitted between pairs
		for p.peek().Type == TOKEN_COMMA {
			p.advance()
		}
	}

	if name == nil {
		return nil, generr.New(generr.PhaseDirective, generr.ErrMissingParameter,
			"missing 'name' parameter",
			generr.SourceLocation{File: p.file, Line: 1, Column: 1})
	}
	if idlPath == nil {
		return nil, generr.New(generr.PhaseDirective, generr.ErrMissingParameter,
			"missing 'idl_path' parameter",
			generr.SourceLocation{File: p.file, Line: 1, Column: 1})
	}
	if !isValidModuleName(*name) {
		return nil, generr.New(generr.PhaseDirective, generr.ErrBadValue,
			fmt.Sprintf("'name' must be a valid identifier, got %q", *name), nameLoc)
	}

	d := &Directive{
		Name:       *name,
		IDLPath:    *idlPath,
		IDLVersion: defaultVersion,
		File:       p.file,
	}
	if id != nil {
		d.ID = *id
	}
	if idlVersion != nil {
		d.IDLVersion = *idlVersion
	}
	return d, nil
}

// stringValue consumes a string literal value for the given key
func (p *Parser) stringValue(key Token) (string, error) {
	tok := p.peek()
	if tok.Type != TOKEN_STRING_LITERAL {
		return "", p.errorAt(tok, generr.ErrBadValue,
			fmt.Sprintf("key '%s' expects a string literal, found %s", key.Lexeme, tok.Type))
	}
	p.advance()
	return tok.Literal.(string), nil
}

// intValue consumes an integer literal value for the given key
func (p *Parser) intValue(key Token) (int, error) {
	tok := p.peek()
	if tok.Type != TOKEN_INT_LITERAL {
		return 0, p.errorAt(tok, generr.ErrBadValue,
			fmt.Sprintf("key '%s' expects an integer literal, found %s", key.Lexeme, tok.Type))
	}
	p.advance()
	return tok.Literal.(int), nil
}

func (p *Parser) errorAt(tok Token, code, message string) error {
	return generr.New(generr.PhaseDirective, code, message,
		generr.SourceLocation{File: p.file, Line: tok.Line, Column: tok.Column})
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == TOKEN_EOF
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TOKEN_EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens) {
		p.current++
	}
	return tok
}

// isValidModuleName reports whether the name can become a Go package
// and module identifier.
func isValidModuleName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			continue
		}
		if i > 0 && '0' <= r && r <= '9' {
			continue
		}
		return false
	}
	return true
}

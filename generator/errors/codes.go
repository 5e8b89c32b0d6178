package errors

// Error code constants organized by phase
// D001-D099: directive errors
// L101-L199: document access and schema errors
// S201-S299: synthesis limit errors
// E301-E399: emit errors

const (
	// Directive errors (D001-D099)
	ErrUnknownKey       = "D001"
	ErrMissingParameter = "D002"
	ErrBadValue         = "D003"
	ErrDirectiveSyntax  = "D004"
	ErrBadProgramID     = "D005"

	// Document access and schema errors (L101-L199)
	ErrDocumentUnreadable = "L101"
	ErrUnsupportedVersion = "L102"
	ErrDocumentParse      = "L103"

	// Synthesis limit errors (S201-S299)
	ErrTooManyInstructions = "S201"
	ErrBadIdentifier       = "S202"
	ErrParamCollision      = "S203"

	// Emit errors (E301-E399)
	ErrWriteFailed = "E301"
)

// Phase names used across the pipeline
const (
	PhaseDirective = "directive"
	PhaseLoader    = "loader"
	PhaseSynthesis = "synthesis"
	PhaseEmit      = "emit"
)

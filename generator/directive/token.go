package directive

import "fmt"

// TokenType represents the type of token in a directive file
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_IDENTIFIER
	TOKEN_STRING_LITERAL
	TOKEN_INT_LITERAL
	TOKEN_EQUAL
	TOKEN_COMMA
)

// String returns a human-readable name for the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "end of file"
	case TOKEN_IDENTIFIER:
		return "identifier"
	case TOKEN_STRING_LITERAL:
		return "string literal"
	case TOKEN_INT_LITERAL:
		return "integer literal"
	case TOKEN_EQUAL:
		return "'='"
	case TOKEN_COMMA:
		return "','"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token represents a single lexical token from a directive file
type Token struct {
	Type    TokenType
	Lexeme  string      // Raw source text
	Literal interface{} // Decoded value for string/int literals
	Line    int
	Column  int
}

// LexError represents a lexical error with its position
type LexError struct {
	Message string
	Line    int
	Column  int
}

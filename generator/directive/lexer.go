package directive

import (
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes directive source text
type Lexer struct {
	source      []rune // Source text as runes for Unicode support
	start       int    // Start position of current token
	current     int    // Current position in source
	line        int    // Current line number
	column      int    // Current column number
	startColumn int    // Column where current token started
	tokens      []Token
	errors      []LexError
}

// NewLexer creates a new Lexer for the given directive source
func NewLexer(source string) *Lexer {
	return &Lexer{
		source:      []rune(source),
		line:        1,
		column:      1,
		startColumn: 1,
		tokens:      make([]Token, 0, 16),
		errors:      make([]LexError, 0),
	}
}

// ScanTokens scans all tokens from the source and returns them with any errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.startColumn = l.column
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, l.errors
}

func (l *Lexer) scanToken() {
	r := l.advance()

	switch r {
	case '=':
		l.addToken(TOKEN_EQUAL, nil)
	case ',':
		l.addToken(TOKEN_COMMA, nil)

	case '/':
		if l.match('/') {
			// Single-line comment, consume until end of line
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		} else {
			l.addError("Unexpected character: '/'")
		}

	case '"':
		l.scanString()

	// Whitespace; newlines are not significant between pairs
	case ' ', '\r', '\t':
	case '\n':
		l.line++
		l.column = 1

	default:
		if l.isDigit(r) {
			l.scanNumber()
		} else if l.isAlpha(r) {
			l.scanIdentifier()
		} else {
			l.addError("Unexpected character: " + string(r))
		}
	}
}

// scanString scans a string literal, handling escape sequences
func (l *Lexer) scanString() {
	var builder strings.Builder

	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.addError("Unterminated string")
			return
		}

		if l.peek() == '\\' {
			l.advance() // consume backslash
			if l.isAtEnd() {
				l.addError("Unterminated string")
				return
			}
			escaped := l.advance()
			switch escaped {
			case 'n':
				builder.WriteRune('\n')
			case 't':
				builder.WriteRune('\t')
			case '\\':
				builder.WriteRune('\\')
			case '"':
				builder.WriteRune('"')
			default:
				builder.WriteRune('\\')
				builder.WriteRune(escaped)
			}
			continue
		}

		builder.WriteRune(l.advance())
	}

	if l.isAtEnd() {
		l.addError("Unterminated string")
		return
	}

	l.advance() // closing quote
	l.addToken(TOKEN_STRING_LITERAL, builder.String())
}

func (l *Lexer) scanNumber() {
	for l.isDigit(l.peek()) {
		l.advance()
	}

	lexeme := string(l.source[l.start:l.current])
	value, err := strconv.Atoi(lexeme)
	if err != nil {
		l.addError("Invalid integer literal: " + lexeme)
		return
	}
	l.addToken(TOKEN_INT_LITERAL, value)
}

func (l *Lexer) scanIdentifier() {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}
	l.addToken(TOKEN_IDENTIFIER, nil)
}

// Helper methods

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() rune {
	r := l.source[l.current]
	l.current++
	l.column++
	return r
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) isAlpha(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func (l *Lexer) isAlphaNumeric(r rune) bool {
	return l.isAlpha(r) || l.isDigit(r)
}

func (l *Lexer) addToken(tokenType TokenType, literal interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tokenType,
		Lexeme:  string(l.source[l.start:l.current]),
		Literal: literal,
		Line:    l.line,
		Column:  l.startColumn,
	})
}

func (l *Lexer) addError(message string) {
	l.errors = append(l.errors, LexError{
		Message: message,
		Line:    l.line,
		Column:  l.startColumn,
	})
}

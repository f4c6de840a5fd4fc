// Package lexer turns LIR source text into a stream of tokens for the
// parser: whitespace and `//` line-comments are insensitive, identifiers
// and keywords share one lexical class, and integers, char literals and
// string literals are recognised specially.
package lexer

import (
	"strings"

	"github.com/skx/lirbf/token"
)

// Lexer holds our object-state.
type Lexer struct {
	position     int    //current character position
	readPosition int    //next character position
	ch           rune   //current character
	characters   []rune //rune slice of input string
	line         int    //1-based current line number
}

// New creates a Lexer instance from string input.
func New(input string) *Lexer {
	l := &Lexer{characters: []rune(input), line: 1}
	l.readChar()
	return l
}

// read one forward character
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	if l.readPosition >= len(l.characters) {
		l.ch = rune(0)
	} else {
		l.ch = l.characters[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// NextToken reads the next token, skipping whitespace and comments.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line := l.line
	var tok token.Token

	switch l.ch {
	case rune(0):
		tok = token.Token{Type: token.EOF, Line: line}
	case '\'':
		return l.readCharLiteral()
	case '"':
		return l.readStringLiteral()
	default:
		if isDigit(l.ch) {
			return l.readInteger()
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier()
		}
		tok = token.Token{Type: token.ERROR, Literal: "unexpected character " + string(l.ch), Line: line}
	}

	l.readChar()
	return tok
}

// skipWhitespaceAndComments advances past whitespace and `//` line comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isWhitespace(l.ch) {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != rune(0) {
				l.readChar()
			}
			continue
		}
		return
	}
}

// readInteger reads a decimal integer token (0..255, validated by the
// parser/analyzer, not the lexer).
func (l *Lexer) readInteger() token.Token {
	line := l.line
	str := ""
	for isDigit(l.ch) {
		str += string(l.ch)
		l.readChar()
	}
	return token.Token{Type: token.INT, Literal: str, Line: line}
}

// readIdentifier reads an identifier or keyword: a letter followed by
// letters, digits, `_` or `-`.
func (l *Lexer) readIdentifier() token.Token {
	line := l.line
	id := ""
	for isIdentPart(l.ch) {
		id += string(l.ch)
		l.readChar()
	}
	return token.Token{Type: token.LookupIdentifier(id), Literal: id, Line: line}
}

// readCharLiteral reads a 'c' literal, producing a CHAR token whose
// literal is c.
func (l *Lexer) readCharLiteral() token.Token {
	line := l.line
	l.readChar() // consume opening quote
	if l.ch == rune(0) {
		return token.Token{Type: token.ERROR, Literal: "unterminated char literal", Line: line}
	}
	ch := l.ch
	l.readChar()
	if l.ch != '\'' {
		return token.Token{Type: token.ERROR, Literal: "char literal must be a single character", Line: line}
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.CHAR, Literal: string(ch), Line: line}
}

// readStringLiteral reads a "..." literal, resolving \n \t \r escapes.
func (l *Lexer) readStringLiteral() token.Token {
	line := l.line
	l.readChar() // consume opening quote

	var sb strings.Builder
	for l.ch != '"' {
		if l.ch == rune(0) {
			return token.Token{Type: token.ERROR, Literal: "unterminated string literal", Line: line}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				return token.Token{Type: token.ERROR, Literal: "unknown escape \\" + string(l.ch), Line: line}
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return token.Token{Type: token.STRING, Literal: sb.String(), Line: line}
}

// peekChar returns the character after the current one, without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.characters) {
		return rune(0)
	}
	return l.characters[l.readPosition]
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentStart(ch rune) bool {
	return isAlpha(ch)
}

func isIdentPart(ch rune) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-'
}

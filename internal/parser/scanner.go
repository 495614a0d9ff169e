package parser

import (
	"fmt"

	"gnix/internal/errors"
	"gnix/token"
)

type Scanner struct {
	source      string
	tokens      []token.Token
	origin      token.Position
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
	err         *errors.LexError
}

func NewScanner(source string) *Scanner {
	return NewScannerAt(source, token.Position{Line: 1, Column: 1})
}

// NewScannerAt scans source as if it started at origin. Interpolated
// expressions are re-scanned this way so their spans stay absolute.
func NewScannerAt(source string, origin token.Position) *Scanner {
	return &Scanner{
		source: source,
		origin: origin,
		line:   origin.Line,
		column: origin.Column,
	}
}

// Tokenize turns source into tokens, dropping whitespace and comments.
func Tokenize(source string) ([]token.Token, error) {
	return NewScanner(source).ScanTokens()
}

// ScanTokens runs the scanner to the end of input or the first lexical error.
// On error no tokens are returned.
func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.isAtEnd() && s.err == nil {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.tokens, nil
}

// literalRules are tried in order; the first match wins, so longer and
// more specific classes come before the ones they overlap.
var literalRules = []struct {
	kind  token.Kind
	match func(src string, i int) int
}{
	{token.URI, matchURI},
	{token.PATH, matchPath},
	{token.SEARCH_PATH, matchSearchPath},
	{token.FLOAT, matchFloat},
	{token.INTEGER, matchInteger},
	{token.IDENTIFIER, matchWord},
}

func (s *Scanner) scanToken() {
	c := s.peek()

	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		s.advance()
		return
	case c == '#':
		s.scanLineComment()
		return
	case c == '/' && s.peekNext() == '*':
		s.scanBlockComment()
		return
	case c == '"':
		s.scanString(skipString)
		return
	case c == '\'' && s.peekNext() == '\'':
		s.scanString(skipIndentedString)
		return
	}

	for _, rule := range literalRules {
		if n := rule.match(s.source, s.current); n > 0 {
			s.advanceN(n)
			kind := rule.kind
			if kind == token.IDENTIFIER {
				kind = token.LookupIdent(s.source[s.start:s.current])
			}
			s.addToken(kind)
			return
		}
	}

	s.advance()
	switch c {
	// Simple single-character tokens
	case '{':
		s.addToken(token.LBRACE)
	case '}':
		s.addToken(token.RBRACE)
	case '(':
		s.addToken(token.LPAREN)
	case ')':
		s.addToken(token.RPAREN)
	case '[':
		s.addToken(token.LBRACKET)
	case ']':
		s.addToken(token.RBRACKET)
	case ',':
		s.addToken(token.COMMA)
	case ';':
		s.addToken(token.SEMICOLON)
	case ':':
		s.addToken(token.COLON)
	case '@':
		s.addToken(token.AT)
	case '?':
		s.addToken(token.HAS_ATTR)
	case '*':
		s.addToken(token.MUL)

	// Operators with potential multi-character variants
	case '.':
		s.scanDotOperator()
	case '/':
		s.scanSlashOperator()
	case '-':
		s.scanMinusOperator()
	case '+':
		s.scanPlusOperator()
	case '!':
		s.scanBangOperator()
	case '=':
		s.scanEqualOperator()
	case '<':
		s.scanLessOperator()
	case '>':
		s.scanGreaterOperator()
	case '&':
		s.scanAmpersandOperator()
	case '|':
		s.scanPipeOperator()
	case '$':
		s.scanDollar()

	default:
		s.reportError(errors.ErrorUnexpectedCharacter, fmt.Sprintf("unexpected character %q", c))
	}
}

// Operator scanning methods, longest match first

func (s *Scanner) scanDotOperator() {
	if s.peek() == '.' && s.peekNext() == '.' {
		s.advanceN(2)
		s.addToken(token.ELLIPSIS)
	} else {
		s.addToken(token.ATTR_SELECT)
	}
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('/') {
		s.addToken(token.UPDATE)
	} else {
		s.addToken(token.DIV)
	}
}

func (s *Scanner) scanMinusOperator() {
	if s.matchNext('>') {
		s.addToken(token.IMPLIES)
	} else {
		s.addToken(token.SUB)
	}
}

func (s *Scanner) scanPlusOperator() {
	if s.matchNext('+') {
		s.addToken(token.LIST_CONCAT)
	} else {
		s.addToken(token.ADD)
	}
}

func (s *Scanner) scanBangOperator() {
	if s.matchNext('=') {
		s.addToken(token.NEQ)
	} else {
		s.addToken(token.LOGICAL_NOT)
	}
}

func (s *Scanner) scanEqualOperator() {
	if s.matchNext('=') {
		s.addToken(token.EQ)
	} else {
		s.addToken(token.EQUALS)
	}
}

func (s *Scanner) scanLessOperator() {
	if s.matchNext('=') {
		s.addToken(token.LTE)
	} else if s.matchNext('|') {
		s.addToken(token.PIPE_RIGHT)
	} else {
		s.addToken(token.LT)
	}
}

func (s *Scanner) scanGreaterOperator() {
	if s.matchNext('=') {
		s.addToken(token.GTE)
	} else {
		s.addToken(token.GT)
	}
}

func (s *Scanner) scanAmpersandOperator() {
	if s.matchNext('&') {
		s.addToken(token.LOGICAL_AND)
	} else {
		s.reportError(errors.ErrorUnexpectedCharacter, "unexpected character '&', did you mean '&&'?")
	}
}

func (s *Scanner) scanPipeOperator() {
	if s.matchNext('|') {
		s.addToken(token.LOGICAL_OR)
	} else if s.matchNext('>') {
		s.addToken(token.PIPE_LEFT)
	} else {
		s.reportError(errors.ErrorUnexpectedCharacter, "unexpected character '|', did you mean '||' or '|>'?")
	}
}

func (s *Scanner) scanDollar() {
	if s.matchNext('{') {
		s.addToken(token.INTERPOLATE)
	} else {
		s.reportError(errors.ErrorUnexpectedCharacter, "unexpected character '$' outside of a string")
	}
}

func (s *Scanner) scanString(skip func(src string, i int) (int, bool)) {
	end, ok := skip(s.source, s.current)
	if !ok {
		s.advanceN(len(s.source) - s.current)
		s.reportError(errors.ErrorUnterminatedString, "unterminated string literal")
		return
	}
	s.advanceN(end - s.current)
	s.addToken(token.STRING)
}

func (s *Scanner) scanLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *Scanner) scanBlockComment() {
	end, ok := skipBlockComment(s.source, s.current)
	if !ok {
		s.reportError(errors.ErrorUnterminatedComment, "unterminated block comment")
		return
	}
	s.advanceN(end - s.current)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n && !s.isAtEnd(); i++ {
		s.advance()
	}
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) startPosition() token.Position {
	return token.Position{
		Line:   s.startLine,
		Column: s.startColumn,
		Offset: s.origin.Offset + s.start,
	}
}

func (s *Scanner) currentPosition() token.Position {
	return token.Position{
		Line:   s.line,
		Column: s.column,
		Offset: s.origin.Offset + s.current,
	}
}

func (s *Scanner) addToken(kind token.Kind) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Content: s.source[s.start:s.current],
		Span:    token.Span{Start: s.startPosition(), End: s.currentPosition()},
	})
}

func (s *Scanner) reportError(code, message string) {
	text := s.source[s.start:s.current]
	if len(text) > 16 {
		text = text[:16]
	}
	s.err = &errors.LexError{
		Code:     code,
		Message:  message,
		Position: s.startPosition(),
		Text:     text,
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

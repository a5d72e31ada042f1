package metagen

import "fmt"

// TokenKind discriminates the shape of one lexical token.
type TokenKind int

const (
	TokenUnknown TokenKind = iota
	TokenOpenParen
	TokenCloseParen
	TokenColon
	TokenSemiColon
	TokenAsterisk
	TokenOpenBracket
	TokenCloseBracket
	TokenOpenBrace
	TokenCloseBrace
	TokenHash
	TokenEquals
	TokenComma
	TokenTilde
	TokenPeriod
	TokenVarArgs
	TokenNumber
	TokenIdentifier
	TokenString
	TokenEndOfStream
)

func (k TokenKind) String() string {
	switch k {
	case TokenUnknown:
		return "unknown"
	case TokenOpenParen:
		return "open_paren"
	case TokenCloseParen:
		return "close_paren"
	case TokenColon:
		return "colon"
	case TokenSemiColon:
		return "semi_colon"
	case TokenAsterisk:
		return "asterisk"
	case TokenOpenBracket:
		return "open_bracket"
	case TokenCloseBracket:
		return "close_bracket"
	case TokenOpenBrace:
		return "open_brace"
	case TokenCloseBrace:
		return "close_brace"
	case TokenHash:
		return "hash"
	case TokenEquals:
		return "equals"
	case TokenComma:
		return "comma"
	case TokenTilde:
		return "tilde"
	case TokenPeriod:
		return "period"
	case TokenVarArgs:
		return "var_args"
	case TokenNumber:
		return "number"
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string"
	case TokenEndOfStream:
		return "end_of_stream"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Location is a 1-based line/column plus a 0-based byte cursor,
// recorded on every token. The only parsing decision it feeds is the
// Parser's skip of a `#` directive line inside a struct body, which
// ends where the line number changes.
type Location struct {
	Line   int
	Column int
	Cursor int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Token is a discriminated lexical unit: a kind plus the text slice
// it was recognized from. Text is a sub-slice of the tokenizer's
// input buffer -- it is never copied.
type Token struct {
	Kind TokenKind
	Text []byte
	Pos  Location
}

// String returns the token's text as a Go string, allocating a copy.
func (t Token) String() string {
	return string(t.Text)
}

// Equals reports whether the token's text matches s exactly.
func (t Token) Equals(s string) bool {
	return string(t.Text) == s
}

// Package sqltok splits SQL-like strings into whitespace and content tokens
// for token-level mutation. The split is lossless: joining the tokens back
// together reproduces the input byte for byte.
package sqltok

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// sqlLexer keeps whitespace as real tokens (never elided) so Join can invert
// Tokenize exactly. Single-quoted literals are matched before words so they
// stay atomic even when they contain whitespace; a lone quote with no closing
// partner falls through to the Quote rule.
var sqlLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `\s+`, Action: nil},
		{Name: "String", Pattern: `'[^']*'`, Action: nil},
		{Name: "Word", Pattern: `[^\s']+`, Action: nil},
		{Name: "Quote", Pattern: `'`, Action: nil},
	},
})

var (
	symWhitespace = sqlLexer.Symbols()["Whitespace"]
	symString     = sqlLexer.Symbols()["String"]
	symWord       = sqlLexer.Symbols()["Word"]
)

// Tokenize splits s into maximal whitespace runs and maximal non-whitespace
// words, keeping single-quoted string literals as single tokens. Every token
// is classified as it is produced. Tokenize never fails; the empty string
// yields no tokens.
func Tokenize(s string) []Token {
	if s == "" {
		return nil
	}

	lex, err := sqlLexer.LexString("", s)
	if err != nil {
		// The rule set covers every byte, so this is unreachable; keep the
		// round-trip contract anyway by returning the input as one token.
		return []Token{{Kind: KindOther, Text: s}}
	}

	tokens := make([]Token, 0, len(s)/4+1)
	consumed := 0
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			break
		}
		tokens = append(tokens, Token{Kind: classify(tok), Text: tok.Value})
		consumed += len(tok.Value)
	}
	if consumed < len(s) {
		// Same unreachable-by-construction guard as above.
		tokens = append(tokens, Token{Kind: KindOther, Text: s[consumed:]})
	}
	return tokens
}

// Join concatenates the token texts in order. It is the exact inverse of
// Tokenize when no token was altered; Join(nil) is "".
func Join(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

func classify(tok lexer.Token) Kind {
	switch tok.Type {
	case symWhitespace:
		return KindWhitespace
	case symString:
		return KindStringLit
	case symWord:
		return classifyWord(tok.Value)
	default:
		return KindOther
	}
}

func classifyWord(text string) Kind {
	if IsKeyword(text) {
		return KindKeyword
	}
	if isDigits(text) {
		return KindInteger
	}
	if isIdentifier(text) {
		return KindIdentifier
	}
	return KindOther
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return s != ""
}

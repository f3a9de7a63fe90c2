package sqltok

import (
	"strconv"
	"strings"
)

// Kind classifies a token at tokenize time so mutators can dispatch on the
// tag instead of re-deriving it from the text.
type Kind int

const (
	// KindWhitespace represents a run of whitespace, preserved verbatim.
	KindWhitespace Kind = iota
	// KindKeyword represents a word matching the SQL keyword set, case-insensitively.
	KindKeyword
	// KindInteger represents a pure decimal-digit sequence.
	KindInteger
	// KindStringLit represents a single-quoted string literal including its quotes.
	KindStringLit
	// KindIdentifier represents an identifier-shaped word.
	KindIdentifier
	// KindOther represents any remaining content token (operators, punctuation, mixed runs).
	KindOther
)

// Token is a single lexical fragment. Concatenating the Text of every token
// produced from a string reproduces that string exactly.
type Token struct {
	Kind Kind
	Text string
}

// Whitespace reports whether the token is a whitespace run. All other kinds
// are content tokens and eligible for token-level mutation.
func (t Token) Whitespace() bool {
	return t.Kind == KindWhitespace
}

func (k Kind) String() string {
	switch k {
	case KindWhitespace:
		return "Whitespace"
	case KindKeyword:
		return "Keyword"
	case KindInteger:
		return "Integer"
	case KindStringLit:
		return "StringLit"
	case KindIdentifier:
		return "Identifier"
	case KindOther:
		return "Other"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Keywords is the fixed SQL keyword set, uppercase, in a stable order so a
// uniform random draw over it is well defined. Mutators treat any word whose
// uppercased text appears here as a keyword. FROM is deliberately absent:
// words outside this set stay identifier-shaped and are never swapped or
// duplicated as keywords.
var Keywords = []string{
	"ALL",
	"AND",
	"AS",
	"BETWEEN",
	"BY",
	"CREATE",
	"DELETE",
	"DISTINCT",
	"DROP",
	"EXISTS",
	"GROUP",
	"HAVING",
	"IN",
	"INNER",
	"INSERT",
	"INTO",
	"JOIN",
	"LEFT",
	"LIKE",
	"LIMIT",
	"NOT",
	"NULL",
	"OFFSET",
	"ON",
	"OR",
	"ORDER",
	"OUTER",
	"RIGHT",
	"SELECT",
	"SET",
	"TABLE",
	"UNION",
	"UPDATE",
	"VALUES",
	"WHERE",
}

var keywordSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Keywords))
	for _, kw := range Keywords {
		set[kw] = struct{}{}
	}
	return set
}()

// IsKeyword reports whether s matches a known keyword, case-insensitively.
func IsKeyword(s string) bool {
	if s == "" {
		return false
	}
	_, ok := keywordSet[strings.ToUpper(s)]
	return ok
}

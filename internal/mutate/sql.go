package mutate

import (
	"math/rand"
	"strings"

	"github.com/electwix/sqlfuzz/internal/sqltok"
)

// BoundaryValues is the fixed replacement pool for integer tokens: 32-bit and
// 64-bit signed boundaries and their neighbors.
var BoundaryValues = []string{
	"0",
	"-1",
	"1",
	"2147483647",
	"-2147483648",
	"9223372036854775807",
	"-9223372036854775808",
}

// identifierSuffixes are appended to identifier-shaped tokens by replaceToken.
var identifierSuffixes = []string{"_x", "__", "0"}

// literalFiller is the character repeated into string literals to inflate them.
const literalFiller = "A"

// replaceToken picks one uniform content token and rewrites it according to
// its kind: keywords swap to a different keyword preserving case style,
// integers become boundary values, string literals are perturbed, and
// everything else gets a suffix or a case inversion. Strings with no content
// tokens are returned unchanged.
func replaceToken(rng *rand.Rand, s string) string {
	tokens := sqltok.Tokenize(s)
	content := contentIndexes(tokens)
	if len(content) == 0 {
		return s
	}

	i := content[rng.Intn(len(content))]
	tok := tokens[i]
	switch tok.Kind {
	case sqltok.KindKeyword:
		tokens[i].Text = swapKeyword(rng, tok.Text)
	case sqltok.KindInteger:
		tokens[i].Text = BoundaryValues[rng.Intn(len(BoundaryValues))]
	case sqltok.KindStringLit:
		tokens[i].Text = perturbLiteral(rng, tok.Text)
	default:
		tokens[i].Text = perturbWord(rng, tok.Text)
	}
	return sqltok.Join(tokens)
}

// duplicateClause picks one uniform keyword token and re-inserts a copy of it
// (with one trailing space baked into its text) at a uniform position across
// the whole token sequence. The trailing space can double up with adjacent
// whitespace; that spacing quirk is deliberate fuzzer output.
func duplicateClause(rng *rand.Rand, s string) string {
	tokens := sqltok.Tokenize(s)
	var keywords []int
	for i, tok := range tokens {
		if tok.Kind == sqltok.KindKeyword {
			keywords = append(keywords, i)
		}
	}
	if len(keywords) == 0 {
		return s
	}

	src := tokens[keywords[rng.Intn(len(keywords))]]
	dup := sqltok.Token{Kind: src.Kind, Text: src.Text + " "}
	pos := rng.Intn(len(tokens) + 1)

	out := make([]sqltok.Token, 0, len(tokens)+1)
	out = append(out, tokens[:pos]...)
	out = append(out, dup)
	out = append(out, tokens[pos:]...)
	return sqltok.Join(out)
}

// shuffleTokens permutes a uniform contiguous span of at least two content
// tokens among exactly the slots they occupy. Whitespace between them never
// moves. Strings with fewer than two content tokens are returned unchanged.
func shuffleTokens(rng *rand.Rand, s string) string {
	tokens := sqltok.Tokenize(s)
	content := contentIndexes(tokens)
	if len(content) < 2 {
		return s
	}

	start := rng.Intn(len(content) - 1)
	end := start + 1 + rng.Intn(len(content)-1-start)
	span := content[start : end+1]

	segment := make([]sqltok.Token, len(span))
	for j, k := range span {
		segment[j] = tokens[k]
	}
	rng.Shuffle(len(segment), func(a, b int) {
		segment[a], segment[b] = segment[b], segment[a]
	})
	for j, k := range span {
		tokens[k] = segment[j]
	}
	return sqltok.Join(tokens)
}

func contentIndexes(tokens []sqltok.Token) []int {
	var content []int
	for i, tok := range tokens {
		if !tok.Whitespace() {
			content = append(content, i)
		}
	}
	return content
}

func swapKeyword(rng *rand.Rand, text string) string {
	current := strings.ToUpper(text)
	alt := current
	for alt == current {
		alt = sqltok.Keywords[rng.Intn(len(sqltok.Keywords))]
	}
	if text == strings.ToUpper(text) {
		return alt
	}
	return strings.ToLower(alt)
}

func perturbLiteral(rng *rand.Rand, text string) string {
	inner := text[1 : len(text)-1]
	switch {
	case rng.Float64() < 0.5:
		inner += strings.Repeat(literalFiller, 1+rng.Intn(30))
	case strings.Contains(inner, "a"):
		inner = strings.Replace(inner, "a", "@", 1)
	default:
		inner += "!"
	}
	return "'" + inner + "'"
}

func perturbWord(rng *rand.Rand, text string) string {
	if rng.Float64() < 0.5 {
		return text + identifierSuffixes[rng.Intn(len(identifierSuffixes))]
	}
	if text == strings.ToLower(text) {
		return strings.ToUpper(text)
	}
	return strings.ToLower(text)
}

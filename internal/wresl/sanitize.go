// File path: internal/wresl/sanitize.go
package wresl

import (
	"regexp"
	"strings"
)

// reservedWords is the fixed WRESL vocabulary stripped before token
// extraction: statement types, attribute names, unit names, operators,
// boolean connectives, and structural keywords. Anything left after removal
// is treated as a candidate variable reference. "case" is absent here because
// its head is stripped through to the opening brace (see caseHeadRe), keeping
// per-case body tokens intact.
var reservedWords = []string{
	"initial", "define", "svar", "goal", "group", "dvar",
	"integer", "alias", "value", "std", "kind", "units",
	"weight", "upper", "lower", "convert", "name", "type",
	"desc", "bounds", "penalty", "month", "wateryear", "always",
	"never", "constrain", "include", "condition", "lhs",
	"rhs", "import", "sequence", "model", "order", "timeseries",
	"lookup", "select", "from", "where", "given", "use", "sum",
	"max", "min", "abs", "binary", "and", "or", "cfs", "taf",
	"storage", "diversion", "flow",
}

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`![^\n]*`)
	caseBlockRe    = regexp.MustCompile(`(?is)\bcase\b.*?\{.*?\}`)
	numberRe       = regexp.MustCompile(`\b\d\.?\d*\b`)
	cycleRe        = regexp.MustCompile(`\[.+?\]`)
	caseHeadRe     = regexp.MustCompile(`(?i)\bcase.*?\{`)
	keywordRe      = regexp.MustCompile(`(?i)\b(?:` + strings.Join(reservedWords, "|") + `)\b`)
	wordRe         = regexp.MustCompile(`\b\w+\b`)
)

// blank overwrites every matched span with spaces, keeping newlines in
// place. All sanitization steps go through it so output length always equals
// input length and line breaks stay where they were; spans and line numbers
// located in sanitized text stay valid in the original. Preserving newlines
// also keeps later line-anchored passes honest: blanking a multi-line block
// comment must not let a preceding line comment bleed onto the next line.
func blank(text string, re *regexp.Regexp) string {
	spans := re.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}
	buf := []byte(text)
	for _, span := range spans {
		for i := span[0]; i < span[1]; i++ {
			if buf[i] != '\n' {
				buf[i] = ' '
			}
		}
	}
	return string(buf)
}

// StripComments blanks block comments (/* ... */, spanning newlines) and
// line comments (! to end of line).
func StripComments(text string) string {
	return blank(blank(text, blockCommentRe), lineCommentRe)
}

// StripCases blanks case { ... } sub-blocks. Used when scanning for a
// variable's own defining statement; per-case references must not shadow it.
func StripCases(text string) string {
	return blank(text, caseBlockRe)
}

// StripNonVariables blanks numeric literals, cyclical bracket references,
// reserved keywords, and case heads. Remaining word tokens are candidate
// variable references.
func StripNonVariables(text string) string {
	text = blank(text, numberRe)
	text = blank(text, cycleRe)
	text = blank(text, caseHeadRe)
	return blank(text, keywordRe)
}

// Words returns every word token of text in order of appearance.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

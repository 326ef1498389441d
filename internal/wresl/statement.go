// File path: internal/wresl/statement.go
package wresl

import (
	"regexp"
	"strings"
)

// Statement kinds recognized by the matcher.
const (
	KindDefine = "define"
	KindGoal   = "goal"
)

// Span is a half-open [Start, End) character range within the text a match
// was located in. Sanitization is length-preserving, so a Span found in
// sanitized text is equally valid in the original.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FindStatements locates every `<kind> <name> { ... }` statement in text and
// returns the spans in order of appearance. Matching is case-insensitive and
// spans newlines; a literal name matches as a whole word only. An empty name
// matches any variable, which enumerates all statements of the kind. The body
// is taken through the first closing brace, so statements with nested braces
// inside the body are truncated at the inner close (a documented limitation
// of the pattern approach; WRESL statement bodies nest only via case blocks,
// which callers strip first when it matters).
func FindStatements(text, kind, name string) []Span {
	pattern := namePattern(name)
	re := regexp.MustCompile(`(?is)\b` + kind + `\s+` + pattern + `\s*\{.*?\}`)
	raw := re.FindAllStringIndex(text, -1)
	spans := make([]Span, 0, len(raw))
	for _, m := range raw {
		spans = append(spans, Span{Start: m[0], End: m[1]})
	}
	return spans
}

func namePattern(name string) string {
	if strings.TrimSpace(name) == "" {
		return `.*?`
	}
	return `\b` + regexp.QuoteMeta(name) + `\b`
}

// ContainsWord reports whether name occurs in text as a whole word,
// case-insensitively.
func ContainsWord(text, name string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	return re.MatchString(text)
}

// LineRange maps a span of text onto 1-based inclusive line numbers: the
// line containing the span's start offset and the line containing its end
// offset. A span confined to one line yields start == end.
func LineRange(text string, span Span) (int, int) {
	start, end := 0, 0
	line := 1
	lineStart := 0
	for {
		nl := strings.IndexByte(text[lineStart:], '\n')
		lineEnd := len(text)
		if nl >= 0 {
			lineEnd = lineStart + nl + 1
		}
		if lineStart <= span.Start && span.Start <= lineEnd {
			start = line
		}
		if lineStart <= span.End && span.End <= lineEnd {
			end = line
			break
		}
		if nl < 0 {
			break
		}
		lineStart = lineEnd
		line++
	}
	if end == 0 {
		end = line
	}
	if start == 0 {
		start = end
	}
	return start, end
}

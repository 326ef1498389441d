// File path: internal/resolver/resolver.go
package resolver

import (
	"context"
	"strings"

	"wreslscan/internal/common"
	"wreslscan/internal/corpus"
	"wreslscan/internal/wresl"
)

// Record is one finding: a definition, input, or dependent location. Name is
// the variable the record is about (for inputs and dependents, that is the
// other variable, not the queried one). Lines are 1-based inclusive within
// the original file; Span is the character range in its sanitized text.
type Record struct {
	Name      string     `json:"name"`
	File      string     `json:"file"`
	StartLine int        `json:"start_line"`
	EndLine   int        `json:"end_line"`
	Span      wresl.Span `json:"span"`
}

// Result groups the three finding collections for one analyzed variable.
// Each collection is in discovery order over the corpus enumeration.
type Result struct {
	Variable     string   `json:"variable"`
	Defined      []Record `json:"defined"`
	Inputs       []Record `json:"inputs"`
	Dependencies []Record `json:"dependencies"`
}

// Found reports whether the queried variable was defined anywhere in the
// corpus. A false result is informational, not an error.
func (r *Result) Found() bool {
	return r != nil && len(r.Defined) > 0
}

// analysis caches the two sanitized forms of each file so the three passes
// and every input-candidate lookup share one sanitization of the corpus.
// Both forms are length-preserving, so spans transfer between them and the
// raw text.
type analysis struct {
	corpus *corpus.Corpus
	// comments blanked; case bodies intact (statement bodies are sliced here)
	clean map[string]string
	// comments and case sub-blocks blanked (defining statements are matched here)
	caseless map[string]string
}

func newAnalysis(c *corpus.Corpus) *analysis {
	a := &analysis{
		corpus:   c,
		clean:    make(map[string]string, c.Len()),
		caseless: make(map[string]string, c.Len()),
	}
	for _, path := range c.Files() {
		clean := wresl.StripComments(c.Content(path))
		a.clean[path] = clean
		a.caseless[path] = wresl.StripCases(clean)
	}
	return a
}

// Analyze computes where variable is defined, which variables feed into its
// definitions, and which statements depend on it. When the variable has no
// definition anywhere in the corpus the returned Result has an empty Defined
// collection; callers treat that as "not found" rather than a failure.
func Analyze(ctx context.Context, c *corpus.Corpus, variable string) (*Result, error) {
	logger := common.Logger()
	variable = strings.TrimSpace(variable)
	a := newAnalysis(c)

	result := &Result{Variable: variable}
	defined, err := a.findDefinitions(ctx, variable)
	if err != nil {
		return nil, err
	}
	result.Defined = defined
	if len(defined) == 0 {
		logger.Info("resolver: variable not defined in study", "variable", variable)
		return result, nil
	}

	inputs, err := a.resolveInputs(ctx, defined)
	if err != nil {
		return nil, err
	}
	result.Inputs = inputs

	dependencies, err := a.findDependents(ctx, variable)
	if err != nil {
		return nil, err
	}
	result.Dependencies = dependencies

	logger.Debug("resolver: analysis complete",
		"variable", variable,
		"defined", len(result.Defined),
		"inputs", len(result.Inputs),
		"dependents", len(result.Dependencies))
	return result, nil
}

// findDefinitions locates every define statement for name across the corpus,
// matching against case-stripped text so per-case references cannot shadow
// the defining statement.
func (a *analysis) findDefinitions(ctx context.Context, name string) ([]Record, error) {
	var records []Record
	for _, path := range a.corpus.Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := a.corpus.Content(path)
		for _, span := range wresl.FindStatements(a.caseless[path], wresl.KindDefine, name) {
			start, end := wresl.LineRange(raw, span)
			records = append(records, Record{
				Name:      name,
				File:      path,
				StartLine: start,
				EndLine:   end,
				Span:      span,
			})
		}
	}
	return records, nil
}

// resolveInputs extracts candidate variable tokens from every definition
// body, deduplicates them, and resolves each candidate to its own definition
// locations. Candidates without a definition anywhere in the corpus are
// exogenous inputs and yield no record.
func (a *analysis) resolveInputs(ctx context.Context, defined []Record) ([]Record, error) {
	seen := make(map[string]struct{})
	var candidates []string
	for _, def := range defined {
		body := a.statementBody(def.File, def.Span)
		for _, token := range wresl.Words(wresl.StripNonVariables(body)) {
			key := strings.ToUpper(token)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, token)
		}
	}
	var records []Record
	for _, candidate := range candidates {
		found, err := a.findDefinitions(ctx, candidate)
		if err != nil {
			return nil, err
		}
		records = append(records, found...)
	}
	return records, nil
}

// findDependents enumerates every define and goal statement in the corpus
// and records those whose body references variable as a whole word. This is
// the full-corpus scan: discovering who depends on a variable requires
// inspecting every statement body.
func (a *analysis) findDependents(ctx context.Context, variable string) ([]Record, error) {
	var records []Record
	for _, path := range a.corpus.Files() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := a.corpus.Content(path)
		caseless := a.caseless[path]
		spans := wresl.FindStatements(caseless, wresl.KindDefine, "")
		spans = append(spans, wresl.FindStatements(caseless, wresl.KindGoal, "")...)
		for _, span := range spans {
			head, body, ok := a.statementParts(path, span)
			if !ok {
				continue
			}
			if !wresl.ContainsWord(wresl.StripNonVariables(body), variable) {
				continue
			}
			fields := strings.Fields(head)
			if len(fields) == 0 {
				continue
			}
			start, end := wresl.LineRange(raw, span)
			records = append(records, Record{
				Name:      fields[len(fields)-1],
				File:      path,
				StartLine: start,
				EndLine:   end,
				Span:      span,
			})
		}
	}
	return records, nil
}

// statementBody slices the statement at span out of the comment-stripped
// (but not case-stripped) file text and returns everything after the opening
// brace. Case contents stay visible: per-case references are legitimate
// inputs and dependencies.
func (a *analysis) statementBody(path string, span wresl.Span) string {
	_, body, _ := a.statementParts(path, span)
	return body
}

func (a *analysis) statementParts(path string, span wresl.Span) (head, body string, ok bool) {
	clean := a.clean[path]
	if span.Start < 0 || span.End > len(clean) {
		return "", "", false
	}
	return strings.Cut(clean[span.Start:span.End], "{")
}

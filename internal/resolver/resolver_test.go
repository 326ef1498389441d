// File path: internal/resolver/resolver_test.go
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"wreslscan/internal/corpus"
)

func buildStudy(t *testing.T, files map[string]string) *corpus.Corpus {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	c, err := corpus.Load(dir)
	if err != nil {
		t.Fatalf("load study: %v", err)
	}
	return c
}

func TestAnalyzeStorageVariable(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define S_SHSTA { kind 'storage' upper 100.0 }\n",
		"b.wresl": "goal G1 { S_SHSTA >= 10.0 }\n",
	})
	result, err := Analyze(context.Background(), c, "S_SHSTA")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !result.Found() {
		t.Fatalf("expected variable to be found")
	}
	if len(result.Defined) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(result.Defined))
	}
	def := result.Defined[0]
	if def.File != "a.wresl" || def.StartLine != 1 || def.EndLine != 1 {
		t.Fatalf("unexpected definition location: %+v", def)
	}
	if len(result.Inputs) != 0 {
		t.Fatalf("expected no inputs, got %+v", result.Inputs)
	}
	if len(result.Dependencies) != 1 {
		t.Fatalf("expected 1 dependent, got %d", len(result.Dependencies))
	}
	dep := result.Dependencies[0]
	if dep.Name != "G1" || dep.File != "b.wresl" || dep.StartLine != 1 {
		t.Fatalf("unexpected dependent: %+v", dep)
	}
}

func TestAnalyzeVariableNotFound(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A { value 1 }\n",
	})
	result, err := Analyze(context.Background(), c, "MISSING")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Found() {
		t.Fatalf("expected not-found result, got %+v", result.Defined)
	}
	if len(result.Defined) != 0 || len(result.Inputs) != 0 || len(result.Dependencies) != 0 {
		t.Fatalf("expected empty collections: %+v", result)
	}
}

func TestAnalyzeMultipleDefinitions(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl":     "define T { value 1 }\ndefine T { value 2 }\n",
		"sub/b.wresl": "define T { value 3 }\n",
	})
	result, err := Analyze(context.Background(), c, "T")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Defined) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(result.Defined))
	}
	if result.Defined[0].Span == result.Defined[1].Span {
		t.Fatalf("expected distinct spans for same-file definitions")
	}
}

func TestAnalyzeResolvesInputs(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A { B + 2.0 }\n",
		"b.wresl": "define B { kind 'flow' units cfs }\n",
	})
	result, err := Analyze(context.Background(), c, "A")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Inputs) != 1 {
		t.Fatalf("expected 1 input, got %+v", result.Inputs)
	}
	in := result.Inputs[0]
	if in.Name != "B" || in.File != "b.wresl" || in.StartLine != 1 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestAnalyzeExogenousInputYieldsNoRecord(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define X { lookup Y }\n",
	})
	result, err := Analyze(context.Background(), c, "X")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Inputs) != 0 {
		t.Fatalf("expected no inputs for exogenous candidate, got %+v", result.Inputs)
	}
}

func TestAnalyzeInputsDeduplicated(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A { B + B + b }\ndefine B { value 1 }\n",
	})
	result, err := Analyze(context.Background(), c, "A")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Inputs) != 1 {
		t.Fatalf("expected deduplicated input, got %+v", result.Inputs)
	}
}

func TestAnalyzeIgnoresCommentedAndCasedDefinitions(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "/* define HIDDEN { value 1 } */\n! define HIDDEN { value 2 }\ndefine REAL { case alpha { HIDDEN } }\n",
	})
	result, err := Analyze(context.Background(), c, "HIDDEN")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if result.Found() {
		t.Fatalf("commented or case-nested text reported as definition: %+v", result.Defined)
	}
}

func TestAnalyzeFindsDefinitionAfterMultilineComment(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A { x } ! note /* start\ncontinued */ define B { y }\n",
	})
	result, err := Analyze(context.Background(), c, "B")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !result.Found() {
		t.Fatalf("definition following a blanked block comment was lost")
	}
	if result.Defined[0].StartLine != 2 || result.Defined[0].EndLine != 2 {
		t.Fatalf("unexpected definition location: %+v", result.Defined[0])
	}
}

func TestAnalyzeCaseBodiesCountAsInputsAndDependencies(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A {\n case wet { B }\n case dry { value 0 }\n}\n",
		"b.wresl": "define B { kind 'flow' }\n",
	})
	result, err := Analyze(context.Background(), c, "A")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Inputs) != 1 || result.Inputs[0].Name != "B" {
		t.Fatalf("case-body reference not resolved as input: %+v", result.Inputs)
	}

	result, err = Analyze(context.Background(), c, "B")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Dependencies) != 1 || result.Dependencies[0].Name != "A" {
		t.Fatalf("case-body reference not resolved as dependent: %+v", result.Dependencies)
	}
	if result.Dependencies[0].StartLine != 1 || result.Dependencies[0].EndLine != 4 {
		t.Fatalf("unexpected dependent line range: %+v", result.Dependencies[0])
	}
}

func TestAnalyzeWholeWordQuery(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define S_SHSTA { value 1 }\ndefine S_SHSTA_2 { value 2 }\n",
		"b.wresl": "goal G2 { S_SHSTA_2 > 0 }\ngoal G3 { XS_SHSTA > 0 }\n",
	})
	result, err := Analyze(context.Background(), c, "S_SHSTA")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(result.Defined) != 1 {
		t.Fatalf("matched a longer identifier as definition: %+v", result.Defined)
	}
	if len(result.Dependencies) != 0 {
		t.Fatalf("matched a longer identifier as dependent: %+v", result.Dependencies)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A { B }\ndefine B { value 1 }\n",
		"b.wresl": "goal G1 { A < 5 }\n",
	})
	first, err := Analyze(context.Background(), c, "A")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	second, err := Analyze(context.Background(), c, "A")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis diverged:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeHonorsCancellation(t *testing.T) {
	c := buildStudy(t, map[string]string{
		"a.wresl": "define A { value 1 }\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Analyze(ctx, c, "A"); err == nil {
		t.Fatalf("expected context error")
	}
}

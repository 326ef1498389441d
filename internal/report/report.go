// File path: internal/report/report.go
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wreslscan/internal/resolver"
)

// Render formats an analysis result as the human-readable dependency report.
// Line citations reference the original, unsanitized files.
func Render(study string, result *resolver.Result) string {
	variable := result.Variable
	studyPath := study
	if abs, err := filepath.Abs(study); err == nil {
		studyPath = abs
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Variable Dependency Results for %s in study directory %s\n", variable, studyPath)

	fmt.Fprintf(&b, "\n%s is defined in the following locations:\n", variable)
	for i, rec := range result.Defined {
		fmt.Fprintf(&b, "%d. %s\n", i+1, citation(rec))
	}

	if len(result.Inputs) > 0 {
		fmt.Fprintf(&b, "\nThe inputs of %s are defined in the following locations:\n", variable)
		for i, rec := range result.Inputs {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, rec.Name, citation(rec))
		}
	} else {
		fmt.Fprintf(&b, "\nThere are no variable inputs for %s.\n", variable)
	}

	if len(result.Dependencies) > 0 {
		fmt.Fprintf(&b, "\nThe following variables rely on %s as input:\n", variable)
		for i, rec := range result.Dependencies {
			fmt.Fprintf(&b, "%d. %s: %s\n", i+1, rec.Name, citation(rec))
		}
	} else {
		fmt.Fprintf(&b, "\nNo variables depend on %s as input.\n", variable)
	}
	return b.String()
}

// NotFound is the informational message for a variable with no definition in
// the study.
func NotFound(study, variable string) string {
	return fmt.Sprintf("Variable %s not found in %s.", variable, study)
}

// Write persists a rendered report to path.
func Write(path, report string) error {
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func citation(rec resolver.Record) string {
	if rec.StartLine == rec.EndLine {
		return fmt.Sprintf("Line %d of %s", rec.StartLine, rec.File)
	}
	return fmt.Sprintf("Lines %d - %d of %s", rec.StartLine, rec.EndLine, rec.File)
}

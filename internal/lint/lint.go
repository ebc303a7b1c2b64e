// Package lint validates synthesized CloudFormation templates with
// cfn-lint-go.
package lint

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	cfnlint "github.com/lex00/cfn-lint-go/pkg/lint"

	deliveryinfra "github.com/farmlane/delivery-infra"
)

// Template lints the template file at path. Success means no error-level
// findings; warnings are reported but acceptable.
func Template(path string) (deliveryinfra.LintResult, error) {
	if _, err := os.Stat(path); err != nil {
		return deliveryinfra.LintResult{}, errors.Wrapf(err, "template %s", path)
	}

	linter := cfnlint.New(cfnlint.Options{})
	matches, err := linter.LintFile(path)
	if err != nil {
		return deliveryinfra.LintResult{}, errors.Wrap(err, "linting template")
	}

	result := deliveryinfra.LintResult{Success: true}
	for _, match := range matches {
		issue := deliveryinfra.LintIssue{
			Rule:     match.Rule.ID,
			Severity: severity(match.Level),
			Message:  match.Message,
			Path:     locationPath(match),
		}
		if issue.Severity == "error" {
			result.Success = false
		}
		result.Issues = append(result.Issues, issue)
	}
	return result, nil
}

func severity(level string) string {
	switch level {
	case "Error":
		return "error"
	case "Warning":
		return "warning"
	default:
		return "info"
	}
}

func locationPath(match cfnlint.Match) string {
	if len(match.Location.Path) == 0 {
		return ""
	}
	parts := make([]string, len(match.Location.Path))
	for i, p := range match.Location.Path {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "/")
}

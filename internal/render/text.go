package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteText writes the view model as plain text for terminals.
func WriteText(w io.Writer, vm *ViewModel) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Candidate Details (%s, %s)\n", vm.Candidate.Confidence, vm.Candidate.Confidence.Tier)
	for _, f := range vm.Candidate.Fields {
		fmt.Fprintf(&b, "  %s: %s\n", f.Label, f.Value)
	}

	b.WriteString("\nSubjects\n")
	for _, s := range vm.Subjects {
		fmt.Fprintf(&b, "  %s: %s\n", s.Name, s.Score())
	}

	b.WriteString("\nOverall Result\n")
	fmt.Fprintf(&b, "  Result: %s\n", vm.Result.Overall)
	fmt.Fprintf(&b, "  Average Confidence: %s (%s)\n", vm.Result.AverageConfidence, vm.Result.AverageConfidence.Tier)
	if vm.Result.IssueDate != "" {
		fmt.Fprintf(&b, "  Issue Date: %s\n", vm.Result.IssueDate)
	}
	if vm.Result.IssuePlace != "" {
		fmt.Fprintf(&b, "  Issue Place: %s\n", vm.Result.IssuePlace)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Text returns the plain text rendering.
func Text(vm *ViewModel) string {
	var b strings.Builder
	_ = WriteText(&b, vm)
	return b.String()
}

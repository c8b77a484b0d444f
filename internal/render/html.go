package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/jackzampolin/markscan/internal/confidence"
)

// Raw HTML is enabled only for the confidence spans we emit ourselves;
// every service-provided value goes through escapeMarkdown.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Markdown renders the view model as GitHub-flavored markdown.
func Markdown(vm *ViewModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#### Candidate Details (%s)\n\n", confidenceSpan(vm.Candidate.Confidence))
	for _, f := range vm.Candidate.Fields {
		fmt.Fprintf(&b, "- **%s:** %s\n", escapeMarkdown(f.Label), escapeMarkdown(f.Value))
	}

	b.WriteString("\n#### Subjects\n\n")
	if len(vm.Subjects) > 0 {
		b.WriteString("| Subject | Marks |\n| --- | --- |\n")
		for _, s := range vm.Subjects {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeMarkdown(s.Name), escapeMarkdown(s.Score()))
		}
	}

	b.WriteString("\n#### Overall Result\n\n")
	fmt.Fprintf(&b, "- **Result:** %s\n", escapeMarkdown(vm.Result.Overall))
	fmt.Fprintf(&b, "- **Average Confidence:** %s\n", confidenceSpan(vm.Result.AverageConfidence))
	if vm.Result.IssueDate != "" {
		fmt.Fprintf(&b, "- **Issue Date:** %s\n", escapeMarkdown(vm.Result.IssueDate))
	}
	if vm.Result.IssuePlace != "" {
		fmt.Fprintf(&b, "- **Issue Place:** %s\n", escapeMarkdown(vm.Result.IssuePlace))
	}

	return b.String()
}

// HTML renders the view model as an HTML fragment.
func HTML(vm *ViewModel) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(vm)), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

func confidenceSpan(l confidence.Level) string {
	return fmt.Sprintf(`<span class="%s">%s</span>`, l.Tier.Class(), l)
}

// escapeMarkdown backslash-escapes ASCII punctuation so values render as
// literal text, and flattens newlines so table rows stay intact.
func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
		case r < 0x80 && isASCIIPunct(byte(r)):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// Package render turns extraction results into a display-ready view model.
//
// Render is pure: it performs no I/O and cannot fail for any decoded
// result. Binding the view model to a concrete surface (terminal, HTML)
// lives in the adapters alongside it.
package render

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/jackzampolin/markscan/internal/confidence"
	"github.com/jackzampolin/markscan/internal/extract"
)

// Placeholders for absent values.
const (
	Dash         = "-"
	NotAvailable = "N/A"
)

// ViewModel is the formatted view of one extraction result.
type ViewModel struct {
	Candidate CandidateSection `json:"candidate" yaml:"candidate"`
	Subjects  []SubjectRow     `json:"subjects" yaml:"subjects"`
	Result    ResultSection    `json:"result" yaml:"result"`
}

// CandidateSection lists the candidate's non-empty fields.
type CandidateSection struct {
	Confidence confidence.Level `json:"confidence" yaml:"confidence"`
	Fields     []FieldRow       `json:"fields" yaml:"fields"`
}

// FieldRow is one labeled candidate attribute.
type FieldRow struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// SubjectRow is one subject line.
type SubjectRow struct {
	Name     string `json:"name" yaml:"name"`
	Obtained string `json:"obtained" yaml:"obtained"`
	MaxMarks string `json:"max_marks" yaml:"max_marks"`
	Grade    string `json:"grade" yaml:"grade"`
}

// Score returns the "obtained/max (grade)" summary.
func (r SubjectRow) Score() string {
	return r.Obtained + "/" + r.MaxMarks + " (" + r.Grade + ")"
}

// ResultSection is the overall outcome of the marksheet.
type ResultSection struct {
	Overall           string           `json:"overall" yaml:"overall"`
	AverageConfidence confidence.Level `json:"average_confidence" yaml:"average_confidence"`
	IssueDate         string           `json:"issue_date,omitempty" yaml:"issue_date,omitempty"`
	IssuePlace        string           `json:"issue_place,omitempty" yaml:"issue_place,omitempty"`
}

// Render maps a result onto its view model.
func Render(r *extract.Result) *ViewModel {
	vm := &ViewModel{
		Candidate: CandidateSection{
			Confidence: confidence.Format(r.Candidate.Confidence),
			Fields:     []FieldRow{},
		},
		Subjects: make([]SubjectRow, 0, len(r.Subjects)),
		Result: ResultSection{
			Overall:           orDefault(r.OverallResult, NotAvailable),
			AverageConfidence: confidence.Format(r.AverageConfidence),
			IssueDate:         orDefault(r.IssueDate, ""),
			IssuePlace:        orDefault(r.IssuePlace, ""),
		},
	}

	for _, f := range r.Candidate.Fields {
		if f.Key == "confidence" || !Truthy(f.Value) {
			continue
		}
		vm.Candidate.Fields = append(vm.Candidate.Fields, FieldRow{
			Key:   f.Key,
			Label: Label(f.Key),
			Value: displayValue(f.Value),
		})
	}

	for _, s := range r.Subjects {
		vm.Subjects = append(vm.Subjects, SubjectRow{
			Name:     s.Name,
			Obtained: formatNumber(s.Marks.Obtained),
			MaxMarks: formatNumber(s.Marks.MaxMarks),
			Grade:    orDefault(s.Marks.Grade, Dash),
		})
	}

	return vm
}

// Truthy reports whether a candidate value is worth displaying.
// null, "", 0, NaN and false are not.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String() != ""
		}
		return f != 0 && !math.IsNaN(f)
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	default:
		return true
	}
}

// Label turns a snake_case key into a display label.
func Label(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// ErrorText is the single line shown when an attempt fails.
func ErrorText(err error) string {
	var xerr *extract.Error
	if errors.As(err, &xerr) {
		return "Error: " + xerr.Message
	}
	return "Error: " + err.Error()
}

func displayValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func formatNumber(v *float64) string {
	if v == nil {
		return Dash
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/jackzampolin/markscan/internal/confidence"
	"github.com/jackzampolin/markscan/internal/extract"
)

func mustParse(t *testing.T, raw string) *extract.Result {
	t.Helper()
	r, err := extract.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return r
}

const exampleResult = `{
  "candidate": {"name": "Test User", "confidence": 0.95},
  "subjects": [{"name": "Math", "marks": {"obtained": 80, "max_marks": 100, "grade": "A"}}],
  "overall_result": "Pass",
  "average_confidence": 0.9
}`

func TestRender_Example(t *testing.T) {
	vm := Render(mustParse(t, exampleResult))

	if len(vm.Subjects) != 1 {
		t.Fatalf("got %d subject rows, want 1", len(vm.Subjects))
	}
	if got := vm.Subjects[0].Score(); got != "80/100 (A)" {
		t.Errorf("Score() = %q, want %q", got, "80/100 (A)")
	}
	if vm.Subjects[0].Name != "Math" {
		t.Errorf("Name = %q, want Math", vm.Subjects[0].Name)
	}
	if vm.Result.Overall != "Pass" {
		t.Errorf("Overall = %q, want Pass", vm.Result.Overall)
	}
	if vm.Candidate.Confidence != (confidence.Level{Percentage: 95, Tier: confidence.TierHigh}) {
		t.Errorf("Candidate.Confidence = %+v", vm.Candidate.Confidence)
	}
	if vm.Result.AverageConfidence.Percentage != 90 {
		t.Errorf("AverageConfidence = %+v", vm.Result.AverageConfidence)
	}
}

func TestRender_CandidateFiltering(t *testing.T) {
	vm := Render(mustParse(t, `{
	  "candidate": {
	    "name": "Asha Rao",
	    "father_name": null,
	    "mother_name": "",
	    "roll_no": "0",
	    "seat": 0,
	    "verified": false,
	    "attempt": 2,
	    "board_university": "CBSE",
	    "confidence": 0.7
	  },
	  "subjects": [],
	  "average_confidence": 0.4
	}`))

	var keys []string
	for _, f := range vm.Candidate.Fields {
		keys = append(keys, f.Key)
	}
	want := []string{"name", "roll_no", "attempt", "board_university"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("fields = %v, want %v", keys, want)
	}

	if vm.Candidate.Fields[3].Label != "board university" {
		t.Errorf("Label = %q, want %q", vm.Candidate.Fields[3].Label, "board university")
	}
	if vm.Candidate.Fields[2].Value != "2" {
		t.Errorf("numeric value = %q, want 2", vm.Candidate.Fields[2].Value)
	}
	if vm.Candidate.Confidence.Tier != confidence.TierMedium {
		t.Errorf("candidate tier = %q, want medium", vm.Candidate.Confidence.Tier)
	}
	if vm.Result.AverageConfidence.Tier != confidence.TierLow {
		t.Errorf("average tier = %q, want low", vm.Result.AverageConfidence.Tier)
	}
}

func TestRender_Placeholders(t *testing.T) {
	vm := Render(mustParse(t, `{
	  "candidate": {"confidence": 0.9},
	  "subjects": [
	    {"name": "Chemistry", "marks": {"obtained": 65.5, "max_marks": 100, "grade": null}},
	    {"name": "Biology", "marks": {"obtained": null, "max_marks": null, "grade": ""}}
	  ],
	  "overall_result": null,
	  "average_confidence": 0.9
	}`))

	if got := vm.Subjects[0].Score(); got != "65.5/100 (-)" {
		t.Errorf("Score() = %q, want %q", got, "65.5/100 (-)")
	}
	if got := vm.Subjects[1].Score(); got != "-/- (-)" {
		t.Errorf("Score() = %q, want %q", got, "-/- (-)")
	}
	if vm.Result.Overall != NotAvailable {
		t.Errorf("Overall = %q, want N/A", vm.Result.Overall)
	}
	if len(vm.Candidate.Fields) != 0 {
		t.Errorf("expected no candidate fields, got %v", vm.Candidate.Fields)
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := mustParse(t, exampleResult)
	a, _ := json.Marshal(Render(r))
	b, _ := json.Marshal(Render(r))
	if string(a) != string(b) {
		t.Error("Render is not idempotent")
	}
}

func TestRender_SubjectOrder(t *testing.T) {
	vm := Render(mustParse(t, `{
	  "candidate": {"confidence": 0.9},
	  "subjects": [
	    {"name": "Zoology", "marks": {"obtained": 1, "max_marks": 2}},
	    {"name": "Art", "marks": {"obtained": 3, "max_marks": 4}},
	    {"name": "Music", "marks": {"obtained": 5, "max_marks": 6}}
	  ],
	  "average_confidence": 0.9
	}`))

	var names []string
	for _, s := range vm.Subjects {
		names = append(names, s.Name)
	}
	if strings.Join(names, ",") != "Zoology,Art,Music" {
		t.Errorf("order = %v", names)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{"", false},
		{"x", true},
		{"0", true},
		{json.Number("0"), false},
		{json.Number("0.0"), false},
		{json.Number("3"), true},
		{0.0, false},
		{1.5, true},
		{false, false},
		{true, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestErrorText(t *testing.T) {
	err := &extract.Error{Kind: extract.KindService, Message: "Unsupported file type"}
	if got := ErrorText(err); got != "Error: Unsupported file type" {
		t.Errorf("ErrorText() = %q", got)
	}

	fallback := &extract.Error{Kind: extract.KindService, Message: extract.FallbackMessage}
	if got := ErrorText(fallback); got != "Error: Extraction failed" {
		t.Errorf("ErrorText() = %q", got)
	}

	if got := ErrorText(errors.New("boom")); got != "Error: boom" {
		t.Errorf("ErrorText() = %q", got)
	}
}

func TestText(t *testing.T) {
	out := Text(Render(mustParse(t, exampleResult)))

	for _, want := range []string{
		"Candidate Details (95%, high)",
		"  name: Test User",
		"  Math: 80/100 (A)",
		"  Result: Pass",
		"  Average Confidence: 90% (high)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Issue Date") {
		t.Errorf("absent issue date should not be rendered:\n%s", out)
	}
}

func TestHTML(t *testing.T) {
	t.Run("example", func(t *testing.T) {
		out, err := HTML(Render(mustParse(t, exampleResult)))
		if err != nil {
			t.Fatalf("HTML() error = %v", err)
		}
		for _, want := range []string{
			`<span class="confidence-high">95%</span>`,
			`<td>Math</td>`,
			`<td>80/100 (A)</td>`,
			`<strong>Result:</strong> Pass`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("escapes service values", func(t *testing.T) {
		out, err := HTML(Render(mustParse(t, `{
		  "candidate": {"name": "<script>alert(1)</script>", "confidence": 0.3},
		  "subjects": [{"name": "A|B", "marks": {"obtained": 1, "max_marks": 2}}],
		  "average_confidence": 0.3
		}`)))
		if err != nil {
			t.Fatalf("HTML() error = %v", err)
		}
		if strings.Contains(out, "<script>") {
			t.Errorf("value not escaped:\n%s", out)
		}
		if !strings.Contains(out, "&lt;script&gt;") {
			t.Errorf("expected escaped value:\n%s", out)
		}
		if !strings.Contains(out, "<td>A|B</td>") {
			t.Errorf("pipe in cell should stay literal:\n%s", out)
		}
		if !strings.Contains(out, `class="confidence-low"`) {
			t.Errorf("expected low tier class:\n%s", out)
		}
	})
}

package api

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	for _, f := range []string{"json", "yaml"} {
		if _, err := ParseOutputFormat(f); err != nil {
			t.Errorf("ParseOutputFormat(%q) error = %v", f, err)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]string{"status": "ok"}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if !strings.Contains(buf.String(), `"status": "ok"`) {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatalf("OutputTo() error = %v", err)
		}
		if strings.TrimSpace(buf.String()) != "status: ok" {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}

func TestRawTo(t *testing.T) {
	raw := []byte(`{"zeta":1,"alpha":"Pass","roll_no":"123","nested":{"b":true,"a":null}}`)

	t.Run("json keeps key order", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RawTo(&buf, OutputFormatJSON, raw); err != nil {
			t.Fatalf("RawTo() error = %v", err)
		}
		out := buf.String()
		if strings.Index(out, `"zeta"`) > strings.Index(out, `"alpha"`) {
			t.Errorf("key order not preserved:\n%s", out)
		}
		if !strings.Contains(out, "  \"alpha\": \"Pass\"") {
			t.Errorf("expected indented output:\n%s", out)
		}
	})

	t.Run("yaml keeps key order", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RawTo(&buf, OutputFormatYAML, raw); err != nil {
			t.Fatalf("RawTo() error = %v", err)
		}
		out := buf.String()
		if strings.Index(out, "zeta:") > strings.Index(out, "alpha:") {
			t.Errorf("key order not preserved:\n%s", out)
		}
		if !strings.Contains(out, "alpha: Pass") {
			t.Errorf("expected plain scalar:\n%s", out)
		}
		if !strings.Contains(out, `roll_no: "123"`) {
			t.Errorf("numeric string should stay quoted:\n%s", out)
		}
		if strings.Contains(out, "{") {
			t.Errorf("expected block style:\n%s", out)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := RawTo(&buf, OutputFormatJSON, []byte("{nope")); err == nil {
			t.Error("expected error")
		}
	})
}

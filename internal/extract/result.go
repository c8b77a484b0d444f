// Package extract talks to the marksheet extraction service and models
// the records it returns.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Result is a successful extraction record. The service computes every
// confidence value; the client never derives one.
type Result struct {
	Candidate         Candidate `json:"candidate"`
	Subjects          []Subject `json:"subjects"`
	OverallResult     *string   `json:"overall_result,omitempty"`
	IssueDate         *string   `json:"issue_date,omitempty"`
	IssuePlace        *string   `json:"issue_place,omitempty"`
	AverageConfidence float64   `json:"average_confidence"`
}

// Subject is one scored row of the marksheet. Order is significant.
type Subject struct {
	Name    string `json:"name"`
	Marks   Marks  `json:"marks"`
	Credits *Marks `json:"credits,omitempty"`
}

// Marks holds a subject's score. Any part may be missing on the sheet.
type Marks struct {
	Obtained   *float64 `json:"obtained"`
	MaxMarks   *float64 `json:"max_marks"`
	Grade      *string  `json:"grade,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Field is a single candidate attribute. Value is whatever JSON scalar the
// service sent (string, json.Number, bool or nil).
type Field struct {
	Key   string
	Value any
}

// Candidate is the identified person on the marksheet. Fields keep the
// order the service sent them in.
type Candidate struct {
	Fields     []Field
	Confidence float64
}

// Get returns the value for key and whether it was present.
func (c Candidate) Get(key string) (any, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

func (c *Candidate) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("candidate must be an object")
	}

	var out Candidate
	seenConfidence := false
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("candidate.%s: %w", key, err)
		}

		if key == "confidence" {
			n, ok := v.(json.Number)
			if !ok {
				return errors.New("candidate.confidence must be a number")
			}
			if out.Confidence, err = n.Float64(); err != nil {
				return fmt.Errorf("candidate.confidence: %w", err)
			}
			seenConfidence = true
			continue
		}
		out.Fields = append(out.Fields, Field{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if !seenConfidence {
		return errors.New("candidate.confidence is required")
	}

	*c = out
	return nil
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, f := range c.Fields {
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		buf.WriteByte(',')
	}
	conf, err := json.Marshal(c.Confidence)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"confidence":`)
	buf.Write(conf)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Parse validates raw against the result schema and decodes it.
func Parse(raw []byte) (*Result, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var r Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	if r.Subjects == nil {
		r.Subjects = []Subject{}
	}
	return &r, nil
}

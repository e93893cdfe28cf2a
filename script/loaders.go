// ABOUTME: JSON and YAML script loaders
// ABOUTME: JSON is detected by its opening brace, YAML by a top-level steps key

package script

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSONLoader reads programs written as JSON objects
type JSONLoader struct{}

// Name returns "json"
func (JSONLoader) Name() string { return "json" }

// CanParse accepts input whose first non-space byte opens an object
func (JSONLoader) CanParse(r io.Reader) bool {
	head, err := io.ReadAll(io.LimitReader(r, detectSize))
	if err != nil {
		return false
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Parse decodes the program, rejecting unknown fields
func (JSONLoader) Parse(r io.Reader) (*Program, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	dec.UseNumber()

	var p Program
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding JSON script: %w", err)
	}
	for i := range p.Steps {
		p.Steps[i].Value = normalizeJSON(p.Steps[i].Value)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// normalizeJSON turns json.Number into int64 or float64 so boxed values
// print the way they were written
func normalizeJSON(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// YAMLLoader reads programs written as YAML documents
type YAMLLoader struct{}

// Name returns "yaml"
func (YAMLLoader) Name() string { return "yaml" }

// CanParse accepts input with a top-level "steps:" or "name:" key
func (YAMLLoader) CanParse(r io.Reader) bool {
	sc := bufio.NewScanner(io.LimitReader(r, detectSize))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "steps:") || strings.HasPrefix(line, "name:") {
			return true
		}
	}
	return false
}

// Parse decodes the program, rejecting unknown fields
func (YAMLLoader) Parse(r io.Reader) (*Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Program
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding YAML script: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func init() {
	Register(JSONLoader{})
	Register(YAMLLoader{})
}

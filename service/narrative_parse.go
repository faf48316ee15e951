package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	errNoJSON        = errors.New("no JSON value found in response")
	errSchemaInvalid = errors.New("response does not match expected shape")
)

var (
	stringListSchema = mustSchema(map[string]interface{}{
		"type":     "array",
		"minItems": 1,
		"maxItems": 10,
		"items": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	})

	lifestyleSchema = mustSchema(map[string]interface{}{
		"type":     "object",
		"required": []string{"lifestyleImpact", "workLifeBalance"},
		"properties": map[string]interface{}{
			"lifestyleImpact": map[string]interface{}{"type": "string", "minLength": 1},
			"workLifeBalance": map[string]interface{}{"type": "string", "minLength": 1},
		},
	})
)

func mustSchema(def map[string]interface{}) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("narrative schema: %v", err))
	}
	return schema
}

// maxResponseBytes bounds how much of a model answer is scanned for JSON.
const maxResponseBytes = 8 << 10

// extractJSON returns the first well-formed JSON value opening with open
// ('[' or '{') in text. Prose and markdown fences around it are ignored.
// Only the first maxResponseBytes of text are considered.
func extractJSON(text string, open byte) (json.RawMessage, error) {
	if len(text) > maxResponseBytes {
		text = text[:maxResponseBytes]
	}
	for i := 0; i < len(text); i++ {
		if text[i] != open {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err == nil {
			return raw, nil
		}
	}
	return nil, errNoJSON
}

func validateShape(schema *gojsonschema.Schema, raw json.RawMessage) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", errSchemaInvalid, strings.Join(msgs, "; "))
	}
	return nil
}

// parseStringList extracts and validates a JSON array of non-empty strings.
func parseStringList(text string) ([]string, error) {
	raw, err := extractJSON(text, '[')
	if err != nil {
		return nil, err
	}
	if err := validateShape(stringListSchema, raw); err != nil {
		return nil, err
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil, errSchemaInvalid
	}
	return out, nil
}

type lifestyle struct {
	LifestyleImpact string `json:"lifestyleImpact"`
	WorkLifeBalance string `json:"workLifeBalance"`
}

func parseLifestyle(text string) (lifestyle, error) {
	raw, err := extractJSON(text, '{')
	if err != nil {
		return lifestyle{}, err
	}
	if err := validateShape(lifestyleSchema, raw); err != nil {
		return lifestyle{}, err
	}
	var l lifestyle
	if err := json.Unmarshal(raw, &l); err != nil {
		return lifestyle{}, err
	}
	l.LifestyleImpact = strings.TrimSpace(l.LifestyleImpact)
	l.WorkLifeBalance = strings.TrimSpace(l.WorkLifeBalance)
	if l.LifestyleImpact == "" || l.WorkLifeBalance == "" {
		return lifestyle{}, errSchemaInvalid
	}
	return l, nil
}

// cleanText strips code fences and wrapping quotes from free-text answers.
func cleanText(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if nl := strings.IndexByte(text, '\n'); nl >= 0 && !strings.ContainsAny(text[:nl], " .") {
			text = text[nl+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	text = strings.TrimSpace(text)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal([]byte(text), &unquoted); err == nil {
			text = unquoted
		}
	}
	return strings.TrimSpace(text)
}

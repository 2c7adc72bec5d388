package refdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/vallesalud/cartera/internal/canonical"
)

//go:embed profile_schema.json
var profileSchemaJSON string

var profileSchema = jsonschema.MustCompileString("profile.json", profileSchemaJSON)

// ParseProfile decodes and validates a payer profile supplied as JSON, the
// alternative to the client-list lookup. NIT may arrive as a string or a
// number; it is normalized to its textual form.
func ParseProfile(data []byte) (canonical.Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return canonical.Profile{}, fmt.Errorf("profile: %w", err)
	}
	if err := profileSchema.Validate(doc); err != nil {
		return canonical.Profile{}, fmt.Errorf("profile: %w", err)
	}

	m := doc.(map[string]any)
	field := func(key string) string {
		switch v := m[key].(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		default:
			return ""
		}
	}
	return canonical.Profile{
		NIT:         field("nit"),
		Aseguradora: field("aseguradora"),
		Plan:        field("plan"),
	}, nil
}

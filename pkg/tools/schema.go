package tools

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Schema is a tool parameter schema in the plain-map form chat endpoints expect.
type Schema struct {
	Parameters map[string]any
	Required   []string
}

// Inlined object schemas with additionalProperties:false and every
// non-omitempty field required, as strict function calling demands.
var reflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	ExpandedStruct:            true,
	Anonymous:                 true,
}

// GenerateSchema derives the parameter schema of T from its json and
// jsonschema_description struct tags.
func GenerateSchema[T any]() Schema {
	var v T
	s := reflector.Reflect(v)
	s.Version = ""

	raw, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("marshal schema for %T: %v", v, err))
	}
	var params map[string]any
	if err := json.Unmarshal(raw, &params); err != nil {
		panic(fmt.Sprintf("decode schema for %T: %v", v, err))
	}

	return Schema{
		Parameters: params,
		Required:   append([]string(nil), s.Required...),
	}
}

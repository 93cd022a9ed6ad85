// Package schema models the parameter schema of an MCP tool under test and
// checks argument maps against it. Parsing is deliberately forgiving: an
// unrecognized schema shape yields a tool with zero usable parameters rather
// than an error, and the generator degrades from there.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
)

// Parameter describes one declared tool parameter.
type Parameter struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Enum        []any    `json:"enum,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
}

// ToolSchema is the immutable declaration of a tool: its name, description,
// and ordered parameter list.
type ToolSchema struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  []Parameter `json:"parameters"`
}

// Parameter returns the named parameter, if declared.
func (s ToolSchema) Parameter(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// RequiredParameters returns the declared required parameters in order.
func (s ToolSchema) RequiredParameters() []Parameter {
	var required []Parameter
	for _, p := range s.Parameters {
		if p.Required {
			required = append(required, p)
		}
	}
	return required
}

// ParseInputSchema converts a JSON-Schema-style object (the MCP
// `inputSchema` shape: "properties" + "required") into a ToolSchema.
// Properties are emitted in sorted name order so generation is stable.
func ParseInputSchema(name, description string, inputSchema map[string]any) ToolSchema {
	s := ToolSchema{Name: name, Description: description}
	if inputSchema == nil {
		return s
	}

	required := map[string]bool{}
	if rawRequired, ok := inputSchema["required"].([]any); ok {
		for _, r := range rawRequired {
			if rs, ok := r.(string); ok {
				required[rs] = true
			}
		}
	} else if rawRequired, ok := inputSchema["required"].([]string); ok {
		for _, rs := range rawRequired {
			required[rs] = true
		}
	}

	properties, ok := inputSchema["properties"].(map[string]any)
	if !ok {
		return s
	}

	names := make([]string, 0, len(properties))
	for propName := range properties {
		names = append(names, propName)
	}
	sort.Strings(names)

	for _, propName := range names {
		prop, ok := properties[propName].(map[string]any)
		if !ok {
			continue
		}
		param := Parameter{
			Name:     propName,
			Type:     stringField(prop, "type"),
			Required: required[propName],
		}
		if param.Type == "" {
			param.Type = "string"
		}
		param.Description = stringField(prop, "description")
		if enum, ok := prop["enum"].([]any); ok {
			param.Enum = enum
		}
		if min, ok := numberField(prop, "minimum"); ok {
			param.Minimum = &min
		}
		if max, ok := numberField(prop, "maximum"); ok {
			param.Maximum = &max
		}
		s.Parameters = append(s.Parameters, param)
	}
	return s
}

// FromMCPTool converts an mcp-go tool declaration, the wire format returned
// by a server's tools/list call.
func FromMCPTool(tool mcp.Tool) ToolSchema {
	inputSchema := map[string]any{
		"properties": tool.InputSchema.Properties,
	}
	if len(tool.InputSchema.Required) > 0 {
		inputSchema["required"] = tool.InputSchema.Required
	}
	return ParseInputSchema(tool.Name, tool.Description, inputSchema)
}

// Violations reports every way args breaks the schema: missing required
// parameters, undeclared parameters, wrong types, enum mismatches, and
// numeric range breaches. A valid argument map yields an empty slice.
func (s ToolSchema) Violations(args map[string]any) []string {
	var violations []string

	for _, p := range s.Parameters {
		value, present := args[p.Name]
		if !present {
			if p.Required {
				violations = append(violations, fmt.Sprintf("missing required parameter %q", p.Name))
			}
			continue
		}
		violations = append(violations, p.valueViolations(value)...)
	}

	// Undeclared arguments are schema violations too: the tool never asked
	// for them.
	declared := map[string]bool{}
	for _, p := range s.Parameters {
		declared[p.Name] = true
	}
	extra := make([]string, 0)
	for name := range args {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		violations = append(violations, fmt.Sprintf("undeclared parameter %q", name))
	}

	return violations
}

// ValidArguments reports whether args satisfies every declared constraint.
func (s ToolSchema) ValidArguments(args map[string]any) bool {
	return len(s.Violations(args)) == 0
}

func (p Parameter) valueViolations(value any) []string {
	var violations []string

	if !typeMatches(p.Type, value) {
		violations = append(violations,
			fmt.Sprintf("parameter %q expects type %s, got %T", p.Name, p.Type, value))
		return violations
	}

	if len(p.Enum) > 0 && !enumContains(p.Enum, value) {
		violations = append(violations,
			fmt.Sprintf("parameter %q value is not in the declared enum", p.Name))
	}

	if num, ok := asFloat(value); ok {
		if p.Minimum != nil && num < *p.Minimum {
			violations = append(violations,
				fmt.Sprintf("parameter %q value %v is below minimum %v", p.Name, num, *p.Minimum))
		}
		if p.Maximum != nil && num > *p.Maximum {
			violations = append(violations,
				fmt.Sprintf("parameter %q value %v is above maximum %v", p.Name, num, *p.Maximum))
		}
	}

	return violations
}

func typeMatches(declared string, value any) bool {
	switch declared {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := asFloat(value)
		return ok
	case "integer":
		num, ok := asFloat(value)
		if !ok {
			return false
		}
		return num == float64(int64(num))
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		switch value.(type) {
		case []any, []string, []float64, []int:
			return true
		}
		return false
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		// Unknown declared type: accept anything rather than reject
		// arguments we cannot reason about.
		return true
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func enumContains(enum []any, value any) bool {
	for _, candidate := range enum {
		if candidate == value {
			return true
		}
		// Numeric enum entries decoded from JSON land as float64
		// regardless of how the argument was produced.
		cf, cok := asFloat(candidate)
		vf, vok := asFloat(value)
		if cok && vok && cf == vf {
			return true
		}
	}
	return false
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func numberField(obj map[string]any, key string) (float64, bool) {
	return asFloat(obj[key])
}

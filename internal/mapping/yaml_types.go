package mapping

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"accessor-generator/internal/common"
)

// StringOrArray accepts either a single string or a list of strings.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// UnmarshalYAML accepts the mapping form of a field or the shorthand
// "[vis] name: Type" scalar, e.g. "pub nickname: Option<String>".
func (f *FieldDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		def, err := parseFieldShorthand(str)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

		*f = def

		return nil

	case yaml.MappingNode:
		// plain alias avoids recursing into this method
		type plain FieldDef

		var p plain

		err := node.Decode(&p)
		if err != nil {
			return err
		}

		*f = FieldDef(p)

		return nil

	default:
		return fmt.Errorf("expected string or map for field, got %v", node.Kind)
	}
}

func parseFieldShorthand(s string) (FieldDef, error) {
	sep := nameSeparator(s)
	if sep < 0 {
		return FieldDef{}, fmt.Errorf("field shorthand %q: want \"[vis] name: Type\"", s)
	}

	typ := strings.TrimSpace(s[sep+1:])
	words := strings.Fields(s[:sep])

	if typ == "" || len(words) == 0 {
		return FieldDef{}, fmt.Errorf("field shorthand %q: want \"[vis] name: Type\"", s)
	}

	def := FieldDef{
		Name: words[len(words)-1],
		Type: typ,
	}

	if len(words) > 1 {
		def.Visibility = strings.Join(words[:len(words)-1], " ")
	}

	return def, nil
}

// nameSeparator finds the first lone ':' outside parentheses. Path
// separators ("::") and restricted visibility like pub(in a::b) are skipped.
func nameSeparator(s string) int {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ':':
			if i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}

			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

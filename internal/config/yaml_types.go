package config

import (
	werror "github.com/palantir/witchcraft-go-error"
	"gopkg.in/yaml.v3"
)

// StringOrArray is a list that YAML may also spell as a single string.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
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

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return werror.Error("expected string or array of strings", werror.SafeParam("line", node.Line))
	}
}

// MarshalYAML writes a single element as a plain string.
func (s StringOrArray) MarshalYAML() (interface{}, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

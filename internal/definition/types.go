package definition

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"shapeshift/internal/common"
)

// File is a parsed definition file.
type File struct {
	Version      string        `yaml:"version"`
	Imports      StringOrArray `yaml:"imports,omitempty"`
	Transformers []Transformer `yaml:"transformers"`
}

// Transformer declares one named transformer type.
type Transformer struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
	Steps  []Step `yaml:"steps,omitempty"`
}

// Step is a call, a scope (a call with Do) or a guard.
type Step struct {
	Call  string         `yaml:"call,omitempty"`
	Args  []any          `yaml:"args,omitempty"`
	Named map[string]any `yaml:"named,omitempty"`
	Do    []Step         `yaml:"do,omitempty"`
	Guard *Predicate     `yaml:"guard,omitempty"`
	Then  Steps          `yaml:"then,omitempty"`
}

// Predicate is the test of a guard step.
type Predicate struct {
	Call string `yaml:"call"`
	Args []any  `yaml:"args,omitempty"`
}

// Steps is a list of steps that also accepts a single step.
type Steps []Step

// StringOrArray is a list of strings that also accepts a single string.
type StringOrArray []string

// Transformer returns the transformer with the given name.
func (f *File) Transformer(name string) (*Transformer, bool) {
	idx := slices.IndexFunc(f.Transformers, func(t Transformer) bool { return t.Name == name })
	if idx < 0 {
		return nil, false
	}

	return &f.Transformers[idx], true
}

// Names returns transformer names in file order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Transformers))
	for _, t := range f.Transformers {
		names = append(names, t.Name)
	}

	return names
}

// UnmarshalYAML accepts either a single string or an array of strings.
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

// UnmarshalYAML accepts a bare function name or a {call, args} mapping.
func (p *Predicate) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.Call)

	case yaml.MappingNode:
		type plain Predicate

		return node.Decode((*plain)(p))

	default:
		return fmt.Errorf("guard: expected function name or mapping, got %v", node.Kind)
	}
}

// UnmarshalYAML accepts a single step mapping or a sequence of steps.
func (s *Steps) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var step Step

		err := node.Decode(&step)
		if err != nil {
			return err
		}

		*s = Steps{step}

		return nil

	case yaml.SequenceNode:
		var steps []Step

		err := node.Decode(&steps)
		if err != nil {
			return err
		}

		*s = steps

		return nil

	default:
		return fmt.Errorf("then: expected step or list of steps, got %v", node.Kind)
	}
}

// IsSingle returns true if exactly one step is listed.
func (s Steps) IsSingle() bool {
	return common.IsSingle(s)
}

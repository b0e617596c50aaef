package definition

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

var fileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "version"},
		{Name: "imports"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "transformer", LabelNames: []string{"name"}},
	},
}

var transformerSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "parent"},
	},
	Blocks: stepBlocks,
}

var stepSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "args"},
		{Name: "named"},
	},
	Blocks: stepBlocks,
}

var guardSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "args"},
	},
	Blocks: stepBlocks,
}

var stepBlocks = []hcl.BlockHeaderSchema{
	{Type: "step", LabelNames: []string{"call"}},
	{Type: "guard", LabelNames: []string{"predicate"}},
}

// ParseHCL parses HCL data into a File. filename is used in diagnostics.
func ParseHCL(data []byte, filename string) (*File, error) {
	parsed, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse definition HCL %s: %w", filename, diags)
	}

	content, diags := parsed.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode definition HCL %s: %w", filename, diags)
	}

	var f File

	if attr, ok := content.Attributes["version"]; ok {
		if err := decodeAttr(attr, &f.Version); err != nil {
			return nil, err
		}
	}

	imports, err := listAttr(content.Attributes["imports"])
	if err != nil {
		return nil, err
	}

	for _, imp := range imports {
		name, ok := imp.(string)
		if !ok {
			return nil, fmt.Errorf("imports: expected string, got %T", imp)
		}

		f.Imports = append(f.Imports, name)
	}

	for _, block := range content.Blocks {
		t, err := transformerFromHCL(block)
		if err != nil {
			return nil, err
		}

		f.Transformers = append(f.Transformers, t)
	}

	applyDefaults(&f)

	return &f, nil
}

func transformerFromHCL(block *hcl.Block) (Transformer, error) {
	t := Transformer{Name: block.Labels[0]}

	content, diags := block.Body.Content(transformerSchema)
	if diags.HasErrors() {
		return t, fmt.Errorf("transformer %q: %w", t.Name, diags)
	}

	if attr, ok := content.Attributes["parent"]; ok {
		if err := decodeAttr(attr, &t.Parent); err != nil {
			return t, err
		}
	}

	steps, err := stepsFromHCL(content.Blocks)
	if err != nil {
		return t, fmt.Errorf("transformer %q: %w", t.Name, err)
	}

	t.Steps = steps

	return t, nil
}

// stepsFromHCL converts step and guard blocks in source order.
func stepsFromHCL(blocks hcl.Blocks) ([]Step, error) {
	var steps []Step

	for _, block := range blocks {
		var (
			step Step
			err  error
		)

		switch block.Type {
		case "step":
			step, err = stepFromHCL(block)
		case "guard":
			step, err = guardFromHCL(block)
		}

		if err != nil {
			return nil, err
		}

		steps = append(steps, step)
	}

	return steps, nil
}

func stepFromHCL(block *hcl.Block) (Step, error) {
	step := Step{Call: block.Labels[0]}

	content, diags := block.Body.Content(stepSchema)
	if diags.HasErrors() {
		return step, fmt.Errorf("step %q: %w", step.Call, diags)
	}

	var err error

	if step.Args, err = listAttr(content.Attributes["args"]); err != nil {
		return step, err
	}

	if attr, ok := content.Attributes["named"]; ok {
		v, err := attrValue(attr)
		if err != nil {
			return step, err
		}

		named, ok := v.(map[string]any)
		if !ok {
			return step, fmt.Errorf("%s: named must be an object", attr.NameRange)
		}

		step.Named = named
	}

	if step.Do, err = stepsFromHCL(content.Blocks); err != nil {
		return step, err
	}

	return step, nil
}

func guardFromHCL(block *hcl.Block) (Step, error) {
	step := Step{Guard: &Predicate{Call: block.Labels[0]}}

	content, diags := block.Body.Content(guardSchema)
	if diags.HasErrors() {
		return step, fmt.Errorf("guard %q: %w", step.Guard.Call, diags)
	}

	var err error

	if step.Guard.Args, err = listAttr(content.Attributes["args"]); err != nil {
		return step, err
	}

	if step.Then, err = stepsFromHCL(content.Blocks); err != nil {
		return step, err
	}

	return step, nil
}

func decodeAttr(attr *hcl.Attribute, target any) error {
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("%s: %w", attr.Name, diags)
	}

	if err := gocty.FromCtyValue(v, target); err != nil {
		return fmt.Errorf("%s: %s: %w", attr.NameRange, attr.Name, err)
	}

	return nil
}

func attrValue(attr *hcl.Attribute) (any, error) {
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", attr.Name, diags)
	}

	return ctyToNative(v)
}

func listAttr(attr *hcl.Attribute) ([]any, error) {
	if attr == nil {
		return nil, nil
	}

	v, err := attrValue(attr)
	if err != nil {
		return nil, err
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %s must be a list", attr.NameRange, attr.Name)
	}

	return list, nil
}

// ctyToNative converts a cty.Value into plain Go values. Whole numbers
// become int so they match what the YAML decoder produces.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}

		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}

		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, val := it.Element()

			native, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}

			slice = append(slice, native)
		}

		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, val := it.Element()

			native, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}

			out[key.AsString()] = native
		}

		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

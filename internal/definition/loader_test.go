package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapeshift/dsl"
)

func TestParse(t *testing.T) {
	yaml := `
imports: hashes
transformers:
  - name: clean
    steps:
      - call: rejectKeys
        args: [password]
      - guard: {call: isKind, args: [hash]}
        then:
          - call: symbolizeKeys
          - call: mapValues
            args: [{fn: toString}]
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.Equal(t, "1", f.Version, "version defaults to 1")
	assert.Equal(t, StringOrArray{"hashes"}, f.Imports)
	require.Len(t, f.Transformers, 1)

	tr := f.Transformers[0]
	assert.Equal(t, "clean", tr.Name)
	assert.Empty(t, tr.Parent)
	require.Len(t, tr.Steps, 2)

	assert.Equal(t, "rejectKeys", tr.Steps[0].Call)
	assert.Equal(t, []any{"password"}, tr.Steps[0].Args)

	// Guard with mapping predicate and a list of then steps
	require.NotNil(t, tr.Steps[1].Guard)
	assert.Equal(t, "isKind", tr.Steps[1].Guard.Call)
	assert.Equal(t, []any{"hash"}, tr.Steps[1].Guard.Args)
	assert.Len(t, tr.Steps[1].Then, 2)
	assert.False(t, tr.Steps[1].Then.IsSingle())
}

func TestParse_ScalarGuardAndSingleThen(t *testing.T) {
	yaml := `
transformers:
  - name: labels
    steps:
      - guard: isString
        then: {call: toSymbol}
`

	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	step := f.Transformers[0].Steps[0]
	require.NotNil(t, step.Guard)
	assert.Equal(t, "isString", step.Guard.Call)
	assert.True(t, step.Then.IsSingle())
	assert.Equal(t, "toSymbol", step.Then[0].Call)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "transformers: [\n"},
		{"imports object", "imports: {a: b}\n"},
		{"then scalar", "transformers:\n  - name: x\n    steps:\n      - guard: isString\n        then: toSymbol\n"},
		{"guard list", "transformers:\n  - name: x\n    steps:\n      - guard: [a]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_YAMLAndHCLAgree(t *testing.T) {
	fromYAML, err := LoadFile(filepath.Join("testdata", "users.yaml"))
	require.NoError(t, err)

	fromHCL, err := LoadFile(filepath.Join("testdata", "users.hcl"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML.Version, fromHCL.Version)
	assert.Equal(t, fromYAML.Imports, fromHCL.Imports)
	assert.Equal(t, fromYAML.Names(), fromHCL.Names())

	for _, name := range fromYAML.Names() {
		y, _ := fromYAML.Transformer(name)
		h, _ := fromHCL.Transformer(name)

		assert.Equal(t, y.Parent, h.Parent, name)

		if diff := cmp.Diff(y.Block().String(), h.Block().String()); diff != "" {
			t.Errorf("%s block mismatch (-yaml +hcl):\n%s", name, diff)
		}
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read definition file")

	path := filepath.Join(dir, "pipeline.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))

	_, err = LoadFile(path)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	path = filepath.Join(dir, "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`transformer "x" {`), 0o600))

	_, err = LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse definition HCL")
}

func TestParseHCL_Values(t *testing.T) {
	src := `
transformer "t" {
  step "addKeys" {
    args = [{ active = true, score = 1.5, count = 3, tags = ["a", "b"] }]
  }
}
`

	f, err := ParseHCL([]byte(src), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
	assert.Empty(t, f.Imports)

	step := f.Transformers[0].Steps[0]
	require.Len(t, step.Args, 1)
	assert.Equal(t, map[string]any{
		"active": true,
		"score":  1.5,
		"count":  3,
		"tags":   []any{"a", "b"},
	}, step.Args[0])
}

func TestParseHCL_UnknownAttribute(t *testing.T) {
	_, err := ParseHCL([]byte(`transformer "t" { steps = 1 }`), "inline.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `transformer "t"`)
}

func TestStepInstruction(t *testing.T) {
	steps := []Step{
		{Call: "mapArray", Do: []Step{
			{Call: "mapValue", Args: []any{"age", map[string]any{"fn": "toInteger"}}},
		}},
		{Guard: &Predicate{Call: "isString"}, Then: Steps{{Call: "toSymbol"}}},
		{Guard: &Predicate{Call: "isHash"}, Then: Steps{{Call: "symbolizeKeys"}, {Call: "stringifyKeys"}}},
		{Call: "addKeys", Args: []any{map[string]any{"fn": "x", "extra": 1}}},
	}

	want := dsl.Block{
		dsl.Scope{Name: "mapArray", Body: dsl.Block{
			dsl.Call{Name: "mapValue", Args: []any{"age", dsl.Ref{Name: "toInteger"}}},
		}},
		dsl.Guard{Predicate: dsl.Call{Name: "isString"}, Then: dsl.Call{Name: "toSymbol"}},
		dsl.Guard{Predicate: dsl.Call{Name: "isHash"}, Then: dsl.Block{
			dsl.Call{Name: "symbolizeKeys"},
			dsl.Call{Name: "stringifyKeys"},
		}},
		dsl.Call{Name: "addKeys", Args: []any{map[string]any{"fn": "x", "extra": 1}}},
	}

	got := stepsBlock(steps)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("block mismatch (-want +got):\n%s", diff)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"shapeshift/library"
)

var errUnknownOutput = errors.New("unknown output format")

// readInput reads path, or r when path is "-".
func readInput(path string, r io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return data, nil
}

// decodeInput decodes JSON or YAML data. Empty input decodes to nil.
func decodeInput(data []byte) (any, error) {
	var value any

	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	return value, nil
}

// writeOutput encodes value as JSON or YAML.
func writeOutput(w io.Writer, format string, value any) error {
	value = library.Plain(value)

	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(value); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("%w %q, expected json or yaml", errUnknownOutput, format)
	}
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contractgen/pkg/contract"
)

var (
	valuesPath string
	coverPath  string
)

// readValues loads a flat field -> value map. JSON is valid YAML, so both
// formats go through the same decoder.
func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	for name := range values {
		if _, ok := contract.ParseField(name); !ok {
			return nil, fmt.Errorf("values %s: unknown field %q", path, name)
		}
	}
	return values, nil
}

type prefillable interface {
	UpdateValues(values map[string]string) (contract.FormState, error)
	SetCover(res contract.Resource) contract.FormState
}

func prefill(form prefillable) error {
	if valuesPath != "" {
		values, err := readValues(valuesPath)
		if err != nil {
			return err
		}
		if _, err := form.UpdateValues(values); err != nil {
			return err
		}
	}
	if coverPath != "" {
		if _, err := os.Stat(coverPath); err != nil {
			return fmt.Errorf("cover: %w", err)
		}
		form.SetCover(contract.FileResource(coverPath))
	}
	return nil
}

package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlSuiteFile mirrors the on-disk YAML suite format. One file declares one
// suite.
type yamlSuiteFile struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Expectations []yamlExpectation `yaml:"expectations"`
}

type yamlExpectation struct {
	Type   string         `yaml:"type"`
	Kwargs map[string]any `yaml:"kwargs"`
}

// decodeYAMLSuite parses a *.suite.yaml file into a partial Model containing
// the single declared suite.
func decodeYAMLSuite(src []byte, filePath string) (*Model, error) {
	var parsed yamlSuiteFile
	if err := yaml.Unmarshal(src, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML suite file %s: %w", filePath, err)
	}

	if parsed.Name == "" {
		return nil, fmt.Errorf("YAML suite file %s is missing the required \"name\" field", filePath)
	}

	suite := &Suite{
		Name:        parsed.Name,
		Description: parsed.Description,
		SourceFile:  filePath,
	}
	for i, exp := range parsed.Expectations {
		if exp.Type == "" {
			return nil, fmt.Errorf("YAML suite file %s: expectation %d is missing \"type\"", filePath, i)
		}
		kwargs := exp.Kwargs
		if kwargs == nil {
			kwargs = make(map[string]any)
		}
		suite.Expectations = append(suite.Expectations, Expectation{Type: exp.Type, Kwargs: kwargs})
	}

	m := NewModel()
	m.Suites[suite.Name] = suite
	return m, nil
}

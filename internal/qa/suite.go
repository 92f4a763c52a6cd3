package qa

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/groundcheck/internal/model"
)

// ErrNoTests is returned when a suite file declares no test cases
var ErrNoTests = errors.New("suite has no tests")

// LoadSuite reads a suite definition from YAML or JSON
func LoadSuite(path string) (model.Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Suite{}, fmt.Errorf("read suite: %w", err)
	}

	suite, err := ParseSuite(data)
	if err != nil {
		return model.Suite{}, fmt.Errorf("parse suite %s: %w", path, err)
	}

	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return suite, nil
}

// ParseSuite decodes a suite definition. JSON parses as YAML.
func ParseSuite(data []byte) (model.Suite, error) {
	var suite model.Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return model.Suite{}, fmt.Errorf("decode: %w", err)
	}
	if len(suite.Tests) == 0 {
		return model.Suite{}, ErrNoTests
	}
	return suite, nil
}

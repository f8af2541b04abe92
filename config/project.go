package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sitecast/stopend/core/plan"
)

// LoadProject reads one project definition from a JSON or YAML file and
// validates it. Planner defaults from the service configuration are
// applied where the project leaves them unset.
func LoadProject(path string, defaults PlannerConfig) (*plan.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeProject(strings.NewReader(string(b)), "yaml", defaults)
	case ".json":
		return DecodeProject(strings.NewReader(string(b)), "json", defaults)
	default:
		return nil, fmt.Errorf("unsupported project format: %s", filepath.Ext(path))
	}
}

// DecodeProject reads from r to decode a project definition.
func DecodeProject(r io.Reader, format string, defaults PlannerConfig) (*plan.Project, error) {
	var p plan.Project
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&p); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if p.Strategy == "" {
		p.Strategy = plan.Strategy(defaults.Strategy)
	}
	if p.SafetyStock == 0 {
		p.SafetyStock = defaults.SafetyStock
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Package ciconfig extracts environment definitions from a .gitlab-ci.yml
// document. Parsing works on yaml.v3 nodes so variable declarations keep
// the order they appear in, which the interpolation step depends on.
//
// Only the pieces this tool needs are understood: job environment names and
// URLs, plus top-level and per-job variables. `extends:` resolution and
// `rules:` evaluation are out of scope.
package ciconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steinuil/gitlab-ci-env/internal/errors"
	"github.com/steinuil/gitlab-ci-env/internal/interpolate"
)

// reservedKeys are top-level entries that configure the pipeline rather
// than define jobs.
var reservedKeys = map[string]struct{}{
	"stages":        {},
	"variables":     {},
	"workflow":      {},
	"include":       {},
	"default":       {},
	"image":         {},
	"services":      {},
	"before_script": {},
	"after_script":  {},
	"cache":         {},
}

// Config is a parsed CI configuration document.
type Config struct {
	jobs      map[string]*yaml.Node
	variables *interpolate.Mapping
}

// Job is the environment definition extracted from one job.
type Job struct {
	// Name is the job's key in the document.
	Name string

	// EnvironmentName is the environment name template, unexpanded.
	EnvironmentName string

	// EnvironmentURL is the environment URL template; empty when the job
	// declares none.
	EnvironmentURL string

	// Variables holds the top-level variables followed by the job's own,
	// in declaration order. A job variable that redeclares a top-level
	// name overrides its value in place.
	Variables *interpolate.Mapping
}

// Load reads and parses the CI configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CI configuration: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return config, nil
}

// Parse parses a CI configuration document. An empty document yields a
// Config with no jobs.
func Parse(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	config := &Config{
		jobs:      map[string]*yaml.Node{},
		variables: interpolate.NewMapping(),
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return config, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid YAML: top level is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		if key.Value == "variables" {
			collectVariables(value, config.variables)
			continue
		}
		if _, reserved := reservedKeys[key.Value]; reserved {
			continue
		}
		// Keys starting with a dot are hidden template jobs.
		if strings.HasPrefix(key.Value, ".") {
			continue
		}
		config.jobs[key.Value] = value
	}

	return config, nil
}

// Job returns the environment definition of the named job. Jobs that do not
// exist yield errors.ErrJobNotFound; jobs without an environment yield
// errors.ErrNoEnvironment.
func (c *Config) Job(name string) (*Job, error) {
	node, ok := c.jobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errors.ErrJobNotFound, name)
	}

	job := &Job{
		Name:      name,
		Variables: c.variables.Clone(),
	}

	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "environment":
				job.EnvironmentName, job.EnvironmentURL = environmentOf(value)
			case "variables":
				collectVariables(value, job.Variables)
			}
		}
	}

	if job.EnvironmentName == "" {
		return nil, fmt.Errorf("%w: %q", errors.ErrNoEnvironment, name)
	}
	return job, nil
}

// environmentOf reads a job's environment entry, which is either a scalar
// name or a mapping with name and optional url keys.
func environmentOf(node *yaml.Node) (name, url string) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, ""
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				continue
			}
			switch key.Value {
			case "name":
				name = value.Value
			case "url":
				url = value.Value
			}
		}
	}
	return name, url
}

// collectVariables merges the scalar entries of a variables mapping into
// vars, in document order. Non-scalar values (GitLab's expanded variable
// syntax with value/description keys, nested lists) are skipped.
func collectVariables(node *yaml.Node, vars *interpolate.Mapping) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			continue
		}
		vars.Set(key.Value, value.Value)
	}
}

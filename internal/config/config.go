// Package config implements the engine's optional project configuration
// file (ambient stack, spec.md §9 design notes): ignore patterns for
// directory discovery, the source cache's file-size cap, and the
// call-graph projection defaults, loaded from a `.scopegraph.yaml` file
// when one is present. Grounded on the teacher's
// `discover.Options`/`IGNORE_PATTERNS` optional-ignore-file shape,
// generalized from a single `.cgrignore` text file into a structured YAML
// document covering every engine-wide tunable.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// CallGraphDefaults mirrors callgraph.ProjectionOptions' zero-value
// defaults, kept here (rather than imported from internal/callgraph) so
// this package stays a leaf with no dependency on the engine's core.
type CallGraphDefaults struct {
	MaxDepth        int  `yaml:"max_depth"`
	IncludeExternal bool `yaml:"include_external"`
}

// Config is the full set of user-overridable engine tunables. Every field
// has a usable zero value, matching the teacher's `discover.Options`
// optional-ignore-file precedent: a caller that never loads a config file
// still gets correct, if generic, behavior.
type Config struct {
	// IgnorePatterns supplements discover's built-in ignore list: directory
	// names or glob patterns (matched against either the base name or the
	// path relative to the scan root) to skip during discovery.
	IgnorePatterns []string `yaml:"ignore_patterns"`

	// MaxFileBytes is loaded from the file, but nothing in this module
	// passes it to source.Cache: the cache's parser-buffer cap is always
	// the Limits it was constructed with.
	MaxFileBytes int `yaml:"max_file_bytes"`

	CallGraph CallGraphDefaults `yaml:"call_graph"`
}

// Default returns the zero-value configuration: no extra ignore patterns,
// the source cache's built-in size cap, and an unfiltered call-graph
// projection.
func Default() Config {
	return Config{}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error — it returns Default(), matching the teacher's loadIgnoreFile
// treating an absent `.cgrignore` as "no extra patterns" rather than a
// failure.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Package config defines the configuration types and defaults for the
// mkexpr engine.
package config

// Config is the top-level configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
}

// EngineConfig governs the expression engine itself: how aggressively
// line continuations fold (spec §4.B), how deep a variable-reference
// cycle may recurse before RecursionLimit fires (spec §5), and a
// Makefile-line-mode switch that is loaded but not consulted (see
// MakefileLineMode).
type EngineConfig struct {
	// Compliance selects the backslash-fold trigger rule: "gnu" folds
	// only on an odd-length run of trailing backslashes; "posix" folds
	// on any run of one or more.
	Compliance string `yaml:"compliance"`
	// RecursionLimit bounds variable-dereference depth; 0 selects
	// eval.DefaultRecursionLimit.
	RecursionLimit int `yaml:"recursion_limit"`
	// MakefileLineMode is loaded from the config file but no code in this
	// module reads it: content.FromSource always drops the continuation
	// line's leading horizontal whitespace into the fold's single space,
	// whatever this is set to.
	MakefileLineMode bool `yaml:"makefile_line_mode"`
}

// DefaultConfig returns a Config with every field at its documented
// default.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Compliance:       "gnu",
			RecursionLimit:   1000,
			MakefileLineMode: true,
		},
	}
}

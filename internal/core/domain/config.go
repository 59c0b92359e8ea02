package domain

import "strings"

// AliasPrefix marks an env file argument as an alias reference.
const AliasPrefix = "@"

// Config is the user-wide configuration.
type Config struct {
	Memory MemoryConfig
}

// MemoryConfig controls the directory memory.
type MemoryConfig struct {
	Enabled    bool
	MaxEntries int
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Memory: MemoryConfig{
			Enabled:    true,
			MaxEntries: DefaultMaxEntries,
		},
	}
}

// LocalConfig is the project-local configuration found in the working directory.
type LocalConfig struct {
	// MemoryEnabled overrides Config.Memory.Enabled when set.
	MemoryEnabled *bool
	// Aliases maps an alias name to the env files it stands for.
	Aliases map[string][]string
}

// MemoryEnabled reports whether the directory memory is enabled, letting the
// project-local setting win over the global one.
func MemoryEnabled(cfg Config, local *LocalConfig) bool {
	if local != nil && local.MemoryEnabled != nil {
		return *local.MemoryEnabled
	}
	return cfg.Memory.Enabled
}

// ExpandAliases replaces every "@name" token with the files of the matching alias.
// Tokens naming an unknown alias are kept verbatim.
func (l *LocalConfig) ExpandAliases(files []string) []string {
	if l == nil {
		return files
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		name, ok := strings.CutPrefix(f, AliasPrefix)
		if !ok {
			out = append(out, f)
			continue
		}
		expansion, found := l.Aliases[name]
		if !found {
			out = append(out, f)
			continue
		}
		out = append(out, expansion...)
	}
	return out
}

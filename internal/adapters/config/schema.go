package config

// GlobalFile represents the structure of the user-wide config.toml.
type GlobalFile struct {
	Memory GlobalMemory `toml:"memory"`
}

// GlobalMemory is the [memory] table of config.toml.
// Pointers distinguish a missing key from a zero value.
type GlobalMemory struct {
	Enabled    *bool `toml:"enabled"`
	MaxEntries *int  `toml:"max_entries"`
}

// LocalFile represents the structure of the project-local .wenv.toml or .wenv.yaml.
type LocalFile struct {
	Memory  LocalMemory         `toml:"memory" yaml:"memory"`
	Aliases map[string][]string `toml:"aliases" yaml:"aliases"`
}

// LocalMemory is the [memory] table of the project-local config.
type LocalMemory struct {
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

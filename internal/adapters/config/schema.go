package config

// Projectfile represents the structure of the coil.yaml configuration file.
type Projectfile struct {
	Version    string                  `yaml:"version"`
	Extensions []string                `yaml:"extensions"`
	Compilers  map[string]*CompilerDTO `yaml:"compilers"`
	Spawn      SpawnDTO                `yaml:"spawn"`
}

// CompilerDTO represents an external compiler definition in the configuration.
type CompilerDTO struct {
	Extensions    []string `yaml:"extensions"`
	Command       []string `yaml:"command"`
	BareFlag      string   `yaml:"bare_flag"`
	InlineMapFlag string   `yaml:"inline_map_flag"`
}

// SpawnDTO configures the subprocess rewriter.
type SpawnDTO struct {
	Extensions []string `yaml:"extensions"`
}

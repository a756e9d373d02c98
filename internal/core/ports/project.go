package ports

// CompilerSpec declares an external compiler in the project file.
type CompilerSpec struct {
	Name          string
	Extensions    []string
	Command       []string
	BareFlag      string
	InlineMapFlag string
}

// Project is the parsed project file.
type Project struct {
	// Path of the file it was read from, empty when none was found.
	Path            string
	Extensions      []string
	Compilers       []CompilerSpec
	SpawnExtensions []string
}

// ProjectLoader locates and parses the project file.
//
//go:generate mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
type ProjectLoader interface {
	// Load searches cwd and its parents for the project file.
	// A missing file yields an empty Project, not an error.
	Load(cwd string) (*Project, error)
}

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ProjectLoader = (*Loader)(nil)

// Loader implements ports.ProjectLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load searches cwd and its parents for coil.yaml and parses the first match.
// Without a project file it returns an empty project.
func (l *Loader) Load(cwd string) (*ports.Project, error) {
	path, ok := findProjectfile(cwd)
	if !ok {
		return &ports.Project{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is discovered from cwd
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var pf Projectfile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	project, err := toProject(&pf)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	project.Path = path

	if l.Logger != nil {
		l.Logger.Debug("loaded project file " + path)
	}
	return project, nil
}

func findProjectfile(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func toProject(pf *Projectfile) (*ports.Project, error) {
	project := &ports.Project{
		Extensions:      cleanExtensions(pf.Extensions),
		SpawnExtensions: cleanExtensions(pf.Spawn.Extensions),
	}

	// Map iteration order is random; sort for a stable registration order.
	names := make([]string, 0, len(pf.Compilers))
	for name := range pf.Compilers {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		dto := pf.Compilers[name]
		if dto == nil || len(dto.Command) == 0 {
			return nil, zerr.With(zerr.With(domain.ErrInvalidCompilerConfig, "compiler", name), "reason", "missing command")
		}

		exts := cleanExtensions(dto.Extensions)
		if len(exts) == 0 {
			return nil, zerr.With(zerr.With(domain.ErrInvalidCompilerConfig, "compiler", name), "reason", "missing extensions")
		}

		project.Compilers = append(project.Compilers, ports.CompilerSpec{
			Name:          name,
			Extensions:    exts,
			Command:       slices.Clone(dto.Command),
			BareFlag:      dto.BareFlag,
			InlineMapFlag: dto.InlineMapFlag,
		})
	}

	return project, nil
}

func cleanExtensions(exts []string) []string {
	var out []string
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

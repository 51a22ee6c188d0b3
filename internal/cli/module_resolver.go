package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleResolver resolves the Go module the generated code lands in
type ModuleResolver struct{}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// ResolveModuleName resolves the module name for imports. If customModule is
// provided it wins; otherwise go.mod is located by walking up from the
// current directory.
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	goModPath, err := r.findGoMod()
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using --module)", err)
	}

	return r.parseModuleName(goModPath)
}

// findGoMod walks up from the working directory until it finds a go.mod
func (r *ModuleResolver) findGoMod() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return goModPath, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}

// parseModuleName reads the module path with the official modfile parser
func (r *ModuleResolver) parseModuleName(goModPath string) (string, error) {
	content, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", goModPath, err)
	}

	mod, err := modfile.Parse(goModPath, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", goModPath, err)
	}
	if mod.Module == nil {
		return "", fmt.Errorf("no module declaration in %s", goModPath)
	}

	return mod.Module.Mod.Path, nil
}

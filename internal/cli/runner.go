package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/restbound/restbound/internal/descriptor"
	"github.com/restbound/restbound/internal/diagnostics"
	"github.com/restbound/restbound/internal/generator"
	"github.com/restbound/restbound/internal/models"
	"github.com/restbound/restbound/internal/sourcegen"
)

// Options configure one generation run
type Options struct {
	DescriptorPaths []string
	OutDir          string
	PackageName     string
	Module          string
	Verbose         bool
}

// Runner drives the full pipeline: descriptors in, formatted client source out
type Runner struct {
	options  Options
	reporter *ConsoleReporter
	parser   *descriptor.Parser
	resolver *ModuleResolver
}

// NewRunner creates a Runner for the given options
func NewRunner(options Options, reporter *ConsoleReporter) *Runner {
	return &Runner{
		options:  options,
		reporter: reporter,
		parser:   descriptor.NewParser(),
		resolver: NewModuleResolver(),
	}
}

// Run parses every descriptor, generates each interface through the source
// backend, and writes the formatted files. Interfaces with error diagnostics
// are skipped; the run fails if any interface failed.
func (r *Runner) Run() (GenerationSummary, error) {
	summary := GenerationSummary{}

	if len(r.options.DescriptorPaths) == 0 {
		return summary, models.NewGeneratorError(models.ErrorTypeFileSystem, "no descriptor files given")
	}

	packageName := r.options.PackageName
	if packageName == "" {
		packageName = "client"
	}

	// Resolved for the debug output; generated files import only the
	// published runtime package, so resolution failures are not fatal.
	if moduleName, err := r.resolver.ResolveModuleName(r.options.Module); err == nil {
		r.reporter.Debug("target module: %s", moduleName)
	} else {
		r.reporter.Debug("module resolution skipped: %v", err)
	}

	failed := 0
	for _, path := range r.options.DescriptorPaths {
		source, err := os.ReadFile(path)
		if err != nil {
			return summary, models.NewGeneratorError(models.ErrorTypeFileSystem,
				"failed to read descriptor %s", path).WithCause(err)
		}

		typeModels, err := r.parser.Parse(path, string(source))
		if err != nil {
			return summary, err
		}
		summary.DescriptorsParsed++

		for _, model := range typeModels {
			r.reporter.Debug("generating %s", model.Name)

			collector := diagnostics.NewCollector()
			gen := generator.NewGenerator(collector)
			artifact, err := gen.Generate(model, sourcegen.NewEmitter(packageName))
			if err != nil {
				return summary, err
			}

			r.reporter.ReportDiagnostics(model.Name, collector.Diagnostics())
			if collector.HasErrors() {
				failed++
				continue
			}

			file := artifact.(*sourcegen.SourceFile)
			outPath := filepath.Join(r.options.OutDir, file.FileName)
			if err := r.writeFile(outPath, file.Content); err != nil {
				return summary, err
			}

			summary.ClientsGenerated++
			summary.GeneratedFiles = append(summary.GeneratedFiles, outPath)
		}
	}

	if failed > 0 {
		return summary, models.NewGeneratorError(models.ErrorTypeValidation,
			"%d interface(s) failed validation", failed)
	}

	return summary, nil
}

// writeFile writes a generated file, creating the output directory if needed
func (r *Runner) writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return models.NewGeneratorError(models.ErrorTypeFileSystem,
				"failed to create output directory %s", dir).WithCause(err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return models.NewGeneratorError(models.ErrorTypeFileSystem,
			"failed to write %s", path).WithCause(err)
	}
	return nil
}

// Describe returns a short human description of the run for banners
func (o Options) Describe() string {
	return fmt.Sprintf("%d descriptor(s) -> %s (package %s)",
		len(o.DescriptorPaths), o.OutDir, o.PackageName)
}

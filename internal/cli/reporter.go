package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/restbound/restbound/internal/diagnostics"
	"github.com/restbound/restbound/internal/models"
)

// ConsoleReporter renders diagnostics and driver errors for terminal users
type ConsoleReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewConsoleReporter creates a reporter writing to stdout/stderr
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{
		verbose: verbose,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
}

// ReportDiagnostics prints the validation findings recorded for one interface
func (r *ConsoleReporter) ReportDiagnostics(typeName string, found []diagnostics.Diagnostic) {
	if len(found) == 0 {
		return
	}

	bold := color.New(color.Bold)
	bold.Fprintf(r.errOut, "%s: %d problem(s)\n", typeName, len(found))

	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	for _, d := range found {
		if d.Location.File != "" {
			fmt.Fprintf(r.errOut, "  %s:%d: ", d.Location.File, d.Location.Line)
		} else {
			fmt.Fprintf(r.errOut, "  ")
		}
		if d.Severity == diagnostics.SeverityError {
			red.Fprint(r.errOut, "error: ")
		} else {
			yellow.Fprint(r.errOut, "warning: ")
		}
		fmt.Fprintf(r.errOut, "%s ", d.Message)
		color.New(color.FgHiBlack).Fprintf(r.errOut, "[%s]\n", d.Code)
	}
}

// ReportError prints a driver failure with its context
func (r *ConsoleReporter) ReportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.errOut, "error: ")

	if genErr, ok := err.(*models.GeneratorError); ok {
		fmt.Fprintf(r.errOut, "%s\n", genErr.Error())
		if r.verbose && genErr.Cause != nil {
			fmt.Fprintf(r.errOut, "  caused by: %s\n", genErr.Cause.Error())
		}
		return
	}

	fmt.Fprintf(r.errOut, "%s\n", err.Error())
}

// Debug prints debug output when verbose mode is enabled
func (r *ConsoleReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[debug] "+format+"\n", args...)
	}
}

// ReportSuccess prints the generation summary
func (r *ConsoleReporter) ReportSuccess(summary GenerationSummary) {
	green := color.New(color.FgGreen, color.Bold)
	green.Fprint(r.out, "ok ")
	fmt.Fprintf(r.out, "generated %d client(s) from %d descriptor(s)\n",
		summary.ClientsGenerated, summary.DescriptorsParsed)
	for _, file := range summary.GeneratedFiles {
		fmt.Fprintf(r.out, "  %s\n", file)
	}
}

// GenerationSummary contains counters for the success report
type GenerationSummary struct {
	DescriptorsParsed int
	ClientsGenerated  int
	GeneratedFiles    []string
}

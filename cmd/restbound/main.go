package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/restbound/restbound/internal/cli"
)

func main() {
	var (
		outFlag     = flag.String("out", ".", "Output directory for generated clients")
		packageFlag = flag.String("package", "client", "Package name of the generated files")
		moduleFlag  = flag.String("module", "", "Custom module name (defaults to go.mod module)")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <descriptor-files...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "restbound client generator\n")
		fmt.Fprintf(os.Stderr, "Parses interface descriptors and generates HTTP client implementations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s api.rbd                                # Generate into the current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --out internal/api --package api *.rbd # Generate into a package\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose api.rbd                      # Enable detailed output\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one descriptor file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	reporter := cli.NewConsoleReporter(*verboseFlag)

	runner := cli.NewRunner(cli.Options{
		DescriptorPaths: args,
		OutDir:          *outFlag,
		PackageName:     *packageFlag,
		Module:          *moduleFlag,
		Verbose:         *verboseFlag,
	}, reporter)

	summary, err := runner.Run()
	if err != nil {
		reporter.ReportError(err)
		os.Exit(1)
	}

	if !*quietFlag {
		reporter.ReportSuccess(summary)
	}
}

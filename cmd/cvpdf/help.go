package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate PDF documents from profiles")
	fmt.Fprintln(w, "  inspect    Validate PDF documents")
	fmt.Fprintln(w, "  doctor     Check the environment for both engines")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'cvpdf help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf generate <profile|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate one PDF per profile (.yaml, .yml or .json).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  profile    Profile file, or directory searched recursively")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: current directory)")
	fmt.Fprintln(w, "  -f, --filename <name>     Output file name, single profile only")
	fmt.Fprintln(w, "      --timestamp <s>       Timestamp derived file names")
	fmt.Fprintln(w, "                            Presets: iso, compact, stamp, month")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MM, DD, HH, mm, ss")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -e, --engine <s>          native (default) or browser")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --producer <s>        Document producer entry")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --max-achievements <n>   Achievements per position (-1 = all)")
	fmt.Fprintln(w, "      --max-certifications <n> Certifications shown (-1 = all)")
	fmt.Fprintln(w, "      --max-skills <n>         Skills shown (-1 = all)")
	fmt.Fprintln(w, "      --overflow-marker        Append \"(+N more)\" to capped lists")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling (browser engine):")
	fmt.Fprintln(w, "      --style <s>           Style name or .css file")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CVPDF_CONFIG, CVPDF_ENGINE, CVPDF_OUTPUT_DIR, CVPDF_STYLE,")
	fmt.Fprintln(w, "  CVPDF_PAGE_SIZE, CVPDF_TIMEOUT, CVPDF_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf inspect <file.pdf>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate PDF documents and verify every cross-reference offset.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print reports as JSON")
	fmt.Fprintln(w, "  -t, --text                Include the text drawn on each page")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome availability for the browser engine and system requirements.")
	fmt.Fprintln(w, "The native engine needs no external tools.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: cvpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: cvpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

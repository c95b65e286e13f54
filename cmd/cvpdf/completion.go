package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values
	FilePattern string   // glob for file arguments (e.g., "*.yaml,*.yml")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"page-size": {Values: []string{"a4", "letter"}},
	"engine":    {Values: []string{"native", "browser"}},
	"timestamp": {Values: []string{"iso", "compact", "stamp", "month"}},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// shells lists the completion targets in display order.
var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// buildGenerateFlagSet creates a FlagSet with all generate command flags.
func buildGenerateFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	registerGenerateFlags(fs, &generateFlags{})
	return fs
}

// buildInspectFlagSet creates a FlagSet with all inspect command flags.
func buildInspectFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	registerInspectFlags(fs, &inspectFlags{})
	return fs
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	shellNames := make([]string, len(shells))
	for i, s := range shells {
		shellNames[i] = string(s)
	}

	return []commandDef{
		{
			Name:        "generate",
			Desc:        "Generate PDF documents from profiles",
			Flags:       extractFlagsFromFlagSet(buildGenerateFlagSet()),
			FilePattern: "*.yaml,*.yml,*.json",
		},
		{
			Name:        "inspect",
			Desc:        "Validate PDF documents",
			Flags:       extractFlagsFromFlagSet(buildInspectFlagSet()),
			FilePattern: "*.pdf",
		},
		{
			Name:  "doctor",
			Desc:  "Check the environment for both engines",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "print the result as JSON"}},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: shellNames,
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"generate", "inspect", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvpdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(cvpdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(cvpdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    cvpdf completion fish > ~/.config/fish/completions/cvpdf.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    cvpdf completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Script writers
// ---------------------------------------------------------------------------

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// flagNames returns "--long" and, when set, "-s".
func flagNames(f flagDef) []string {
	names := []string{"--" + f.Long}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// takesValue reports whether the flag consumes the next word.
func takesValue(f flagDef) bool {
	return f.Type != flagBool
}

func generateBash(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}

	b.WriteString("# bash completion for cvpdf\n\n")
	b.WriteString("_cvpdf_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(names, " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valueCases []string
		var all []string
		for _, f := range c.Flags {
			all = append(all, flagNames(f)...)
			if !takesValue(f) {
				continue
			}
			pattern := strings.Join(flagNames(f), "|")
			switch f.Type {
			case flagEnum:
				valueCases = append(valueCases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n            return 0 ;;\n",
					pattern, strings.Join(f.Values, " ")))
			case flagFile:
				valueCases = append(valueCases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n            return 0 ;;\n",
					pattern, strings.Join(globExtensions(f.FileGlob), "|")))
			case flagDir:
				valueCases = append(valueCases, fmt.Sprintf("        %s)\n            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n            return 0 ;;\n", pattern))
			default:
				valueCases = append(valueCases, fmt.Sprintf("        %s)\n            return 0 ;;\n", pattern))
			}
		}

		if len(valueCases) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, vc := range valueCases {
				b.WriteString(vc)
			}
			b.WriteString("        esac\n")
		}
		if len(all) > 0 {
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(all, " "))
			b.WriteString("            return 0\n")
			b.WriteString("        fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n",
				strings.Join(globExtensions(c.FilePattern), "|"))
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _cvpdf_completions cvpdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes a description for an _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

func generateZsh(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	b.WriteString("#compdef cvpdf\n\n")
	b.WriteString("_cvpdf() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			var spec string
			if f.Short != "" {
				spec = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]", f.Short, f.Long, f.Short, f.Long, zshEscape(f.Desc))
			} else {
				spec = fmt.Sprintf("'--%s[%s]", f.Long, zshEscape(f.Desc))
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				spec += fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
			case flagFile:
				spec += fmt.Sprintf(":file:_files -g \"*.(%s)\"", strings.Join(globExtensions(f.FileGlob), "|"))
			case flagDir:
				spec += ":directory:_files -/"
			default:
				spec += ":value: "
			}
			fmt.Fprintf(&b, "            %s' \\\n", spec)
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            '1:argument:(%s)'\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "            '*:file:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
		default:
			b.WriteString("            '*: :'\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _cvpdf cvpdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes a description for a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

func generateFish(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for cvpdf\n\n")
	b.WriteString("function __fish_cvpdf_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_cvpdf_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c cvpdf -f\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c cvpdf -n __fish_cvpdf_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range commands {
		cond := fmt.Sprintf("'__fish_cvpdf_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c cvpdf -n %s", cond)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -r"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c cvpdf -n %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "complete -c cvpdf -n %s -F\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// psEscape escapes a single-quoted PowerShell string.
func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func generatePowerShell(w io.Writer) error {
	commands := getCommands()
	var b strings.Builder

	b.WriteString("# powershell completion for cvpdf\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName cvpdf -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s' = '%s'\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range commands {
		var quoted []string
		for _, f := range c.Flags {
			for _, n := range flagNames(f) {
				quoted = append(quoted, "'"+n+"'")
			}
		}
		for _, a := range c.Args {
			quoted = append(quoted, "'"+a+"'")
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    if ($elements.Count -eq 1 -or ($elements.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $elements[1].ToString()\n")
	b.WriteString("    if ($flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bigntt/internal/config"
)

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value in zsh, empty for booleans
	IsFile    bool     // the flag takes a file path
	IsBackend bool     // values come from the backend registry
}

var flagRegistry = []FlagCompletion{
	{Name: "chunk-width", Help: "Widest chunk in bits", Values: []string{"24", "27", "29", "31"}, ValueName: "bits"},
	{Name: "min-chunk-width", Help: "Narrowest chunk in bits", Values: []string{"8", "16"}, ValueName: "bits"},
	{Name: "prime-threshold", Help: "Operand size from which the Solinas prime is preferred", ValueName: "bits"},
	{Name: "parallel-threshold", Help: "Transform size for concurrent transforms", Values: []string{"-1", "0", "2048", "4096", "8192"}, ValueName: "size"},
	{Name: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Name: "verify", Help: "Check the product against math/big"},
	{Name: "backend", Help: "Multiplier backend", IsBackend: true, ValueName: "backend"},
	{Name: "hex", Help: "Print numbers in hexadecimal"},
	{Name: "v", Help: "Print full values"},
	{Name: "details", Help: "Print parameters and statistics"},
	{Name: "quiet", Help: "Print only the result"},
	{Name: "no-color", Help: "Disable colored output"},
	{Name: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "off"}, ValueName: "level"},
	{Name: "output", Help: "Write the result to a file", IsFile: true, ValueName: "file"},
	{Name: "slice", Help: "Slice or index to select", ValueName: "slice"},
	{Name: "words", Help: "Address words instead of bits"},
	{Name: "width", Help: "Word width in bits", Values: []string{"8", "16", "32", "64"}, ValueName: "bits"},
	{Name: "delete", Help: "Delete the selection"},
	{Name: "size", Help: "Transform size", Values: []string{"16", "256", "4096", "65536"}, ValueName: "size"},
	{Name: "modulus", Help: "Transform modulus", Values: []string{"native", "solinas"}, ValueName: "modulus"},
	{Name: "backends", Help: "Comma-separated bench backends", ValueName: "list"},
	{Name: "max-bits", Help: "Largest bench operand", Values: []string{"100000", "1000000", "10000000"}, ValueName: "bits"},
	{Name: "runs", Help: "Repetitions per bench size", ValueName: "count"},
	{Name: "tui", Help: "Show the bench dashboard"},
}

// Shells lists the accepted arguments of GenerateCompletion.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// GenerateCompletion writes a completion script for shell to out.
// backends feeds the values offered after -backend.
func GenerateCompletion(out io.Writer, shell string, backends []string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(backends)
	case "zsh":
		script = zshCompletion(backends)
	case "fish":
		script = fishCompletion(backends)
	case "powershell", "ps":
		script = powerShellCompletion(backends)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion(backends []string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, "-"+f.Name)
		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case f.IsBackend:
			body = `COMPREPLY=( $(compgen -W "${backends}" -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        -%s)\n            %s\n            return 0\n            ;;\n", f.Name, body)
	}

	return fmt.Sprintf(`# Bash completion script for bigntt
# Add this to your ~/.bashrc or ~/.bash_completion

_bigntt_completions() {
    local cur prev opts commands backends
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    commands="%s"
    backends="%s"

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
        return 0
    fi

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _bigntt_completions bigntt
`, strings.Join(opts, " "), strings.Join(config.Commands, " "), strings.Join(backends, " "), cases.String())
}

func zshCompletion(backends []string) string {
	args := []string{"        '1:command:(" + strings.Join(config.Commands, " ") + ")'"}
	for _, f := range flagRegistry {
		suffix := ""
		switch {
		case f.IsFile:
			suffix = ":" + f.ValueName + ":_files"
		case f.IsBackend:
			suffix = ":" + f.ValueName + ":($backends)"
		case len(f.Values) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			suffix = ":" + f.ValueName + ":"
		}
		args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, suffix))
	}

	return fmt.Sprintf(`#compdef bigntt

# Zsh completion script for bigntt
# Add this to your ~/.zshrc or place in $fpath

_bigntt() {
    local -a backends
    backends=(%s)

    _arguments \
%s
}

_bigntt "$@"
`, strings.Join(backends, " "), strings.Join(args, " \\\n"))
}

func fishCompletion(backends []string) string {
	lines := []string{
		"# Fish completion script for bigntt",
		"# Add this to ~/.config/fish/completions/bigntt.fish",
		"",
		"complete -c bigntt -f",
		fmt.Sprintf("complete -c bigntt -n '__fish_use_subcommand' -xa '%s'", strings.Join(config.Commands, " ")),
		"",
	}
	for _, f := range flagRegistry {
		line := fmt.Sprintf("complete -c bigntt -o %s -d '%s'", f.Name, f.Help)
		switch {
		case f.IsFile:
			line += " -rF"
		case f.IsBackend:
			line += fmt.Sprintf(" -xa '%s'", strings.Join(backends, " "))
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -xa '%s'", strings.Join(f.Values, " "))
		case f.ValueName != "":
			line += " -x"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

func quoteAll(vals []string) string {
	quoted := make([]string, len(vals))
	for i, v := range vals {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

func powerShellCompletion(backends []string) string {
	var options, cases []string
	for _, f := range flagRegistry {
		options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Name, f.Help))
		vals := f.Values
		if f.IsBackend {
			vals = backends
		}
		if len(vals) == 0 {
			continue
		}
		cases = append(cases, fmt.Sprintf(`        '-%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Name, quoteAll(vals)))
	}

	return fmt.Sprintf(`# PowerShell completion script for bigntt
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'bigntt' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @(%s)
    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    if ($elements.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {
        $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'Command', $_)
        }
        return
    }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, quoteAll(config.Commands), strings.Join(options, "\n"), strings.Join(cases, "\n"))
}

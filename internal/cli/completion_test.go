package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	backends := []string{"big", "ntt"}
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _bigntt_completions bigntt", `backends="big ntt"`, "-modulus)", "native solinas", "mul square bits", "compgen -f"}},
		{"zsh", []string{"#compdef bigntt", "backends=(big ntt)", "'-output[Write the result to a file]:file:_files'", "1:command:(mul"}},
		{"fish", []string{"complete -c bigntt -o backend -d 'Multiplier backend' -xa 'big ntt'", "__fish_use_subcommand", "-o output -d 'Write the result to a file' -rF"}},
		{"powershell", []string{"Register-ArgumentCompleter -CommandName 'bigntt'", "@('big', 'ntt')", "'-log-level'"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, backends); err != nil {
				t.Fatalf("GenerateCompletion: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletionUnsupportedShell(t *testing.T) {
	t.Parallel()
	err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell: tcsh") {
		t.Errorf("err = %v", err)
	}
}

func TestFlagRegistryHasNoDuplicates(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, f := range flagRegistry {
		if seen[f.Name] {
			t.Errorf("flag %q registered twice", f.Name)
		}
		seen[f.Name] = true
	}
}

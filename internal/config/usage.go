package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/agbru/bigntt/internal/ui"
)

// setCustomUsage installs a colored usage function on fs.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sbigntt%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Arbitrary-precision multiplication with number-theoretic transforms.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s <command> [flags] [operands]\n\n", t.Warning, t.Reset, fs.Name())
		fmt.Fprintf(out, "%sCommands:%s\n  %s\n\n%sFlags:%s\n", t.Warning, t.Reset, strings.Join(Commands, ", "), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, sig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nMost flags can also be set through a %s-prefixed environment variable.\n\n", EnvPrefix)
	}
}

// Package config parses the command line and BIGNTT_* environment
// variables into an AppConfig. Flags take priority over the environment,
// which takes priority over the defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/logging"
	"github.com/agbru/bigntt/internal/modular"
	"github.com/agbru/bigntt/internal/mul"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BIGNTT_"

// Commands lists the sub-commands understood by the CLI.
var Commands = []string{"mul", "square", "bits", "plan", "bench", "info", "metrics", "repl", "completion"}

const (
	DefaultTimeout   = 5 * time.Minute
	DefaultBenchMax  = 1_000_000
	DefaultPlanSize  = 256
	DefaultLogLevel  = "warn"
	DefaultBackends  = "ntt,big"
	DefaultBenchRuns = 3
)

// AppConfig holds everything the application needs for one invocation.
type AppConfig struct {
	Command string
	Args    []string

	// Multiplier tuning.
	ChunkWidth         uint
	MinChunkWidth      uint
	PrimeThresholdBits int
	ParallelThreshold  int

	Timeout  time.Duration
	Verify   bool
	Backend  string
	Hex      bool
	Verbose  bool
	Details  bool
	Quiet    bool
	NoColor  bool
	LogLevel string

	OutputFile string

	// bits command.
	Slice      string
	Words      bool
	WordWidth  uint
	DeleteMode bool

	// plan command.
	PlanSize int
	Modulus  string

	// bench command.
	Backends  string
	BenchMax  int
	BenchRuns int
	TUI       bool
}

// ToMulConfig returns the multiplier tuning part of the configuration.
func (c AppConfig) ToMulConfig() mul.Config {
	return mul.Config{
		ChunkWidth:         c.ChunkWidth,
		MinChunkWidth:      c.MinChunkWidth,
		PrimeThresholdBits: c.PrimeThresholdBits,
		ParallelThreshold:  c.ParallelThreshold,
	}
}

// BackendList returns the comma-separated bench backends, trimmed.
func (c AppConfig) BackendList() []string {
	var out []string
	for _, name := range strings.Split(c.Backends, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	if !slices.Contains(Commands, c.Command) {
		return apperrors.NewConfigError("unknown command %q; valid commands are: %s", c.Command, strings.Join(Commands, ", "))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if err := c.ToMulConfig().Validate(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.WordWidth < 1 || c.WordWidth > 64 {
		return apperrors.NewConfigError("word width must be between 1 and 64, got %d", c.WordWidth)
	}
	if _, err := modular.ParseKind(c.Modulus); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.PlanSize <= 0 || c.PlanSize&(c.PlanSize-1) != 0 {
		return apperrors.NewConfigError("plan size must be a power of two, got %d", c.PlanSize)
	}
	if c.BenchMax < 1 || c.BenchRuns < 1 {
		return apperrors.NewConfigError("bench size and runs must be positive")
	}
	if c.Command == "bench" && len(c.BackendList()) == 0 {
		return apperrors.NewConfigError("no bench backend selected")
	}
	return nil
}

// ParseConfig parses args, which start with the command name.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	config := AppConfig{}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		config.Command, args = strings.ToLower(args[0]), args[1:]
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	def := mul.DefaultConfig()

	fs.UintVar(&config.ChunkWidth, "chunk-width", def.ChunkWidth, "Widest chunk, in bits, tried by the multiplier.")
	fs.UintVar(&config.MinChunkWidth, "min-chunk-width", def.MinChunkWidth, "Narrowest chunk, in bits, tried before switching modulus.")
	fs.IntVar(&config.PrimeThresholdBits, "prime-threshold", def.PrimeThresholdBits, "Operand size (bits) from which the Solinas prime is preferred.")
	fs.IntVar(&config.ParallelThreshold, "parallel-threshold", 0, "Transform size from which forward transforms run concurrently (0 = adaptive, -1 = never).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Verify, "verify", false, "Check the product against math/big.")
	fs.StringVar(&config.Backend, "backend", "ntt", "Multiplier backend for mul and square.")
	fs.BoolVar(&config.Hex, "hex", false, "Print numbers in hexadecimal.")
	fs.BoolVar(&config.Verbose, "v", false, "Print the full value instead of a truncated one.")
	fs.BoolVar(&config.Details, "d", false, "Print parameters, timings and memory statistics.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, off.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file (shorthand).")
	fs.StringVar(&config.Slice, "slice", "", "Slice or index to select, e.g. 2:, ::-1 or -1.")
	fs.BoolVar(&config.Words, "words", false, "Address words instead of bits.")
	fs.UintVar(&config.WordWidth, "width", 64, "Word width in bits for -words.")
	fs.BoolVar(&config.DeleteMode, "delete", false, "Delete the selection instead of reading it.")
	fs.IntVar(&config.PlanSize, "size", DefaultPlanSize, "Transform size for the plan command.")
	fs.StringVar(&config.Modulus, "modulus", modular.Native.String(), "Modulus for the plan command: native or solinas.")
	fs.StringVar(&config.Backends, "backends", DefaultBackends, "Comma-separated backends for the bench command.")
	fs.IntVar(&config.BenchMax, "max-bits", DefaultBenchMax, "Largest operand size, in bits, for the bench command.")
	fs.IntVar(&config.BenchRuns, "runs", DefaultBenchRuns, "Repetitions per size for the bench command.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the bench as an interactive dashboard.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Args = fs.Args()
	if config.Command == "" {
		fs.Usage()
		return AppConfig{}, apperrors.NewConfigError("missing command")
	}

	applyEnvOverrides(&config, fs)
	config = ApplyAdaptiveThresholds(config)
	config.Modulus = strings.ToLower(config.Modulus)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			return AppConfig{}, cfgErr
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	return config, nil
}

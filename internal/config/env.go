package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSetAny reports whether any of the named flags was given on the
// command line.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// envOverride maps one BIGNTT_ variable to the flags it stands for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func uintSetter(dst func(*AppConfig) *uint) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 0); err == nil {
			*dst(c) = uint(parsed)
		}
	}
}

func intSetter(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolSetter(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

var envOverrides = []envOverride{
	{"CHUNK_WIDTH", []string{"chunk-width"}, uintSetter(func(c *AppConfig) *uint { return &c.ChunkWidth })},
	{"MIN_CHUNK_WIDTH", []string{"min-chunk-width"}, uintSetter(func(c *AppConfig) *uint { return &c.MinChunkWidth })},
	{"PRIME_THRESHOLD", []string{"prime-threshold"}, intSetter(func(c *AppConfig) *int { return &c.PrimeThresholdBits })},
	{"PARALLEL_THRESHOLD", []string{"parallel-threshold"}, intSetter(func(c *AppConfig) *int { return &c.ParallelThreshold })},
	{"MAX_BITS", []string{"max-bits"}, intSetter(func(c *AppConfig) *int { return &c.BenchMax })},
	{"RUNS", []string{"runs"}, intSetter(func(c *AppConfig) *int { return &c.BenchRuns })},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"BACKEND", []string{"backend"}, func(c *AppConfig, v string) { c.Backend = v }},
	{"BACKENDS", []string{"backends"}, func(c *AppConfig, v string) { c.Backends = v }},
	{"MODULUS", []string{"modulus"}, func(c *AppConfig, v string) { c.Modulus = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},

	{"VERIFY", []string{"verify"}, boolSetter(func(c *AppConfig) *bool { return &c.Verify })},
	{"HEX", []string{"hex"}, boolSetter(func(c *AppConfig) *bool { return &c.Hex })},
	{"DETAILS", []string{"d", "details"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"TUI", []string{"tui"}, boolSetter(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills every field whose flag was not given on the
// command line from its BIGNTT_ variable, when set.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}

package config

import (
	"errors"
	"io"
	"slices"
	"testing"
	"time"

	apperrors "github.com/agbru/bigntt/internal/errors"
	"github.com/agbru/bigntt/internal/mul"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := ParseConfig("bigntt", []string{"mul", "12", "13"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Command != "mul" || !slices.Equal(cfg.Args, []string{"12", "13"}) {
		t.Errorf("command/args = %q %v", cfg.Command, cfg.Args)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	def := mul.DefaultConfig()
	got := cfg.ToMulConfig()
	if got.ChunkWidth != def.ChunkWidth || got.MinChunkWidth != def.MinChunkWidth || got.PrimeThresholdBits != def.PrimeThresholdBits {
		t.Errorf("ToMulConfig() = %+v, want defaults %+v", got, def)
	}
	if cfg.ParallelThreshold == 0 {
		t.Error("parallel threshold was not resolved adaptively")
	}
}

func TestParseConfigFlags(t *testing.T) {
	t.Parallel()
	args := []string{"BITS", "-slice", "::-1", "-words", "-width", "10", "-chunk-width", "20",
		"-parallel-threshold", "-1", "-timeout", "10s", "-q", "-modulus", "SOLINAS", "99"}
	cfg, err := ParseConfig("bigntt", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Command != "bits" || cfg.Slice != "::-1" || !cfg.Words || cfg.WordWidth != 10 {
		t.Errorf("bits flags = %+v", cfg)
	}
	if cfg.ChunkWidth != 20 || cfg.ParallelThreshold != -1 || cfg.Timeout != 10*time.Second || !cfg.Quiet {
		t.Errorf("tuning flags = %+v", cfg)
	}
	if cfg.Modulus != "solinas" || !slices.Equal(cfg.Args, []string{"99"}) {
		t.Errorf("modulus/args = %q %v", cfg.Modulus, cfg.Args)
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"missing command", []string{"-q"}},
		{"unknown command", []string{"divide"}},
		{"zero timeout", []string{"mul", "-timeout", "0s"}},
		{"chunk too wide", []string{"mul", "-chunk-width", "40"}},
		{"min above max", []string{"mul", "-chunk-width", "10", "-min-chunk-width", "12"}},
		{"bad modulus", []string{"plan", "-modulus", "mersenne"}},
		{"bad plan size", []string{"plan", "-size", "100"}},
		{"bad word width", []string{"bits", "-width", "65"}},
		{"bad log level", []string{"info", "-log-level", "loud"}},
		{"no backends", []string{"bench", "-backends", " , "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("bigntt", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("err = %v, want ConfigError", err)
			}
		})
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	t.Parallel()
	if _, err := ParseConfig("bigntt", []string{"mul", "-nope"}, io.Discard); err == nil {
		t.Error("unknown flag should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"CHUNK_WIDTH", "24")
	t.Setenv(EnvPrefix+"PRIME_THRESHOLD", "500")
	t.Setenv(EnvPrefix+"TIMEOUT", "3s")
	t.Setenv(EnvPrefix+"VERIFY", "yes")
	t.Setenv(EnvPrefix+"BACKENDS", "big, ntt-solinas")
	t.Setenv(EnvPrefix+"QUIET", "maybe")

	cfg, err := ParseConfig("bigntt", []string{"bench", "-chunk-width", "26"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.ChunkWidth != 26 {
		t.Errorf("flag should win over env: ChunkWidth = %d", cfg.ChunkWidth)
	}
	if cfg.PrimeThresholdBits != 500 || cfg.Timeout != 3*time.Second || !cfg.Verify {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Quiet {
		t.Error("unrecognized boolean should keep the default")
	}
	if got := cfg.BackendList(); !slices.Equal(got, []string{"big", "ntt-solinas"}) {
		t.Errorf("BackendList() = %v", got)
	}
}

func TestEstimateParallelThreshold(t *testing.T) {
	t.Parallel()
	prev := 0
	for _, cpus := range []int{1, 2, 4, 8, 16, 64} {
		got := EstimateParallelThreshold(cpus)
		if cpus == 1 {
			if got >= 0 {
				t.Errorf("single core should disable concurrency, got %d", got)
			}
			continue
		}
		if got&(got-1) != 0 {
			t.Errorf("EstimateParallelThreshold(%d) = %d, not a power of two", cpus, got)
		}
		if prev != 0 && got > prev {
			t.Errorf("threshold grows with cores: %d -> %d", prev, got)
		}
		prev = got
	}
	if ApplyAdaptiveThresholds(AppConfig{ParallelThreshold: 7}).ParallelThreshold != 7 {
		t.Error("explicit threshold overwritten")
	}
}

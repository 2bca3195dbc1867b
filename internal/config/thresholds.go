package config

import "runtime"

// ApplyAdaptiveThresholds replaces a zero parallel threshold with an
// estimate for the current machine.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateParallelThreshold(runtime.NumCPU())
	}
	return cfg
}

// EstimateParallelThreshold returns the transform size from which running
// both forward transforms concurrently pays off with numCPU cores. A
// negative result disables concurrency.
func EstimateParallelThreshold(numCPU int) int {
	switch {
	case numCPU <= 1:
		return -1
	case numCPU <= 2:
		return 16384
	case numCPU <= 4:
		return 8192
	case numCPU <= 8:
		return 4096
	default:
		return 2048
	}
}

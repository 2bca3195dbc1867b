package sysmon

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// CPUFeatures lists the instruction-set extensions relevant to word-level
// multiplication that the running CPU supports, in a fixed order.
func CPUFeatures() []string {
	var flags []struct {
		name string
		ok   bool
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		flags = []struct {
			name string
			ok   bool
		}{
			{"bmi2", cpu.X86.HasBMI2},
			{"adx", cpu.X86.HasADX},
			{"avx2", cpu.X86.HasAVX2},
			{"avx512f", cpu.X86.HasAVX512F},
			{"avx512dq", cpu.X86.HasAVX512DQ},
			{"avx512ifma", cpu.X86.HasAVX512IFMA},
		}
	case "arm64":
		flags = []struct {
			name string
			ok   bool
		}{
			{"asimd", cpu.ARM64.HasASIMD},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		}
	}

	var out []string
	for _, f := range flags {
		if f.ok {
			out = append(out, f.name)
		}
	}
	return out
}

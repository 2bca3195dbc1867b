// Package sysmon samples system-wide CPU and memory usage for the bench
// dashboard and describes the host the multiplier runs on.
package sysmon

import (
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a system-wide CPU and memory snapshot. CPU usage is the
// delta since the previous call. Fields that cannot be read stay zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
	}
	return s
}

// Host describes the machine for the info command.
type Host struct {
	CPUModel      string
	PhysicalCores int
	TotalMemory   uint64
}

// HostInfo reads the CPU model, physical core count and installed memory.
// Unknown values are left empty.
func HostInfo() Host {
	var h Host
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = strings.TrimSpace(infos[0].ModelName)
	}
	if n, err := cpu.Counts(false); err == nil {
		h.PhysicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		h.TotalMemory = vm.Total
	}
	return h
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

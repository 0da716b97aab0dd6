// Package node reports facts about the host the service runs on.
package node

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"runtime/debug"
	"strconv"

	"github.com/jsamuelsen/quote-service/internal/ports"
)

const bytesPerMB = 1024 * 1024

// Info describes the host and the Go runtime's memory use.
type Info struct {
	Hostname      string
	OSName        string
	OSVersion     string
	OSArch        string
	Processors    int
	MaxMemoryMB   uint64
	TotalMemoryMB uint64
	FreeMemoryMB  uint64
}

// Memory is a snapshot of runtime memory figures in bytes.
type Memory struct {
	// Max is the soft memory limit, or bytes obtained from the OS when no limit is set.
	Max uint64

	// Total is the heap obtained from the OS.
	Total uint64

	// Free is heap obtained from the OS but not in use.
	Free uint64

	// Limited is true when Max comes from a soft memory limit (GOMEMLIMIT).
	Limited bool
}

// Collect gathers host information.
func Collect() Info {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}

	sysname, release := uname()
	mem := ReadMemory()

	return Info{
		Hostname:      hostname,
		OSName:        sysname,
		OSVersion:     release,
		OSArch:        runtime.GOARCH,
		Processors:    runtime.NumCPU(),
		MaxMemoryMB:   mem.Max / bytesPerMB,
		TotalMemoryMB: mem.Total / bytesPerMB,
		FreeMemoryMB:  mem.Free / bytesPerMB,
	}
}

// ReadMemory reads the current runtime memory statistics.
func ReadMemory() Memory {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	limit := debug.SetMemoryLimit(-1)

	mem := Memory{
		Max:   ms.Sys,
		Total: ms.HeapSys,
		Free:  ms.HeapIdle,
	}

	if limit > 0 && limit < math.MaxInt64 {
		mem.Max = uint64(limit)
		mem.Limited = true
	}

	return mem
}

// Compile-time interface check.
var _ ports.HealthChecker = (*Checker)(nil)

// Checker reports node memory. It only fails when a soft memory limit is set
// and heap in use crosses a fraction of it; without a limit it always passes.
type Checker struct {
	threshold float64
	read      func() Memory
}

// NewChecker creates a node health checker. A threshold outside (0, 1]
// disables the memory check.
func NewChecker(threshold float64) *Checker {
	return &Checker{threshold: threshold, read: ReadMemory}
}

// Name implements ports.HealthChecker.
func (c *Checker) Name() string {
	return "node"
}

// Check implements ports.HealthChecker.
func (c *Checker) Check(_ context.Context) error {
	if c.threshold <= 0 || c.threshold > 1 {
		return nil
	}

	mem := c.read()
	if !mem.Limited || mem.Max == 0 {
		return nil
	}

	used := mem.Total - mem.Free
	if float64(used) > c.threshold*float64(mem.Max) {
		return fmt.Errorf("heap in use %dMB exceeds %.0f%% of %dMB (free %dMB, total %dMB)",
			used/bytesPerMB, c.threshold*100, mem.Max/bytesPerMB, mem.Free/bytesPerMB, mem.Total/bytesPerMB)
	}

	return nil
}

// Details implements ports.HealthDetailer with the current memory figures.
func (c *Checker) Details() map[string]string {
	mem := c.read()

	return map[string]string{
		"freeMemoryMB":        strconv.FormatUint(mem.Free/bytesPerMB, 10),
		"totalMemoryMB":       strconv.FormatUint(mem.Total/bytesPerMB, 10),
		"maxMemoryMB":         strconv.FormatUint(mem.Max/bytesPerMB, 10),
		"availableProcessors": strconv.Itoa(runtime.NumCPU()),
	}
}

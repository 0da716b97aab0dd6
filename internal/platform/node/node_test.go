package node

import (
	"context"
	"math"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	info := Collect()

	assert.NotEmpty(t, info.Hostname)
	assert.NotEmpty(t, info.OSName)
	assert.NotEmpty(t, info.OSVersion)
	assert.Equal(t, runtime.GOARCH, info.OSArch)
	assert.Equal(t, runtime.NumCPU(), info.Processors)
	assert.GreaterOrEqual(t, info.MaxMemoryMB, info.FreeMemoryMB)
}

func TestReadMemory(t *testing.T) {
	mem := ReadMemory()

	assert.NotZero(t, mem.Max)
	assert.NotZero(t, mem.Total)
	assert.LessOrEqual(t, mem.Free, mem.Total)
}

func TestChecker(t *testing.T) {
	const mb = bytesPerMB

	tests := []struct {
		name      string
		threshold float64
		mem       Memory
		wantErr   bool
	}{
		{name: "below limit", threshold: 0.9, mem: Memory{Max: 100 * mb, Total: 50 * mb, Free: 10 * mb, Limited: true}},
		{name: "above limit", threshold: 0.5, mem: Memory{Max: 100 * mb, Total: 90 * mb, Free: 10 * mb, Limited: true}, wantErr: true},
		{name: "no limit set", threshold: 0.5, mem: Memory{Max: 100 * mb, Total: 99 * mb, Free: 1 * mb}},
		{name: "disabled", threshold: 0, mem: Memory{Max: 100 * mb, Total: 100 * mb, Limited: true}},
		{name: "unknown max", threshold: 0.5, mem: Memory{Total: 100 * mb, Limited: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(tt.threshold)
			c.read = func() Memory { return tt.mem }

			err := c.Check(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "exceeds")
				return
			}

			require.NoError(t, err)
		})
	}

	assert.Equal(t, "node", NewChecker(0.9).Name())
}

func TestChecker_LiveHeapWithoutLimit(t *testing.T) {
	prev := debug.SetMemoryLimit(math.MaxInt64)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })

	held := make([][]byte, 64)
	for i := range held {
		held[i] = make([]byte, bytesPerMB)
		held[i][0] = byte(i)
	}

	require.NoError(t, NewChecker(0.9).Check(context.Background()))
	assert.False(t, ReadMemory().Limited)
	runtime.KeepAlive(held)
}

func TestReadMemory_WithLimit(t *testing.T) {
	prev := debug.SetMemoryLimit(1 << 40)
	t.Cleanup(func() { debug.SetMemoryLimit(prev) })

	mem := ReadMemory()
	assert.True(t, mem.Limited)
	assert.Equal(t, uint64(1<<40), mem.Max)
}

func TestChecker_Details(t *testing.T) {
	c := NewChecker(0.9)
	c.read = func() Memory {
		return Memory{Max: 512 * bytesPerMB, Total: 64 * bytesPerMB, Free: 16 * bytesPerMB}
	}

	d := c.Details()
	assert.Equal(t, "16", d["freeMemoryMB"])
	assert.Equal(t, "64", d["totalMemoryMB"])
	assert.Equal(t, "512", d["maxMemoryMB"])
	assert.NotEmpty(t, d["availableProcessors"])
}

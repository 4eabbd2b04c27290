package benchmark

import (
	"encoding/json"
	"fmt"
	"runtime"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/ultron-cli/internal/core/domain"
)

// FleetSizes defines the client counts for benchmarking.
var FleetSizes = []int{1000, 10000, 50000}

// SmallFleetSizes for quick benchmarks.
var SmallFleetSizes = []int{100, 1000, 5000}

var statuses = []string{"SUCCESS", "FAILED", "PENDING", "success"}

// fleetJSON builds the "result" member of a full client listing.
func fleetJSON(b *testing.B, count int) []byte {
	b.Helper()
	clients := make(map[string]any, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("client-%06d", i)
		clients[name] = map[string]any{
			"name": name,
			"props": map[string]any{
				"os":   []string{"linux", "freebsd", "windows"}[i%3],
				"rack": fmt.Sprintf("r%d", i%12),
				"cpu":  4 << (i % 3),
				"id":   ulid.Make().String(),
			},
			"state": map[string]any{"up": i%7 != 0, "load": i % 5},
			"tasks": map[string]any{
				"ping":   map[string]any{"status": statuses[i%len(statuses)]},
				"uptime": map[string]any{"status": statuses[(i+1)%len(statuses)], "output": "up 3 days"},
			},
		}
	}
	data, err := json.Marshal(clients)
	if err != nil {
		b.Fatalf("marshal fleet: %v", err)
	}
	return data
}

// decodedFleet decodes a fleet of count clients outside the timer.
func decodedFleet(b *testing.B, count int) *domain.Entities {
	b.Helper()
	e, err := domain.DecodeEntities(fleetJSON(b, count))
	if err != nil {
		b.Fatalf("decode fleet: %v", err)
	}
	return e
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithFleetSizes runs a benchmark function with various fleet sizes.
func runWithFleetSizes(b *testing.B, sizes []int, benchFn func(b *testing.B, count int)) {
	for _, count := range sizes {
		b.Run(fmt.Sprintf("clients_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}

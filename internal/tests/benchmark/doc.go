// Package benchmark provides performance benchmarks for the ultron client
// hot paths: response decoding, fleet aggregation and table rendering.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run with a single fleet size:
//
//	go test -bench='BenchmarkTaskStats/clients_10000' -benchmem ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark

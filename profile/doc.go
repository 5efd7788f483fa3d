// Package profile provides optional runtime profiling for the glex command.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] with conditional
// compilation. Profiling must be enabled at build time using the "pprof"
// build tag:
//
//	go build -tags pprof ./cmd/glex
//
// Without the tag, [Modes] is empty and [Profiler.Start] is a no-op.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Using File-Based Profiling
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	ctrl := p.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the given directory with names matching the
// profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
//	# Profile tokenizing a large argument list
//	glex --pprof-mode cpu lex -- $(cat args.txt)
//
// The default output directory is the pprof subdirectory of the user cache
// directory, e.g. $XDG_CACHE_HOME/glex/pprof.
//
// # Analyzing Profile Data
//
//	go tool pprof -http=: ~/.cache/glex/pprof/cpu.pprof
//
// When built with the pprof tag, this package also imports [net/http/pprof],
// which registers handlers under /debug/pprof/ on [net/http.DefaultServeMux]
// for programs that serve it.
package profile

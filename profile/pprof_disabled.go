//go:build !pprof

package profile

// Enabled reports whether the binary was built with the pprof build tag.
const Enabled = false

// Modes returns nil when built without the pprof build tag.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }

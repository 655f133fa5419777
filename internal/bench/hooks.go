// Package bench supplies the lifecycle hooks, timing, and reporting that
// spec.md names as external collaborators to the clustering core: SLINK
// imports bench only for the Observer interface and its NoopObserver
// default, and only calls the Observer it is handed.
//
// This replaces the source's compile-time, PRINT_ITERATIONS-gated timer
// templates (Logger.h/Timer.h) with a runtime registry keyed by a stage
// name, per spec.md section 9.
package bench

// Observer receives lifecycle notifications from SlinkCore as it
// extends (π, λ) one point at a time. All methods must return quickly;
// they run on the goroutine doing the clustering.
type Observer interface {
	OnBeginInsert(n int)
	OnEndInsert(n int)
	OnBeginPass(name string)
	OnEndPass(name string)
}

// NoopObserver is the zero-cost default. Its methods are empty and the
// Go compiler inlines them away, so a caller that never asks for
// progress reporting pays nothing for the hooks existing.
type NoopObserver struct{}

func (NoopObserver) OnBeginInsert(int)    {}
func (NoopObserver) OnEndInsert(int)      {}
func (NoopObserver) OnBeginPass(string)   {}
func (NoopObserver) OnEndPass(string)     {}

var _ Observer = NoopObserver{}

// Package readiness exposes a simple atomic gate the HTTP layer polls to
// decide whether the server should accept traffic, flipped once the corpus
// has loaded for the first time.
package readiness

import "sync/atomic"

// Gate tracks whether the corpus has finished its initial load.
type Gate struct {
	ready atomic.Bool
}

// New creates a Gate that starts not ready.
func New() *Gate {
	return &Gate{}
}

// Ready reports whether the service is ready to accept traffic.
func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// SetReady flips the gate. Pass false to force the service back into a
// not-ready state, e.g. while reloading a corrupt snapshot.
func (g *Gate) SetReady(ready bool) {
	g.ready.Store(ready)
}

package readiness

import "testing"

func TestGate_StartsNotReady(t *testing.T) {
	g := New()
	if g.Ready() {
		t.Error("expected new gate to start not ready")
	}
}

func TestGate_SetReady(t *testing.T) {
	g := New()
	g.SetReady(true)
	if !g.Ready() {
		t.Error("expected gate to report ready after SetReady(true)")
	}
	g.SetReady(false)
	if g.Ready() {
		t.Error("expected gate to report not ready after SetReady(false)")
	}
}

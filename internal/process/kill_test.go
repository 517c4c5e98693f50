package process

// Notes:
// - KillTree: only non-existent and non-positive PIDs are exercised. Real
//   termination is covered when the scrape command closes its browser.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import "testing"

func TestKillTree_IgnoresUnsafePIDs(t *testing.T) {
	t.Parallel()

	// Each call must return without signalling anything: 0 and -1 would
	// otherwise reach the test's own process group.
	for _, pid := range []int{0, -1, -42} {
		KillTree(pid)
	}
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	KillTree(999999999)
}

//go:build !unix && !windows

package memory

// mapAnon falls back to the Go heap where anonymous mappings are unavailable.
// Exhaustion is then only detected through the allocator limit.
func mapAnon(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapAnon([]byte) error {
	return nil
}

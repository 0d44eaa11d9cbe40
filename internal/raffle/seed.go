package raffle

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed returns a cryptographically random seed for the draw's
// math/rand source.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("crand.Read -> %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

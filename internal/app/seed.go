package app

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand/v2"

	"github.com/jaminalder/codex-minesweeper/internal/domain"
)

// newRand returns a PCG source seeded from crypto/rand.
func newRand() domain.Rand {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// fall back to the runtime-seeded global generator
		return mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))
	}
	return mrand.New(mrand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:])))
}

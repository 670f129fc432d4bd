package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.Module.Hash)
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether the digest was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

// Combine строит хеш проекта: H( m1 || m2 ... ).
// Порядок должен быть детерминированным (Workspace сортирует по имени модуля).
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

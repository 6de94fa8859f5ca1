// Package digest provides the pluggable cryptographic-digest primitive:
// a fixed-length, deterministic hash.Hash factory, plus the sentinel
// digest used when a read fails partway through a stage.
package digest

import (
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/minio/highwayhash"
	"golang.org/x/crypto/blake2b"
)

// highwayHashKey is a fixed, arbitrary 256-bit key. HighwayHash is
// keyed, but the key only needs to be constant across a run; it is not
// a secret, so every worker can share it safely.
var highwayHashKey, _ = hex.DecodeString("000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F")

// Factory builds a fresh, ready-to-use hash.Hash. Every call must
// return an independent instance.
type Factory func() (hash.Hash, error)

// Algorithm names accepted by Resolve and the --algorithm flag.
const (
	HighwayHash = "highwayhash"
	Blake2b     = "blake2b"
)

var factories = map[string]Factory{
	HighwayHash: func() (hash.Hash, error) { return highwayhash.New(highwayHashKey) },
	Blake2b:     func() (hash.Hash, error) { return blake2b.New256(nil) },
}

// Resolve looks up a named digest algorithm. It is the only place the
// rest of the pipeline needs to know concrete algorithm names exist;
// everywhere else operates on the Factory/hash.Hash abstraction.
func Resolve(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown digest algorithm %q", name)
	}
	return f, nil
}

// Sentinel returns the fixed, reserved digest value assigned to a file
// whose read failed partway through a stage. All files that fail in
// the same stage share this exact value, so they collide and proceed
// to the next stage together instead of being silently dropped.
func Sentinel(size int) []byte {
	return make([]byte, size)
}

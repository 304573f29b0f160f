// ABOUTME: Canonical hashing of flattened branch tuples
// ABOUTME: Pluggable strategy with an xxhash default

package pathhash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/nainya/docsearch/pkg/document"
)

// Hasher turns flattened branches and key prefixes into index keys. Two
// branches with identical flat tuples must hash identically; the hash need
// not be reversible. A Hasher is chosen at engine construction and becomes
// part of the engine's immutable state.
type Hasher interface {
	// HashPath hashes a key prefix without a terminating leaf.
	HashPath(keys []string) uint64
	// HashBranch hashes a full branch: its keys plus the leaf value.
	HashBranch(keys []string, leaf document.Scalar) uint64
}

// XX is the default Hasher: xxhash over a type-tagged, length-prefixed
// encoding of the tuple. Tags keep key boundaries and leaf types distinct,
// so ("ab") and ("a","b") cannot collide by concatenation.
type XX struct{}

const (
	tagKey    = 'k'
	tagString = 's'
	tagNumber = 'n'
	tagBool   = 'b'
	tagNull   = 'z'
)

func (XX) HashPath(keys []string) uint64 {
	d := xxhash.New()
	writeKeys(d, keys)
	return d.Sum64()
}

func (XX) HashBranch(keys []string, leaf document.Scalar) uint64 {
	d := xxhash.New()
	writeKeys(d, keys)
	writeLeaf(d, leaf)
	return d.Sum64()
}

func writeKeys(d *xxhash.Digest, keys []string) {
	var buf [binary.MaxVarintLen64]byte
	for _, k := range keys {
		d.Write([]byte{tagKey})
		n := binary.PutUvarint(buf[:], uint64(len(k)))
		d.Write(buf[:n])
		d.WriteString(k)
	}
}

func writeLeaf(d *xxhash.Digest, leaf document.Scalar) {
	var buf [8]byte
	switch v := leaf.Value().(type) {
	case string:
		d.Write([]byte{tagString})
		d.WriteString(v)
	case float64:
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		d.Write([]byte{tagNumber})
		d.Write(buf[:])
	case bool:
		if v {
			d.Write([]byte{tagBool, 1})
		} else {
			d.Write([]byte{tagBool, 0})
		}
	default:
		d.Write([]byte{tagNull})
	}
}

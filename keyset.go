package cleanser

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Identity selects how a matching key is turned into a dedup identifier.
type Identity uint8

const (
	// IdentityHashed stores a 64-bit xxhash of each key. Two distinct keys
	// colliding is possible in theory, in which case the later one is
	// dropped as a duplicate.
	IdentityHashed Identity = iota
	// IdentityExact stores each key verbatim, so every distinct key is kept
	// in memory alongside its accepted line.
	IdentityExact
)

func (id Identity) String() string {
	switch id {
	case IdentityHashed:
		return "hashed"
	case IdentityExact:
		return "exact"
	default:
		return fmt.Sprintf("Identity(%d)", uint8(id))
	}
}

// ParseIdentity
// Parses `hashed` or `exact`, case-insensitively. An empty string yields
// IdentityHashed.
func ParseIdentity(s string) (Identity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hashed", "hash", "xxhash":
		return IdentityHashed, nil
	case "exact", "string":
		return IdentityExact, nil
	default:
		return 0, &ConfigError{Field: "identity",
			Reason: fmt.Sprintf("unknown strategy %q", s)}
	}
}

// KeySet
// The set of dedup identifiers seen so far. It only ever grows.
type KeySet interface {
	// Insert adds key, reporting false if it was already present.
	Insert(key string) bool
	Contains(key string) bool
	Len() int
}

func NewKeySet(id Identity) (KeySet, error) {
	switch id {
	case IdentityHashed:
		return make(hashedKeys), nil
	case IdentityExact:
		return make(exactKeys), nil
	default:
		return nil, &ConfigError{Field: "identity",
			Reason: fmt.Sprintf("unknown strategy %v", id)}
	}
}

type hashedKeys map[uint64]struct{}

func (ks hashedKeys) Insert(key string) bool {
	h := xxhash.Sum64String(key)
	if _, ok := ks[h]; ok {
		return false
	}
	ks[h] = struct{}{}
	return true
}

func (ks hashedKeys) Contains(key string) bool {
	_, ok := ks[xxhash.Sum64String(key)]
	return ok
}

func (ks hashedKeys) Len() int {
	return len(ks)
}

type exactKeys map[string]struct{}

func (ks exactKeys) Insert(key string) bool {
	if _, ok := ks[key]; ok {
		return false
	}
	ks[key] = struct{}{}
	return true
}

func (ks exactKeys) Contains(key string) bool {
	_, ok := ks[key]
	return ok
}

func (ks exactKeys) Len() int {
	return len(ks)
}

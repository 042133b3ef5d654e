package hashstring

import "github.com/cespare/xxhash/v2"

// HashString is a string identifier carrying a precomputed 64-bit hash.
// The zero value is the empty string with hash 0.
type HashString struct {
	name string
	hash uint64
}

// New computes the hash of name and returns a HashString wrapping it.
func New(name string) HashString {
	return HashString{name: name, hash: xxhash.Sum64String(name)}
}

// String returns the original string form.
func (h HashString) String() string { return h.name }

// Hash returns the cached 64-bit hash.
func (h HashString) Hash() uint64 { return h.hash }

// IsZero reports whether h is the zero value.
func (h HashString) IsZero() bool { return h.name == "" && h.hash == 0 }

// Equal compares two HashStrings by hash, not by string content. Distinct
// strings that happen to collide would compare equal; callers that cannot
// tolerate a hash collision should additionally compare String().
func (h HashString) Equal(other HashString) bool { return h.hash == other.hash }

// Less orders HashStrings by hash value, giving a total, if arbitrary,
// order suitable for use with a BusIdOrderCompare-style comparator.
func (h HashString) Less(other HashString) bool { return h.hash < other.hash }

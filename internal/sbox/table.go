// Package sbox derives a byte substitution table from key material with a
// keystream-schedule style shuffle. The table is a bijection of the 256
// byte values and is meant to be seeded once at startup and only read
// afterwards; it carries no cryptographic guarantees.
package sbox

// Size is the number of entries in a Table.
const Size = 256

// DefaultWarmUpRounds is the number of full passes WarmUp makes in Seed.
const DefaultWarmUpRounds = 3

// DefaultPersonalization is the key text Seed mixes in when none is given.
const DefaultPersonalization = "similars fuzzy file listing index"

// Table is a permutation of the byte values.
type Table [Size]byte

// InitIdentity sets entry i to i.
func (t *Table) InitIdentity() {
	for i := range t {
		t[i] = byte(i)
	}
}

// Mix shuffles the table under control of key. Starting with both indices
// at zero, every key byte advances i by one and j by t[i] plus the key
// byte, then swaps t[i] and t[j].
func (t *Table) Mix(key []byte) {
	var i, j byte
	for _, k := range key {
		i++
		j += t[i] + k
		t[i], t[j] = t[j], t[i]
	}
}

// WarmUp runs rounds full passes of the Mix step with a zero key byte. It
// diffuses the permutation further and discards the more predictable
// early state of this kind of generator.
func (t *Table) WarmUp(rounds int) {
	var i, j byte
	for range rounds * Size {
		i++
		j += t[i]
		t[i], t[j] = t[j], t[i]
	}
}

// Seed builds a table from personalization text: identity, Mix, then WarmUp.
func Seed(personalization []byte, rounds int) *Table {
	t := new(Table)
	t.InitIdentity()
	t.Mix(personalization)
	t.WarmUp(rounds)
	return t
}

// Bijective reports whether every byte value occurs exactly once.
func (t *Table) Bijective() bool {
	var seen [Size]bool
	for _, v := range t {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Lookup returns the substitute for b.
func (t *Table) Lookup(b byte) byte {
	return t[b]
}

package sbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_InitIdentity(t *testing.T) {
	var tbl Table
	tbl[0] = 42
	tbl.InitIdentity()
	for i := range Size {
		assert.Equal(t, byte(i), tbl[i])
	}
	assert.True(t, tbl.Bijective())
}

// referenceMix is the shuffle written with explicit modular arithmetic.
func referenceMix(t *Table, key []byte) {
	i, j := 0, 0
	for _, k := range key {
		i = (i + 1) % Size
		j = (j + int(t[i]) + int(k)) % Size
		t[i], t[j] = t[j], t[i]
	}
}

func TestTable_MixMatchesModularArithmetic(t *testing.T) {
	keys := [][]byte{
		nil,
		[]byte("k"),
		[]byte(DefaultPersonalization),
		make([]byte, 1000),
		{0xff, 0xfe, 0x00, 0x80, 0x7f},
	}
	for _, key := range keys {
		var got, want Table
		got.InitIdentity()
		want.InitIdentity()

		got.Mix(key)
		referenceMix(&want, key)

		assert.Equal(t, want, got, "key %q", key)
		assert.True(t, got.Bijective())
	}
}

func TestTable_MixFirstStep(t *testing.T) {
	var tbl Table
	tbl.InitIdentity()
	// i=1, j=0+t[1]+2=3: swap entries 1 and 3
	tbl.Mix([]byte{2})
	assert.Equal(t, byte(3), tbl[1])
	assert.Equal(t, byte(1), tbl[3])
	assert.Equal(t, byte(2), tbl[2])
}

func TestTable_WarmUpEqualsZeroKeyMix(t *testing.T) {
	var warm, mixed Table
	warm.InitIdentity()
	mixed.InitIdentity()
	warm.Mix([]byte("abc"))
	mixed.Mix([]byte("abc"))

	warm.WarmUp(2)
	mixed.Mix(make([]byte, 2*Size))

	assert.Equal(t, mixed, warm)
}

func TestTable_WarmUpZeroRounds(t *testing.T) {
	var tbl Table
	tbl.InitIdentity()
	tbl.WarmUp(0)
	var identity Table
	identity.InitIdentity()
	assert.Equal(t, identity, tbl)
}

func TestSeed(t *testing.T) {
	a := Seed([]byte(DefaultPersonalization), DefaultWarmUpRounds)
	b := Seed([]byte(DefaultPersonalization), DefaultWarmUpRounds)
	c := Seed([]byte("other key"), DefaultWarmUpRounds)

	assert.Equal(t, a, b, "seeding must be deterministic")
	assert.NotEqual(t, a, c, "different keys should give different tables")
	assert.True(t, a.Bijective())
	assert.True(t, c.Bijective())

	var identity Table
	identity.InitIdentity()
	assert.NotEqual(t, &identity, a)
}

func TestTable_Bijective(t *testing.T) {
	var tbl Table
	tbl.InitIdentity()
	tbl[7] = 8
	assert.False(t, tbl.Bijective())
}

func TestTable_Lookup(t *testing.T) {
	tbl := Seed([]byte("key"), 1)
	for i := range Size {
		assert.Equal(t, tbl[i], tbl.Lookup(byte(i)))
	}
}

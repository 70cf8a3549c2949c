package nametab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashFold(t *testing.T) {
	// Seed with no input, and one hand-computed step: 5381*33 ^ 'a'.
	assert.Equal(t, uint32(5381), hashFold(""))
	assert.Equal(t, uint32(177604), hashFold("a"))
	assert.Equal(t, hashFold("a"), hashFold("A"))

	cases := []string{"joint_01a", "JOINT_01A", "Joint_01a", "jOiNt_01A"}
	for _, c := range cases {
		assert.Equal(t, hashFold(cases[0]), hashFold(c), c)
	}

	// Deterministic across calls.
	assert.Equal(t, hashFold("sfx/charge/heavy_footstep"), hashFold("sfx/charge/heavy_footstep"))

	assert.NotEqual(t, hashFold("joint_01a"), hashFold("joint_02c"))
}

func TestValidASCII(t *testing.T) {
	assert.True(t, validASCII(""))
	assert.True(t, validASCII("joint_01a"))
	assert.True(t, validASCII("\x00\x7f"))
	assert.False(t, validASCII("naïve"))
	assert.False(t, validASCII("日本語"))
}

func TestFoldEqual(t *testing.T) {
	assert.True(t, foldEqual("Joint_01A", []byte("joint_01a")))
	assert.True(t, foldEqual("", []byte{}))
	assert.False(t, foldEqual("joint_01a", []byte("joint_01")))
	assert.False(t, foldEqual("joint_01a", []byte("joint_01b")))
}

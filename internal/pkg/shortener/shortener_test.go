package shortener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeID(t *testing.T) {
	assert.Equal(t, "0", EncodeID(0))
	assert.Equal(t, "1", EncodeID(1))
	assert.Equal(t, "z", EncodeID(35))
	assert.Equal(t, "10", EncodeID(62))
}

func TestRoundTrip(t *testing.T) {
	for _, id := range []uint{1, 7, 61, 62, 63, 1000, 123456789} {
		assert.Equal(t, id, DecodeID(EncodeID(id)), "id %d", id)
	}
}

func TestDecodeSkipsInvalidCharacters(t *testing.T) {
	assert.Equal(t, DecodeID("10"), DecodeID("1-0!"))
}

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedRoom struct {
	ID        int64   `json:"id"`
	Number    int64   `json:"number"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

func TestEncodeDecode(t *testing.T) {
	room := cachedRoom{ID: 3, Number: 204, Price: 89.9, Available: true}

	raw, err := encode(room)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"number":204,"price":89.9,"available":true}`, string(raw))

	var decoded cachedRoom
	require.NoError(t, decode(raw, &decoded))
	assert.Equal(t, room, decoded)
}

func TestEncodeDecode_String(t *testing.T) {
	raw, err := encode("token-abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("token-abc"), raw)

	var decoded string
	require.NoError(t, decode(raw, &decoded))
	assert.Equal(t, "token-abc", decoded)
}

func TestEncodeDecode_Errors(t *testing.T) {
	_, err := encode(make(chan int))
	assert.ErrorContains(t, err, "failed to marshal cache value")

	var rooms []cachedRoom
	assert.ErrorContains(t, decode([]byte("not json"), &rooms), "failed to unmarshal cache value")
}

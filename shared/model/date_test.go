package model_test

import (
	"hotel/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := model.ParseDate("2024-02-29")

	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", date.String())

	_, err = model.ParseDate("2024-02-30")
	assert.Error(t, err)

	_, err = model.ParseDate("29/02/2024")
	assert.Error(t, err)
}

func TestDate_Value(t *testing.T) {
	date, err := model.ParseDate("2024-01-04")
	require.NoError(t, err)

	value, err := date.Value()

	require.NoError(t, err)
	assert.Equal(t, "2024-01-04", value)
}

func TestDate_Scan(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{name: "time keeps its calendar day", src: time.Date(2024, 1, 1, 0, 0, 0, 0, jakarta), want: "2024-01-01"},
		{name: "bytes", src: []byte("2024-03-15"), want: "2024-03-15"},
		{name: "timestamp string", src: "2024-03-15T00:00:00Z", want: "2024-03-15"},
		{name: "garbage", src: "yesterday", wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var date model.Date

			err := date.Scan(tt.src)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, date.String())
		})
	}
}

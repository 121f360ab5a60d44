package s3_test

import (
	"context"
	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisabled(configure func(cfg *config.Config)) s3.S3 {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "hotel-invoices"

	if configure != nil {
		configure(cfg)
	}

	return s3.New(cfg, mocks.NewOtel())
}

func TestS3_Disabled(t *testing.T) {
	storage := newDisabled(nil)

	assert.False(t, storage.Enabled())

	url, err := storage.UploadFileBytes(context.Background(), "", "invoice", "1.json", "application/json", []byte(`{}`))
	require.Error(t, err)
	assert.Empty(t, url)

	assert.NoError(t, storage.DeleteFile(context.Background(), "", "invoice", "1.json"))
}

func TestS3_GetObjectNameFromURL(t *testing.T) {
	tests := []struct {
		name      string
		configure func(cfg *config.Config)
		url       string
		expected  string
	}{
		{
			name: "public domain",
			configure: func(cfg *config.Config) {
				cfg.External.S3.PublicDomain = "https://cdn.example.com/"
			},
			url:      "https://cdn.example.com/invoice/7-abc.json",
			expected: "invoice/7-abc.json",
		},
		{
			name: "api endpoint with bucket",
			configure: func(cfg *config.Config) {
				cfg.External.S3.APIEndpoint = "http://minio:9000"
			},
			url:      "http://minio:9000/hotel-invoices/invoice/7-abc.json",
			expected: "invoice/7-abc.json",
		},
		{
			name: "foreign url",
			configure: func(cfg *config.Config) {
				cfg.External.S3.PublicDomain = "https://cdn.example.com"
			},
			url: "https://elsewhere.example.com/invoice/7-abc.json",
		},
		{
			name: "nothing configured",
			url:  "/invoice/7-abc.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newDisabled(tt.configure)

			assert.Equal(t, tt.expected, storage.GetObjectNameFromURL("", tt.url))
		})
	}
}

package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"exam_integrity_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageProviderUpload(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	url, err := p.Upload(context.Background(), "integrity/100/1/a.json", strings.NewReader(`{"score":3}`), 11, "application/json")
	require.NoError(t, err)
	assert.Equal(t, "/reports/integrity/100/1/a.json", url)

	b, err := os.ReadFile(filepath.Join(dir, "integrity", "100", "1", "a.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"score":3}`, string(b))
}

func TestNewStorageServiceFallsBackToLocal(t *testing.T) {
	cases := []struct {
		name    string
		storage config.StorageConfig
	}{
		{"minio init fails", config.StorageConfig{Type: "minio", MinioEndpoint: "http://bad:9000/x"}},
		{"unknown type", config.StorageConfig{Type: "s3"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.storage.LocalPath = t.TempDir()
			svc := NewStorageService(&config.Config{Storage: tc.storage})

			_, ok := svc.Provider.(*LocalStorageProvider)
			assert.True(t, ok)
			assert.True(t, svc.IsLocal())
		})
	}
}

func TestLocalStorageProviderLeavesNothingOnFailedUpload(t *testing.T) {
	dir := t.TempDir()
	p := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: dir}}

	reader := io.MultiReader(strings.NewReader(`{"score":`), iotest.ErrReader(errors.New("connection reset")))
	_, err := p.Upload(context.Background(), "integrity/100/1/a.json", reader, 64, "application/json")
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "integrity", "100", "1"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial or temporary file may remain")
}

func TestOSSStorageProviderURL(t *testing.T) {
	p := &OSSStorageProvider{Config: &config.StorageConfig{OSSBucket: "reports", OSSEndpoint: "oss-cn-hangzhou.aliyuncs.com"}}
	assert.Equal(t, "https://reports.oss-cn-hangzhou.aliyuncs.com/integrity/1.json", p.GetURL("integrity/1.json"))
}

func TestStorageServiceIsLocal(t *testing.T) {
	assert.False(t, (&StorageService{Provider: &OSSStorageProvider{}}).IsLocal())
	assert.False(t, (&StorageService{Provider: &MinioStorageProvider{}}).IsLocal())
	assert.True(t, (&StorageService{Provider: &LocalStorageProvider{}}).IsLocal())
}

package sthree

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/oneconcern/l10nsync/pkg/errors"
	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucket = "bundles"

// fakeS3 serves objects from a map, path-style (/{bucket}/{key})
func fakeS3(t testing.TB, objects map[string]string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/"+testBucket+"/")
		content, ok := objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method != http.MethodHead {
				_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
					`<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
			}
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupStore(t testing.TB, endpoint string) storage.Store {
	store, err := New(Bucket(testBucket), AWSConfig(aws.NewConfig().
		WithEndpoint(endpoint).
		WithRegion("us-east-1").
		WithS3ForcePathStyle(true).
		WithMaxRetries(0).
		WithCredentials(credentials.NewStaticCredentials("id", "secret", ""))))
	require.NoError(t, err)
	return store
}

func TestGet(t *testing.T) {
	srv := fakeS3(t, map[string]string{"exports/bundle.zip": "zipped"})
	store := setupStore(t, srv.URL)

	b, err := storage.ReadAll(context.Background(), store, "exports/bundle.zip")
	require.NoError(t, err)
	assert.Equal(t, "zipped", string(b))

	_, err = store.Get(context.Background(), "exports/missing.zip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotExists), "got %v", err)
}

func TestHas(t *testing.T) {
	srv := fakeS3(t, map[string]string{"exports/bundle.zip": "zipped"})
	store := setupStore(t, srv.URL)

	has, err := store.Has(context.Background(), "exports/bundle.zip")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.Has(context.Background(), "exports/missing.zip")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestNetworkError(t *testing.T) {
	srv := fakeS3(t, nil)
	store := setupStore(t, srv.URL)
	srv.Close()

	_, err := store.Get(context.Background(), "exports/bundle.zip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNetwork), "got %v", err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "s3://"+testBucket, setupStore(t, "http://localhost:1").String())
}

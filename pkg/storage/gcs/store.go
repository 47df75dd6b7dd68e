// Copyright © 2018 One Concern

package gcs

import (
	"context"
	"io"
	"sort"

	gcsStorage "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/oneconcern/l10nsync/pkg/storage"
)

type gcs struct {
	client         *gcsStorage.Client
	readOnlyClient *gcsStorage.Client
	bucket         string
	l              *zap.Logger
}

// New builds a store backed by a GCS bucket.
//
// When credentialFile is empty, application default credentials are used
// (e.g. GOOGLE_APPLICATION_CREDENTIALS).
func New(ctx context.Context, bucket, credentialFile string, opts ...Option) (storage.Store, error) {
	googleStore := &gcs{
		bucket: bucket,
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(googleStore)
	}

	var err error
	googleStore.readOnlyClient, err = gcsStorage.NewClient(ctx, clientOptions(credentialFile, gcsStorage.ScopeReadOnly)...)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	googleStore.client, err = gcsStorage.NewClient(ctx, clientOptions(credentialFile, gcsStorage.ScopeReadWrite)...)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return googleStore, nil
}

func clientOptions(credentialFile, scope string) []option.ClientOption {
	opts := []option.ClientOption{option.WithScopes(scope)}
	if credentialFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialFile))
	}
	return opts
}

func (g *gcs) String() string {
	return "gcs://" + g.bucket
}

func (g *gcs) Has(ctx context.Context, objectName string) (bool, error) {
	_, err := g.readOnlyClient.Bucket(g.bucket).Object(objectName).Attrs(ctx)
	if err != nil {
		if err == gcsStorage.ErrObjectNotExist {
			return false, nil
		}
		return false, toSentinelErrors(err)
	}
	return true, nil
}

func (g *gcs) Get(ctx context.Context, objectName string) (io.ReadCloser, error) {
	g.l.Debug("Start Get", zap.String("bucket", g.bucket), zap.String("objectName", objectName))
	objectReader, err := g.readOnlyClient.Bucket(g.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return objectReader, nil
}

func (g *gcs) Put(ctx context.Context, objectName string, reader io.Reader, overwrite bool) error {
	object := g.client.Bucket(g.bucket).Object(objectName)
	if !overwrite {
		object = object.If(gcsStorage.Conditions{DoesNotExist: true})
	}
	writer := object.NewWriter(ctx)
	if _, err := io.Copy(writer, reader); err != nil {
		_ = writer.Close()
		return toSentinelErrors(err)
	}
	return toSentinelErrors(writer.Close())
}

func (g *gcs) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	objectsIterator := g.readOnlyClient.Bucket(g.bucket).Objects(ctx, nil)
	for {
		attrs, err := objectsIterator.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, toSentinelErrors(err)
		}
		keys = append(keys, attrs.Name)
	}
	sort.Strings(keys)
	return keys, nil
}

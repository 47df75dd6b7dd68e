// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"io/ioutil"

	"github.com/docker/go-units"

	"github.com/oneconcern/l10nsync/pkg/storage/status"
)

// MaxObjectSizeInMemory caps the size of objects fully read into memory, such as bundle archives
const MaxObjectSizeInMemory = 2 * units.GiB

const (
	// NoOverWrite fails a Put when the key already exists
	NoOverWrite = false
	// OverWrite replaces any existing object at that key
	OverWrite = true
)

// Store implementations know how to read and write objects in a K/V model.
//
// Typically this is something file system-like. Examples are S3, local FS, NFS, ...
// Implementations of this interface are assumed to be fairly simple.
// Read-only backends return status.ErrNotSupported on Put and Keys.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader, bool) error
	Keys(context.Context) ([]string, error)
}

// ReadAll reads a whole object from a store into memory.
//
// Objects larger than MaxObjectSizeInMemory yield status.ErrObjectTooBig.
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	object, err := ioutil.ReadAll(io.LimitReader(reader, MaxObjectSizeInMemory+1))
	if err != nil {
		return nil, status.ErrNetwork.Wrap(err).WithContext("reading %s from %v", key, store)
	}
	if len(object) > MaxObjectSizeInMemory {
		return nil, status.ErrObjectTooBig.WithContext("%s exceeds %s", key, units.BytesSize(float64(MaxObjectSizeInMemory)))
	}
	return object, nil
}

// Copyright © 2018 One Concern

package localfs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/status"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// New creates a new local file system backed storage model.
//
// Keys are slash-separated paths relative to the root of fs. When fs is nil,
// the store is rooted at the current working directory.
func New(fs afero.Fs) storage.Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &localFS{
		fs: fs,
	}
}

// NewAt creates a local file system store rooted at some directory
func NewAt(root string) storage.Store {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root))
}

type localFS struct {
	fs afero.Fs
}

func (l *localFS) Has(ctx context.Context, key string) (bool, error) {
	fi, err := l.fs.Stat(filepath.FromSlash(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return !fi.IsDir(), nil
}

func (l *localFS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	has, err := l.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, status.ErrNotExists.WithContext("%s in %v", key, l)
	}
	return l.fs.Open(filepath.FromSlash(key))
}

func (l *localFS) Put(ctx context.Context, key string, source io.Reader, overwrite bool) error {
	name := filepath.FromSlash(key)
	if dir := filepath.Dir(name); dir != "" {
		if err := l.fs.MkdirAll(dir, dirPerm); err != nil {
			return status.ErrStorageAPI.Wrap(err).WithContext("ensuring directories for %q", key)
		}
	}
	flag := os.O_CREATE | os.O_WRONLY
	if overwrite {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_EXCL
	}
	target, err := l.fs.OpenFile(name, flag, filePerm)
	if err != nil {
		if os.IsExist(err) {
			return status.ErrExists.Wrap(err).WithContext("%s in %v", key, l)
		}
		return status.ErrStorageAPI.Wrap(err).WithContext("create record for %q", key)
	}
	if _, err = io.Copy(target, source); err != nil {
		_ = target.Close()
		return status.ErrStorageAPI.Wrap(err).WithContext("write record for %q", key)
	}
	return target.Close()
}

// Keys lists all files in the store, sorted
func (l *localFS) Keys(ctx context.Context) ([]string, error) {
	const root = "."
	var res []string
	e := afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root || info.IsDir() {
			return nil
		}
		res = append(res, filepath.ToSlash(path))
		return nil
	})
	if e != nil {
		if errors.Is(e, os.ErrNotExist) {
			return nil, nil
		}
		return nil, e
	}
	sort.Strings(res)
	return res, nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

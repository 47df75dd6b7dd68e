// Copyright © 2018 One Concern

package localfs

import (
	"bytes"
	"context"
	"io/ioutil"
	"syscall"
	"testing"

	"github.com/oneconcern/l10nsync/pkg/errors"
	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHas(t *testing.T) {
	bs := setupStore(t)

	has, err := bs.Has(context.Background(), "en.yml")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "nested/ru.yml")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "nested")
	require.NoError(t, err)
	require.False(t, has)

	has, err = bs.Has(context.Background(), "fr.yml")
	require.NoError(t, err)
	require.False(t, has)
}

func TestGet(t *testing.T) {
	bs := setupStore(t)

	rdr, err := bs.Get(context.Background(), "en.yml")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "en:\n  hello: world\n", string(b))

	_, err = bs.Get(context.Background(), "fr.yml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotExists))
}

func TestKeys(t *testing.T) {
	bs := setupStore(t)

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en.yml", "nested/ru.yml"}, keys)
}

func TestKeysMissingRoot(t *testing.T) {
	bs := New(afero.NewBasePathFs(afero.NewMemMapFs(), "/nowhere"))

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPut(t *testing.T) {
	bs := setupStore(t)

	content := bytes.NewBufferString("de:\n  hello: welt\n")
	err := bs.Put(context.Background(), "deep/er/de.yml", content, storage.NoOverWrite)
	require.NoError(t, err)

	rdr, err := bs.Get(context.Background(), "deep/er/de.yml")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "de:\n  hello: welt\n", string(b))

	k, _ := bs.Keys(context.Background())
	assert.Len(t, k, 3)

	err = bs.Put(context.Background(), "en.yml", bytes.NewBufferString("x"), storage.NoOverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	err = bs.Put(context.Background(), "en.yml", bytes.NewBufferString("en: {}\n"), storage.OverWrite)
	require.NoError(t, err)
	b, err = storage.ReadAll(context.Background(), bs, "en.yml")
	require.NoError(t, err)
	assert.Equal(t, "en: {}\n", string(b))
}

func TestPutErrorsKeepCause(t *testing.T) {
	bs := New(afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := bs.Put(context.Background(), "deep/de.yml", bytes.NewBufferString("de: {}\n"), storage.OverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStorageAPI))
	assert.True(t, errors.Is(err, syscall.EPERM))
	assert.Contains(t, err.Error(), `"deep/de.yml"`)
}

func TestString(t *testing.T) {
	assert.Equal(t, "localfs@/locales", setupStore(t).String())
	assert.Equal(t, "localfs", New(afero.NewMemMapFs()).String())
}

func setupStore(t testing.TB) storage.Store {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/locales/en.yml", []byte("en:\n  hello: world\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/locales/nested/ru.yml", []byte("ru:\n  hello: privet\n"), 0644))

	return New(afero.NewBasePathFs(fs, "/locales"))
}

package core

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/oneconcern/l10nsync/pkg/model"
	"github.com/oneconcern/l10nsync/pkg/storage/locator"
)

const (
	testRoot      = "/locales"
	testBundle    = "/tmp/bundle.zip"
	testToken     = "secret-token"
	testProjectID = "123.abc"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// mockClient stands for the remote service
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Upload(ctx context.Context, projectID string, opts model.UploadOptions) (model.Process, error) {
	args := m.Called(ctx, projectID, opts)
	return args.Get(0).(model.Process), args.Error(1)
}

func (m *mockClient) Download(ctx context.Context, projectID string, opts map[string]interface{}) (model.BundleDescriptor, error) {
	args := m.Called(ctx, projectID, opts)
	return args.Get(0).(model.BundleDescriptor), args.Error(1)
}

// recordingSleeper records requested delays without waiting
type recordingSleeper struct {
	mx     sync.Mutex
	delays []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func (r *recordingSleeper) Delays() []time.Duration {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]time.Duration(nil), r.delays...)
}

// answer always gives the same answer, and counts questions
type answer struct {
	yes   bool
	asked int
}

func (a *answer) Confirm(string) (bool, error) {
	a.asked++
	return a.yes, nil
}

type zipEntry struct {
	name    string
	content string
}

func buildZip(t testing.TB, entries ...zipEntry) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, entry := range entries {
		f, err := w.Create(entry.name)
		require.NoError(t, err)
		if entry.content != "" {
			_, err = f.Write([]byte(entry.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func writeFiles(t testing.TB, fs afero.Fs, files map[string]string) {
	for name, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
}

// filesUnder lists all regular files in a directory tree, relative to it
func filesUnder(t testing.TB, fs afero.Fs, root string) map[string]string {
	files := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return files
}

func testConfig() model.Config {
	cfg := model.DefaultConfig().WithCredentials(testToken, testProjectID).WithRootPath(testRoot)
	cfg.Silent = true
	return cfg
}

func testOpener(fs afero.Fs) ArchiveOpener {
	return locator.New(locator.Fs(fs))
}

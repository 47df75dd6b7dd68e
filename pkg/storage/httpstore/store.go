// Package httpstore implements a read-only storage backend over HTTP(S).
//
// Keys are full URLs: the store is typically used to fetch bundle archives
// exposed by the remote translation service as short-lived download links.
package httpstore

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/status"
	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Minute

// Option is a functor to pass optional parameters to the http store
type Option func(*httpStore)

// Client specifies the http client used to fetch objects
func Client(client *http.Client) Option {
	return func(h *httpStore) {
		if client != nil {
			h.client = client
		}
	}
}

// Logger specifies a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(h *httpStore) {
		if logger != nil {
			h.l = logger
		}
	}
}

// New creates a read-only http store
func New(opts ...Option) storage.Store {
	h := &httpStore{
		client: &http.Client{Timeout: defaultTimeout},
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(h)
	}
	return h
}

type httpStore struct {
	client *http.Client
	l      *zap.Logger
}

func (h *httpStore) String() string {
	return "http"
}

func (h *httpStore) Has(ctx context.Context, url string) (bool, error) {
	resp, err := h.do(ctx, http.MethodHead, url)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, toSentinelErrors(resp)
	default:
		return true, nil
	}
}

func (h *httpStore) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := h.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, toSentinelErrors(resp)
	}
	h.l.Debug("fetching object", zap.String("url", url), zap.Int64("content-length", resp.ContentLength))
	return resp.Body, nil
}

func (h *httpStore) Put(context.Context, string, io.Reader, bool) error {
	return status.ErrNotSupported.WithContext("writing to %v", h)
}

func (h *httpStore) Keys(context.Context) ([]string, error) {
	return nil, status.ErrNotSupported.WithContext("listing %v", h)
}

func (h *httpStore) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, status.ErrInvalidLocation.Wrap(err).WithContext("%s", url)
	}
	resp, err := h.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, status.ErrNetwork.Wrap(err).WithContext("%s %s", method, url)
	}
	return resp, nil
}

func toSentinelErrors(resp *http.Response) error {
	body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 512))
	err := fmt.Errorf("%s %s: %s: %s", resp.Request.Method, resp.Request.URL, resp.Status, string(body))
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return status.ErrUnauthorized.Wrap(err)
	case http.StatusForbidden:
		return status.ErrForbidden.Wrap(err)
	case http.StatusNotFound, http.StatusGone:
		return status.ErrNotExists.Wrap(err)
	default:
		return status.ErrStorageAPI.Wrap(err)
	}
}

// Package locator maps a location string (URL or local path) onto a storage backend.
//
// Supported locations:
//
//   - http://host/path, https://host/path
//   - gs://bucket/key
//   - s3://bucket/key
//   - file:///some/path, or a bare local path
package locator

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/storage"
	"github.com/oneconcern/l10nsync/pkg/storage/gcs"
	"github.com/oneconcern/l10nsync/pkg/storage/httpstore"
	"github.com/oneconcern/l10nsync/pkg/storage/localfs"
	"github.com/oneconcern/l10nsync/pkg/storage/sthree"
	"github.com/oneconcern/l10nsync/pkg/storage/status"
)

// Supported location schemes
const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeGCS   = "gs"
	SchemeS3    = "s3"
	SchemeFile  = "file"
)

// BackendFunc builds a store for some bucket or host
type BackendFunc func(ctx context.Context, bucket string) (storage.Store, error)

// Option is a functor to configure a Locator
type Option func(*Locator)

// Fs sets the file system used for local paths
func Fs(fs afero.Fs) Option {
	return func(l *Locator) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// GCSCredential sets the credential file used to access gs:// locations
func GCSCredential(file string) Option {
	return func(l *Locator) {
		l.gcsCredential = file
	}
}

// AWSConfig sets the AWS configuration used to access s3:// locations
func AWSConfig(cfg *aws.Config) Option {
	return func(l *Locator) {
		l.awsConfig = cfg
	}
}

// HTTPClient sets the client used to fetch http(s):// locations
func HTTPClient(client *http.Client) Option {
	return func(l *Locator) {
		l.httpClient = client
	}
}

// Logger passes a logger down to the stores
func Logger(logger *zap.Logger) Option {
	return func(l *Locator) {
		if logger != nil {
			l.l = logger
		}
	}
}

// Backend overrides the store used for a scheme
func Backend(scheme string, builder BackendFunc) Option {
	return func(l *Locator) {
		l.backends[strings.ToLower(scheme)] = builder
	}
}

// Locator resolves locations to stores
type Locator struct {
	fs            afero.Fs
	gcsCredential string
	awsConfig     *aws.Config
	httpClient    *http.Client
	l             *zap.Logger
	backends      map[string]BackendFunc
}

// New builds a Locator with all backends enabled
func New(opts ...Option) *Locator {
	l := &Locator{
		fs:        afero.NewOsFs(),
		awsConfig: aws.NewConfig(),
		l:         zap.NewNop(),
		backends:  make(map[string]BackendFunc),
	}
	for _, apply := range opts {
		apply(l)
	}
	return l
}

// Open returns the store holding the object at location, along with the key of this object in that store
func (l *Locator) Open(ctx context.Context, location string) (storage.Store, string, error) {
	if strings.TrimSpace(location) == "" {
		return nil, "", status.ErrInvalidLocation.WithContext("empty location")
	}
	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) <= 1 {
		// bare path, possibly with a windows drive letter
		return localfs.New(l.fs), location, nil
	}
	scheme := strings.ToLower(u.Scheme)

	if builder, ok := l.backends[scheme]; ok {
		store, err := builder(ctx, u.Host)
		if err != nil {
			return nil, "", err
		}
		return store, keyFor(scheme, u, location), nil
	}

	switch scheme {
	case SchemeHTTP, SchemeHTTPS:
		return httpstore.New(httpstore.Client(l.httpClient), httpstore.Logger(l.l)), location, nil
	case SchemeFile:
		return localfs.New(l.fs), u.Path, nil
	case SchemeGCS:
		if u.Host == "" {
			return nil, "", status.ErrInvalidLocation.WithContext("missing bucket in %s", location)
		}
		store, err := gcs.New(ctx, u.Host, l.gcsCredential, gcs.Logger(l.l))
		if err != nil {
			return nil, "", err
		}
		return store, keyFor(scheme, u, location), nil
	case SchemeS3:
		if u.Host == "" {
			return nil, "", status.ErrInvalidLocation.WithContext("missing bucket in %s", location)
		}
		store, err := sthree.New(sthree.Bucket(u.Host), sthree.AWSConfig(l.awsConfig), sthree.Logger(l.l))
		if err != nil {
			return nil, "", err
		}
		return store, keyFor(scheme, u, location), nil
	default:
		return nil, "", status.ErrInvalidLocation.WithContext("unsupported scheme %q in %s", u.Scheme, location)
	}
}

func keyFor(scheme string, u *url.URL, location string) string {
	switch scheme {
	case SchemeHTTP, SchemeHTTPS:
		return location
	case SchemeFile:
		return u.Path
	default:
		return strings.TrimPrefix(u.Path, "/")
	}
}

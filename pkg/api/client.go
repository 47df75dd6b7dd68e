// Package api is a thin JSON over HTTP client for the remote localization service.
//
// It only knows the two calls needed to synchronize files: uploading a single
// file and requesting a bundle of all files of a project.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/oneconcern/l10nsync/pkg/core"
	"github.com/oneconcern/l10nsync/pkg/core/status"
	"github.com/oneconcern/l10nsync/pkg/model"
)

const (
	// DefaultBaseURL of the remote service API
	DefaultBaseURL = "https://api.lokalise.com/api2"

	// DefaultTimeout of a single API call
	DefaultTimeout = 2 * time.Minute

	// TokenHeader carries the API token
	TokenHeader = "X-Api-Token"

	maxErrorBody = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var _ core.Client = &Client{}

// Option is a functor to configure the API client
type Option func(*Client)

// BaseURL sets the root of API endpoints
func BaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.base = strings.TrimSuffix(base, "/")
		}
	}
}

// Timeout sets the timeout of each API call. It is ignored when an http client is provided.
func Timeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// HTTPClient sets the http client used to issue API calls
func HTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// Logger injects a logger
func Logger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.l = l
		}
	}
}

// Client calls the remote service API
type Client struct {
	base    string
	token   string
	timeout time.Duration
	client  *http.Client
	l       *zap.Logger
}

// New API client, authenticating with token
func New(token string, opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		token:   token,
		timeout: DefaultTimeout,
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

type uploadResponse struct {
	ProjectID string        `json:"project_id"`
	Process   model.Process `json:"process"`
}

// Upload a file to a project
func (c *Client) Upload(ctx context.Context, projectID string, opts model.UploadOptions) (model.Process, error) {
	var resp uploadResponse
	if err := c.post(ctx, projectID, "files/upload", opts, &resp); err != nil {
		return model.Process{}, err
	}
	process := resp.Process
	if process.ProjectID == "" {
		process.ProjectID = resp.ProjectID
	}
	return process, nil
}

// Download requests a bundle of all files of a project
func (c *Client) Download(ctx context.Context, projectID string, opts map[string]interface{}) (model.BundleDescriptor, error) {
	var bundle model.BundleDescriptor
	if err := c.post(ctx, projectID, "files/download", opts, &bundle); err != nil {
		return model.BundleDescriptor{}, err
	}
	if bundle.BundleURL == "" {
		return model.BundleDescriptor{}, status.ErrTransfer.WithContext("no bundle url returned for project %s", projectID)
	}
	if bundle.ProjectID == "" {
		bundle.ProjectID = projectID
	}
	return bundle, nil
}

func (c *Client) endpoint(projectID, call string) string {
	return fmt.Sprintf("%s/projects/%s/%s", c.base, url.PathEscape(projectID), call)
}

func (c *Client) post(ctx context.Context, projectID, call string, payload, target interface{}) error {
	endpoint := c.endpoint(projectID, call)
	body, err := json.Marshal(payload)
	if err != nil {
		return status.ErrTransfer.Wrap(err).WithContext("encoding request to %s", endpoint)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return status.ErrConfiguration.Wrap(err).WithContext("%s", endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(TokenHeader, c.token)

	start := time.Now()
	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		return status.ErrTransfer.Wrap(err).WithContext("POST %s", endpoint)
	}
	defer func() {
		_, _ = io.Copy(ioutil.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	c.l.Debug("api call",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if err := toSentinelErrors(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return status.ErrTransfer.Wrap(err).WithContext("decoding response from %s", endpoint)
	}
	return nil
}

func toSentinelErrors(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	err := fmt.Errorf("%s %s: %s: %s", resp.Request.Method, resp.Request.URL, resp.Status, strings.TrimSpace(string(body)))
	if resp.StatusCode == http.StatusTooManyRequests {
		return status.ErrRateLimited.Wrap(err)
	}
	return status.ErrTransfer.Wrap(err)
}

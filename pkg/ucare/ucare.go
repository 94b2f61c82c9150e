package ucare

import (
	"net/http"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/uploadcare-community/ucare_sdk_go/internal/httpx"
)

const clientVersion = "0.1.0"

const userAgentPrefix = "UploadcareGo"

// APICreds holds per-project API credentials. Both keys are listed on the
// Uploadcare dashboard.
type APICreds struct {
	SecretKey string
	PublicKey string
}

func (c APICreds) validate() error {
	if strings.TrimSpace(c.SecretKey) == "" || strings.TrimSpace(c.PublicKey) == "" {
		return errors.New("ucare: invalid api credentials provided")
	}
	return nil
}

// CredsFromEnv reads credentials from the UCARE_SECRET_KEY and
// UCARE_PUBLIC_KEY environment variables.
func CredsFromEnv() (APICreds, error) {
	creds := APICreds{
		SecretKey: strings.TrimSpace(os.Getenv("UCARE_SECRET_KEY")),
		PublicKey: strings.TrimSpace(os.Getenv("UCARE_PUBLIC_KEY")),
	}
	if err := creds.validate(); err != nil {
		return APICreds{}, errors.Wrap(err, "read UCARE_SECRET_KEY / UCARE_PUBLIC_KEY")
	}
	return creds, nil
}

// RestAPIVersion selects the REST API version sent in the Accept header.
type RestAPIVersion string

const (
	// APIv05 is REST API version v0.5.
	APIv05 RestAPIVersion = "v0.5"
	// APIv06 is REST API version v0.6.
	APIv06 RestAPIVersion = "v0.6"
)

// RestConfig configures a RestClient.
type RestConfig struct {
	// SignBasedAuth enables signature based authentication for REST calls.
	// When false the simple scheme carrying the raw keys is used.
	SignBasedAuth bool
	// APIVersion to be used. Defaults to v0.5.
	APIVersion RestAPIVersion
}

// UploadConfig configures an UploadClient.
type UploadConfig struct {
	// SignBasedUpload enables signed uploads: every form carries a signature
	// over a short-lived expiry timestamp.
	SignBasedUpload bool
}

// Option configures a client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
	maxRetries int
}

// WithBaseURL overrides the API base URL. Intended for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = h
	}
}

// WithLogger sets the logger used for request/response debug logging.
// By default logging is discarded.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *clientOptions) {
		o.log = log
	}
}

// WithMaxRetries enables retries of transient failures (connection errors,
// 408/429 and 5xx). The default is zero: errors surface directly.
func WithMaxRetries(n int) Option {
	return func(o *clientOptions) {
		o.maxRetries = n
	}
}

func (o *clientOptions) httpxOptions(defaultHeaders http.Header) []httpx.Option {
	opts := []httpx.Option{httpx.WithHeaders(defaultHeaders)}
	if o.httpClient != nil {
		opts = append(opts, httpx.WithHTTPClient(o.httpClient))
	}
	if o.log != nil {
		opts = append(opts, httpx.WithLogger(o.log))
	}
	if o.maxRetries > 0 {
		opts = append(opts, httpx.WithRetryPolicy(httpx.RetryPolicy{MaxRetries: o.maxRetries}))
	}
	return opts
}

func resolveOptions(defaultBaseURL string, opts []Option) *clientOptions {
	o := &clientOptions{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

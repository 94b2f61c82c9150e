package ucare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/internal/httpx"
	"github.com/uploadcare-community/ucare_sdk_go/internal/signature"
)

// RestAPIURL is the default REST API endpoint.
const RestAPIURL = "https://api.uploadcare.com"

// RestCaller is the request surface the resource services are built on.
// *RestClient implements it; tests may substitute their own.
type RestCaller interface {
	// Call issues a request against the REST API base URL. The payload, when
	// non-nil, is serialized as JSON. The response body is decoded into out
	// unless out is nil or the body is empty.
	Call(ctx context.Context, method, path string, query url.Values, payload, out any) error
	// CallURL issues a request against an absolute URL, used to follow
	// pagination links returned by list endpoints.
	CallURL(ctx context.Context, method, rawURL string, out any) error
}

// RestClient prepares, signs and executes REST API requests.
type RestClient struct {
	client    *httpx.Client
	authorize func(method string, body []byte, contentType, date, uri string) string
	now       func() time.Time
}

// NewRestClient initializes a REST API client for the given credentials.
func NewRestClient(config RestConfig, creds APICreds, opts ...Option) (*RestClient, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	version := config.APIVersion
	if version == "" {
		version = APIv05
	}

	headers := make(http.Header)
	headers.Set("Accept", fmt.Sprintf("application/vnd.uploadcare-%s+json", version))
	headers.Set("X-UC-User-Agent", fmt.Sprintf("%s/%s/%s", userAgentPrefix, clientVersion, creds.PublicKey))

	o := resolveOptions(RestAPIURL, opts)
	client, err := httpx.NewClient(o.baseURL, o.httpxOptions(headers)...)
	if err != nil {
		return nil, errors.Wrap(err, "ucare: init rest transport")
	}

	authorize := func(method string, body []byte, contentType, date, uri string) string {
		return signature.Simple(creds.PublicKey, creds.SecretKey)
	}
	if config.SignBasedAuth {
		authorize = func(method string, body []byte, contentType, date, uri string) string {
			return signature.SignBased(creds.PublicKey, creds.SecretKey, method, body, contentType, date, uri)
		}
	}

	return &RestClient{
		client:    client,
		authorize: authorize,
		now:       time.Now,
	}, nil
}

// Call implements RestCaller.
func (c *RestClient) Call(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = encodeJSON(payload)
		if err != nil {
			return &Error{Code: ErrOther, Detail: "encode request payload: " + err.Error()}
		}
	}

	uri := path
	if len(query) > 0 {
		uri = path + "?" + query.Encode()
	}

	req := &httpx.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Header: c.signedHeaders(method, body, uri),
	}
	if body != nil {
		req.Body = bytes.NewReader(body)
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	return c.do(ctx, req, out)
}

// CallURL implements RestCaller.
func (c *RestClient) CallURL(ctx context.Context, method, rawURL string, out any) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &Error{Code: ErrOther, Detail: "parse url: " + err.Error()}
	}
	if !parsed.IsAbs() {
		return &Error{Code: ErrOther, Detail: fmt.Sprintf("url %q is not absolute", rawURL)}
	}

	req := &httpx.Request{
		Method: method,
		URL:    rawURL,
		Header: c.signedHeaders(method, nil, parsed.RequestURI()),
	}
	return c.do(ctx, req, out)
}

// signedHeaders builds the Date, Content-Type and Authorization headers for
// a request. The uri must be the path with raw query, exactly as sent.
func (c *RestClient) signedHeaders(method string, body []byte, uri string) http.Header {
	date := c.now().UTC().Format(signature.DateFormat)

	header := make(http.Header)
	header.Set("Date", date)
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", c.authorize(method, body, "application/json", date, uri))
	return header
}

func (c *RestClient) do(ctx context.Context, req *httpx.Request, out any) error {
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return restAPIError(err)
	}

	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return errors.Wrap(err, "ucare: read response body")
	}
	return decodeBody(data, out)
}

// decodeBody unmarshals data into out. Empty bodies leave out untouched;
// some endpoints (webhook unsubscribe) return nothing on success.
func decodeBody(data []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return &Error{Code: ErrOther, Detail: "decode response: " + err.Error()}
	}
	return nil
}

func encodeJSON(payload any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

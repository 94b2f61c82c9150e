package ucare

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/internal/httpx"
	"github.com/uploadcare-community/ucare_sdk_go/internal/signature"
)

// UploadAPIURL is the default Upload API endpoint.
const UploadAPIURL = "https://upload.uploadcare.com"

// AuthFields are the authentication form fields attached to Upload API
// requests. Signature and Expire are zero for simple (unsigned) uploads.
type AuthFields struct {
	PubKey    string
	Signature string
	Expire    int64
}

// UploadCaller is the request surface the upload service is built on.
// *UploadClient implements it; tests may substitute their own.
type UploadCaller interface {
	// AuthFields returns the auth form fields for the next request. For
	// signed uploads each call produces a fresh expiry and signature.
	AuthFields() AuthFields
	// Call issues a bodyless request against the Upload API base URL.
	Call(ctx context.Context, method, path string, query url.Values, out any) error
	// CallForm issues a multipart/form-data request.
	CallForm(ctx context.Context, method, path string, form *Form, out any) error
	// CallRaw sends raw bytes to an absolute URL. Used for uploading file
	// parts to presigned URLs.
	CallRaw(ctx context.Context, method, rawURL string, data []byte, contentType string, out any) error
}

// UploadClient prepares and executes Upload API requests.
type UploadClient struct {
	client *httpx.Client
	fields func() AuthFields
}

// NewUploadClient initializes an Upload API client for the given credentials.
func NewUploadClient(config UploadConfig, creds APICreds, opts ...Option) (*UploadClient, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	o := resolveOptions(UploadAPIURL, opts)
	client, err := httpx.NewClient(o.baseURL, o.httpxOptions(make(http.Header))...)
	if err != nil {
		return nil, errors.Wrap(err, "ucare: init upload transport")
	}

	fields := func() AuthFields {
		return AuthFields{PubKey: creds.PublicKey}
	}
	if config.SignBasedUpload {
		fields = func() AuthFields {
			expire := time.Now().Add(signature.SignedUploadTTL).Unix()
			return AuthFields{
				PubKey:    creds.PublicKey,
				Signature: signature.UploadSignature(creds.SecretKey, expire),
				Expire:    expire,
			}
		}
	}

	return &UploadClient{client: client, fields: fields}, nil
}

// AuthFields implements UploadCaller.
func (c *UploadClient) AuthFields() AuthFields {
	return c.fields()
}

// Call implements UploadCaller.
func (c *UploadClient) Call(ctx context.Context, method, path string, query url.Values, out any) error {
	req := &httpx.Request{
		Method: method,
		Path:   path,
		Query:  query,
	}
	return c.do(ctx, req, out)
}

// CallForm implements UploadCaller.
func (c *UploadClient) CallForm(ctx context.Context, method, path string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return &Error{Code: ErrOther, Detail: "encode form: " + err.Error()}
	}

	req := &httpx.Request{
		Method: method,
		Path:   path,
		Header: http.Header{"Content-Type": []string{contentType}},
		Body:   bytes.NewReader(body),
		GetBody: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}
	return c.do(ctx, req, out)
}

// CallRaw implements UploadCaller.
func (c *UploadClient) CallRaw(ctx context.Context, method, rawURL string, data []byte, contentType string, out any) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req := &httpx.Request{
		Method: method,
		URL:    rawURL,
		Header: http.Header{"Content-Type": []string{contentType}},
		Body:   bytes.NewReader(data),
		GetBody: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
	return c.do(ctx, req, out)
}

func (c *UploadClient) do(ctx context.Context, req *httpx.Request, out any) error {
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return uploadAPIError(err)
	}

	data, err := httpx.ReadAllAndClose(resp.Body)
	if err != nil {
		return errors.Wrap(err, "ucare: read response body")
	}
	return decodeBody(data, out)
}

// Form accumulates multipart/form-data fields for Upload API calls.
// Errors stick: the first failure is reported when the form is sent.
type Form struct {
	buf bytes.Buffer
	mw  *multipart.Writer
	err error
}

// NewForm creates an empty multipart form.
func NewForm() *Form {
	f := &Form{}
	f.mw = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a text field.
func (f *Form) AddField(name, value string) *Form {
	if f.err != nil {
		return f
	}
	f.err = f.mw.WriteField(name, value)
	return f
}

// AddFile appends a file part read from r.
func (f *Form) AddFile(field, filename string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}
	part, err := f.mw.CreateFormFile(field, filename)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = io.Copy(part, r)
	return f
}

// AddAuth appends the authentication fields every Upload API form carries.
func (f *Form) AddAuth(fields AuthFields) *Form {
	f.AddField("UPLOADCARE_PUB_KEY", fields.PubKey)
	f.AddField("pub_key", fields.PubKey)
	if fields.Signature == "" {
		return f
	}
	f.AddField("signature", fields.Signature)
	f.AddField("expire", strconv.FormatInt(fields.Expire, 10))
	return f
}

func (f *Form) encode() ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.mw.Close(); err != nil {
		return nil, "", err
	}
	return f.buf.Bytes(), f.mw.FormDataContentType(), nil
}

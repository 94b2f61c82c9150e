package ucare_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadcare-community/ucare_sdk_go/internal/signature"
	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

var testCreds = ucare.APICreds{PublicKey: "testpk", SecretKey: "testsk"}

func TestNewRestClientRejectsEmptyCreds(t *testing.T) {
	_, err := ucare.NewRestClient(ucare.RestConfig{}, ucare.APICreds{})
	require.Error(t, err)

	_, err = ucare.NewRestClient(ucare.RestConfig{}, ucare.APICreds{PublicKey: "pk"})
	require.Error(t, err)
}

func TestRestCallSimpleAuthHeaders(t *testing.T) {
	var header http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{
		APIVersion: ucare.APIv06,
	}, testCreds, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	require.NoError(t, client.Call(context.Background(), http.MethodGet, "/files/", nil, nil, nil))

	assert.Equal(t, "application/vnd.uploadcare-v0.6+json", header.Get("Accept"))
	assert.Equal(t, "UploadcareGo/0.1.0/testpk", header.Get("X-UC-User-Agent"))
	assert.Equal(t, "Uploadcare.Simple testpk:testsk", header.Get("Authorization"))
	assert.Equal(t, "application/json", header.Get("Content-Type"))

	_, err = time.Parse(signature.DateFormat, header.Get("Date"))
	assert.NoError(t, err, "Date header %q", header.Get("Date"))
}

func TestRestCallSignBasedAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := signature.SignBased(
			testCreds.PublicKey, testCreds.SecretKey,
			r.Method, nil,
			r.Header.Get("Content-Type"),
			r.Header.Get("Date"),
			r.URL.RequestURI(),
		)
		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"incorrect signature"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{
		SignBasedAuth: true,
	}, testCreds, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	query := url.Values{}
	query.Set("limit", "1")
	query.Set("stored", "true")
	require.NoError(t, client.Call(context.Background(), http.MethodGet, "/files/", query, nil, nil))
}

func TestRestCallSignBasedAuthWithBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		want := signature.SignBased(
			testCreds.PublicKey, testCreds.SecretKey,
			r.Method, body,
			r.Header.Get("Content-Type"),
			r.Header.Get("Date"),
			r.URL.RequestURI(),
		)
		if r.Header.Get("Authorization") != want {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"incorrect signature"}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{
		SignBasedAuth: true,
	}, testCreds, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	payload := map[string]string{"source": "1bac376c-aa7e-4356-861b-dd2657b5bfd2"}
	require.NoError(t, client.Call(context.Background(), http.MethodPost, "/files/local_copy/", nil, payload, nil))
}

func TestRestCallDecodesErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{}, testCreds, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = client.Call(context.Background(), http.MethodGet, "/files/nope/", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, ucare.IsNotFound(err))

	apiErr, ok := err.(*ucare.Error)
	require.True(t, ok, "expected *ucare.Error, got %T", err)
	assert.Equal(t, ucare.ErrNotFound, apiErr.Code)
	assert.Equal(t, "Not found.", apiErr.Detail)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Uploadcare: Not found.", apiErr.Error())
}

func TestRestCallThrottled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "10")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail":"Request was throttled."}`))
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{}, testCreds, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	err = client.Call(context.Background(), http.MethodGet, "/files/", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, ucare.IsThrottled(err))

	apiErr := err.(*ucare.Error)
	assert.Equal(t, 10, apiErr.RetryAfter)
	assert.Equal(t, "Uploadcare: too many requests, retry after 10", apiErr.Error())
}

func TestRestCallToleratesEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{}, testCreds, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	var out struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, client.Call(context.Background(), http.MethodDelete, "/webhooks/unsubscribe/", nil, nil, &out))
	assert.Empty(t, out.Detail)
}

func TestRestCallURLRejectsRelative(t *testing.T) {
	client, err := ucare.NewRestClient(ucare.RestConfig{}, testCreds)
	require.NoError(t, err)

	err = client.CallURL(context.Background(), http.MethodGet, "/files/?limit=10", nil)
	require.Error(t, err)
}

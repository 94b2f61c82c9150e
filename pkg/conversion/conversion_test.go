package conversion_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/conversion"
	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*conversion.Service, *recordedRequest, func()) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		var err error
		rec.Body, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		handler(w, r)
	}))

	client, err := ucare.NewRestClient(ucare.RestConfig{
		APIVersion: ucare.APIv06,
	}, ucare.APICreds{PublicKey: "pk", SecretKey: "sk"}, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	return conversion.NewService(client), rec, srv.Close
}

func TestDocument(t *testing.T) {
	id := uuid.NewString()
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": [{"uuid": "out-uuid", "token": 445630}],
			"problems": {}
		}`))
	})
	defer stop()

	result, err := svc.Document(context.Background(), conversion.JobParams{
		Paths: []string{id + "/document/-/format/pdf/"},
		Store: conversion.ToStoreTrue,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/convert/document/", rec.Path)

	var sent struct {
		Paths []string `json:"paths"`
		Store string   `json:"store"`
	}
	require.NoError(t, json.Unmarshal(rec.Body, &sent))
	assert.Equal(t, []string{id + "/document/-/format/pdf/"}, sent.Paths)
	assert.Equal(t, "true", sent.Store)

	require.Len(t, result.Result, 1)
	assert.Equal(t, 445630, result.Result[0].Token)
}

func TestDocumentValidation(t *testing.T) {
	called := false
	svc, _, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer stop()

	_, err := svc.Document(context.Background(), conversion.JobParams{})
	require.Error(t, err)

	_, err = svc.Document(context.Background(), conversion.JobParams{
		Paths: []string{"some-uuid/document/"},
		Store: "yes",
	})
	require.Error(t, err)

	assert.False(t, called)
}

func TestDocumentStatus(t *testing.T) {
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "finished", "result": {"uuid": "out-uuid"}}`))
	})
	defer stop()

	status, err := svc.DocumentStatus(context.Background(), 445630)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/convert/document/status/445630/", rec.Path)
	assert.Equal(t, conversion.StatusFinished, status.Status)
	assert.Equal(t, "out-uuid", status.Result.UUID)
}

func TestVideo(t *testing.T) {
	id := uuid.NewString()
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": [{
				"uuid": "out-uuid",
				"token": 911933,
				"thumbnails_group_id": "group~1"
			}]
		}`))
	})
	defer stop()

	result, err := svc.Video(context.Background(), conversion.JobParams{
		Paths: []string{id + "/video/-/format/mp4/-/thumbs~3/"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/convert/video/", rec.Path)
	require.Len(t, result.Result, 1)
	assert.Equal(t, "group~1", result.Result[0].ThumbnailsGroupID)
}

func TestVideoStatusFailed(t *testing.T) {
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "failed", "error": "Unsupported codec"}`))
	})
	defer stop()

	status, err := svc.VideoStatus(context.Background(), 911933)
	require.NoError(t, err)

	assert.Equal(t, "/convert/video/status/911933/", rec.Path)
	assert.Equal(t, conversion.StatusFailed, status.Status)
	assert.Equal(t, "Unsupported codec", status.Error)
}

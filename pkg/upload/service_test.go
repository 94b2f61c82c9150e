package upload_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
	"github.com/uploadcare-community/ucare_sdk_go/pkg/upload"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Form   map[string][]string
}

func newTestService(t *testing.T, handler http.HandlerFunc) (*upload.Service, *recordedRequest, func()) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.Query()
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			rec.Form = r.MultipartForm.Value
		}
		handler(w, r)
	}))

	client, err := ucare.NewUploadClient(ucare.UploadConfig{}, ucare.APICreds{
		PublicKey: "pk",
		SecretKey: "sk",
	}, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	return upload.NewService(client), rec, srv.Close
}

func TestFile(t *testing.T) {
	id := googleuuid.NewString()
	var fileContent string
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		f, _, err := r.FormFile("pic.jpeg")
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		fileContent = string(data)

		fmt.Fprintf(w, `{"pic.jpeg": %q}`, id)
	})
	defer stop()

	result, err := svc.File(context.Background(), upload.FileParams{
		Name:    "pic.jpeg",
		Data:    strings.NewReader("jpeg-bytes"),
		ToStore: upload.ToStoreTrue,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/base/", rec.Path)
	assert.Equal(t, []string{"1"}, rec.Form["UPLOADCARE_STORE"])
	assert.Equal(t, []string{"pk"}, rec.Form["UPLOADCARE_PUB_KEY"])
	assert.Equal(t, "jpeg-bytes", fileContent)
	assert.Equal(t, id, result["pic.jpeg"])
}

func TestFileValidation(t *testing.T) {
	svc, _, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	defer stop()

	_, err := svc.File(context.Background(), upload.FileParams{Data: strings.NewReader("x")})
	require.Error(t, err)

	_, err = svc.File(context.Background(), upload.FileParams{Name: "pic.jpeg"})
	require.Error(t, err)
}

func TestFromURLReturnsToken(t *testing.T) {
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"type": "token", "token": "945ebb27-1fd6-46c6-a859-b9893712d650"}`))
	})
	defer stop()

	data, err := svc.FromURL(context.Background(), upload.FromURLParams{
		SourceURL:          "https://example.com/file.png",
		CheckURLDuplicates: upload.URLDuplicatesTrue,
	})
	require.NoError(t, err)

	assert.Equal(t, "/from_url/", rec.Path)
	assert.Equal(t, []string{"https://example.com/file.png"}, rec.Form["source_url"])
	assert.Equal(t, []string{"0"}, rec.Form["store"])
	assert.Equal(t, []string{"1"}, rec.Form["check_URL_duplicates"])
	assert.NotContains(t, rec.Form, "filename")
	assert.NotContains(t, rec.Form, "save_URL_duplicates")

	assert.True(t, data.IsToken())
	assert.Equal(t, "945ebb27-1fd6-46c6-a859-b9893712d650", data.Token)
}

func TestFromURLReturnsFileInfo(t *testing.T) {
	id := googleuuid.NewString()
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type": "file_info", "uuid": %q, "is_ready": true, "filename": "file.png"}`, id)
	})
	defer stop()

	data, err := svc.FromURL(context.Background(), upload.FromURLParams{
		SourceURL: "https://example.com/file.png",
		ToStore:   upload.ToStoreAuto,
		Filename:  "file.png",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"auto"}, rec.Form["store"])
	assert.Equal(t, []string{"file.png"}, rec.Form["filename"])

	assert.False(t, data.IsToken())
	assert.Equal(t, id, data.UUID)
	assert.True(t, data.IsReady)
}

func TestFromURLRequiresSourceURL(t *testing.T) {
	svc, _, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	defer stop()

	_, err := svc.FromURL(context.Background(), upload.FromURLParams{})
	require.Error(t, err)
}

func TestFromURLStatus(t *testing.T) {
	id := googleuuid.NewString()
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status": "success", "uuid": %q, "done": 145212, "total": 145212}`, id)
	})
	defer stop()

	data, err := svc.FromURLStatus(context.Background(), "945ebb27-1fd6-46c6-a859-b9893712d650")
	require.NoError(t, err)

	assert.Equal(t, "/from_url/status/", rec.Path)
	assert.Equal(t, []string{"945ebb27-1fd6-46c6-a859-b9893712d650"}, rec.Query["token"])
	assert.Equal(t, upload.StatusSuccess, data.Status)
	assert.Equal(t, id, data.UUID)
	assert.Equal(t, data.Total, data.Done)
}

func TestFileInfo(t *testing.T) {
	id := googleuuid.NewString()
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"uuid": %q, "file_id": %q, "is_stored": true}`, id, id)
	})
	defer stop()

	info, err := svc.FileInfo(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "/info/", rec.Path)
	assert.Equal(t, []string{"pk"}, rec.Query["pub_key"])
	assert.Equal(t, []string{id}, rec.Query["file_id"])
	assert.Equal(t, id, info.UUID)
	assert.True(t, info.IsStored)
}

func TestCreateGroup(t *testing.T) {
	ids := []string{
		googleuuid.NewString(),
		googleuuid.NewString() + "/-/resize/x800/",
	}
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "d52d7136-a2e5-4338-9f45-affbf83b857d~2", "files_count": 2}`))
	})
	defer stop()

	info, err := svc.CreateGroup(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, "/group/", rec.Path)
	assert.Equal(t, []string{ids[0]}, rec.Form["files[0]"])
	assert.Equal(t, []string{ids[1]}, rec.Form["files[1]"])
	assert.Equal(t, 2, info.FilesCount)
}

func TestGroupInfo(t *testing.T) {
	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "d52d7136-a2e5-4338-9f45-affbf83b857d~2", "files": [{"uuid": "a"}, {"uuid": "b"}]}`))
	})
	defer stop()

	info, err := svc.GroupInfo(context.Background(), "d52d7136-a2e5-4338-9f45-affbf83b857d~2")
	require.NoError(t, err)

	assert.Equal(t, "/group/info/", rec.Path)
	assert.Equal(t, []string{"pk"}, rec.Query["pub_key"])
	assert.Equal(t, []string{"d52d7136-a2e5-4338-9f45-affbf83b857d~2"}, rec.Query["group_id"])
	require.Len(t, info.Files, 2)
}

func TestMultipartFlow(t *testing.T) {
	id := googleuuid.NewString()

	var partBody string
	partSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		partBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer partSrv.Close()

	svc, rec, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/multipart/start/":
			fmt.Fprintf(w, `{"uuid": %q, "parts": [%q]}`, id, partSrv.URL+"/part/1/")
		case "/multipart/complete/":
			fmt.Fprintf(w, `{"uuid": %q, "is_ready": true}`, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer stop()

	data, err := svc.MultipartStart(context.Background(), upload.MultipartParams{
		Filename:    "video.mp4",
		Size:        10485760,
		ContentType: "video/mp4",
		ToStore:     upload.ToStoreAuto,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"video.mp4"}, rec.Form["filename"])
	assert.Equal(t, []string{"10485760"}, rec.Form["size"])
	assert.Equal(t, []string{"video/mp4"}, rec.Form["content_type"])
	assert.Equal(t, []string{"auto"}, rec.Form["UPLOADCARE_STORE"])
	require.Len(t, data.Parts, 1)
	assert.Equal(t, id, data.UUID)

	require.NoError(t, svc.UploadPart(context.Background(), data.Parts[0], []byte("chunk-bytes")))
	assert.Equal(t, "chunk-bytes", partBody)

	info, err := svc.MultipartComplete(context.Background(), data.UUID)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, rec.Form["uuid"])
	assert.True(t, info.IsReady)
}

func TestMultipartStartValidation(t *testing.T) {
	svc, _, stop := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	defer stop()

	_, err := svc.MultipartStart(context.Background(), upload.MultipartParams{
		Filename: "video.mp4",
	})
	require.Error(t, err)

	_, err = svc.MultipartStart(context.Background(), upload.MultipartParams{
		Size:        1024,
		ContentType: "video/mp4",
	})
	require.Error(t, err)
}

package upload

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

// PartSize is the required size of every multipart upload part except the
// last one, which may be smaller.
const PartSize = 5242880

// Service makes calls to the Upload API.
type Service struct {
	client ucare.UploadCaller
}

// NewService creates an instance of the upload service.
func NewService(client ucare.UploadCaller) *Service {
	return &Service{client: client}
}

// File uploads a file per RFC 7578 and returns a map holding filenames as
// keys and their assigned UUIDs as values.
func (s *Service) File(ctx context.Context, params FileParams) (map[string]string, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	form := ucare.NewForm().
		AddFile(params.Name, params.Name, params.Data).
		AddField("UPLOADCARE_STORE", string(params.storeOrDefault())).
		AddAuth(s.client.AuthFields())

	result := map[string]string{}
	if err := s.client.CallForm(ctx, http.MethodPost, "/base/", form, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// FromURL uploads a file by its public URL. Depending on the duplicate
// check settings the response carries either a token for polling via
// FromURLStatus or the file info right away.
func (s *Service) FromURL(ctx context.Context, params FromURLParams) (*FromURLData, error) {
	if strings.TrimSpace(params.SourceURL) == "" {
		return nil, errors.New("upload: source url is required")
	}

	form := ucare.NewForm().
		AddField("source_url", params.SourceURL).
		AddField("store", string(params.storeOrDefault()))
	if params.Filename != "" {
		form.AddField("filename", params.Filename)
	}
	if params.CheckURLDuplicates != "" {
		form.AddField("check_URL_duplicates", string(params.CheckURLDuplicates))
	}
	if params.SaveURLDuplicates != "" {
		form.AddField("save_URL_duplicates", string(params.SaveURLDuplicates))
	}
	form.AddAuth(s.client.AuthFields())

	var data FromURLData
	if err := s.client.CallForm(ctx, http.MethodPost, "/from_url/", form, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FromURLStatus checks the status of a file uploaded from URL.
func (s *Service) FromURLStatus(ctx context.Context, token string) (*FromURLStatusData, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("upload: token is required")
	}

	var data FromURLStatusData
	query := url.Values{"token": {token}}
	if err := s.client.Call(ctx, http.MethodGet, "/from_url/status/", query, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FileInfo returns the info of an uploading file.
func (s *Service) FileInfo(ctx context.Context, fileID string) (*FileInfo, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New("upload: file id is required")
	}

	var info FileInfo
	query := url.Values{
		"pub_key": {s.client.AuthFields().PubKey},
		"file_id": {fileID},
	}
	if err := s.client.Call(ctx, http.MethodGet, "/info/", query, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateGroup creates a files group from a set of file IDs, with or without
// applied CDN media processing operations:
//
//	[
//	  "d6d34fa9-addd-472c-868d-2e5c105f9fcd",
//	  "b1026315-8116-4632-8364-607e64fca723/-/resize/x800/",
//	]
func (s *Service) CreateGroup(ctx context.Context, fileIDs []string) (*GroupInfo, error) {
	if len(fileIDs) == 0 {
		return nil, errors.New("upload: at least one file id is required")
	}

	form := ucare.NewForm()
	for pos, id := range fileIDs {
		form.AddField("files["+strconv.Itoa(pos)+"]", id)
	}
	form.AddAuth(s.client.AuthFields())

	var info GroupInfo
	if err := s.client.CallForm(ctx, http.MethodPost, "/group/", form, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GroupInfo returns group specific info. Group IDs look like UUID~N, for
// example "d52d7136-a2e5-4338-9f45-affbf83b857d~2".
func (s *Service) GroupInfo(ctx context.Context, groupID string) (*GroupInfo, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, errors.New("upload: group id is required")
	}

	var info GroupInfo
	query := url.Values{
		"pub_key":  {s.client.AuthFields().PubKey},
		"group_id": {groupID},
	}
	if err := s.client.Call(ctx, http.MethodGet, "/group/info/", query, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// MultipartStart opens a multipart upload transaction. Multipart uploads
// suit files larger than 100MB or accelerated uploads; parts go straight to
// AWS S3 bypassing the upload instances. The minimum file size for
// multipart uploads is 10MB.
func (s *Service) MultipartStart(ctx context.Context, params MultipartParams) (*MultipartData, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	form := ucare.NewForm().
		AddField("filename", params.Filename).
		AddField("UPLOADCARE_STORE", string(params.storeOrDefault())).
		AddField("content_type", params.ContentType).
		AddField("size", strconv.FormatInt(params.Size, 10)).
		AddAuth(s.client.AuthFields())

	var data MultipartData
	if err := s.client.CallForm(ctx, http.MethodPost, "/multipart/start/", form, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// UploadPart uploads one file part to its presigned URL. Each part must be
// PartSize bytes except the last one, which may be smaller. Parts may be
// uploaded in parallel provided the byte order stays unchanged.
func (s *Service) UploadPart(ctx context.Context, partURL string, data []byte) error {
	if strings.TrimSpace(partURL) == "" {
		return errors.New("upload: part url is required")
	}
	return s.client.CallRaw(ctx, http.MethodPut, partURL, data, "application/octet-stream", nil)
}

// MultipartComplete closes the multipart upload transaction once all file
// parts are uploaded.
func (s *Service) MultipartComplete(ctx context.Context, uuid string) (*FileInfo, error) {
	if strings.TrimSpace(uuid) == "" {
		return nil, errors.New("upload: uuid is required")
	}

	form := ucare.NewForm().
		AddField("uuid", uuid).
		AddAuth(s.client.AuthFields())

	var info FileInfo
	if err := s.client.CallForm(ctx, http.MethodPost, "/multipart/complete/", form, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

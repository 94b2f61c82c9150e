package file

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

// Service makes calls to the file API.
type Service struct {
	client ucare.RestCaller
}

// NewService creates an instance of the file service.
func NewService(client ucare.RestCaller) *Service {
	return &Service{client: client}
}

// Info acquires file specific info by its ID.
func (s *Service) Info(ctx context.Context, fileID string) (*Info, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New("file: id is required")
	}
	var info Info
	if err := s.client.Call(ctx, http.MethodGet, "/files/"+fileID+"/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// List returns a single page of files.
func (s *Service) List(ctx context.Context, params ListParams) (*List, error) {
	var list List
	if err := s.client.Call(ctx, http.MethodGet, "/files/", params.values(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPage gets the next or previous page by its absolute URL.
func (s *Service) GetPage(ctx context.Context, pageURL string) (*List, error) {
	var list List
	if err := s.client.CallURL(ctx, http.MethodGet, pageURL, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Store stores a single file by its ID.
func (s *Service) Store(ctx context.Context, fileID string) (*Info, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New("file: id is required")
	}
	var info Info
	if err := s.client.Call(ctx, http.MethodPut, "/files/"+fileID+"/storage/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// BatchStore stores multiple files in one go. Up to 100 files are supported
// per request.
func (s *Service) BatchStore(ctx context.Context, fileIDs []string) (*BatchInfo, error) {
	if len(fileIDs) == 0 {
		return nil, errors.New("file: at least one id is required")
	}
	var info BatchInfo
	if err := s.client.Call(ctx, http.MethodPut, "/files/storage/", nil, fileIDs, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Delete removes a file by its ID.
func (s *Service) Delete(ctx context.Context, fileID string) (*Info, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New("file: id is required")
	}
	var info Info
	if err := s.client.Call(ctx, http.MethodDelete, "/files/"+fileID+"/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// BatchDelete deletes multiple files in one go. Up to 100 files are
// supported per request.
func (s *Service) BatchDelete(ctx context.Context, fileIDs []string) (*BatchInfo, error) {
	if len(fileIDs) == 0 {
		return nil, errors.New("file: at least one id is required")
	}
	var info BatchInfo
	if err := s.client.Call(ctx, http.MethodDelete, "/files/storage/", nil, fileIDs, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Copy is the API v0.5 version of LocalCopy and RemoteCopy; prefer those.
func (s *Service) Copy(ctx context.Context, params CopyParams) (*LocalCopyInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var info LocalCopyInfo
	if err := s.client.Call(ctx, http.MethodPost, "/files/", nil, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// LocalCopy copies original files or their modified versions to the default
// storage. Source files may either be stored or just uploaded and must not
// be deleted.
func (s *Service) LocalCopy(ctx context.Context, params CopyParams) (*LocalCopyInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.Store == "" {
		params.Store = ToStoreFalse
	}
	if params.MakePublic == "" {
		params.MakePublic = MakePublicTrue
	}

	var info LocalCopyInfo
	if err := s.client.Call(ctx, http.MethodPost, "/files/local_copy/", nil, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RemoteCopy copies original files or their modified versions to a custom
// storage. Source files may either be stored or just uploaded and must not
// be deleted.
func (s *Service) RemoteCopy(ctx context.Context, params CopyParams) (*RemoteCopyInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.MakePublic == "" {
		params.MakePublic = MakePublicTrue
	}

	var info RemoteCopyInfo
	if err := s.client.Call(ctx, http.MethodPost, "/files/remote_copy/", nil, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

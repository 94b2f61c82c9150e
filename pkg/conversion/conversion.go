// Package conversion covers the /convert/ endpoints of the Uploadcare REST
// API. Documents can be converted to DOC, DOCX, XLS, XLSX, ODT, ODS, RTF,
// TXT, PDF, JPG or PNG; videos to a range of formats with optional
// thumbnail groups.
package conversion

import (
	"context"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

// Service makes calls to the conversion API.
type Service struct {
	client ucare.RestCaller
}

// NewService creates an instance of the conversion service.
func NewService(client ucare.RestCaller) *Service {
	return &Service{client: client}
}

// Document starts a document conversion job.
func (s *Service) Document(ctx context.Context, params JobParams) (*JobResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var result JobResult
	if err := s.client.Call(ctx, http.MethodPost, "/convert/document/", nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DocumentStatus gets a document conversion job status by its token.
func (s *Service) DocumentStatus(ctx context.Context, token int) (*StatusResult, error) {
	var result StatusResult
	path := "/convert/document/status/" + strconv.Itoa(token) + "/"
	if err := s.client.Call(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Video starts a video conversion job.
func (s *Service) Video(ctx context.Context, params JobParams) (*JobResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var result JobResult
	if err := s.client.Call(ctx, http.MethodPost, "/convert/video/", nil, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VideoStatus gets a video conversion job status by its token.
func (s *Service) VideoStatus(ctx context.Context, token int) (*StatusResult, error) {
	var result StatusResult
	path := "/convert/video/status/" + strconv.Itoa(token) + "/"
	if err := s.client.Call(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ToStore controls whether conversion outputs are stored.
type ToStore string

// ToStore values.
const (
	ToStoreTrue  ToStore = "true"
	ToStoreFalse ToStore = "false"
)

// JobParams describes a conversion job.
type JobParams struct {
	// Paths are IDs (UUIDs) of the source files together with the target
	// format, specified as
	//
	//	:uuid/document/-/format/:target-format/
	//
	// A complete CDN URL works too. /-/ is the delimiter separating the
	// file identifier from processing operations. When /format/ is absent
	// the input is converted to pdf. /page/:number/ converts a single page
	// of a multi-paged document to jpg or png.
	Paths []string `json:"paths"`
	// Store indicates whether the outputs should be stored.
	Store ToStore `json:"store,omitempty"`
}

// Validate checks the job params before they are sent.
func (p JobParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Paths, validation.Required, validation.Length(1, 0)),
		validation.Field(&p.Store, validation.In(ToStoreTrue, ToStoreFalse)),
	)
}

// Conversion job statuses.
const (
	// StatusPending: the source file is being prepared for conversion.
	StatusPending = "pending"
	// StatusProcessing: the conversion is in progress.
	StatusProcessing = "processing"
	// StatusFinished: the conversion is finished.
	StatusFinished = "finished"
	// StatusFailed: the source could not be converted, see the error field.
	StatusFailed = "failed"
	// StatusCanceled: the conversion was canceled.
	StatusCanceled = "canceled"
)

// JobResult is the response to a conversion job request.
type JobResult struct {
	// Problems related to the job, keyed by the requested path.
	Problems map[string]string `json:"problems,omitempty"`
	// Result for each requested path without errors.
	Result []JobInfo `json:"result,omitempty"`
}

// JobInfo describes one conversion output.
type JobInfo struct {
	// UUID of the converted document.
	UUID string `json:"uuid"`
	// ThumbnailsGroupID is the file group with thumbnails for an output
	// video, based on the thumbs operation parameters.
	ThumbnailsGroupID string `json:"thumbnails_group_id,omitempty"`
	// OriginalSource is the source file identifier including the target
	// format, if present.
	OriginalSource string `json:"original_source,omitempty"`
	// Token to poll the job status with.
	Token int `json:"token,omitempty"`
}

// StatusResult is the response to a conversion status request.
type StatusResult struct {
	// Status is one of pending, processing, finished, failed or canceled.
	Status string `json:"status"`
	// Error is set when the file could not be handled.
	Error string `json:"error,omitempty"`
	// Result repeats the contents of the processing output.
	Result JobInfo `json:"result"`
}

package upload

import (
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/file"
)

// ToStore sets the file storing behaviour.
type ToStore string

// ToStore values. The wire format differs from the REST API: the Upload API
// takes 1/0/auto.
const (
	ToStoreTrue  ToStore = "1"
	ToStoreFalse ToStore = "0"
	ToStoreAuto  ToStore = "auto"
)

// URLDuplicates toggles the duplicate check on from-URL uploads.
type URLDuplicates string

// URLDuplicates values.
const (
	URLDuplicatesTrue  URLDuplicates = "1"
	URLDuplicatesFalse URLDuplicates = "0"
)

// Upload statuses returned by FromURLStatus.
const (
	StatusSuccess    = "success"
	StatusInProgress = "progress"
	StatusError      = "error"
	StatusWaiting    = "waiting"
	StatusUnknown    = "unknown"
)

// FileParams holds the params for a direct file upload. The payload must be
// smaller than 100MB; larger files raise a 413 and should go through the
// multipart upload methods.
type FileParams struct {
	// Name the file is uploaded under.
	Name string
	// Data is the file content.
	Data io.Reader
	// ToStore sets the storing behaviour.
	ToStore ToStore
}

func (p FileParams) validate() error {
	if p.Name == "" {
		return errors.New("upload: file name is required")
	}
	if p.Data == nil {
		return errors.New("upload: file data is required")
	}
	return nil
}

func (p FileParams) storeOrDefault() ToStore {
	if p.ToStore == "" {
		return ToStoreFalse
	}
	return p.ToStore
}

// FromURLParams holds the params for an upload from a public URL.
type FromURLParams struct {
	// SourceURL must be a public HTTP or HTTPS link.
	SourceURL string
	// ToStore sets the storing behaviour.
	ToStore ToStore
	// Filename for the uploaded file. When empty the name is obtained from
	// response headers or the source URL.
	Filename string
	// CheckURLDuplicates runs the duplicate check and provides the
	// immediate-download behaviour.
	CheckURLDuplicates URLDuplicates
	// SaveURLDuplicates runs the save/update URL behaviour. Useful when the
	// source URL will be used more than once. Defaults upstream to the
	// CheckURLDuplicates value.
	SaveURLDuplicates URLDuplicates
}

func (p FromURLParams) storeOrDefault() ToStore {
	if p.ToStore == "" {
		return ToStoreFalse
	}
	return p.ToStore
}

// FromURLData is the response to a from-URL upload. The Type discriminator
// is either "token" (poll FromURLStatus with Token) or "file_info" (the
// embedded FileInfo is populated).
type FromURLData struct {
	Type string `json:"type"`
	// Token identifies the file for upload status requests.
	Token string `json:"token,omitempty"`
	FileInfo
}

// IsToken reports whether the response carries a polling token rather than
// the final file info.
func (d *FromURLData) IsToken() bool {
	return d.Type == "token"
}

// FromURLStatusData is the response to a from-URL status request. Status is
// one of success, progress, error, waiting or unknown. On success the
// embedded FileInfo is populated; progress is reported via its Done and
// Total fields.
type FromURLStatusData struct {
	Status string `json:"status"`
	// Error description for failed uploads.
	Error string `json:"error,omitempty"`
	FileInfo
}

// FileInfo holds file information in the upload context.
type FileInfo struct {
	// Whether the file is stored.
	IsStored bool `json:"is_stored"`
	// Currently uploaded size in bytes.
	Done int64 `json:"done"`
	// FileID is the same as UUID.
	FileID string `json:"file_id"`
	// Total is the same as Size.
	Total int64 `json:"total"`
	// File size in bytes.
	Size int64 `json:"size"`
	// File UUID.
	UUID string `json:"uuid"`
	// Whether the file is an image.
	IsImage bool `json:"is_image"`
	// Sanitized original filename.
	Filename string `json:"filename"`
	// Video metadata.
	VideoInfo *file.VideoInfo `json:"video_info,omitempty"`
	// Whether the file is ready to be used after upload.
	IsReady bool `json:"is_ready"`
	// Original file name taken from the uploaded file.
	OriginalFilename string `json:"original_filename"`
	// Image metadata.
	ImageInfo *file.ImageInfo `json:"image_info,omitempty"`
	// File MIME type.
	MimeType string `json:"mime_type"`
	// S3Bucket is the custom user bucket the file is stored on, if a
	// foreign storage bucket is set up for the project.
	S3Bucket string `json:"s3_bucket,omitempty"`
	// DefaultEffects are CDN media transformations applied to the file when
	// its group was created.
	DefaultEffects string `json:"default_effects,omitempty"`
}

// GroupInfo holds group information in the upload context.
type GroupInfo struct {
	// When the group was created.
	DatetimeCreated string `json:"datetime_created"`
	// When the group was stored.
	DatetimeStored string `json:"datetime_stored,omitempty"`
	// Number of files in the group.
	FilesCount int `json:"files_count"`
	// CDN URL of the group.
	CDNURL string `json:"cdn_url"`
	// Files in the group.
	Files []FileInfo `json:"files,omitempty"`
	// URL of the group info API resource.
	URL string `json:"url"`
	// Group ID, UUID~N.
	ID string `json:"id"`
}

// MultipartParams holds the params for starting a multipart upload.
type MultipartParams struct {
	// Original file name.
	Filename string
	// Precise file size in bytes. Must not exceed the project file size cap.
	Size int64
	// ContentType is the file MIME type.
	ContentType string
	// ToStore sets the storing behaviour.
	ToStore ToStore
}

// Validate checks the multipart params before the transaction is opened.
func (p MultipartParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Filename, validation.Required),
		validation.Field(&p.Size, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.ContentType, validation.Required),
	)
}

func (p MultipartParams) storeOrDefault() ToStore {
	if p.ToStore == "" {
		return ToStoreFalse
	}
	return p.ToStore
}

// MultipartData is the response to starting a multipart upload.
type MultipartData struct {
	// Parts are presigned URLs, one per file part.
	Parts []string `json:"parts"`
	// UUID of the file being uploaded.
	UUID string `json:"uuid"`
}

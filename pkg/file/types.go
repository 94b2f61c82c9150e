package file

import (
	"encoding/json"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Info holds file specific information.
type Info struct {
	// File UUID.
	UUID string `json:"uuid"`
	// Date and time when a file was removed, if any.
	DatetimeRemoved string `json:"datetime_removed,omitempty"`
	// Date and time of the last store request, if any.
	DatetimeStored string `json:"datetime_stored,omitempty"`
	// Date and time when a file was uploaded.
	DatetimeUploaded string `json:"datetime_uploaded,omitempty"`
	// Image metadata.
	ImageInfo *ImageInfo `json:"image_info,omitempty"`
	// Whether the file is an image.
	IsImage bool `json:"is_image"`
	// Whether the file is ready to be used after upload.
	IsReady bool `json:"is_ready"`
	// File MIME type.
	MimeType string `json:"mime_type,omitempty"`
	// Publicly available file CDN URL. Available if a file is not deleted.
	OriginalFileURL string `json:"original_file_url,omitempty"`
	// Original file name taken from the uploaded file.
	OriginalFilename string `json:"original_filename,omitempty"`
	// File size in bytes.
	Size int64 `json:"size,omitempty"`
	// API resource URL for this file.
	URL string `json:"url,omitempty"`
	// Other files created using this file as source (video, document
	// conversion and so on).
	Variations json.RawMessage `json:"variations,omitempty"`
	// Video metadata.
	VideoInfo *VideoInfo `json:"video_info,omitempty"`
	// File upload source (facebook, gdrive, gphotos...).
	Source string `json:"source,omitempty"`
	// File categories with their confidence.
	RekognitionInfo map[string]float64 `json:"rekognition_info,omitempty"`
}

// ImageInfo holds image specific information.
type ImageInfo struct {
	ColorMode ColorMode `json:"color_mode,omitempty"`
	// Image orientation from EXIF.
	Orientation int `json:"orientation,omitempty"`
	Format      string `json:"format,omitempty"`
	Sequence    bool   `json:"sequence,omitempty"`
	Height      int    `json:"height,omitempty"`
	Width       int    `json:"width,omitempty"`
	GeoLocation *GeoLocation `json:"geo_location,omitempty"`
	// Image date and time from EXIF.
	DatetimeOriginal string `json:"datetime_original,omitempty"`
	// Image DPI for two dimensions.
	DPI []float64 `json:"dpi,omitempty"`
}

// GeoLocation is the image geo location from EXIF.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ColorMode is the image color mode.
type ColorMode string

// Image color modes.
const (
	ColorModeRGB   ColorMode = "RGB"
	ColorModeRGBA  ColorMode = "RGBA"
	ColorModeRGBa  ColorMode = "RGBa"
	ColorModeRGBX  ColorMode = "RGBX"
	ColorModeL     ColorMode = "L"
	ColorModeLA    ColorMode = "LA"
	ColorModeLa    ColorMode = "La"
	ColorModeP     ColorMode = "P"
	ColorModePA    ColorMode = "PA"
	ColorModeCMYK  ColorMode = "CMYK"
	ColorModeYCbCr ColorMode = "YCbCr"
	ColorModeHSV   ColorMode = "HSV"
	ColorModeLAB   ColorMode = "LAB"
)

// VideoInfo holds video related information.
type VideoInfo struct {
	// Video duration in milliseconds.
	Duration float64 `json:"duration,omitempty"`
	// Video format (MP4 for example).
	Format  string          `json:"format,omitempty"`
	Bitrate float64         `json:"bitrate,omitempty"`
	Audio   *VideoInfoAudio `json:"audio,omitempty"`
	Video   *VideoInfoVideo `json:"video,omitempty"`
}

// VideoInfoAudio describes the audio stream of a video.
type VideoInfoAudio struct {
	Bitrate    float64 `json:"bitrate,omitempty"`
	Codec      string  `json:"codec,omitempty"`
	SampleRate float64 `json:"sample_rate,omitempty"`
	Channels   string  `json:"channels,omitempty"`
}

// VideoInfoVideo describes the video stream of a video.
type VideoInfoVideo struct {
	Height    float64 `json:"height,omitempty"`
	Width     float64 `json:"width,omitempty"`
	FrameRate float64 `json:"frame_rate,omitempty"`
	Bitrate   float64 `json:"bitrate,omitempty"`
	Codec     string  `json:"codec,omitempty"`
}

// Ordering specifies the way files are sorted in a returned list.
type Ordering string

// File list orderings.
const (
	OrderByUploadedAt     Ordering = "datetime_uploaded"
	OrderByUploadedAtDesc Ordering = "-datetime_uploaded"
	OrderBySize           Ordering = "size"
	OrderBySizeDesc       Ordering = "-size"
)

// ListParams holds all possible params for the List method.
type ListParams struct {
	// Removed set to true includes only removed files in the response;
	// existing files are included otherwise. Defaults to false.
	Removed *bool
	// Stored set to true includes only stored files, false only temporary
	// ones. When nil both are returned.
	Stored *bool
	// Limit is the preferred amount of files for a single response.
	// Defaults to 1000, which is also the maximum.
	Limit int
	// Ordering of the returned list, datetime_uploaded by default.
	Ordering Ordering
	// From is a starting point for filtering files. The value depends on
	// the ordering parameter.
	From string
}

func (p ListParams) values() url.Values {
	q := url.Values{}

	removed := false
	if p.Removed != nil {
		removed = *p.Removed
	}
	q.Set("removed", strconv.FormatBool(removed))

	if p.Stored != nil {
		q.Set("stored", strconv.FormatBool(*p.Stored))
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 1000
	}
	q.Set("limit", strconv.Itoa(limit))

	ordering := p.Ordering
	if ordering == "" {
		ordering = OrderByUploadedAt
	}
	q.Set("ordering", string(ordering))

	if p.From != "" {
		q.Set("from", p.From)
	}
	return q
}

// List holds a page of files.
type List struct {
	Results []Info `json:"results"`
	// Next page URL.
	Next string `json:"next,omitempty"`
	// Previous page URL.
	Previous string `json:"previous,omitempty"`
	// Total number of objects of the queried type. For files, the queried
	// type depends on the stored and removed query parameters.
	Total int `json:"total,omitempty"`
	// Number of objects per page.
	PerPage int `json:"per_page,omitempty"`
}

// ToStore controls the storing behaviour of copied files; applies to the
// Uploadcare storage only.
type ToStore string

// ToStore values.
const (
	ToStoreTrue  ToStore = "true"
	ToStoreFalse ToStore = "false"
)

// MakePublic controls whether copied files are available via public links;
// applies to custom storages only.
type MakePublic string

// MakePublic values.
const (
	MakePublicTrue  MakePublic = "true"
	MakePublicFalse MakePublic = "false"
)

// Pattern specifies file names Uploadcare passes to a custom storage. When
// omitted the pattern of the custom storage is used.
type Pattern string

// Pattern values.
const (
	PatternDefault      Pattern = "${default}"
	PatternAutoFilename Pattern = "${filename} ${effects} ${ext}"
	PatternEffects      Pattern = "${effects}"
	PatternFilename     Pattern = "${filename}"
	PatternUUID         Pattern = "${uuid}"
	PatternExt          Pattern = "${ext}"
)

// CopyParams is used when copying original files or their modified versions.
type CopyParams struct {
	// Source is a CDN URL or just the ID (UUID) of the file to copy.
	Source string `json:"source"`
	// Store applies to the Uploadcare storage only.
	Store ToStore `json:"store,omitempty"`
	// MakePublic applies to custom storages only.
	MakePublic MakePublic `json:"make_public,omitempty"`
	// Target identifies a custom storage name related to your project.
	// Setting it means copying to that storage.
	Target string `json:"target,omitempty"`
	// Pattern for file names passed to a custom storage.
	Pattern Pattern `json:"pattern,omitempty"`
}

// Validate checks the copy params before they are sent.
func (p CopyParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Source, validation.Required),
		validation.Field(&p.Store, validation.In(ToStoreTrue, ToStoreFalse)),
		validation.Field(&p.MakePublic, validation.In(MakePublicTrue, MakePublicFalse)),
	)
}

// LocalCopyInfo holds the local copy response data.
type LocalCopyInfo struct {
	Result Info `json:"result"`
}

// RemoteCopyInfo holds the remote copy response data.
type RemoteCopyInfo struct {
	// Result is a URL with the s3 scheme: the bucket name is the host
	// followed by an s3 object path.
	Result string `json:"result,omitempty"`
}

// BatchInfo holds batch operation response data.
type BatchInfo struct {
	// Problems maps passed file IDs to their associated problems.
	Problems map[string]string `json:"problems,omitempty"`
	// Result describes successfully operated files.
	Result []Info `json:"result,omitempty"`
}

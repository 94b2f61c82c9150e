// Package webhook covers the /webhooks/ resource of the Uploadcare REST API.
package webhook

import (
	"context"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

// Service makes calls to the webhook API.
type Service struct {
	client ucare.RestCaller
}

// NewService creates an instance of the webhook service.
func NewService(client ucare.RestCaller) *Service {
	return &Service{client: client}
}

// List returns the project webhooks.
func (s *Service) List(ctx context.Context) ([]Info, error) {
	var list []Info
	if err := s.client.Call(ctx, http.MethodGet, "/webhooks/", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create creates and subscribes to a webhook. IsActive defaults to true.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Info, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.IsActive == nil {
		active := true
		params.IsActive = &active
	}

	var info Info
	if err := s.client.Call(ctx, http.MethodPost, "/webhooks/", nil, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Update updates webhook attributes. Nil fields are left unchanged.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*Info, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var info Info
	path := "/webhooks/" + strconv.Itoa(params.ID) + "/"
	if err := s.client.Call(ctx, http.MethodPut, path, nil, params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Delete unsubscribes and deletes the webhook with the given target URL.
// The endpoint returns an empty body on success.
func (s *Service) Delete(ctx context.Context, params DeleteParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return s.client.Call(ctx, http.MethodDelete, "/webhooks/unsubscribe/", nil, params, nil)
}

// Event is a webhook event to subscribe to.
type Event string

// EventFileUploaded fires when a file is uploaded.
const EventFileUploaded Event = "file.uploaded"

// Info holds webhook information.
type Info struct {
	// Webhook ID.
	ID int `json:"id"`
	// Webhook creation date-time.
	Created string `json:"created"`
	// Webhook update date-time.
	Updated string `json:"updated"`
	// Subscribed event.
	Event string `json:"event"`
	// Where webhook data will be POSTed.
	TargetURL string `json:"target_url"`
	// Webhook payload signing secret.
	SigningSecret string `json:"signing_secret,omitempty"`
	// Webhook project ID.
	Project int `json:"project"`
	// Whether the subscription is active.
	IsActive bool `json:"is_active"`
}

// CreateParams are the params for creating a webhook.
type CreateParams struct {
	// Event to subscribe to.
	Event Event `json:"event"`
	// TargetURL is triggered by the event. A target URL must be unique per
	// project and event type combination.
	TargetURL string `json:"target_url"`
	// SigningSecret, when set, signs the payload so the receiver can verify
	// the sender.
	SigningSecret string `json:"signing_secret,omitempty"`
	// IsActive marks the subscription active or not; defaults to true.
	IsActive *bool `json:"is_active,omitempty"`
}

// Validate checks the create params before they are sent.
func (p CreateParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Event, validation.Required, validation.In(EventFileUploaded)),
		validation.Field(&p.TargetURL, validation.Required, is.URL),
	)
}

// UpdateParams are the params for updating a webhook. Zero fields are not
// serialized and stay unchanged upstream.
type UpdateParams struct {
	// ID of the webhook to update.
	ID int `json:"id"`
	// Event to subscribe to.
	Event Event `json:"event,omitempty"`
	// TargetURL triggered by the event.
	TargetURL string `json:"target_url,omitempty"`
	// SigningSecret for payload signing.
	SigningSecret string `json:"signing_secret,omitempty"`
	// IsActive marks the subscription active or not.
	IsActive *bool `json:"is_active,omitempty"`
}

// Validate checks the update params before they are sent.
func (p UpdateParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Event, validation.In(EventFileUploaded)),
		validation.Field(&p.TargetURL, is.URL),
	)
}

// DeleteParams are the params for deleting a webhook.
type DeleteParams struct {
	// TargetURL identifies the webhook to delete.
	TargetURL string `json:"target_url"`
}

// Validate checks the delete params before they are sent.
func (p DeleteParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TargetURL, validation.Required, is.URL),
	)
}

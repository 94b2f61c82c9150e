// Package group covers the /groups/ resource of the Uploadcare REST API.
//
// Individual files can be joined into groups to better organize a workflow.
// Groups are immutable ordered lists of files; the only way to add or remove
// a file is creating a new group. A group ID consists of a UUID followed by
// a "~" tilde character and the number of files in the group, for example
// badfc9f7-f88f-4921-9cc0-22e2c08aa2da~12. A group and its files must belong
// to the same project.
package group

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

// Service makes calls to the group API.
type Service struct {
	client ucare.RestCaller
}

// NewService creates an instance of the group service.
func NewService(client ucare.RestCaller) *Service {
	return &Service{client: client}
}

// Info acquires group specific info by its ID.
func (s *Service) Info(ctx context.Context, groupID string) (*Info, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, errors.New("group: id is required")
	}
	var info Info
	if err := s.client.Call(ctx, http.MethodGet, "/groups/"+groupID+"/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// List returns a single page of groups.
func (s *Service) List(ctx context.Context, params ListParams) (*List, error) {
	var list List
	if err := s.client.Call(ctx, http.MethodGet, "/groups/", params.values(), nil, &list); err != nil {
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

// Store marks all files in a group as stored.
func (s *Service) Store(ctx context.Context, groupID string) (*Info, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, errors.New("group: id is required")
	}
	var info Info
	if err := s.client.Call(ctx, http.MethodPut, "/groups/"+groupID+"/storage/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Info holds group specific information.
type Info struct {
	// Group identifier, UUID~N.
	ID string `json:"id"`
	// Date and time when the group was created.
	DatetimeCreated string `json:"datetime_created,omitempty"`
	// Date and time when the group was stored.
	DatetimeStored string `json:"datetime_stored,omitempty"`
	// Number of files in the group.
	FilesCount int `json:"files_count"`
	// Public CDN URL for the group.
	CDNURL string `json:"cdn_url"`
}

// Ordering specifies the way groups are sorted in a returned list.
type Ordering string

// Group list orderings.
const (
	OrderByCreatedAt     Ordering = "datetime_created"
	OrderByCreatedAtDesc Ordering = "-datetime_created"
)

// ListParams holds all possible params for the List method.
type ListParams struct {
	// Limit is the preferred amount of groups for a single response.
	// Defaults to 100, while the maximum is 1000.
	Limit int
	// Ordering of the returned list, datetime_created by default.
	Ordering Ordering
	// From is a starting point for filtering group lists. Must be a
	// datetime value with T as the separator: "2015-01-02T10:00:00".
	From string
}

func (p ListParams) values() url.Values {
	q := url.Values{}

	limit := p.Limit
	if limit <= 0 {
		limit = 100
	}
	q.Set("limit", strconv.Itoa(limit))

	ordering := p.Ordering
	if ordering == "" {
		ordering = OrderByCreatedAt
	}
	q.Set("ordering", string(ordering))

	if p.From != "" {
		q.Set("from", p.From)
	}
	return q
}

// List holds a page of groups.
type List struct {
	Results []Info `json:"results"`
	// Next page URL.
	Next string `json:"next,omitempty"`
	// Previous page URL.
	Previous string `json:"previous,omitempty"`
	// Total number of groups.
	Total int `json:"total,omitempty"`
	// Number of objects per page.
	PerPage int `json:"per_page,omitempty"`
}

// Package project covers the /project/ resource of the Uploadcare REST API.
package project

import (
	"context"
	"net/http"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

// Service makes calls to the project API.
type Service struct {
	client ucare.RestCaller
}

// NewService creates an instance of the project service.
func NewService(client ucare.RestCaller) *Service {
	return &Service{client: client}
}

// Info returns information about the account project the credentials
// belong to.
func (s *Service) Info(ctx context.Context) (*Info, error) {
	var info Info
	if err := s.client.Call(ctx, http.MethodGet, "/project/", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Info holds account project information.
type Info struct {
	// Project login name.
	Name string `json:"name"`
	// Project public key.
	PubKey string `json:"pub_key"`
	// Project collaborators.
	Collaborators []Collaborator `json:"collaborators,omitempty"`
}

// Collaborator describes a project collaborator.
type Collaborator struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

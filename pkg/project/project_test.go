package project_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/project"
	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

func TestInfo(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{
			"name": "demo",
			"pub_key": "demopublickey",
			"collaborators": [{"email": "collab@example.com", "name": "Collab"}]
		}`))
	}))
	defer srv.Close()

	client, err := ucare.NewRestClient(ucare.RestConfig{}, ucare.APICreds{
		PublicKey: "demopublickey",
		SecretKey: "demoprivatekey",
	}, ucare.WithBaseURL(srv.URL))
	require.NoError(t, err)

	info, err := project.NewService(client).Info(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/project/", gotPath)
	assert.Equal(t, "demo", info.Name)
	assert.Equal(t, "demopublickey", info.PubKey)
	require.Len(t, info.Collaborators, 1)
	assert.Equal(t, "collab@example.com", info.Collaborators[0].Email)
}

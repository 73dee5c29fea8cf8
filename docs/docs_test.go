package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidSwagger(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger     string                     `json:"swagger"`
		BasePath    string                     `json:"basePath"`
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api/v1", doc.BasePath)
	for _, path := range []string{
		"/auth/register",
		"/complaints",
		"/complaints/{complaintId}/mandatory-feedback",
		"/admin/complaints/{complaintId}/status",
		"/admin/dashboard",
	} {
		assert.Contains(t, doc.Paths, path)
	}
	for _, def := range []string{
		"handlers.RegisterRequest",
		"handlers.UpdateStatusRequest",
		"handlers.ProofRequest",
		"response.Response",
	} {
		assert.Contains(t, doc.Definitions, def)
	}
}

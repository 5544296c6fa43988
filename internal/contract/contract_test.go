package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURLReplacesParams(t *testing.T) {
	url, err := BuildURL("/api/leads/:id", map[string]string{"id": "42"})

	assert.NoError(t, err)
	assert.Equal(t, "/api/leads/42", url)
}

func TestBuildURLMultipleParams(t *testing.T) {
	url, err := BuildURL("/api/conversations/:id/messages", map[string]string{"id": "7"})

	assert.NoError(t, err)
	assert.Equal(t, "/api/conversations/7/messages", url)
}

// A missing parameter must fail fast instead of leaking the placeholder
// into the final URL.
func TestBuildURLMissingParamFails(t *testing.T) {
	_, err := BuildURL("/api/leads/:id", nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestBuildURLIgnoresExtraParams(t *testing.T) {
	url, err := BuildURL("/api/leads", map[string]string{"id": "42"})

	assert.NoError(t, err)
	assert.Equal(t, "/api/leads", url)
}

func TestChiPath(t *testing.T) {
	assert.Equal(t, "/api/leads/{id}", ChiPath("/api/leads/:id"))
	assert.Equal(t, "/api/conversations/{id}/messages", ChiPath("/api/conversations/:id/messages"))
	assert.Equal(t, "/api/leads", ChiPath("/api/leads"))
}

func TestAPITableShape(t *testing.T) {
	for _, op := range []string{"leads.list", "leads.get", "leads.create", "leads.update", "leads.delete",
		"applications.list", "applications.get", "applications.create", "applications.update", "applications.delete",
		"conversations.list", "conversations.get", "conversations.create", "conversations.send"} {
		ep, ok := API[op]
		assert.True(t, ok, "operation %s missing from table", op)
		assert.NotEmpty(t, ep.Method, op)
		assert.NotEmpty(t, ep.Path, op)
	}

	// Mutating operations carry a validator, reads do not.
	assert.NotNil(t, API["leads.create"].ValidateInput)
	assert.NotNil(t, API["applications.update"].ValidateInput)
	assert.NotNil(t, API["conversations.send"].ValidateInput)
	assert.Nil(t, API["leads.list"].ValidateInput)
	assert.Nil(t, API["leads.delete"].ValidateInput)
}

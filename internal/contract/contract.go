// Package contract is the single source of truth for the REST surface:
// one table mapping each logical operation to its HTTP method, URL template
// and input validator. Client code and route binding both consume it, so
// the two sides cannot drift.
package contract

import (
	"fmt"
	"strings"
)

// ValidationError carries the FIRST offending field (dotted path) and a
// human-readable message. Validators never aggregate errors.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFunc decodes a JSON body and enforces the entity schema. On
// success it returns the typed input (CreateLeadInput, UpdateLeadInput,
// ...); callers type-assert to the shape their operation expects.
type ValidateFunc func(body []byte) (any, *ValidationError)

type Endpoint struct {
	Method        string
	Path          string
	ValidateInput ValidateFunc // nil for operations without a body
}

// API is resolved once at package init, not introspected at runtime.
var API = map[string]Endpoint{
	"leads.list":   {Method: "GET", Path: "/api/leads"},
	"leads.get":    {Method: "GET", Path: "/api/leads/:id"},
	"leads.create": {Method: "POST", Path: "/api/leads", ValidateInput: ValidateCreateLead},
	"leads.update": {Method: "PUT", Path: "/api/leads/:id", ValidateInput: ValidateUpdateLead},
	"leads.delete": {Method: "DELETE", Path: "/api/leads/:id"},

	"applications.list":   {Method: "GET", Path: "/api/applications"},
	"applications.get":    {Method: "GET", Path: "/api/applications/:id"},
	"applications.create": {Method: "POST", Path: "/api/applications", ValidateInput: ValidateCreateApplication},
	"applications.update": {Method: "PUT", Path: "/api/applications/:id", ValidateInput: ValidateUpdateApplication},
	"applications.delete": {Method: "DELETE", Path: "/api/applications/:id"},

	"conversations.list":   {Method: "GET", Path: "/api/conversations"},
	"conversations.get":    {Method: "GET", Path: "/api/conversations/:id"},
	"conversations.create": {Method: "POST", Path: "/api/conversations", ValidateInput: ValidateCreateConversation},
	"conversations.send":   {Method: "POST", Path: "/api/conversations/:id/messages", ValidateInput: ValidateSendMessage},
}

// BuildURL substitutes :param placeholders in a path template. A template
// parameter without a matching value is an error, not a silent no-op.
func BuildURL(path string, params map[string]string) (string, error) {
	url := path
	for key, value := range params {
		url = strings.ReplaceAll(url, ":"+key, value)
	}

	if idx := strings.Index(url, ":"); idx != -1 {
		rest := url[idx+1:]
		if end := strings.IndexAny(rest, "/?"); end != -1 {
			rest = rest[:end]
		}
		return "", fmt.Errorf("missing value for url parameter %q in %q", rest, path)
	}

	return url, nil
}

// ChiPath converts a :param template to chi's {param} syntax so the same
// table drives both URL building and route registration.
func ChiPath(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "{" + p[1:] + "}"
		}
	}
	return strings.Join(parts, "/")
}

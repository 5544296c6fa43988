package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreateLeadSuccess(t *testing.T) {
	body := []byte(`{"name":"A","email":"a@x.com","phone":"123","programInterest":"1-Crore Club"}`)

	validated, verr := ValidateCreateLead(body)

	require.Nil(t, verr)
	input := validated.(CreateLeadInput)
	assert.Equal(t, "A", input.Name)
	assert.Equal(t, "New", input.Status, "status defaults to New when omitted")
}

func TestValidateCreateLeadKeepsExplicitStatus(t *testing.T) {
	body := []byte(`{"name":"A","email":"a@x.com","phone":"123","programInterest":"1-Crore Club","status":"Enrolled"}`)

	validated, verr := ValidateCreateLead(body)

	require.Nil(t, verr)
	assert.Equal(t, "Enrolled", validated.(CreateLeadInput).Status)
}

// The validator reports only the FIRST failing field.
func TestValidateCreateLeadFirstFailingField(t *testing.T) {
	body := []byte(`{"name":"","email":"","phone":"","programInterest":"Nope"}`)

	_, verr := ValidateCreateLead(body)

	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)
}

func TestValidateCreateLeadRejections(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing email", `{"name":"A","phone":"1","programInterest":"1-Crore Club"}`, "email"},
		{"bad email", `{"name":"A","email":"not-an-email","phone":"1","programInterest":"1-Crore Club"}`, "email"},
		{"missing phone", `{"name":"A","email":"a@x.com","programInterest":"1-Crore Club"}`, "phone"},
		{"unknown program", `{"name":"A","email":"a@x.com","phone":"1","programInterest":"Basket Weaving"}`, "programInterest"},
		{"unknown status", `{"name":"A","email":"a@x.com","phone":"1","programInterest":"1-Crore Club","status":"Maybe"}`, "status"},
		{"invalid json", `{`, "body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, verr := ValidateCreateLead([]byte(tc.body))
			require.NotNil(t, verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestValidateUpdateLeadPartial(t *testing.T) {
	validated, verr := ValidateUpdateLead([]byte(`{"status":"Enrolled"}`))

	require.Nil(t, verr)
	input := validated.(UpdateLeadInput)
	require.NotNil(t, input.Status)
	assert.Equal(t, "Enrolled", *input.Status)
	assert.Nil(t, input.Name)
	assert.Nil(t, input.Email)
}

func TestValidateUpdateLeadEmptyBodyIsLegal(t *testing.T) {
	validated, verr := ValidateUpdateLead([]byte(`{}`))

	require.Nil(t, verr)
	input := validated.(UpdateLeadInput)
	assert.Nil(t, input.Status)
}

func TestValidateUpdateLeadRejectsPresentButInvalid(t *testing.T) {
	_, verr := ValidateUpdateLead([]byte(`{"name":"  "}`))
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)

	_, verr = ValidateUpdateLead([]byte(`{"programInterest":"Nope"}`))
	require.NotNil(t, verr)
	assert.Equal(t, "programInterest", verr.Field)
}

func TestValidateCreateApplication(t *testing.T) {
	validated, verr := ValidateCreateApplication([]byte(`{"leadId":3,"program":"1-Crore Club"}`))

	require.Nil(t, verr)
	input := validated.(CreateApplicationInput)
	assert.Equal(t, int64(3), input.LeadID)
	assert.Equal(t, "Under Review", input.Status, "status defaults to Under Review")
}

func TestValidateCreateApplicationRequiresLeadID(t *testing.T) {
	_, verr := ValidateCreateApplication([]byte(`{"program":"1-Crore Club"}`))

	require.NotNil(t, verr)
	assert.Equal(t, "leadId", verr.Field)
}

func TestValidateCreateApplicationRejectsBadStatus(t *testing.T) {
	_, verr := ValidateCreateApplication([]byte(`{"leadId":3,"program":"1-Crore Club","status":"Enrolled"}`))

	require.NotNil(t, verr)
	assert.Equal(t, "status", verr.Field)
}

func TestValidateUpdateApplicationPartial(t *testing.T) {
	validated, verr := ValidateUpdateApplication([]byte(`{"notes":"call back Monday"}`))

	require.Nil(t, verr)
	input := validated.(UpdateApplicationInput)
	require.NotNil(t, input.Notes)
	assert.Equal(t, "call back Monday", *input.Notes)
	assert.Nil(t, input.Program)
}

func TestValidateSendMessage(t *testing.T) {
	_, verr := ValidateSendMessage([]byte(`{"content":""}`))
	require.NotNil(t, verr)
	assert.Equal(t, "content", verr.Field)

	validated, verr := ValidateSendMessage([]byte(`{"content":"hello"}`))
	require.Nil(t, verr)
	assert.Equal(t, "hello", validated.(SendMessageInput).Content)
}

func TestValidateCreateConversation(t *testing.T) {
	_, verr := ValidateCreateConversation([]byte(`{"title":"  "}`))
	require.NotNil(t, verr)
	assert.Equal(t, "title", verr.Field)
}

func TestValidationErrorSerializesToContractShape(t *testing.T) {
	verr := &ValidationError{Field: "programInterest", Message: "must be one of the offered programs"}

	out, err := json.Marshal(verr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"field":"programInterest","message":"must be one of the offered programs"}`, string(out))
}

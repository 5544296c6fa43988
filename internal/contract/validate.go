package contract

import (
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/ironlady/crm-backend/internal/entity"
)

type CreateLeadInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ProgramInterest string `json:"programInterest"`
	Status          string `json:"status,omitempty"`
}

// UpdateLeadInput is a partial shape: nil means "leave unchanged".
type UpdateLeadInput struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	ProgramInterest *string `json:"programInterest,omitempty"`
	Status          *string `json:"status,omitempty"`
}

type CreateApplicationInput struct {
	LeadID  int64  `json:"leadId"`
	Program string `json:"program"`
	Status  string `json:"status,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type UpdateApplicationInput struct {
	LeadID  *int64  `json:"leadId,omitempty"`
	Program *string `json:"program,omitempty"`
	Status  *string `json:"status,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type CreateConversationInput struct {
	Title string `json:"title"`
}

type SendMessageInput struct {
	Content string `json:"content"`
}

func invalidJSON() *ValidationError {
	return &ValidationError{Field: "body", Message: "invalid JSON"}
}

// ValidateCreateLead enforces the lead schema and applies the status
// default. Returns on the first failing field.
func ValidateCreateLead(body []byte) (any, *ValidationError) {
	var input CreateLeadInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, invalidJSON()
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "is required"}
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, &ValidationError{Field: "email", Message: "is invalid"}
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, &ValidationError{Field: "phone", Message: "is required"}
	}
	if !entity.IsValidProgram(input.ProgramInterest) {
		return nil, &ValidationError{Field: "programInterest", Message: "must be one of the offered programs"}
	}
	if input.Status == "" {
		input.Status = entity.DefaultLeadStatus
	} else if !entity.IsValidLeadStatus(input.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be a valid lead status"}
	}

	return input, nil
}

func ValidateUpdateLead(body []byte) (any, *ValidationError) {
	var input UpdateLeadInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, invalidJSON()
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}
	if input.Email != nil {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return nil, &ValidationError{Field: "email", Message: "is invalid"}
		}
	}
	if input.Phone != nil && strings.TrimSpace(*input.Phone) == "" {
		return nil, &ValidationError{Field: "phone", Message: "must not be empty"}
	}
	if input.ProgramInterest != nil && !entity.IsValidProgram(*input.ProgramInterest) {
		return nil, &ValidationError{Field: "programInterest", Message: "must be one of the offered programs"}
	}
	if input.Status != nil && !entity.IsValidLeadStatus(*input.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be a valid lead status"}
	}

	return input, nil
}

// ValidateCreateApplication checks shape only. The leadId is NOT checked
// for existence here; a dangling reference is accepted and later reads
// simply return the application without its lead.
func ValidateCreateApplication(body []byte) (any, *ValidationError) {
	var input CreateApplicationInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, invalidJSON()
	}

	if input.LeadID <= 0 {
		return nil, &ValidationError{Field: "leadId", Message: "is required"}
	}
	if !entity.IsValidProgram(input.Program) {
		return nil, &ValidationError{Field: "program", Message: "must be one of the offered programs"}
	}
	if input.Status == "" {
		input.Status = entity.DefaultApplicationStatus
	} else if !entity.IsValidApplicationStatus(input.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be a valid application status"}
	}

	return input, nil
}

func ValidateUpdateApplication(body []byte) (any, *ValidationError) {
	var input UpdateApplicationInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, invalidJSON()
	}

	if input.LeadID != nil && *input.LeadID <= 0 {
		return nil, &ValidationError{Field: "leadId", Message: "must be a positive id"}
	}
	if input.Program != nil && !entity.IsValidProgram(*input.Program) {
		return nil, &ValidationError{Field: "program", Message: "must be one of the offered programs"}
	}
	if input.Status != nil && !entity.IsValidApplicationStatus(*input.Status) {
		return nil, &ValidationError{Field: "status", Message: "must be a valid application status"}
	}

	return input, nil
}

func ValidateCreateConversation(body []byte) (any, *ValidationError) {
	var input CreateConversationInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, invalidJSON()
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "is required"}
	}

	return input, nil
}

func ValidateSendMessage(body []byte) (any, *ValidationError) {
	var input SendMessageInput
	if err := json.Unmarshal(body, &input); err != nil {
		return nil, invalidJSON()
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, &ValidationError{Field: "content", Message: "is required"}
	}

	return input, nil
}

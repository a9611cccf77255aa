package types

import (
	"github.com/go-playground/validator/v10"
)

// TriggerRequest is the inbound request that starts a quiz session.
// Fields are pointers so that a missing field is told apart from an empty string:
// only absence (or null) fails validation.
type TriggerRequest struct {
	Email  *string `json:"email" validate:"required"`
	Secret *string `json:"secret" validate:"required"`
	URL    *string `json:"url" validate:"required"`
}

// Validate validates the TriggerRequest using the validator.
func (r *TriggerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Identity returns the identity the session submits with.
func (r *TriggerRequest) Identity() Identity {
	return Identity{Email: deref(r.Email), Secret: deref(r.Secret)}
}

// StartURL returns the first quiz URL, "" when unset.
func (r *TriggerRequest) StartURL() string {
	return deref(r.URL)
}

// StatusResponse is the body returned once a triggered session has finished.
type StatusResponse struct {
	Status string `json:"status"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

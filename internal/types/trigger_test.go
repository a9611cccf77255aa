//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		field   string
	}{
		{
			name: "valid request",
			body: `{"email": "a@example.com", "secret": "s", "url": "https://quiz.example.com/start"}`,
		},
		{
			name: "empty strings are present",
			body: `{"email": "", "secret": "", "url": ""}`,
		},
		{
			name:    "missing email",
			body:    `{"secret": "s", "url": "https://quiz.example.com/start"}`,
			wantErr: true,
			field:   "Email",
		},
		{
			name:    "missing secret",
			body:    `{"email": "a@example.com", "url": "https://quiz.example.com/start"}`,
			wantErr: true,
			field:   "Secret",
		},
		{
			name:    "null url",
			body:    `{"email": "a@example.com", "secret": "s", "url": null}`,
			wantErr: true,
			field:   "URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req TriggerRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			assert.Equal(t, tt.field, validationErrors[0].Field())
		})
	}
}

func TestTriggerRequest_Identity(t *testing.T) {
	email, secret, url := "a@example.com", "s", "https://quiz.example.com"
	req := TriggerRequest{Email: &email, Secret: &secret, URL: &url}
	assert.Equal(t, Identity{Email: "a@example.com", Secret: "s"}, req.Identity())
	assert.Equal(t, "https://quiz.example.com", req.StartURL())

	var empty TriggerRequest
	assert.Equal(t, Identity{}, empty.Identity())
	assert.Equal(t, "", empty.StartURL())
}

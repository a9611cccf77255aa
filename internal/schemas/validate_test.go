package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objectWithURL = `{
	"type": "object",
	"required": ["url"],
	"properties": {"url": {"type": "string"}}
}`

func TestValidator_Valid(t *testing.T) {
	v, err := NewValidator("test", objectWithURL)
	require.NoError(t, err)
	assert.NoError(t, v.Validate(`{"url": "https://quiz.example.com"}`))
}

func TestValidator_MissingField(t *testing.T) {
	v, err := NewValidator("test", objectWithURL)
	require.NoError(t, err)

	err = v.Validate(`{}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "test validation failed")
}

func TestValidator_WrongType(t *testing.T) {
	v, err := NewValidator("test", objectWithURL)
	require.NoError(t, err)

	err = v.Validate(`{"url": 7}`)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "url", validationErr.Errors[0].Field)
}

func TestValidator_InvalidDocument(t *testing.T) {
	v, err := NewValidator("test", objectWithURL)
	require.NoError(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, v.Validate(`{not json`), &loadErr)
}

func TestNewValidator_InvalidSchema(t *testing.T) {
	_, err := NewValidator("broken", `{not a schema`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "broken", loadErr.Schema)
}

func TestValidateSubmissionResult(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "next url", doc: `{"correct": true, "url": "https://quiz.example.com/q2", "reason": null}`},
		{name: "null url", doc: `{"correct": false, "url": null, "reason": "Wrong answer"}`},
		{name: "empty object", doc: `{}`},
		{name: "extra fields ignored", doc: `{"delay": 3, "url": "https://quiz.example.com/q3"}`},
		{name: "string correct", doc: `{"correct": "yes", "url": "https://quiz.example.com/q2"}`},
		{name: "numeric correct", doc: `{"correct": 1}`},
		{name: "object reason", doc: `{"reason": {"detail": "ok"}}`},
		{name: "numeric url", doc: `{"url": 42}`, wantErr: true},
		{name: "array body", doc: `["https://quiz.example.com/q2"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmissionResult(tt.doc)
			if tt.wantErr {
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

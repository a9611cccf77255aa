// Package schemas embeds the JSON Schemas for payloads exchanged with quiz servers.
package schemas

import _ "embed"

// SubmissionResult is the schema a submission endpoint's response must satisfy.
//
//go:embed submission_result.schema.json
var SubmissionResult string

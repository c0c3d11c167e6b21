package importer

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// serviceAccountSchema describes the fields a service-account key must
// carry to be importable. Other fields are copied through untouched.
const serviceAccountSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type", "project_id"],
  "properties": {
    "type": {"const": "service_account"},
    "project_id": {"type": "string", "minLength": 1},
    "client_email": {"type": "string"},
    "private_key": {"type": "string"},
    "private_key_id": {"type": "string"}
  }
}`

var serviceAccountLoader = gojsonschema.NewStringLoader(serviceAccountSchema)

// ValidateServiceAccount checks content against the service-account schema.
func ValidateServiceAccount(content []byte) error {
	result, err := gojsonschema.Validate(serviceAccountLoader, gojsonschema.NewBytesLoader(content))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("not a valid service account: %s", strings.Join(msgs, "; "))
	}
	return nil
}

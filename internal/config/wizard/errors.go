package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errServerURLRequired = errors.New("server URL is required")
	errServerURLInvalid  = errors.New("server URL must start with http:// or https://")
)

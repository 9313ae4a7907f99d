package gravity

import "errors"

// ErrUnknownParam indicates a parameter name that does not map to a Params field.
var ErrUnknownParam = errors.New("gravity: unknown parameter")

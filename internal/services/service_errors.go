// filepath: internal/services/service_errors.go
package services

import "errors"

// Standard errors returned by the service layer.
var (
	ErrValidation    = errors.New("validation failed")
	ErrBatchTooLarge = errors.New("sample batch exceeds the configured size limit")
)

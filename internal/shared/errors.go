// filepath: internal/shared/errors.go
package shared

type Error string

// Implement the error interface
func (e Error) Error() string { return string(e) }

//------------
// Definitions
//------------

// repository errors
const ErrUserNotFound = Error("user not found")
const ErrSettingsNotFound = Error("lifecycle settings not found")

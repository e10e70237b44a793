// Package validate provides input validation for anondocs' domain types.
//
// This package enforces integrity rules at the boundary between user input
// and the storage layer. Each validation function returns nil on success or
// a descriptive error on failure.
//
// # Validation Functions
//
// ID validates document identifiers.
// Title validates document titles against a length limit.
// Tag validates tag strings and Tags normalises a tag set.
// Content validates document body size limits.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidID, ErrInvalidTag, etc.). Use errors.Is() for type-safe
// error checking:
//
//	if errors.Is(err, validate.ErrInvalidTag) {
//	    // handle invalid tag
//	}
package validate

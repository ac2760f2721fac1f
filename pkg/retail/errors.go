package retail

import "errors"

// Sentinel errors returned by the generator. Callers match them with errors.Is.
var (
	// ErrInvalidArgument is returned when a count is negative.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidConfiguration is returned for malformed seeds or configs.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMissingDependency is returned when orders are requested but no
	// customer or product identifiers are available.
	ErrMissingDependency = errors.New("missing dependency")
)

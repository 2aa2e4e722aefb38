package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingTool   = fmt.Errorf("required external tool not found")

	// Collection errors
	ErrCollectionNotFound = fmt.Errorf("collection not found")

	// Fetch errors
	ErrFetchExhausted = fmt.Errorf("all quality profiles exhausted")

	// File errors
	ErrUnsupportedContainer = fmt.Errorf("unsupported container format")
	ErrMalformedName        = fmt.Errorf("filename does not match naming convention")
	ErrReplacementMissing   = fmt.Errorf("rewritten file missing, original preserved")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

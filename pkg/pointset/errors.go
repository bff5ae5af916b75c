package pointset

// Error types attached with errors.WithType. Callers branch on them with
// errors.IsType from go-tooling.
const (
	// ErrTypeInvalidConfiguration reports a configuration that cannot be
	// generated, such as a non-positive count.
	ErrTypeInvalidConfiguration = "invalid_configuration"

	// ErrTypeNoSelection reports a placement request without a target.
	ErrTypeNoSelection = "no_selection"

	// ErrTypeDataError reports an import source that holds too little
	// usable numeric data.
	ErrTypeDataError = "data_error"

	// ErrTypeFormatError reports a file whose extension or header does not
	// match the expected container.
	ErrTypeFormatError = "format_error"
)

package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldFiles  = "files"
	FieldOutput = "output"
	FieldConfig = "config"

	// Advisory fields.
	FieldEndpoint  = "endpoint"
	FieldModel     = "model"
	FieldRequestID = "request_id"
	FieldStatus    = "status"
	FieldDuration  = "duration"
	FieldChars     = "chars"
	FieldLines     = "lines"

	// Statistics fields.
	FieldFindings       = "findings"
	FieldRuleFindings   = "rule_findings"
	FieldAdviceFindings = "advice_findings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule = "rule"
)

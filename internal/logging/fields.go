package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldLine       = "line"
	FieldRule       = "rule"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldJobs       = "jobs"
	FieldRenderer   = "renderer"
	FieldNormalizer = "label_normalizer"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWritten     = "files_written"
	FieldTokens           = "tokens"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

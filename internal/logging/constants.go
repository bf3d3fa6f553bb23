package logging

// Standardized field names for structured logging.
const (
	FieldComponent = "component"
	FieldResource  = "resource"
	FieldFile      = "file_path"
	FieldRecordID  = "record_id"
	FieldCategory  = "category"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldFormat    = "format"
	FieldDataDir   = "data_dir"
)

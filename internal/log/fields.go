package log

// Field names shared across components.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldEntity    = "entity"
	FieldEntityID  = "entity_id"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldCommit    = "commit"
	FieldCount     = "count"
	FieldError     = "error"
)

// Component names.
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentLedger   = "ledger"
	ComponentImporter = "importer"
	ComponentGit      = "git"
	ComponentCLI      = "cli"
)

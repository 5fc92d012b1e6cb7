package types

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
}

type SchemaColumn struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable" yaml:"nullable"`
}

// ExportData is the document written by the export command.
type ExportData struct {
	Timestamp string                   `json:"timestamp" yaml:"timestamp"`
	Version   string                   `json:"version" yaml:"version"`
	Table     string                   `json:"table" yaml:"table"`
	Columns   []SchemaColumn           `json:"columns" yaml:"columns"`
	Rows      []map[string]interface{} `json:"rows" yaml:"rows"`
	Comment   string                   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

package types

// DatasetConfig holds settings for loading the record database.
// Per prd001-ingestion R3.1-R3.3.
type DatasetConfig struct {
	// DataDir is the directory of YAML record files (one record per file).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SampleResolution is the number of evenly spaced points evaluated
	// across a record's validity window (default 100).
	SampleResolution int `json:"sample_resolution" yaml:"sample_resolution"`
}

// ServerConfig holds settings for the dashboard HTTP server.
// Per prd004-dashboard R1.1-R1.3.
type ServerConfig struct {
	// Host is the listen address (default "127.0.0.1").
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 8000).
	Port int `json:"port" yaml:"port"`
}

// ExportFormat selects the export output format.
// Per prd003-export R2.1.
type ExportFormat string

const (
	ExportSQLite ExportFormat = "sqlite"
	ExportCSV    ExportFormat = "csv"
	ExportYAML   ExportFormat = "yaml"
	ExportJSON   ExportFormat = "json"
)

// ExportConfig holds settings for table snapshots.
type ExportConfig struct {
	// OutputDir is the directory export files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects sqlite, csv, yaml, or json.
	Format ExportFormat `json:"format" yaml:"format"`
}

// PreprocessConfig holds settings for converting raw source databases
// into normalized YAML record files. Per prd002-preprocess R1.1.
type PreprocessConfig struct {
	// RawDir is the directory holding the raw source files.
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// OutDir is the directory normalized record files are written to.
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// AppConfig groups all stage configurations.
type AppConfig struct {
	Dataset    DatasetConfig    `json:"dataset" yaml:"dataset"`
	Server     ServerConfig     `json:"server" yaml:"server"`
	Export     ExportConfig     `json:"export" yaml:"export"`
	Preprocess PreprocessConfig `json:"preprocess" yaml:"preprocess"`
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "loregraph/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIEndpoint is the MediaWiki API URL pages are fetched from.
	APIEndpoint string `json:"api_endpoint" yaml:"api_endpoint"`

	// DataDir is the base data directory (contains raw/, parsed/, graph/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// RequestsPerSecond limits the fetch rate against the API (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// Workers is the number of concurrent page downloads (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// MinPageLength is the wikitext length below which a page is treated
	// as a redirect or stub and skipped (default 100).
	MinPageLength int `json:"min_page_length" yaml:"min_page_length"`

	// Pages overrides the built-in entity list when non-empty.
	Pages []string `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// DataDir is the base data directory (contains raw/, parsed/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// BuildConfig holds settings for the build stage.
type BuildConfig struct {
	// DataDir is the base data directory (contains parsed/, graph/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// RecordGlob selects parsed record files under DataDir/parsed
	// (default "**/*.yaml").
	RecordGlob string `json:"record_glob" yaml:"record_glob"`

	// MaxLinks caps how many wikilinks per page become mention triples
	// (default 10).
	MaxLinks int `json:"max_links" yaml:"max_links"`
}

// ValidateConfig holds settings for the validate stage.
type ValidateConfig struct {
	// DataDir is the base data directory (contains graph/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// ShapesFile is an optional YAML shapes file; empty uses the built-in
	// shapes.
	ShapesFile string `json:"shapes_file,omitempty" yaml:"shapes_file,omitempty"`

	// ReportFile is where the JSON validation report is written.
	ReportFile string `json:"report_file" yaml:"report_file"`
}

// ReasonConfig holds settings for the reasoning stage.
type ReasonConfig struct {
	// DataDir is the base data directory (contains graph/).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// SchemaFile is an optional YAML ontology file; empty uses the
	// built-in Middle-earth schema.
	SchemaFile string `json:"schema_file,omitempty" yaml:"schema_file,omitempty"`

	// MaxIterations caps reasoning passes (default 10).
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`

	// Workers sets concurrent rule evaluation within a pass (default 1).
	Workers int `json:"workers" yaml:"workers"`
}

// StoreConfig holds settings for the store stage.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "data/index/loregraph.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServeConfig holds settings for the serve stage.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// DBPath is the SQLite database file to serve from.
	DBPath string `json:"db_path" yaml:"db_path"`

	// Watch reloads the store when the database file changes on disk.
	Watch bool `json:"watch" yaml:"watch"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Parse    ParseConfig    `json:"parse" yaml:"parse"`
	Build    BuildConfig    `json:"build" yaml:"build"`
	Validate ValidateConfig `json:"validate" yaml:"validate"`
	Reason   ReasonConfig   `json:"reason" yaml:"reason"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Serve    ServeConfig    `json:"serve" yaml:"serve"`
}

// DefaultConfig returns the pipeline configuration with every default
// filled in.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "loregraph/0.1 (knowledge-graph builder)",
			},
			APIEndpoint:       "https://tolkiengateway.net/w/api.php",
			DataDir:           "data",
			RequestsPerSecond: 2,
			Workers:           4,
			MinPageLength:     100,
		},
		Parse: ParseConfig{DataDir: "data"},
		Build: BuildConfig{
			DataDir:    "data",
			RecordGlob: "**/*.yaml",
			MaxLinks:   10,
		},
		Validate: ValidateConfig{
			DataDir:    "data",
			ReportFile: "data/validation_report.json",
		},
		Reason: ReasonConfig{
			DataDir:       "data",
			MaxIterations: 10,
			Workers:       1,
		},
		Store: StoreConfig{
			DBPath:     "data/index/loregraph.db",
			MaxResults: 20,
		},
		Serve: ServeConfig{
			Addr:   ":8080",
			DBPath: "data/index/loregraph.db",
		},
	}
}

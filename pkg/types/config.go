// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds settings used when the dataset source is a URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// MaxRetries is the number of retries on HTTP 429 (0 uses the default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// WordCloudConfig holds settings for the title word cloud.
type WordCloudConfig struct {
	// Width and Height are the image size in pixels.
	Width  int `json:"width" yaml:"width" mapstructure:"width" validate:"min=100,max=8192"`
	Height int `json:"height" yaml:"height" mapstructure:"height" validate:"min=100,max=8192"`

	// MaxWords caps the number of distinct words placed in the cloud.
	MaxWords int `json:"max_words" yaml:"max_words" mapstructure:"max_words" validate:"min=1,max=2000"`

	// FontFile is an optional TrueType font; empty uses the embedded Go font.
	FontFile string `json:"font_file,omitempty" yaml:"font_file,omitempty" mapstructure:"font_file" validate:"omitempty,file"`
}

// AnalyzeConfig holds settings for the batch analysis command.
type AnalyzeConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// Data is the metadata CSV path or URL.
	Data string `json:"data" yaml:"data" mapstructure:"data" validate:"required"`

	// OutputDir is where the chart images are written.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir" validate:"required"`

	// TopN is the number of journals in the ranking chart.
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n" validate:"min=1,max=100"`

	// Workbook, when set, also writes the aggregates to this .xlsx path.
	Workbook string `json:"xlsx,omitempty" yaml:"xlsx,omitempty" mapstructure:"xlsx" validate:"omitempty,endswith=.xlsx"`

	WordCloud WordCloudConfig `json:"wordcloud" yaml:"wordcloud" mapstructure:"wordcloud"`
}

// ExplorerConfig holds settings for the interactive explorer server.
type ExplorerConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	// Data is the metadata CSV path or URL.
	Data string `json:"data" yaml:"data" mapstructure:"data" validate:"required"`

	// Addr is the listen address, e.g. ":8501".
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`

	// TopN is the number of journals shown in the ranking chart.
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n" validate:"min=1,max=100"`

	// PreviewRows is the number of filtered records shown in the table.
	PreviewRows int `json:"preview_rows" yaml:"preview_rows" mapstructure:"preview_rows" validate:"min=0,max=1000"`

	// DefaultRange is the initial year selection before clamping.
	DefaultRange YearRange `json:"default_range" yaml:"default_range" mapstructure:"default_range"`
}

// SummarizeConfig holds settings for the summarize command.
type SummarizeConfig struct {
	HTTP HTTPConfig `json:"http" yaml:"http" mapstructure:"http"`

	Data   string `json:"data" yaml:"data" mapstructure:"data" validate:"required"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=yaml json"`
	TopN   int    `json:"top_n" yaml:"top_n" mapstructure:"top_n" validate:"min=1,max=100"`

	// PreviewRows is the number of records included in the output.
	PreviewRows int `json:"preview_rows" yaml:"preview_rows" mapstructure:"preview_rows" validate:"min=0,max=1000"`

	// Range, when non-nil, restricts the summary to an inclusive year window.
	Range *YearRange `json:"range,omitempty" yaml:"range,omitempty" mapstructure:"range"`
}

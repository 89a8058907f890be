package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// Valid reports whether f is a known report format
func (f OutputFormat) Valid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV, OutputFormatHTML:
		return true
	}
	return false
}

// SortCriteria represents the criteria for sorting results
type SortCriteria string

const (
	SortByScore    SortCriteria = "score"
	SortByName     SortCriteria = "name"
	SortByLocation SortCriteria = "location"
	SortBySize     SortCriteria = "size"
)

// Valid reports whether s is a known sort order. Empty selects the default.
func (s SortCriteria) Valid() bool {
	switch s {
	case "", SortByScore, SortByName, SortByLocation, SortBySize:
		return true
	}
	return false
}

// FileReader defines the interface for collecting analyzable source files
type FileReader interface {
	// CollectSourceFiles finds all files a frontend can read in the given paths
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsValidSourceFile checks if a frontend is registered for the file
	IsValidSourceFile(path string) bool

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool { return &b }

// BoolValue dereferences b, or returns defaultVal when b is unset
func BoolValue(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

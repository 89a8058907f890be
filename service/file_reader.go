package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/parser"
)

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct {
	registry *parser.Registry
}

// NewFileReader creates a new file reader service that accepts every file
// the default frontends can read
func NewFileReader() *FileReaderImpl {
	return NewFileReaderWithRegistry(parser.DefaultRegistry())
}

// NewFileReaderWithRegistry creates a file reader bound to a frontend registry
func NewFileReaderWithRegistry(registry *parser.Registry) *FileReaderImpl {
	if registry == nil {
		registry = parser.DefaultRegistry()
	}
	return &FileReaderImpl{registry: registry}
}

// CollectSourceFiles finds all readable source files in the given paths.
// The result is sorted and free of duplicates.
func (f *FileReaderImpl) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	if err := f.ValidatePatterns(includePatterns); err != nil {
		return nil, err
	}
	if err := f.ValidatePatterns(excludePatterns); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			for _, file := range dirFiles {
				add(file)
			}
			continue
		}

		// Explicitly named files only need a frontend
		if f.IsValidSourceFile(path) && !f.isExcluded(path, filepath.Base(path), excludePatterns) {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidSourceFile checks if a frontend is registered for the file
func (f *FileReaderImpl) IsValidSourceFile(path string) bool {
	return f.registry.Supports(path)
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// collectFromDirectory collects source files from a directory
func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped
			return nil
		}

		if path != dirPath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == dirPath {
				return nil
			}
			if !recursive || f.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !f.IsValidSourceFile(path) {
			return nil
		}
		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		if f.shouldIncludeFile(filepath.ToSlash(rel), includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile checks a slash-separated path relative to the walk root
// against the include and exclude globs
func (f *FileReaderImpl) shouldIncludeFile(rel string, includePatterns, excludePatterns []string) bool {
	base := filepath.Base(rel)
	if f.isExcluded(rel, base, excludePatterns) {
		return false
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchGlob(pattern, rel) || matchGlob(pattern, base) {
			return true
		}
	}
	return false
}

func (f *FileReaderImpl) isExcluded(path, base string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matchGlob(pattern, filepath.ToSlash(path)) || matchGlob(pattern, base) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, path string) bool {
	matched, err := doublestar.Match(pattern, path)
	return err == nil && matched
}

// ValidatePatterns rejects malformed globs such as "src/[a-"
func (f *FileReaderImpl) ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %q", pattern), nil)
		}
	}
	return nil
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	skipDirs := []string{
		"__pycache__",
		"node_modules",
		"venv",
		"env",
		"build",
		"dist",
		"target",
		"out",
		"*.egg-info",
	}

	dirLower := strings.ToLower(dirName)
	for _, skipDir := range skipDirs {
		if matched, _ := filepath.Match(skipDir, dirLower); matched {
			return true
		}
	}

	return false
}

// ValidatePaths validates that all provided paths exist and are accessible
func (f *FileReaderImpl) ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return domain.NewFileNotFoundError(path, err)
			}
			return domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", path), err)
		}
	}
	return nil
}

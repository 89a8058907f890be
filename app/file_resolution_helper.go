package app

import "github.com/ludo-technologies/godscn/domain"

// ResolveFilePaths turns the input paths into the source files to analyze.
// Paths that all name existing source files pass through untouched, so the
// include and exclude globs only filter directory walks.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	if allSourceFiles(fileReader, paths) {
		return paths, nil
	}
	return fileReader.CollectSourceFiles(paths, recursive, includePatterns, excludePatterns)
}

func allSourceFiles(fileReader domain.FileReader, paths []string) bool {
	for _, p := range paths {
		if !fileReader.IsValidSourceFile(p) {
			return false
		}
		if ok, err := fileReader.FileExists(p); err != nil || !ok {
			return false
		}
	}
	return true
}

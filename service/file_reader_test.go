package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/godscn/domain"
)

func createTestFile(t *testing.T, dirPath, fileName, content string) string {
	t.Helper()
	filePath := filepath.Join(dirPath, fileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	return filePath
}

func createTestDirectoryStructure(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	createTestFile(t, tmpDir, "Shop.java", "class Shop {}")
	createTestFile(t, tmpDir, "order.py", "class Order: pass")
	createTestFile(t, tmpDir, "model.yaml", "version: \"1\"\nclasses: []\n")
	createTestFile(t, tmpDir, "README.md", "# docs")
	createTestFile(t, tmpDir, "pkg/inner/Cart.java", "class Cart {}")
	createTestFile(t, tmpDir, "pkg/test/CartTest.java", "class CartTest {}")
	createTestFile(t, tmpDir, ".hidden/Secret.java", "class Secret {}")
	createTestFile(t, tmpDir, "build/Generated.java", "class Generated {}")
	createTestFile(t, tmpDir, "node_modules/lib.py", "class Lib: pass")

	return tmpDir
}

func relativePaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestFileReader_CollectSourceFiles(t *testing.T) {
	root := createTestDirectoryStructure(t)
	fr := NewFileReader()

	tests := []struct {
		name      string
		recursive bool
		include   []string
		exclude   []string
		expected  []string
	}{
		{
			name:      "recursive with default patterns",
			recursive: true,
			include:   domain.DefaultIncludePatterns,
			expected: []string{
				"Shop.java", "model.yaml", "order.py",
				"pkg/inner/Cart.java", "pkg/test/CartTest.java",
			},
		},
		{
			name:      "non recursive",
			recursive: false,
			include:   domain.DefaultIncludePatterns,
			expected:  []string{"Shop.java", "model.yaml", "order.py"},
		},
		{
			name:      "java only",
			recursive: true,
			include:   []string{"**/*.java"},
			expected:  []string{"Shop.java", "pkg/inner/Cart.java", "pkg/test/CartTest.java"},
		},
		{
			name:      "exclude directory with globstar",
			recursive: true,
			include:   []string{"**/*.java"},
			exclude:   []string{"pkg/test/**"},
			expected:  []string{"Shop.java", "pkg/inner/Cart.java"},
		},
		{
			name:      "exclude by base name",
			recursive: true,
			include:   []string{"**/*.java"},
			exclude:   []string{"*Test.java"},
			expected:  []string{"Shop.java", "pkg/inner/Cart.java"},
		},
		{
			name:      "no include patterns accepts every readable file",
			recursive: true,
			expected: []string{
				"Shop.java", "model.yaml", "order.py",
				"pkg/inner/Cart.java", "pkg/test/CartTest.java",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := fr.CollectSourceFiles([]string{root}, tt.recursive, tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, relativePaths(t, root, files))
		})
	}
}

func TestFileReader_CollectSourceFiles_ExplicitFiles(t *testing.T) {
	root := createTestDirectoryStructure(t)
	fr := NewFileReader()

	shop := filepath.Join(root, "Shop.java")
	readme := filepath.Join(root, "README.md")
	files, err := fr.CollectSourceFiles([]string{shop, readme, shop, root}, false, []string{"**/*.py"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shop.java", "order.py"}, relativePaths(t, root, files))
}

func TestFileReader_CollectSourceFiles_Errors(t *testing.T) {
	fr := NewFileReader()

	_, err := fr.CollectSourceFiles([]string{filepath.Join(t.TempDir(), "missing")}, true, nil, nil)
	require.Error(t, err)
	var domainErr domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrCodeFileNotFound, domainErr.Code)

	_, err = fr.CollectSourceFiles([]string{t.TempDir()}, true, []string{"src/[a-"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")
}

func TestFileReader_IsValidSourceFile(t *testing.T) {
	fr := NewFileReader()

	tests := []struct {
		path     string
		expected bool
	}{
		{"Shop.java", true},
		{"src/Shop.JAVA", true},
		{"order.py", true},
		{"model.yml", true},
		{"model.json", true},
		{"types.pyi", false},
		{"README.md", false},
		{"Makefile", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, fr.IsValidSourceFile(tt.path))
		})
	}
}

func TestFileReader_ReadFileAndExists(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "Shop.java", "class Shop {}")
	fr := NewFileReader()

	content, err := fr.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class Shop {}", string(content))

	_, err = fr.ReadFile(filepath.Join(dir, "nope.java"))
	assert.Error(t, err)

	exists, err := fr.FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fr.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, exists, "directories are not files")

	exists, err = fr.FileExists(filepath.Join(dir, "nope.java"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileReader_ValidatePaths(t *testing.T) {
	fr := NewFileReader()
	dir := t.TempDir()

	assert.NoError(t, fr.ValidatePaths([]string{dir}))
	assert.Error(t, fr.ValidatePaths([]string{dir, filepath.Join(dir, "missing")}))
}

func TestFileReader_shouldSkipDirectory(t *testing.T) {
	fr := NewFileReader()
	assert.True(t, fr.shouldSkipDirectory("node_modules"))
	assert.True(t, fr.shouldSkipDirectory("Build"))
	assert.True(t, fr.shouldSkipDirectory("godscn.egg-info"))
	assert.False(t, fr.shouldSkipDirectory("src"))
}

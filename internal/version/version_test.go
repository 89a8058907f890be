package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ludo-technologies/godscn/internal/version"
)

func TestShort(t *testing.T) {
	assert.NotEmpty(t, version.Short())
	assert.Equal(t, version.Current().Version, version.Short())
}

func TestInfo(t *testing.T) {
	info := version.Info()

	assert.True(t, strings.HasPrefix(info, "godscn "+version.Short()))
	assert.Contains(t, info, runtime.Version())
	assert.Contains(t, info, runtime.GOOS+"/"+runtime.GOARCH)
	for _, field := range []string{"Commit:", "Built:", "Go:", "OS/Arch:"} {
		assert.Contains(t, info, field)
	}
}

func TestCurrent_PrefersLinkerValues(t *testing.T) {
	original := version.Commit
	defer func() { version.Commit = original }()

	version.Commit = "abc1234"
	assert.Equal(t, "abc1234", version.Current().Commit)
	assert.Contains(t, version.Info(), "Commit: abc1234")
}

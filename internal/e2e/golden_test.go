package e2e

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dusk-indust/embedgen/internal/config"
	"github.com/dusk-indust/embedgen/internal/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

var goldenDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// fixturesDir returns the path to the testdata/fixtures directory.
func fixturesDir() string {
	return filepath.Join("..", "..", "testdata", "fixtures")
}

// goldenPath returns the path to the expected generated unit.
func goldenPath() string {
	return filepath.Join("..", "..", "testdata", "golden", "assets.cpp")
}

// generateFixtures loads the fixture manifest and generates its single job
// with a pinned date.
func generateFixtures(t *testing.T) string {
	t.Helper()

	m, err := config.Load(fixturesDir())
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	require.Len(t, m.Jobs, 1)

	src, err := embed.Generate(m.BuildJobs()[0], m.Options(), goldenDate)
	require.NoError(t, err)
	return src
}

// TestGolden compares generated output against the golden file. If the golden
// file does not exist, the test is skipped with a message to run with -update.
func TestGolden(t *testing.T) {
	actual := generateFixtures(t)

	golden, err := os.ReadFile(goldenPath())
	if os.IsNotExist(err) {
		t.Skip("golden file not found; run with -update to generate")
		return
	}
	require.NoError(t, err)

	assert.Equal(t, string(golden), actual, "generated output does not match golden file")
}

// TestUpdateGolden regenerates the golden file.
// Run with: go test -run TestUpdateGolden ./internal/e2e/ -update
func TestUpdateGolden(t *testing.T) {
	if !*update {
		t.Skip("skipping golden file update; run with -update flag")
	}

	actual := generateFixtures(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath()), 0o755))
	require.NoError(t, os.WriteFile(goldenPath(), []byte(actual), 0o644))
	t.Logf("updated %s", goldenPath())
}

// TestGolden_RoundTrip checks that Run writes exactly what Generate returns.
func TestGolden_RoundTrip(t *testing.T) {
	m, err := config.Load(fixturesDir())
	require.NoError(t, err)

	job := m.BuildJobs()[0]
	job.Output = filepath.Join(t.TempDir(), "assets")
	require.NoError(t, embed.Run(job, m.Options(), goldenDate))

	written, err := os.ReadFile(job.OutputPath())
	require.NoError(t, err)
	assert.Equal(t, generateFixtures(t), string(written))
}

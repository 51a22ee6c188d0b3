package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDescriptor = `
[BasePath("/api")]
interface PingApi {
	[Get("/ping/{name}")]
	method Ping([Path] name: string) -> string
}
`

const invalidDescriptor = `
interface BrokenApi {
	[Get("/accounts/{accountId}")]
	method Get()
}
`

func writeDescriptor(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunner_GeneratesClient(t *testing.T) {
	tempDir := t.TempDir()
	descriptorPath := writeDescriptor(t, tempDir, "ping.rbd", validDescriptor)
	outDir := filepath.Join(tempDir, "generated")

	runner := NewRunner(Options{
		DescriptorPaths: []string{descriptorPath},
		OutDir:          outDir,
		PackageName:     "pingclient",
	}, NewConsoleReporter(false))

	summary, err := runner.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, summary.DescriptorsParsed)
	assert.Equal(t, 1, summary.ClientsGenerated)
	require.Len(t, summary.GeneratedFiles, 1)

	content, err := os.ReadFile(summary.GeneratedFiles[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "package pingclient")
	assert.Contains(t, string(content), "type PingApiClient struct {")
	assert.Contains(t, string(content), `restbound.NewRequestInfo("GET", "/ping/{name}")`)
}

func TestRunner_FailsOnValidationErrors(t *testing.T) {
	tempDir := t.TempDir()
	descriptorPath := writeDescriptor(t, tempDir, "broken.rbd", invalidDescriptor)

	runner := NewRunner(Options{
		DescriptorPaths: []string{descriptorPath},
		OutDir:          tempDir,
	}, NewConsoleReporter(false))

	_, err := runner.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")

	// No client file was written for the failed interface
	entries, readErr := os.ReadDir(tempDir)
	require.NoError(t, readErr)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), "_client.go")
	}
}

func TestRunner_MissingDescriptor(t *testing.T) {
	runner := NewRunner(Options{
		DescriptorPaths: []string{"does-not-exist.rbd"},
		OutDir:          t.TempDir(),
	}, NewConsoleReporter(false))

	_, err := runner.Run()
	require.Error(t, err)
}

func TestRunner_NoDescriptors(t *testing.T) {
	runner := NewRunner(Options{}, NewConsoleReporter(false))
	_, err := runner.Run()
	require.Error(t, err)
}

func TestModuleResolver_CustomModuleWins(t *testing.T) {
	resolver := NewModuleResolver()
	name, err := resolver.ResolveModuleName("github.com/example/custom")
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/custom", name)
}

func TestModuleResolver_ParsesGoMod(t *testing.T) {
	tempDir := t.TempDir()
	goModPath := filepath.Join(tempDir, "go.mod")
	require.NoError(t, os.WriteFile(goModPath, []byte("module github.com/example/app\n\ngo 1.25\n"), 0644))

	resolver := NewModuleResolver()
	name, err := resolver.parseModuleName(goModPath)
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/app", name)
}

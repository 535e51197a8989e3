package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/internal/session"
)

const triangleSTL = `solid right
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 3 0 0
      vertex 0 4 0
    endloop
  endfacet
endsolid right
`

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "right.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangleSTL), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMeasureBetweenVertices(t *testing.T) {
	path := writeModel(t)

	out, err := run(t, "measure", path, "--x1", "3", "--y1", "0", "--z1", "0", "--x2", "0", "--y2", "4", "--z2", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Direct distance: 5.0000")
	assert.Contains(t, out, "dX: 3.0000  dY: 4.0000  dZ: 0.0000")
	assert.NotContains(t, out, "Nearest vertex")
}

func TestMeasureSnapsToNearestVertex(t *testing.T) {
	path := writeModel(t)

	out, err := run(t, "measure", path,
		"--x1", "3.1", "--y1", "0", "--z1", "0",
		"--x2", "0", "--y2", "4", "--z2", "0",
		"--precision", "2", "--unit", "mm")
	require.NoError(t, err)

	assert.Contains(t, out, "Nearest vertex: (3.000, 0.000, 0.000) (distance: 0.10 mm)")
	assert.Contains(t, out, "Distance between nearest vertices: 5.00 mm")
}

func TestMeasureOnEmptyModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.stl")
	require.NoError(t, os.WriteFile(path, []byte("solid empty\nendsolid empty\n"), 0o644))

	out, err := run(t, "measure", path, "--x1", "0", "--y1", "0", "--z1", "0", "--x2", "3", "--y2", "4", "--z2", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "Direct distance: 5.0000")
	assert.NotContains(t, out, "Nearest vertex")
	assert.NotContains(t, out, "Inf")
}

func TestMeasureRequiresAllCoordinates(t *testing.T) {
	path := writeModel(t)

	_, err := run(t, "measure", path, "--x1", "1")
	assert.Error(t, err)
}

func TestInfoPrintsStatistics(t *testing.T) {
	path := writeModel(t)

	out, err := run(t, "info", path, "--longest", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Name: right")
	assert.Contains(t, out, "Triangles: 1")
	assert.Contains(t, out, "Surface Area: 6.000000")
	assert.Contains(t, out, "Maximum: 5.000000 units")
	assert.Contains(t, out, "Top 1 Longest Edges")
}

func TestUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := run(t, "info", path)
	assert.ErrorIs(t, err, session.ErrUnsupportedFormat)
}

func TestMissingFile(t *testing.T) {
	_, err := run(t, "info", filepath.Join(t.TempDir(), "missing.stl"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 1, strings.Count(err.Error(), "failed to load"), err.Error())
}

func TestVersionSkipsSetup(t *testing.T) {
	out, err := run(t, "version", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "stlmeasure")
}

func TestConfigInitWritesEffectiveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings", "stlmeasure.toml")

	out, err := run(t, "config", "init", path, "--unit", "mm", "--snap", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[measurement]")
	assert.Regexp(t, `unit = ['"]mm['"]`, string(data))

	out, err = run(t, "config", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, path+": ok")

	_, err = run(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestConfigCheckRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("measurement:\n  modifier: hyper\n"), 0o644))

	_, err := run(t, "config", "check", path)
	assert.ErrorContains(t, err, "hyper")

	// setup would fail on this file; check still runs
	_, err = run(t, "config", "check", "--config", path, path)
	assert.ErrorContains(t, err, "hyper")
}

func TestConfigShow(t *testing.T) {
	out, err := run(t, "config", "show", "--precision", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "precision: 3")

	out, err = run(t, "config", "show", "--toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[window]")
}

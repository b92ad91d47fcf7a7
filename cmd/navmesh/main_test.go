package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var squareWithHole = filepath.Join("..", "..", "floorplan", "testdata", "square_with_hole.yaml")

func parse(t *testing.T, args ...string) string {
	t.Helper()
	command, err := app.Parse(args)
	require.NoError(t, err)
	return command
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestTriangulateCommand(t *testing.T) {
	assert.Equal(t, "triangulate", parse(t, "triangulate", squareWithHole, "--format", "csv"))

	var out bytes.Buffer
	require.NoError(t, runTriangulate(config.Default(), &out))
	assert.Len(t, lines(out.String()), 8)

	parse(t, "triangulate", squareWithHole, "--format", "yaml")
	out.Reset()
	require.NoError(t, runTriangulate(config.Default(), &out))
	assert.Contains(t, out.String(), "triangles:")
}

func TestMeshCommand(t *testing.T) {
	parse(t, "mesh", squareWithHole, "--describe")

	var out bytes.Buffer
	require.NoError(t, runMesh(config.Default(), &out))
	assert.Len(t, lines(out.String()), 8)
	assert.Contains(t, out.String(), "(7, 7)")
}

func TestPathCommand(t *testing.T) {
	parse(t, "path", squareWithHole, "--from", "1,5", "--to", "9,5", "--random", "0")

	var out bytes.Buffer
	require.NoError(t, runPath(config.Default(), &out))
	assert.Contains(t, out.String(), "length 9.657")

	parse(t, "path", squareWithHole, "--random", "3", "--seed", "7")
	out.Reset()
	require.NoError(t, runPath(config.Default(), &out))
	assert.Len(t, lines(out.String()), 3)

	parse(t, "path", squareWithHole, "--from", "5,5", "--to", "1,1", "--random", "0")
	assert.Error(t, runPath(config.Default(), &out), "start is inside the hole")
}

func TestDrawCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mesh.png")
	parse(t, "draw", squareWithHole, "--out", out, "--from", "1,5", "--to", "9,5")

	cfg := config.Default()
	cfg.Mesh.Strategy = "earclip"
	require.NoError(t, runDraw(cfg))
	assert.FileExists(t, out)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("1.5, -2")
	require.NoError(t, err)
	assert.Equal(t, geom.FloatPoint(1.5, -2), p)

	for _, s := range []string{"", "1", "1,2,3", "x,2", "1,y"} {
		_, err := parsePoint(s)
		assert.Error(t, err, s)
	}
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "(0, 0) (1.5, 2)", formatPath([]geom.RationalPoint{
		geom.FloatPoint(0, 0),
		geom.FloatPoint(1.5, 2),
	}))
}

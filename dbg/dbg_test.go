package dbg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitSquare(t *testing.T) *mesh.NavMesh {
	t.Helper()
	m, err := mesh.Build([]geom.Triangle{
		geom.NewTriangle(geom.IntPoint{X: 0, Y: 0}, geom.IntPoint{X: 10, Y: 0}, geom.IntPoint{X: 10, Y: 10}),
		geom.NewTriangle(geom.IntPoint{X: 0, Y: 0}, geom.IntPoint{X: 10, Y: 10}, geom.IntPoint{X: 0, Y: 10}),
	}, 5)
	require.NoError(t, err)
	return m
}

func TestName(t *testing.T) {
	var nilMesh *mesh.NavMesh
	assert.Equal(t, "Ø", Name(nil))
	assert.Equal(t, "Ø", Name(nilMesh))

	name := Name(42)
	assert.NotEmpty(t, name)
	assert.Equal(t, name, Name(42), "names are memoized")
}

func TestDescribe(t *testing.T) {
	m := splitSquare(t)

	description := DescribeMesh(m)
	assert.Contains(t, description, Name(0))
	assert.Contains(t, description, Name(1))
	assert.Contains(t, description, "(10, 10)")

	corridor := DescribeCorridor(m, []int{0, 1})
	assert.Contains(t, corridor, Name(0))
	assert.Contains(t, corridor, Name(1))

	assert.Contains(t, Dump(m.Node(0)), "Neighbors")
}

func TestDraw(t *testing.T) {
	m := splitSquare(t)
	d := Draw(m, 3).Path([]geom.RationalPoint{
		geom.FloatPoint(8, 1),
		geom.FloatPoint(1, 8),
	})
	assert.Equal(t, 3*10+2*drawPadding, d.Width())
	assert.Equal(t, 3*10+2*drawPadding, d.Height())

	filename := filepath.Join(t.TempDir(), "mesh.png")
	require.NoError(t, d.SavePNG(filename))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDraw_Empty(t *testing.T) {
	m, err := mesh.Build(nil, 1)
	require.NoError(t, err)
	d := Draw(m, 2).Path(nil)
	assert.Equal(t, 2*drawPadding, d.Width())
}

// Command navmesh builds navigation meshes from floor plan files and plans
// paths on them.
//
//	navmesh triangulate plan.svg --format yaml
//	navmesh mesh plan.yaml --describe
//	navmesh path plan.csv --from 1,1 --to 9,9
//	navmesh path plan.csv --random 5 --seed 7
//	navmesh draw plan.svg --out mesh.png --from 1,1 --to 9,9
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/osuushi/navmesh"
	"github.com/osuushi/navmesh/dbg"
	"github.com/osuushi/navmesh/floorplan"
	"github.com/osuushi/navmesh/geom"
	"github.com/osuushi/navmesh/internal/config"
	"github.com/osuushi/navmesh/internal/logger"
	"github.com/osuushi/navmesh/pathfind"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app   = kingpin.New("navmesh", "Navigation meshes for 2D floor plans.")
	flags = config.RegisterFlags(app)

	triangulateCmd    = app.Command("triangulate", "Triangulate a floor plan and print the triangles.")
	triangulateFile   = triangulateCmd.Arg("floorplan", "Floor plan file (.yaml, .csv or .svg).").Required().ExistingFile()
	triangulateFormat = triangulateCmd.Flag("format", "Output format.").Default("csv").Enum("csv", "yaml")

	meshCmd      = app.Command("mesh", "Build a navigation mesh and print it.")
	meshFile     = meshCmd.Arg("floorplan", "Floor plan file (.yaml, .csv or .svg).").Required().ExistingFile()
	meshDescribe = meshCmd.Flag("describe", "Print readable, colored node names.").Bool()
	meshDump     = meshCmd.Flag("dump", "Pretty print the whole mesh structure.").Bool()

	pathCmd    = app.Command("path", "Plan paths on a floor plan.")
	pathFile   = pathCmd.Arg("floorplan", "Floor plan file (.yaml, .csv or .svg).").Required().ExistingFile()
	pathFrom   = pathCmd.Flag("from", "Start point, as x,y.").String()
	pathTo     = pathCmd.Flag("to", "Goal point, as x,y.").String()
	pathRandom = pathCmd.Flag("random", "Plan this many paths between random points instead.").Int()
	pathSeed   = pathCmd.Flag("seed", "Seed for --random.").Default("1").Int64()

	drawCmd  = app.Command("draw", "Render a navigation mesh, and optionally a path, to PNG.")
	drawFile = drawCmd.Arg("floorplan", "Floor plan file (.yaml, .csv or .svg).").Required().ExistingFile()
	drawOut  = drawCmd.Flag("out", "PNG file to write.").Short('o').Default("navmesh.png").String()
	drawFrom = drawCmd.Flag("from", "Path start point, as x,y.").String()
	drawTo   = drawCmd.Flag("to", "Path goal point, as x,y.").String()
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := flags.Resolve()
	app.FatalIfError(err, "config")
	app.FatalIfError(logger.Init(cfg.Logging.Level, cfg.Logging.LogFile), "logger")
	defer logger.Sync()

	switch command {
	case triangulateCmd.FullCommand():
		err = runTriangulate(cfg, os.Stdout)
	case meshCmd.FullCommand():
		err = runMesh(cfg, os.Stdout)
	case pathCmd.FullCommand():
		err = runPath(cfg, os.Stdout)
	case drawCmd.FullCommand():
		err = runDraw(cfg)
	}
	if err != nil {
		logger.Named("cli").Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func options(cfg *config.Config) ([]navmesh.Option, error) {
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}
	return []navmesh.Option{navmesh.WithStrategy(strategy)}, nil
}

func loadMesh(cfg *config.Config, path string) (*navmesh.NavMesh, error) {
	plan, err := floorplan.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := options(cfg)
	if err != nil {
		return nil, err
	}
	m, err := navmesh.BuildNavMesh(plan.Outer, plan.Holes, cfg.Mesh.CellSize, opts...)
	if err != nil {
		return nil, errors.WithMessagef(err, "building mesh for %s", path)
	}
	logger.Info("built navmesh",
		zap.String("file", path),
		zap.String("strategy", cfg.Mesh.Strategy),
		zap.Int("nodes", m.Len()),
	)
	return m, nil
}

func runTriangulate(cfg *config.Config, w io.Writer) error {
	plan, err := floorplan.Load(*triangulateFile)
	if err != nil {
		return err
	}
	opts, err := options(cfg)
	if err != nil {
		return err
	}
	triangles, err := navmesh.Triangulate(plan.Outer, plan.Holes, opts...)
	if err != nil {
		return err
	}
	logger.Info("triangulated", zap.String("file", *triangulateFile), zap.Int("triangles", len(triangles)))

	if *triangulateFormat == "yaml" {
		return floorplan.WriteTrianglesYAML(w, triangles)
	}
	return floorplan.WriteTrianglesCSV(w, triangles)
}

func runMesh(cfg *config.Config, w io.Writer) error {
	m, err := loadMesh(cfg, *meshFile)
	if err != nil {
		return err
	}
	switch {
	case *meshDump:
		fmt.Fprintln(w, dbg.Dump(m.Nodes))
	case *meshDescribe:
		fmt.Fprintln(w, dbg.DescribeMesh(m))
	default:
		fmt.Fprintln(w, m)
		fmt.Fprintln(w, m.Grid())
	}
	return nil
}

func runPath(cfg *config.Config, w io.Writer) error {
	m, err := loadMesh(cfg, *pathFile)
	if err != nil {
		return err
	}

	type query struct{ src, dst geom.RationalPoint }
	var queries []query
	if *pathRandom > 0 {
		rng := rand.New(rand.NewSource(*pathSeed))
		for i := 0; i < *pathRandom; i++ {
			src, err := randomPoint(m, rng)
			if err != nil {
				return err
			}
			dst, err := randomPoint(m, rng)
			if err != nil {
				return err
			}
			queries = append(queries, query{src, dst})
		}
	} else {
		src, err := parsePoint(*pathFrom)
		if err != nil {
			return errors.WithMessage(err, "--from")
		}
		dst, err := parsePoint(*pathTo)
		if err != nil {
			return errors.WithMessage(err, "--to")
		}
		queries = append(queries, query{src, dst})
	}

	for _, q := range queries {
		path, err := navmesh.PlanPath(m, q.src, q.dst)
		if errors.Is(err, navmesh.ErrNoPath) {
			fmt.Fprintf(w, "%s -> %s: no path\n", q.src, q.dst)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s -> %s (length %.3f): %s\n", q.src, q.dst, pathfind.PathLength(path), formatPath(path))
	}
	return nil
}

func runDraw(cfg *config.Config) error {
	m, err := loadMesh(cfg, *drawFile)
	if err != nil {
		return err
	}
	d := dbg.Draw(m, cfg.Debug.DrawScale)

	if *drawFrom != "" || *drawTo != "" {
		src, err := parsePoint(*drawFrom)
		if err != nil {
			return errors.WithMessage(err, "--from")
		}
		dst, err := parsePoint(*drawTo)
		if err != nil {
			return errors.WithMessage(err, "--to")
		}
		path, err := navmesh.PlanPath(m, src, dst)
		if err != nil {
			return err
		}
		d.Path(path)
	}

	if cfg.Debug.Preview {
		return d.Preview(*drawOut)
	}
	return d.SavePNG(*drawOut)
}

// randomPoint picks a uniformly random node, then a uniformly random point in
// it. Converting to exact coordinates can nudge a point off a boundary edge,
// so those are retried.
func randomPoint(m *navmesh.NavMesh, rng *rand.Rand) (geom.RationalPoint, error) {
	if m.Len() == 0 {
		return geom.RationalPoint{}, errors.New("mesh is empty")
	}
	for attempt := 0; attempt < 100; attempt++ {
		node := m.Node(rng.Intn(m.Len()))
		v := node.Triangle().RandomPoint(rng)
		p := geom.FloatPoint(v.X(), v.Y())
		if len(navmesh.LocatePoint(m, p)) > 0 {
			return p, nil
		}
	}
	return geom.RationalPoint{}, errors.New("could not sample a point on the mesh")
}

func parsePoint(s string) (geom.RationalPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geom.RationalPoint{}, errors.Errorf("invalid point %q, expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.RationalPoint{}, errors.Wrapf(err, "invalid point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.RationalPoint{}, errors.Wrapf(err, "invalid point %q", s)
	}
	return geom.FloatPoint(x, y), nil
}

func formatPath(path []geom.RationalPoint) string {
	parts := make([]string, len(path))
	for i, p := range path {
		v := p.Vec2()
		parts[i] = fmt.Sprintf("(%g, %g)", v.X(), v.Y())
	}
	return strings.Join(parts, " ")
}

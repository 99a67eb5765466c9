package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/soniakeys/exit"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/df07/go-optical-depth/pkg/atmosphere"
	"github.com/df07/go-optical-depth/pkg/config"
	"github.com/df07/go-optical-depth/pkg/core"
	"github.com/df07/go-optical-depth/pkg/lut"
	"github.com/df07/go-optical-depth/pkg/sun"
)

// RayResult is the outcome of a single optical depth query
type RayResult struct {
	Coord         lut.Coord
	Distance      float64
	Exit          core.Vec3 // Where the ray leaves the atmosphere
	OpticalDepth  float64
	Transmittance float64
}

func main() {
	defer exit.Handler()

	// Parse command line flags
	mode := flag.String("mode", "ray", "Mode: 'ray', 'lut' or 'sun'")
	envFile := flag.String("env", ".env", "Optional .env file with atmosphere settings")
	steps := flag.Int("steps", 0, "Override integration steps (0 = keep configured value)")
	altitude := flag.Float64("altitude", 0, "Ray origin altitude above ground in meters")
	zenithDeg := flag.Float64("zenith", 0, "Ray zenith angle in degrees (ray mode)")
	latDeg := flag.Float64("lat", 51.4779, "Site latitude in degrees (sun mode)")
	lonDeg := flag.Float64("lon", 0, "Site longitude in degrees, east positive (sun mode)")
	when := flag.String("time", "", "RFC 3339 time for sun mode (default now)")
	output := flag.String("out", filepath.Join("output", "optical_depth.png"), "Table image path (lut mode)")
	previewWidth := flag.Uint("preview", 0, "Also write a preview scaled to this width (lut mode, 0 = none)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Optical depth lookup tool")
		fmt.Println("Usage: opticaldepth [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Modes:")
		fmt.Println("  ray - optical depth for one ray given altitude and zenith angle")
		fmt.Println("  lut - build the optical depth lookup table and save it as a 16-bit PNG")
		fmt.Println("  sun - optical depth toward the sun from a site at a given time")
		return
	}

	settings, err := config.Load(*envFile)
	if err != nil {
		exit.Log(err)
	}
	if *steps != 0 {
		settings.Atmosphere.IntegrationSteps = *steps
	}

	atmo, err := atmosphere.New(settings.Atmosphere)
	if err != nil {
		exit.Log(err)
	}

	switch *mode {
	case "ray":
		result, err := rayQuery(atmo, *altitude, unit.AngleFromDeg(*zenithDeg))
		if err != nil {
			exit.Log(err)
		}
		printRayResult(result)

	case "sun":
		t := time.Now()
		if *when != "" {
			if t, err = time.Parse(time.RFC3339, *when); err != nil {
				exit.Log(err)
			}
		}
		site := sun.Site(unit.AngleFromDeg(*latDeg), unit.AngleFromDeg(*lonDeg), *altitude, settings.Atmosphere.PlanetRadius)
		sunDir := sun.Direction(t)

		fmt.Printf("Sun zenith angle: %.1d\n", sexa.FmtAngle(sun.Zenith(site, sunDir)))
		if !sun.AboveHorizon(site, sunDir) {
			fmt.Println("Sun is below the horizon; the ray crosses the planet")
		}
		result, err := sunQuery(atmo, site, sunDir)
		if err != nil {
			exit.Log(err)
		}
		printRayResult(result)

	case "lut":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		builder, err := lut.NewBuilder(atmo, settings.Build, lut.NewDefaultLogger())
		if err != nil {
			exit.Log(err)
		}
		table, _, err := builder.Build(ctx)
		if err != nil {
			exit.Log(err)
		}
		if err := writePNG(*output, table.Image()); err != nil {
			exit.Log(err)
		}
		fmt.Printf("Table saved as %s\n", *output)

		if *previewWidth > 0 {
			previewPath := previewFilename(*output)
			if err := writePNG(previewPath, table.Preview(*previewWidth, 0)); err != nil {
				exit.Log(err)
			}
			fmt.Printf("Preview saved as %s\n", previewPath)
		}

	default:
		exit.Log(fmt.Sprintf("Unknown mode: %s", *mode))
	}
}

// rayQuery computes the optical depth of the ray leaving altitude meters
// above ground at the given zenith angle.
func rayQuery(atmo *atmosphere.Atmosphere, altitude float64, zenith unit.Angle) (RayResult, error) {
	cfg := atmo.Config()
	pos, dir := lut.NewMapper(cfg).From2D(lut.CoordForZenith(zenith), altitude/cfg.ShellThickness())
	return query(atmo, core.NewRay(pos, dir))
}

// sunQuery computes the optical depth from site toward the sun
func sunQuery(atmo *atmosphere.Atmosphere, site, sunDir core.Vec3) (RayResult, error) {
	return query(atmo, core.NewRay(site, sunDir.Normalize()))
}

func query(atmo *atmosphere.Atmosphere, ray core.Ray) (RayResult, error) {
	distance, err := atmo.Distance(ray.Origin, ray.Direction)
	if err != nil {
		return RayResult{}, err
	}
	depth := atmo.OpticalDepth(ray.Origin, ray.Direction, distance)

	return RayResult{
		Coord:         lut.NewMapper(atmo.Config()).To2D(ray.Origin, ray.Direction),
		Distance:      distance,
		Exit:          ray.At(distance),
		OpticalDepth:  depth,
		Transmittance: atmosphere.Transmittance(depth),
	}, nil
}

func printRayResult(r RayResult) {
	fmt.Printf("Table coordinate: d=%.6f h=%.6f\n", r.Coord.D, r.Coord.H)
	fmt.Printf("View zenith angle: %.1d\n", sexa.FmtAngle(lut.ViewZenith(r.Coord)))
	fmt.Printf("Distance to atmosphere boundary: %.3f m\n", r.Distance)
	fmt.Printf("Exit point: (%.1f, %.1f, %.1f)\n", r.Exit.X, r.Exit.Y, r.Exit.Z)
	fmt.Printf("Optical depth: %.9g\n", r.OpticalDepth)
	fmt.Printf("Transmittance: %.9g\n", r.Transmittance)
}

// writePNG creates the parent directory and encodes img to path
func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("saving PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// previewFilename turns out/table.png into out/table_preview.png
func previewFilename(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "_preview" + ext
}

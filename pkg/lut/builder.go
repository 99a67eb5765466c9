package lut

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/df07/go-optical-depth/pkg/atmosphere"
	"github.com/df07/go-optical-depth/pkg/core"
)

// DefaultLogger implements core.Logger by writing to the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ErrInvalidBuildConfig is wrapped by every build configuration failure
var ErrInvalidBuildConfig = errors.New("lut: invalid build configuration")

// BuildConfig contains the table dimensions and parallelism settings
type BuildConfig struct {
	Width      int // Cells along D (view direction)
	Height     int // Cells along H (altitude)
	TileSize   int // Size of each square tile of cells
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultBuildConfig returns the lookup size used by the renderer
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Width:      512,
		Height:     8192,
		TileSize:   8, // matches the 8x8 compute workgroup
		NumWorkers: 0,
	}
}

// Validate checks the build configuration
func (c BuildConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: table size must be positive, got %dx%d", ErrInvalidBuildConfig, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidBuildConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must be non-negative, got %d", ErrInvalidBuildConfig, c.NumWorkers)
	}
	return nil
}

// BuildStats summarizes a table build
type BuildStats struct {
	Cells    int           // Cells computed
	Misses   int           // Cells whose ray never reached the boundary (stored as 0)
	MaxDepth float64       // Largest optical depth in the table
	Elapsed  time.Duration // Wall time of the build
	Workers  int           // Workers used
}

// Builder fills optical depth tables
type Builder struct {
	atmo   *atmosphere.Atmosphere
	mapper Mapper
	config BuildConfig
	logger core.Logger
}

// NewBuilder creates a builder. A nil logger discards output.
func NewBuilder(atmo *atmosphere.Atmosphere, config BuildConfig, logger core.Logger) (*Builder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = discardLogger{}
	}
	return &Builder{
		atmo:   atmo,
		mapper: NewMapper(atmo.Config()),
		config: config,
		logger: logger,
	}, nil
}

// Build computes every cell of the table in parallel.
// It returns ctx.Err() if the context is cancelled before all tiles finish.
func (b *Builder) Build(ctx context.Context) (*Table, BuildStats, error) {
	startTime := time.Now()
	table := NewTable(b.config.Width, b.config.Height, b.mapper)
	tiles := NewTileGrid(b.config.Width, b.config.Height, b.config.TileSize)

	pool := NewWorkerPool(b, len(tiles), b.config.NumWorkers)
	pool.Start(ctx)

	b.logger.Printf("Building %dx%d optical depth table (%d tiles, %d workers)\n",
		table.Width, table.Height, len(tiles), pool.NumWorkers())

	for i, tile := range tiles {
		pool.Submit(TileTask{Tile: tile, TaskID: i, Table: table})
	}

	stats := BuildStats{Workers: pool.NumWorkers()}
	var buildErr error
	for range tiles {
		result, ok := pool.Result()
		if !ok {
			break
		}
		if result.Error != nil {
			if buildErr == nil {
				buildErr = result.Error
			}
			continue
		}
		stats.Cells += result.Cells
		stats.Misses += result.Misses
	}
	pool.Stop()

	if buildErr != nil {
		b.logger.Printf("Table build cancelled after %d cells: %v\n", stats.Cells, buildErr)
		return nil, stats, buildErr
	}

	stats.MaxDepth = table.Max()
	stats.Elapsed = time.Since(startTime)
	b.logger.Printf("Table built in %v: %d cells, %d misses, max depth %g\n",
		stats.Elapsed, stats.Cells, stats.Misses, stats.MaxDepth)

	return table, stats, nil
}

// fillTile computes every cell inside the tile bounds.
// Each tile has non-overlapping bounds, so writing to the shared table is safe.
func (b *Builder) fillTile(tile *Tile, table *Table) (cells, misses int) {
	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			x, y := table.CellCoord(i, j)
			pos, dir := b.mapper.From2D(x, y)

			depth, err := b.atmo.RayOpticalDepth(pos, dir)
			if err != nil {
				misses++
				depth = 0
			}
			table.Set(i, j, depth)
			cells++
		}
	}
	return cells, misses
}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

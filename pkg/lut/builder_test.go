package lut

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/df07/go-optical-depth/pkg/atmosphere"
	"github.com/df07/go-optical-depth/pkg/core"
)

// testLogger records messages for inspection
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func smallBuildConfig() BuildConfig {
	return BuildConfig{Width: 16, Height: 24, TileSize: 8, NumWorkers: 3}
}

func TestBuildConfig_Validate(t *testing.T) {
	if err := DefaultBuildConfig().Validate(); err != nil {
		t.Fatalf("Expected default build config to be valid, got %v", err)
	}

	tests := []struct {
		name   string
		config BuildConfig
	}{
		{"zero width", BuildConfig{Width: 0, Height: 4, TileSize: 8}},
		{"negative height", BuildConfig{Width: 4, Height: -4, TileSize: 8}},
		{"zero tile size", BuildConfig{Width: 4, Height: 4, TileSize: 0}},
		{"negative workers", BuildConfig{Width: 4, Height: 4, TileSize: 8, NumWorkers: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); !errors.Is(err, ErrInvalidBuildConfig) {
				t.Errorf("Expected ErrInvalidBuildConfig, got %v", err)
			}
			if _, err := NewBuilder(atmosphere.Earth(), tt.config, nil); err == nil {
				t.Error("Expected NewBuilder to reject config")
			}
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	atmo := atmosphere.Earth()
	logger := &testLogger{}

	builder, err := NewBuilder(atmo, smallBuildConfig(), logger)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	table, stats, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Unexpected build error: %v", err)
	}

	if stats.Cells != 16*24 {
		t.Errorf("Expected %d cells, got %d", 16*24, stats.Cells)
	}
	if stats.Misses != 0 {
		t.Errorf("Expected no misses inside the shell, got %d", stats.Misses)
	}
	if stats.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", stats.Workers)
	}
	if stats.MaxDepth != table.Max() || stats.MaxDepth <= 0 {
		t.Errorf("Expected positive max depth matching table, got %g vs %g", stats.MaxDepth, table.Max())
	}
	if len(logger.messages) < 2 {
		t.Errorf("Expected start and finish log messages, got %v", logger.messages)
	}

	// Every cell matches a direct computation of its canonical ray
	mapper := NewMapper(atmo.Config())
	for j := 0; j < table.Height; j++ {
		for i := 0; i < table.Width; i++ {
			x, y := table.CellCoord(i, j)
			pos, dir := mapper.From2D(x, y)
			want, err := atmo.RayOpticalDepth(pos, dir)
			if err != nil {
				t.Fatalf("Unexpected error for cell (%d,%d): %v", i, j, err)
			}
			if got := table.At(i, j); got != want {
				t.Fatalf("Cell (%d,%d): expected %g, got %g", i, j, want, got)
			}
		}
	}
}

func TestBuilder_Build_DepthOrdering(t *testing.T) {
	builder, err := NewBuilder(atmosphere.Earth(), smallBuildConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	table, _, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Unexpected build error: %v", err)
	}

	// Looking further up (larger D) passes through less air for upward rays
	lastRow := table.Height - 1
	for i := table.Width / 2; i < table.Width-1; i++ {
		if table.At(i+1, lastRow) > table.At(i, lastRow) {
			t.Errorf("Expected depth to fall toward zenith at column %d: %g > %g",
				i+1, table.At(i+1, lastRow), table.At(i, lastRow))
		}
	}

	// Higher origins see less air looking straight up
	col := table.Width - 1
	for j := 0; j < table.Height-1; j++ {
		if table.At(col, j+1) >= table.At(col, j) {
			t.Errorf("Expected depth to fall with altitude at row %d", j+1)
		}
	}
}

func TestBuilder_Build_Cancelled(t *testing.T) {
	logger := &testLogger{}
	builder, err := NewBuilder(atmosphere.Earth(), smallBuildConfig(), logger)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, _, err := builder.Build(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if table != nil {
		t.Error("Expected no table from a cancelled build")
	}
}

func TestBuilder_LookupMatchesDirect(t *testing.T) {
	atmo := atmosphere.Earth()
	builder, err := NewBuilder(atmo, BuildConfig{Width: 64, Height: 64, TileSize: 8}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	table, _, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Unexpected build error: %v", err)
	}

	// A ray at an exact texel center reads back its cell value
	x, y := table.CellCoord(40, 20)
	pos, dir := NewMapper(atmo.Config()).From2D(x, y)
	rotated := core.NewVec3(pos.Z, 0, 0)
	rotatedDir := core.NewVec3(dir.Z, dir.X, 0)

	want := table.At(40, 20)
	got := table.Lookup(rotated, rotatedDir)
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("Expected lookup %g, got %g", want, got)
	}
}

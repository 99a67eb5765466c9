package atmosphere

import (
	"math"
	"testing"

	"github.com/df07/go-optical-depth/pkg/core"
)

func TestDensity_GroundAndBelow(t *testing.T) {
	atmo := Earth()

	tests := []struct {
		name string
		pos  core.Vec3
	}{
		{"ground", core.NewVec3(0, 0, EarthRadius)},
		{"below ground", core.NewVec3(EarthRadius/2, 0, 0)},
		{"planet center", core.NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := atmo.Density(tt.pos); got != EarthDensityFactor {
				t.Errorf("Expected ground density %g, got %g", EarthDensityFactor, got)
			}
		})
	}
}

func TestDensity_ScaleHeight(t *testing.T) {
	atmo := Earth()
	got := atmo.Density(core.NewVec3(0, EarthRadius+EarthScaleHeight, 0))
	expected := EarthDensityFactor / math.E

	if math.Abs(got-expected) > 1e-15 {
		t.Errorf("Expected density %g one scale height up, got %g", expected, got)
	}
}

func TestDensity_MonotonicAboveGround(t *testing.T) {
	atmo := Earth()
	dir := core.NewVec3(1, 2, -2).Normalize()

	prev := atmo.Density(dir.Multiply(EarthRadius))
	for r := EarthRadius; r <= EarthAtmosphereRadius+50000; r += 1000 {
		d := atmo.Density(dir.Multiply(r))
		if d > prev {
			t.Fatalf("Density increased at radius %f: %g > %g", r, d, prev)
		}
		if d > EarthDensityFactor {
			t.Fatalf("Density %g exceeds ground density at radius %f", d, r)
		}
		if r > EarthRadius+1 && d >= EarthDensityFactor {
			t.Fatalf("Expected density below ground value above ground at radius %f", r)
		}
		prev = d
	}
}

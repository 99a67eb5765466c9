// Package atmosphere computes optical depth through a planet's atmosphere
// modeled as a spherical shell with single-exponential density falloff.
//
// All methods are pure and safe for concurrent use.
package atmosphere

// Atmosphere evaluates density, boundary distance and optical depth for a
// validated Config.
type Atmosphere struct {
	cfg Config
}

// New validates cfg and returns an Atmosphere bound to it
func New(cfg Config) (*Atmosphere, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Atmosphere{cfg: cfg}, nil
}

// Earth returns an Atmosphere for DefaultConfig
func Earth() *Atmosphere {
	return &Atmosphere{cfg: DefaultConfig()}
}

// Config returns a copy of the configuration
func (a *Atmosphere) Config() Config {
	return a.cfg
}

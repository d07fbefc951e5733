package physics

// Integrator selects the time-integration scheme.
type Integrator int

const (
	SemiImplicitEuler Integrator = iota
	VelocityVerlet
)

// CollisionMode selects how overlapping bodies are resolved.
type CollisionMode int

const (
	// MergeCollisions combines overlapping bodies inelastically.
	MergeCollisions CollisionMode = iota
	// ElasticCollisions applies an elastic impulse and separates overlap.
	ElasticCollisions
)

// Config holds every knob the kernel consumes. It is passed explicitly
// into each kernel call; the kernel keeps no ambient state.
type Config struct {
	G         float64 `json:"g"`         // gravitational constant (m³ kg⁻¹ s⁻²)
	Softening float64 `json:"softening"` // epsilon (m); eps² is added to r²
	MaxSpeed  float64 `json:"maxSpeed"`  // velocity cap (m/s), 0 = uncapped
	Density   float64 `json:"density"`   // kg/m³ for mass-derived radii

	BHThreshold int     `json:"bhThreshold"` // use Barnes-Hut above this body count
	BHTheta     float64 `json:"bhTheta"`     // opening angle criterion

	Integrator Integrator `json:"integrator"` // 0 = Euler, 1 = Verlet
	UseFixedDT bool       `json:"useFixedDt"`
	FixedDT    float64    `json:"fixedDt"`   // s
	TimeScale  float64    `json:"timeScale"` // multiplier on frame dt

	MaxSubstep          float64 `json:"maxSubstep"` // s, cap per substep
	MaxSubstepsPerFrame int     `json:"maxSubstepsPerFrame"`

	Collisions    bool          `json:"collisions"`
	CollisionMode CollisionMode `json:"collisionMode"`
}

// DefaultConfig is the configuration used by the stock scenario.
func DefaultConfig() Config {
	return Config{
		G:                   0.01,
		Softening:           2,
		MaxSpeed:            0,
		Density:             1,
		BHThreshold:         64,
		BHTheta:             0.7,
		Integrator:          VelocityVerlet,
		UseFixedDT:          false,
		FixedDT:             1.0 / 120,
		TimeScale:           1,
		MaxSubstep:          1.0 / 120,
		MaxSubstepsPerFrame: 8,
		Collisions:          true,
		CollisionMode:       MergeCollisions,
	}
}

func (c *Config) eps2() float64 {
	return c.Softening * c.Softening
}

package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/quillaja/gravity2d/physics"
)

// Scenario is a saved simulation setup: descriptive metadata, the
// config snapshot needed to replay it faithfully, and the body list.
type Scenario struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	// AutoOrbit gives every zero-velocity body a circular orbital
	// velocity about the first body on load.
	AutoOrbit bool           `json:"autoOrbit,omitempty"`
	Config    physics.Config `json:"config"`
	Bodies    []ScenarioBody `json:"bodies"`
}

type ScenarioBody struct {
	Pos    [2]float64 `json:"pos"`
	Vel    [2]float64 `json:"vel"`
	Mass   float64    `json:"mass"`
	Radius float64    `json:"radius,omitempty"`
	Pinned bool       `json:"pinned,omitempty"`
}

// LoadScenario reads a scenario from a .json or .yaml/.yml file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	sc := &Scenario{Config: physics.DefaultConfig()}
	if isYAML(path) {
		err = yaml.Unmarshal(data, sc)
	} else {
		err = json.Unmarshal(data, sc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if sc.AutoOrbit {
		setOrbitalVelocities(sc.Bodies, sc.Config.G)
	}
	return sc, nil
}

// Save writes the scenario as JSON or, for .yaml/.yml paths, YAML.
func (sc *Scenario) Save(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(sc)
	} else {
		data, err = json.MarshalIndent(sc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Simulator builds a runnable simulator from the scenario.
func (sc *Scenario) Simulator() *Simulator {
	sim := New(sc.Name, sc.Config)
	for _, b := range sc.Bodies {
		sim.AddBody(physics.Body{
			Pos:    mgl64.Vec2{b.Pos[0], b.Pos[1]},
			Vel:    mgl64.Vec2{b.Vel[0], b.Vel[1]},
			Mass:   b.Mass,
			Radius: b.Radius,
			Pinned: b.Pinned,
		})
	}
	return sim
}

// FromSimulator snapshots a running simulator into a saveable scenario.
func FromSimulator(sim *Simulator, name, description string, tags []string) *Scenario {
	sc := &Scenario{
		Name:        name,
		Description: description,
		Tags:        tags,
		Config:      sim.Config,
		Bodies:      make([]ScenarioBody, 0, len(sim.Bodies)),
	}
	for _, b := range sim.Bodies {
		if b == nil {
			continue
		}
		sc.Bodies = append(sc.Bodies, ScenarioBody{
			Pos:    [2]float64{b.Pos[0], b.Pos[1]},
			Vel:    [2]float64{b.Vel[0], b.Vel[1]},
			Mass:   b.Mass,
			Radius: b.Radius,
			Pinned: b.Pinned,
		})
	}
	return sc
}

// setOrbitalVelocities seeds circular orbital velocities about the
// first body for every later body that has none, directed
// perpendicular to the separation vector.
func setOrbitalVelocities(bodies []ScenarioBody, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		b := &bodies[i]
		if b.Vel[0] != 0 || b.Vel[1] != 0 {
			continue
		}
		dx := b.Pos[0] - central.Pos[0]
		dy := b.Pos[1] - central.Pos[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass / r)
		b.Vel[0] = -dy / r * v
		b.Vel[1] = dx / r * v
	}
}

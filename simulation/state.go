package simulation

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/quillaja/gravity2d/physics"
)

/*

helpers to save and restore simulation state

*/

// State is a resumable simulation snapshot.
type State struct {
	Name    string
	Frame   int
	Elapsed float64
	Config  physics.Config
	Bodies  []physics.Body
}

// SaveState gob-encodes the simulator's state to path. A partially
// written file is removed on encode failure.
func SaveState(sim *Simulator, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating state file: %w", err)
	}
	defer file.Close()

	st := State{
		Name:    sim.Name,
		Frame:   sim.Frame,
		Elapsed: sim.Elapsed,
		Config:  sim.Config,
		Bodies:  make([]physics.Body, 0, len(sim.Bodies)),
	}
	for _, b := range sim.Bodies {
		if b != nil {
			st.Bodies = append(st.Bodies, *b)
		}
	}

	if err := gob.NewEncoder(file).Encode(st); err != nil {
		os.Remove(path)
		return fmt.Errorf("encoding state: %w", err)
	}
	return nil
}

// LoadState restores a simulator from a gob state file.
func LoadState(path string) (*Simulator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening state file: %w", err)
	}
	defer file.Close()

	var st State
	if err := gob.NewDecoder(file).Decode(&st); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}

	sim := New(st.Name, st.Config)
	sim.Frame = st.Frame
	sim.Elapsed = st.Elapsed
	sim.Bodies = make([]*physics.Body, len(st.Bodies))
	for i := range st.Bodies {
		b := &st.Bodies[i]
		sim.Bodies[i] = b
		if b.ID >= sim.nextID {
			sim.nextID = b.ID + 1
		}
	}
	return sim, nil
}

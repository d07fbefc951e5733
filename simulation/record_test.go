package simulation

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderWritesFrames(t *testing.T) {
	sim := testScenario().Simulator()
	path := filepath.Join(t.TempDir(), "frames.sqlite")

	rec, err := NewRecorder(path)
	require.NoError(t, err)

	const frames = 10
	for i := 0; i < frames; i++ {
		rec.Record(sim)
		sim.Step(0.01)
	}
	require.NoError(t, rec.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var rows int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM bodies`).Scan(&rows))
	assert.Equal(t, frames*len(sim.Bodies), rows)

	var maxFrame int
	require.NoError(t, db.QueryRow(`SELECT max(frame) FROM bodies`).Scan(&maxFrame))
	assert.Equal(t, frames-1, maxFrame)

	// explicit radius is kept; derived radii come from mass and density
	var radius float64
	err = db.QueryRow(`SELECT radius FROM bodies WHERE frame = 0 AND id = ?`,
		sim.Bodies[1].ID).Scan(&radius)
	require.NoError(t, err)
	assert.Equal(t, 3.0, radius)
}

func TestRecorderRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.sqlite")

	rec, err := NewRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	_, err = NewRecorder(path)
	assert.Error(t, err)
}

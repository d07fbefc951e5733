package simulation

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quillaja/gravity2d/physics"
)

/*

frame recording section.
only one writer goroutine is useful since sqlite allows a single writer
at a time.

*/

const schema = `
CREATE TABLE bodies (
	frame  INTEGER,
	id     INTEGER, -- body id
	x      REAL,
	y      REAL,
	mass   REAL,
	radius REAL);
`

const indices = `
CREATE INDEX idx_frame ON bodies (frame, id);
CREATE INDEX idx_id ON bodies (id);
CREATE INDEX idx_mass ON bodies (mass);
`

const insertBody = `INSERT INTO bodies VALUES (?, ?, ?, ?, ?, ?);`

// Frame is one frame's worth of body state queued for recording.
type Frame struct {
	Frame  int
	Bodies []physics.Body
}

// Recorder streams simulation frames into an sqlite database, one row
// per body per frame, batched in a transaction per frame.
type Recorder struct {
	db *sql.DB
	ch chan *Frame
	wg sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewRecorder creates the database (refusing to clobber an existing
// file) and starts the writer goroutine.
func NewRecorder(filename string) (*Recorder, error) {
	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("%s already exists", filename)
	}
	db, err := sql.Open("sqlite3", "file:"+filename+"?_journal_mode=OFF&_synchronous=OFF")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	r := &Recorder{db: db, ch: make(chan *Frame, 32)}
	r.wg.Add(1)
	go r.writer()
	return r, nil
}

// Record queues a snapshot of the simulator's current frame. Radii are
// resolved against the config density so the recording is
// self-contained.
func (r *Recorder) Record(sim *Simulator) {
	bodies := make([]physics.Body, 0, len(sim.Bodies))
	for _, b := range sim.Bodies {
		if b == nil {
			continue
		}
		c := *b
		c.Radius = b.EffectiveRadius(sim.Config.Density)
		bodies = append(bodies, c)
	}
	r.ch <- &Frame{Frame: sim.Frame, Bodies: bodies}
}

// Close drains pending frames, builds the indices, and closes the
// database. It returns the first error the writer hit, if any.
func (r *Recorder) Close() error {
	close(r.ch)
	r.wg.Wait()
	if _, err := r.db.Exec(indices); err != nil {
		r.fail(fmt.Errorf("creating indices: %w", err))
	}
	if err := r.db.Close(); err != nil {
		r.fail(err)
	}
	return r.err
}

func (r *Recorder) fail(err error) {
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
}

func (r *Recorder) writer() {
	defer r.wg.Done()
	stmt, err := r.db.Prepare(insertBody)
	if err != nil {
		r.fail(err)
		for range r.ch {
			// drain so Record never blocks
		}
		return
	}
	defer stmt.Close()

	for job := range r.ch {
		tx, err := r.db.Begin()
		if err != nil {
			r.fail(err)
			continue
		}
		ins := tx.Stmt(stmt)
		for _, b := range job.Bodies {
			if _, err = ins.Exec(job.Frame, b.ID, b.Pos[0], b.Pos[1], b.Mass, b.Radius); err != nil {
				break
			}
		}
		if err != nil {
			tx.Rollback()
			r.fail(err)
		} else if err := tx.Commit(); err != nil {
			r.fail(err)
		}
	}
}

// Package journal records the renames of each batch run in a bbolt database
// so the most recent run can be reverted.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

const runsBucket = "runs"

// ErrNoRuns is returned by Last when the journal holds no runs.
var ErrNoRuns = errors.New("journal has no recorded runs")

// RunID identifies one batch run. IDs increase monotonically.
type RunID uint64

// Move is one recorded rename.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Journal is an open journal database.
type Journal struct {
	db *bolt.DB
}

// Open opens (creating if needed) the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create journal directory")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open journal %s", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(runsBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "init journal")
	}
	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Begin allocates a new, empty run.
func (j *Journal) Begin() (RunID, error) {
	var id RunID
	err := j.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket([]byte(runsBucket))
		seq, err := runs.NextSequence()
		if err != nil {
			return err
		}
		id = RunID(seq)
		_, err = runs.CreateBucket(itob(seq))
		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "begin run")
	}
	return id, nil
}

// Record appends a move to run. Moves are kept in the order recorded.
func (j *Journal) Record(run RunID, from, to string) error {
	value, err := json.Marshal(Move{From: from, To: to})
	if err != nil {
		return errors.Wrap(err, "marshal move")
	}
	err = j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket)).Bucket(itob(uint64(run)))
		if b == nil {
			return errors.Errorf("run %d not found", run)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), value)
	})
	return errors.Wrapf(err, "record move %s", from)
}

// Last returns the most recent run that recorded at least one move.
// Empty runs are skipped.
func (j *Journal) Last() (RunID, []Move, error) {
	var (
		id    RunID
		moves []Move
	)
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(runsBucket)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if v != nil {
				continue
			}
			b := tx.Bucket([]byte(runsBucket)).Bucket(k)
			if first, _ := b.Cursor().First(); first == nil {
				continue
			}
			id = RunID(binary.BigEndian.Uint64(k))
			return b.ForEach(func(_, v []byte) error {
				var m Move
				if err := json.Unmarshal(v, &m); err != nil {
					return errors.Wrap(err, "unmarshal move")
				}
				moves = append(moves, m)
				return nil
			})
		}
		return ErrNoRuns
	})
	if err != nil {
		return 0, nil, err
	}
	return id, moves, nil
}

// Delete drops run and its moves. Deleting an unknown run is a no-op.
func (j *Journal) Delete(run RunID) error {
	err := j.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(runsBucket)).DeleteBucket(itob(uint64(run)))
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
	return errors.Wrapf(err, "delete run %d", run)
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

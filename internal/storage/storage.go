package storage

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ogmore/fenrir/internal/board"
)

// key layout: an 8-bit tag, then the big-endian position key, then any
// per-record suffix. Perft records add a depth byte; the variant is part
// of the position key already.
const (
	tagPerft byte = 'p'
	tagPos   byte = 'f'
)

// PositionRecord is the stored metadata for an analyzed position.
type PositionRecord struct {
	FEN      string    `json:"fen"`
	Variant  string    `json:"variant"`
	LastSeen time.Time `json:"last_seen"`
	Visits   int       `json:"visits"`
}

// Store wraps BadgerDB for persisting perft counts and position records
// between runs.
type Store struct {
	db  *badger.DB
	log zerolog.Logger
}

// Open opens (or creates) the store in the default database directory.
func Open(log zerolog.Logger) (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir, log)
}

// OpenAt opens the store at an explicit directory.
func OpenAt(dir string, log zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %s", dir)
	}

	log.Debug().Str("dir", dir).Msg("store opened")
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return errors.Wrap(s.db.Close(), "close store")
}

func perftKey(posKey uint64, depth int) []byte {
	k := make([]byte, 10)
	k[0] = tagPerft
	binary.BigEndian.PutUint64(k[1:9], posKey)
	k[9] = byte(depth)
	return k
}

func posKey(key uint64) []byte {
	k := make([]byte, 9)
	k[0] = tagPos
	binary.BigEndian.PutUint64(k[1:9], key)
	return k
}

// SavePerft records a perft result for a position and depth. The position
// key incorporates the variant, so results never cross variants.
func (s *Store) SavePerft(p *board.Position, depth int, nodes uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nodes)

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(p.Key(), depth), buf[:])
	})
	return errors.Wrap(err, "save perft")
}

// LoadPerft returns a previously stored perft count, or false on a miss.
func (s *Store) LoadPerft(p *board.Position, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(p.Key(), depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return errors.Errorf("perft record has %d bytes", len(val))
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	return nodes, found, errors.Wrap(err, "load perft")
}

// TouchPosition upserts the record for a position, bumping its visit
// count and timestamp.
func (s *Store) TouchPosition(p *board.Position) error {
	rec := PositionRecord{
		FEN:     p.FEN(),
		Variant: p.Variant().String(),
		Visits:  1,
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		key := posKey(p.Key())

		item, err := txn.Get(key)
		if err == nil {
			uerr := item.Value(func(val []byte) error {
				var old PositionRecord
				if jerr := json.Unmarshal(val, &old); jerr == nil {
					rec.Visits = old.Visits + 1
				}
				return nil
			})
			if uerr != nil {
				return uerr
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		rec.LastSeen = time.Now()
		data, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	return errors.Wrap(err, "touch position")
}

// LoadPosition returns the stored record for a position key, or false on
// a miss.
func (s *Store) LoadPosition(key uint64) (PositionRecord, bool, error) {
	var rec PositionRecord
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(posKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if jerr := json.Unmarshal(val, &rec); jerr != nil {
				return jerr
			}
			found = true
			return nil
		})
	})
	return rec, found, errors.Wrap(err, "load position")
}

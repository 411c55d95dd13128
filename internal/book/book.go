// Package book loads Polyglot-format opening books and probes them by
// position hash with weighted random selection.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/ogmore/fenrir/internal/board"
)

// Entry is one weighted book move for a position.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book maps position hashes to their book moves.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// LoadPolyglot loads a Polyglot book file.
func LoadPolyglot(filename string) (*Book, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open book")
	}
	defer f.Close()

	b, err := LoadPolyglotReader(f)
	return b, errors.Wrapf(err, "load book %s", filename)
}

// LoadPolyglotReader reads Polyglot entries from r until EOF. Each entry
// is 16 bytes big-endian: key, move, weight, and learn data (ignored).
func LoadPolyglotReader(r io.Reader) (*Book, error) {
	b := New()
	var raw [16]byte

	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "read book entry")
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveData := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		if m := decodeMove(moveData); m != board.NoMove {
			b.entries[key] = append(b.entries[key], Entry{Move: m, Weight: weight})
		}
	}
	return b, nil
}

// decodeMove unpacks the Polyglot move field: to in bits 0-5, from in
// bits 6-11, promotion in bits 12-14. Castling arrives as king-takes-rook,
// which is this engine's native encoding, so squares pass through as-is
// and the true move kind is resolved against the position at probe time.
func decodeMove(data uint16) board.Move {
	from := board.NewSquare(int(data>>6&7), int(data>>9&7))
	to := board.NewSquare(int(data&7), int(data>>3&7))

	if promo := data >> 12 & 7; promo > 0 {
		types := [5]board.PieceType{board.NoPieceType,
			board.Knight, board.Bishop, board.Rook, board.Queen}
		if promo > 4 {
			return board.NoMove
		}
		return board.NewPromotion(from, to, types[promo])
	}
	return board.NewMove(from, to)
}

// Probe returns a book move for the position, chosen at random in
// proportion to entry weights, or false if the position is out of book.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	if b == nil {
		return board.NoMove, false
	}
	entries := b.entries[pos.PolyglotHash()]
	if len(entries) == 0 {
		return board.NoMove, false
	}

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return resolve(pos, entries[0].Move)
	}

	r := rand.Uint32() % total
	var cum uint32
	for _, e := range entries {
		cum += uint32(e.Weight)
		if r < cum {
			return resolve(pos, e.Move)
		}
	}
	return resolve(pos, entries[0].Move)
}

// ProbeAll returns every book move for the position, heaviest first.
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}
	entries := b.entries[pos.PolyglotHash()]
	if len(entries) == 0 {
		return nil
	}

	out := slices.Clone(entries)
	slices.SortFunc(out, func(a, b Entry) int {
		return int(b.Weight) - int(a.Weight)
	})
	return out
}

// resolve matches a raw book move against the position's legal moves so
// the returned move carries the correct kind bits for castling, en
// passant and promotions.
func resolve(pos *board.Position, m board.Move) (board.Move, bool) {
	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		lm := legal.Get(i)
		if lm.From() != m.From() || lm.To() != m.To() {
			continue
		}
		if lm.IsPromotion() != m.IsPromotion() {
			continue
		}
		if m.IsPromotion() && lm.Promotion() != m.Promotion() {
			continue
		}
		return lm, true
	}
	return board.NoMove, false
}

// Size returns the number of unique positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Package tt provides a sharded, thread-safe transposition table keyed by
// position hash. It doubles as the position's Prefetcher: DoMove hands the
// freshly computed key over so the entry's cache line is warm by the time
// search probes it.
package tt

import (
	"sync"
	"sync/atomic"

	"github.com/ogmore/fenrir/internal/board"
)

// Bound describes how a stored score relates to the true value.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundLower       // fail high
	BoundUpper       // fail low
)

const (
	shardCount = 256
	shardMask  = shardCount - 1
)

// Entry is one transposition table slot. The full 64-bit key is kept for
// verification, so an index collision never yields a false hit.
type Entry struct {
	Key   uint64
	Move  board.Move
	Score int16
	Depth int8
	Flag  Bound
	Age   uint8
}

// Table is a fixed-size hash table with sharded locking, sized for
// concurrent probing from multiple search workers.
type Table struct {
	entries []Entry
	shards  [shardCount]sync.RWMutex
	mask    uint64
	age     atomic.Uint32

	hits   atomic.Uint64
	probes atomic.Uint64
}

// New creates a table of roughly sizeMB megabytes, rounded down to a
// power-of-two entry count so indexing is a single mask.
func New(sizeMB int) *Table {
	const entrySize = 16
	n := uint64(sizeMB) * 1024 * 1024 / entrySize
	n = floorPow2(n)

	return &Table{
		entries: make([]Entry, n),
		mask:    n - 1,
	}
}

func floorPow2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func shardOf(idx uint64) int {
	return int(idx & shardMask)
}

// Prefetch touches the entry for a key so the cache line is resident
// before Probe runs. Implements board.Prefetcher.
func (t *Table) Prefetch(key uint64) {
	idx := key & t.mask
	shard := shardOf(idx)

	t.shards[shard].RLock()
	_ = t.entries[idx].Key
	t.shards[shard].RUnlock()
}

// Probe looks the key up and reports whether a verified entry was found.
func (t *Table) Probe(key uint64) (Entry, bool) {
	t.probes.Add(1)

	idx := key & t.mask
	shard := shardOf(idx)

	t.shards[shard].RLock()
	entry := t.entries[idx]
	t.shards[shard].RUnlock()

	if entry.Key == key && entry.Depth > 0 {
		t.hits.Add(1)
		return entry, true
	}
	return Entry{}, false
}

// Store writes an entry, replacing the incumbent when it is from an older
// search generation or no deeper than the new data.
func (t *Table) Store(key uint64, depth int, score int, flag Bound, move board.Move) {
	idx := key & t.mask
	shard := shardOf(idx)

	t.shards[shard].Lock()
	entry := &t.entries[idx]

	currentAge := uint8(t.age.Load())
	if entry.Age != currentAge || depth >= int(entry.Depth) {
		entry.Key = key
		entry.Move = move
		entry.Score = int16(score)
		entry.Depth = int8(depth)
		entry.Flag = flag
		entry.Age = currentAge
	}
	t.shards[shard].Unlock()
}

// NewSearch bumps the generation counter, aging out prior entries in the
// replacement policy without clearing them.
func (t *Table) NewSearch() {
	t.age.Add(1)
}

// Clear wipes the table and resets all counters.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
	t.age.Store(0)
	t.hits.Store(0)
	t.probes.Store(0)
}

// HashFull estimates table occupancy in permille from a fixed sample.
func (t *Table) HashFull() int {
	sample := 1000
	if uint64(sample) > uint64(len(t.entries)) {
		sample = len(t.entries)
	}
	if sample == 0 {
		return 0
	}

	currentAge := uint8(t.age.Load())
	used := 0
	for i := 0; i < sample; i++ {
		if t.entries[i].Depth > 0 && t.entries[i].Age == currentAge {
			used++
		}
	}
	return used * 1000 / sample
}

// HitRate returns the probe hit percentage since the last Clear.
func (t *Table) HitRate() float64 {
	probes := t.probes.Load()
	if probes == 0 {
		return 0
	}
	return float64(t.hits.Load()) / float64(probes) * 100
}

// Size returns the entry count.
func (t *Table) Size() uint64 {
	return uint64(len(t.entries))
}

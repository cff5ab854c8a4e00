package negamax

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

const entrySize = 24

const (
	minSizePowerOf2 = 16
	maxSizePowerOf2 = 20
)

// 24 bytes (entrySize)
type TableEntry struct {
	key   uint64
	score float64
	depth uint8
	flag  uint8
	// best move found at this node, 1-indexed; 0 if none
	row, col uint8
}

func (t TableEntry) valid() bool {
	return t.flag != 0
}

// TranspositionTable maps zobrist keys to search results. It is not safe
// for concurrent use; every searcher owns its own table.
type TranspositionTable struct {
	table        []TableEntry
	sizePowerOf2 int
	sizeMask     uint64

	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	t2collisions atomic.Uint64
}

func (t *TranspositionTable) lookup(key uint64) TableEntry {
	t.lookups.Add(1)
	e := t.table[key&t.sizeMask]
	if e.key != key {
		if e.valid() {
			// There is another unrelated node at this position.
			t.t2collisions.Add(1)
		}
		return TableEntry{}
	}
	t.hits.Add(1)
	return e
}

func (t *TranspositionTable) store(key uint64, e TableEntry) {
	e.key = key
	// just overwrite whatever is there.
	t.table[key&t.sizeMask] = e
	t.created.Add(1)
}

// Reset sizes the table to roughly fractionOfMemory of the system's memory,
// clamped to between 2^16 and 2^20 entries, and clears it.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	pow := minSizePowerOf2
	if desiredNElems >= 1 {
		pow = int(math.Log2(desiredNElems))
	}
	pow = min(max(pow, minSizePowerOf2), maxSizePowerOf2)
	t.sizePowerOf2 = pow

	numElems := 1 << pow
	t.sizeMask = uint64(numElems - 1)
	reset := false
	if t.table != nil && len(t.table) == numElems {
		reset = true
		clear(t.table)
	} else {
		t.table = make([]TableEntry, numElems)
	}
	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.t2collisions.Store(0)
}

// Stats returns lookups, hits and stores since the last Reset.
func (t *TranspositionTable) Stats() (lookups, hits, created uint64) {
	return t.lookups.Load(), t.hits.Load(), t.created.Load()
}

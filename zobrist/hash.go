package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a five-in-a-row position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	blackToMove uint64

	// posTable[cellIdx][slot], indexed like the board's flat buffer
	posTable [][2]uint64
	width    int
	height   int
	stride   int
}

func (z *Zobrist) Initialize(width, height int) {
	z.width, z.height, z.stride = width, height, width+2
	z.posTable = make([][2]uint64, (width+2)*(height+2))
	for i := range z.posTable {
		for s := range 2 {
			z.posTable[i][s] = frand.Uint64n(bignum) + 1
		}
	}
	z.blackToMove = frand.Uint64n(bignum) + 1
}

// Hash computes the key of a position from scratch. Walls are part of the
// board's shape and are not hashed.
func (z *Zobrist) Hash(b *board.Board, toMove board.Color) uint64 {
	key := uint64(0)
	for i := 1; i <= z.height; i++ {
		for j := 1; j <= z.width; j++ {
			c := b.Get(i, j)
			if !c.IsStone() {
				continue
			}
			key ^= z.posTable[i*z.stride+j][c.Slot()]
		}
	}
	if toMove == board.Black {
		key ^= z.blackToMove
	}
	return key
}

// AddStone updates a key for a stone of color c placed at (i, j), and for
// the turn passing to the other side. Calling it again with the same
// arguments takes the stone back.
func (z *Zobrist) AddStone(key uint64, i, j int, c board.Color) uint64 {
	key ^= z.posTable[i*z.stride+j][c.Slot()]
	key ^= z.blackToMove
	return key
}

package board

// This file contains some sample positions, used solely for testing.
// Lines may be cut short; the missing cells are blank.

// Position is the plain-text representation of a board.
type Position string

const (
	// BlackFourOpen has four black stones in row 8 with both ends open.
	BlackFourOpen Position = `







    * * * *
            o o o
`
	// WhiteFourBlockedTop has four white stones in column 5 (rows 3 to 6)
	// blocked by a black stone above; only (7,5) completes the line.
	WhiteFourBlockedTop Position = `

        *
        o
        o
        o
        o
      *
`
	// DiagonalThreat has three black stones on a down-right diagonal from
	// (4,4) with white stones scattered around.
	DiagonalThreat Position = `



      *
        *   o
          *
      o
`
	// WalledFour has four black stones in row 1 with walls at both ends.
	WalledFour Position = `
x * * * * x
`
)

// MustBoard parses a sample position into a board of the given size.
func MustBoard(width, height int, p Position) *Board {
	return MustParse(width, height, string(p))
}

package games

import (
	"errors"
	"fmt"
	"slices"
)

const (
	minesGridSize = 25
	minesEdge     = 0.97
	MinesMinCount = 1
	MinesMaxCount = 24
)

var ErrAlreadyRevealed = errors.New("cell already revealed")

// MinesState is the mid-flight state of a mines round. It is serialized
// into the session store between reveals; mine positions are never sent
// to the client while the round is live.
type MinesState struct {
	StakeMinor int64 `json:"stake_minor"`
	MineCount  int   `json:"mine_count"`
	Mines      []int `json:"mines"`
	Revealed   []int `json:"revealed"`
}

// NewMines samples mineCount distinct cells from the 5x5 grid.
func NewMines(r Rand, stakeMinor int64, mineCount int) (*MinesState, error) {
	if mineCount < MinesMinCount || mineCount > MinesMaxCount {
		return nil, fmt.Errorf("%w: mine count must be in [%d,%d]",
			ErrInvalidParams, MinesMinCount, MinesMaxCount)
	}

	mines := r.Perm(minesGridSize)[:mineCount]

	return &MinesState{
		StakeMinor: stakeMinor,
		MineCount:  mineCount,
		Mines:      mines,
		Revealed:   []int{},
	}, nil
}

type MinesReveal struct {
	Hit        bool
	GemsFound  int
	Multiplier float64
}

// Reveal uncovers one cell. Hitting a mine ends the round as a total
// loss; a safe cell bumps the cashout multiplier and keeps the round
// live. The caller settles and drops the session when Hit is true.
func (s *MinesState) Reveal(position int) (MinesReveal, error) {
	if position < 0 || position >= minesGridSize {
		return MinesReveal{}, fmt.Errorf("%w: position must be in [0,%d]",
			ErrInvalidParams, minesGridSize-1)
	}

	if slices.Contains(s.Revealed, position) {
		return MinesReveal{}, ErrAlreadyRevealed
	}

	s.Revealed = append(s.Revealed, position)

	if slices.Contains(s.Mines, position) {
		return MinesReveal{Hit: true, GemsFound: len(s.Revealed) - 1}, nil
	}

	return MinesReveal{
		GemsFound:  len(s.Revealed),
		Multiplier: s.Multiplier(),
	}, nil
}

// Multiplier is the current cashout multiplier: the reciprocal of the
// hypergeometric probability of drawing len(Revealed) safe cells in a
// row, shaved by the 0.97 house factor.
func (s *MinesState) Multiplier() float64 {
	p := 1.0
	for i := range len(s.Revealed) {
		p *= float64(minesGridSize-s.MineCount-i) / float64(minesGridSize-i)
	}

	return 1.0 / (p * minesEdge)
}

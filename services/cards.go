package services

import (
	"math/rand"
	"sort"
)

const (
	cardSize  = 5
	cardCells = cardSize * cardSize
	maxNumber = 100
)

// GenerateCard derives the 25 card numbers from the player-chosen seed:
// 25 distinct values in 1-100, sorted ascending, laid out row-major on the
// 5x5 grid. The seed is used directly as the PRNG seed, so the same seed
// always yields the same card, including for two different players.
func GenerateCard(seed int) ([]int, error) {
	if seed < 1 || seed > maxNumber {
		return nil, ErrInvalidSeed
	}

	r := rand.New(rand.NewSource(int64(seed)))
	perm := r.Perm(maxNumber)

	numbers := make([]int, cardCells)
	for i := 0; i < cardCells; i++ {
		numbers[i] = perm[i] + 1
	}
	sort.Ints(numbers)
	return numbers, nil
}

// EvaluateWin reports whether the card has bingo against the called set: any
// full row, any full column, or either diagonal entirely called. It is a pure
// function of its inputs.
func EvaluateWin(numbers []int, called []int) bool {
	if len(numbers) != cardCells {
		return false
	}

	calledSet := make(map[int]bool, len(called))
	for _, n := range called {
		calledSet[n] = true
	}

	var hit [cardSize][cardSize]bool
	for i, n := range numbers {
		hit[i/cardSize][i%cardSize] = calledSet[n]
	}

	// Rows and columns.
	for i := 0; i < cardSize; i++ {
		rowFull, colFull := true, true
		for j := 0; j < cardSize; j++ {
			rowFull = rowFull && hit[i][j]
			colFull = colFull && hit[j][i]
		}
		if rowFull || colFull {
			return true
		}
	}

	// Diagonals, each sufficient on its own.
	diagFull, antiFull := true, true
	for i := 0; i < cardSize; i++ {
		diagFull = diagFull && hit[i][i]
		antiFull = antiFull && hit[i][cardSize-1-i]
	}
	return diagFull || antiFull
}

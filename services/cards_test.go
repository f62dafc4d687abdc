package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCardDeterministic(t *testing.T) {
	first, err := GenerateCard(42)
	require.NoError(t, err)
	second, err := GenerateCard(42)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must yield the same card")

	other, err := GenerateCard(43)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestGenerateCardProperties(t *testing.T) {
	for seed := 1; seed <= 100; seed++ {
		numbers, err := GenerateCard(seed)
		require.NoError(t, err)
		require.Len(t, numbers, 25)

		seen := make(map[int]bool)
		for i, n := range numbers {
			assert.GreaterOrEqual(t, n, 1)
			assert.LessOrEqual(t, n, 100)
			assert.False(t, seen[n], "seed %d: duplicate value %d", seed, n)
			seen[n] = true
			if i > 0 {
				assert.Less(t, numbers[i-1], n, "seed %d: card must be sorted", seed)
			}
		}
	}
}

func TestGenerateCardSeedRange(t *testing.T) {
	for _, seed := range []int{0, -1, 101} {
		_, err := GenerateCard(seed)
		assert.ErrorIs(t, err, ErrInvalidSeed, "seed %d", seed)
	}
}

// gridLine returns the card values of one line of the 5x5 layout.
func gridLine(numbers []int, cells [][2]int) []int {
	out := make([]int, 0, len(cells))
	for _, cell := range cells {
		out = append(out, numbers[cell[0]*5+cell[1]])
	}
	return out
}

func TestEvaluateWinLines(t *testing.T) {
	numbers, err := GenerateCard(7)
	require.NoError(t, err)

	cases := map[string][][2]int{
		"top row":       {{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}},
		"middle row":    {{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}},
		"bottom row":    {{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4}},
		"first column":  {{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
		"last column":   {{0, 4}, {1, 4}, {2, 4}, {3, 4}, {4, 4}},
		"main diagonal": {{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}},
		"anti diagonal": {{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}},
	}

	for name, cells := range cases {
		t.Run(name, func(t *testing.T) {
			called := gridLine(numbers, cells)
			assert.True(t, EvaluateWin(numbers, called), "line %s alone must win", name)
		})
	}
}

func TestEvaluateWinNoLine(t *testing.T) {
	numbers, err := GenerateCard(7)
	require.NoError(t, err)

	// Four of five cells in the top row is not bingo.
	called := gridLine(numbers, [][2]int{{0, 0}, {0, 1}, {0, 2}, {0, 3}})
	assert.False(t, EvaluateWin(numbers, called))

	assert.False(t, EvaluateWin(numbers, nil))
	assert.False(t, EvaluateWin(nil, called), "malformed card never wins")
}

func TestEvaluateWinPure(t *testing.T) {
	numbers, err := GenerateCard(13)
	require.NoError(t, err)
	called := gridLine(numbers, [][2]int{{1, 0}, {1, 1}, {1, 2}, {1, 3}, {1, 4}})

	numbersCopy := append([]int(nil), numbers...)
	calledCopy := append([]int(nil), called...)

	first := EvaluateWin(numbers, called)
	second := EvaluateWin(numbers, called)
	assert.Equal(t, first, second)
	assert.True(t, first)
	assert.Equal(t, numbersCopy, numbers, "inputs must not be mutated")
	assert.Equal(t, calledCopy, called)
}

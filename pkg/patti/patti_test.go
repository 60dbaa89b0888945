package patti

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCombinations(t *testing.T) {
	combos := AllCombinations()

	// C(10+3-1, 3) = 220 combinações com repetição
	require.Len(t, combos, 220)

	seen := make(map[string]struct{}, len(combos))
	for _, c := range combos {
		assert.Len(t, c, 3)
		assert.True(t, IsCombination(c), "combinação inválida gerada: %s", c)

		_, dup := seen[c]
		assert.False(t, dup, "combinação duplicada: %s", c)
		seen[c] = struct{}{}
	}
}

func TestAllCombinationsZeroComoDez(t *testing.T) {
	combos := AllCombinations()
	set := make(map[string]struct{}, len(combos))
	for _, c := range combos {
		set[c] = struct{}{}
	}

	// "0" ocupa a última posição ordinal, então "120" existe e "012" não
	assert.Contains(t, set, "120")
	assert.Contains(t, set, "000")
	assert.Contains(t, set, "100")
	assert.NotContains(t, set, "012")
	assert.NotContains(t, set, "201")
}

func TestGroupsParticiona(t *testing.T) {
	groups := Groups()
	require.Len(t, groups, 10)

	total := 0
	seen := make(map[string]string)
	for key, combos := range groups {
		for _, c := range combos {
			assert.Equal(t, strconv.Itoa(SumOfDigits(c)%10), key)

			prev, dup := seen[c]
			assert.False(t, dup, "combinação %s em dois grupos: %s e %s", c, prev, key)
			seen[c] = key
		}
		total += len(combos)
	}
	assert.Equal(t, 220, total)
}

func TestGroupsOrdenadosNumericamente(t *testing.T) {
	for key, combos := range Groups() {
		for i := 1; i < len(combos); i++ {
			a, _ := strconv.Atoi(combos[i-1])
			b, _ := strconv.Atoi(combos[i])
			assert.LessOrEqual(t, a, b, "grupo %s fora de ordem", key)
		}
	}
}

func TestSumOfDigits(t *testing.T) {
	assert.Equal(t, 12, SumOfDigits("372"))
	assert.Equal(t, 0, SumOfDigits("000"))
	assert.Equal(t, 3, SumOfDigits("120"))
}

func TestNormalizeDigit(t *testing.T) {
	assert.Equal(t, "0", NormalizeDigit("10"))
	assert.Equal(t, "7", NormalizeDigit("7"))
	assert.Equal(t, "0", NormalizeDigit("0"))
}

func TestIsCombination(t *testing.T) {
	assert.True(t, IsCombination("123"))
	assert.True(t, IsCombination("120")) // 0 conta como 10
	assert.True(t, IsCombination("999"))
	assert.True(t, IsCombination("000"))

	assert.False(t, IsCombination("210"))
	assert.False(t, IsCombination("12"))
	assert.False(t, IsCombination("1234"))
	assert.False(t, IsCombination("12a"))
	assert.False(t, IsCombination("021")) // 0 não pode vir antes
}

func TestIsDigit(t *testing.T) {
	assert.True(t, IsDigit("0"))
	assert.True(t, IsDigit("9"))
	assert.False(t, IsDigit("10"))
	assert.False(t, IsDigit(""))
	assert.False(t, IsDigit("a"))
}

package settlement

import (
	"sort"
	"strings"

	"github.com/radieske/matka-bet-platform-poc/pkg/patti"
)

// IsValidResult confere o formato do resultado: exatamente 3 dígitos.
func IsValidResult(result string) bool {
	if len(result) != 3 {
		return false
	}
	for i := 0; i < len(result); i++ {
		if result[i] < '0' || result[i] > '9' {
			return false
		}
	}
	return true
}

// lastDigit retorna o último dígito do resultado.
func lastDigit(result string) string {
	return result[len(result)-1:]
}

// sortDigits ordena os dígitos de uma string (comparação de multiset).
func sortDigits(s string) string {
	b := []byte(s)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

// Wins decide se a aposta ganha para o resultado dado.
//
// single: o dígito apostado é o último dígito do resultado.
// patti: o multiset de dígitos da seleção é igual ao do resultado;
// a ordem guardada na aposta não importa na conferência.
// juri: qualquer um dos dois dígitos do par bate com o último dígito
// do resultado (ou-inclusivo, sem exigência posicional).
func Wins(b Bet, result string) bool {
	last := lastDigit(result)

	switch b.Type {
	case BetTypeSingle:
		return patti.NormalizeDigit(b.Selection) == last

	case BetTypePatti:
		return sortDigits(b.Selection) == sortDigits(result)

	case BetTypeJuri:
		first, second, ok := strings.Cut(b.Selection, "-")
		if !ok {
			return false
		}
		return patti.NormalizeDigit(first) == last || patti.NormalizeDigit(second) == last
	}

	return false
}

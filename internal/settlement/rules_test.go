package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidResult(t *testing.T) {
	assert.True(t, IsValidResult("372"))
	assert.True(t, IsValidResult("000"))
	assert.False(t, IsValidResult("37"))
	assert.False(t, IsValidResult("3721"))
	assert.False(t, IsValidResult("37a"))
	assert.False(t, IsValidResult(""))
}

func TestWinsSingle(t *testing.T) {
	bet := func(sel string) Bet { return Bet{Type: BetTypeSingle, Selection: sel} }

	assert.True(t, Wins(bet("2"), "372"))
	assert.False(t, Wins(bet("3"), "372")) // só o último dígito conta
	assert.False(t, Wins(bet("7"), "372"))

	// "10" da UI equivale ao dígito 0
	assert.True(t, Wins(bet("10"), "370"))
	assert.True(t, Wins(bet("0"), "370"))
}

func TestWinsPattiMultiset(t *testing.T) {
	bet := func(sel string) Bet { return Bet{Type: BetTypePatti, Selection: sel} }

	// a ordem guardada na seleção não importa
	assert.True(t, Wins(bet("237"), "372"))
	assert.True(t, Wins(bet("372"), "372"))
	assert.True(t, Wins(bet("723"), "372"))

	assert.False(t, Wins(bet("238"), "372"))
	assert.False(t, Wins(bet("337"), "372")) // multiset difere: {3,3,7} != {3,7,2}
}

func TestWinsJuriQualquerDigito(t *testing.T) {
	bet := func(sel string) Bet { return Bet{Type: BetTypeJuri, Selection: sel} }

	// ganha se qualquer um dos dois dígitos bater com o último do resultado
	assert.True(t, Wins(bet("9-2"), "372"))
	assert.True(t, Wins(bet("2-9"), "372"))

	assert.False(t, Wins(bet("7-5"), "372")) // nenhum dos dois é o último dígito
	assert.False(t, Wins(bet("9-5"), "372"))
	assert.False(t, Wins(bet("37"), "372")) // sem separador não é juri válido

	// "10" equivale a 0
	assert.True(t, Wins(bet("10-5"), "370"))
}

package rates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/matka-bet-platform-poc/internal/settlement"
)

type fakeRepo struct {
	rates []Rate
	err   error
}

func (f fakeRepo) RatesFor(context.Context, string) ([]Rate, error) { return f.rates, f.err }

func TestMultiplierForConfigurado(t *testing.T) {
	table := NewTable(fakeRepo{rates: []Rate{
		{BetType: settlement.BetTypeSingle, Multiplier: 95},
	}})

	mult, err := table.MultiplierFor(context.Background(), "g1", settlement.BetTypeSingle)
	require.NoError(t, err)
	assert.Equal(t, int64(95), mult)
}

func TestMultiplierForDefaults(t *testing.T) {
	table := NewTable(fakeRepo{})

	cases := map[settlement.BetType]int64{
		settlement.BetTypeSingle: 90,
		settlement.BetTypePatti:  900,
		settlement.BetTypeJuri:   100,
	}
	for bt, want := range cases {
		mult, err := table.MultiplierFor(context.Background(), "g1", bt)
		require.NoError(t, err)
		assert.Equal(t, want, mult, "tipo %s", bt)
	}
}

func TestMultiplierForIgnoraConfiguracaoInvalida(t *testing.T) {
	// multiplicador <= 0 configurado cai no default
	table := NewTable(fakeRepo{rates: []Rate{
		{BetType: settlement.BetTypePatti, Multiplier: 0},
	}})

	mult, err := table.MultiplierFor(context.Background(), "g1", settlement.BetTypePatti)
	require.NoError(t, err)
	assert.Equal(t, int64(900), mult)
}

func TestMultiplierForTipoDesconhecido(t *testing.T) {
	table := NewTable(fakeRepo{})

	_, err := table.MultiplierFor(context.Background(), "g1", settlement.BetType("mystery"))
	assert.Error(t, err)
}

func TestMultiplierForErroDoRepo(t *testing.T) {
	table := NewTable(fakeRepo{err: errors.New("db down")})

	_, err := table.MultiplierFor(context.Background(), "g1", settlement.BetTypeSingle)
	assert.Error(t, err)
}

func TestRatesForListaEfetiva(t *testing.T) {
	table := NewTable(fakeRepo{rates: []Rate{
		{BetType: settlement.BetTypeJuri, Multiplier: 110},
	}})

	got, err := table.RatesFor(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	byType := map[settlement.BetType]int64{}
	for _, r := range got {
		byType[r.BetType] = r.Multiplier
	}
	assert.Equal(t, int64(90), byType[settlement.BetTypeSingle])
	assert.Equal(t, int64(900), byType[settlement.BetTypePatti])
	assert.Equal(t, int64(110), byType[settlement.BetTypeJuri])
}

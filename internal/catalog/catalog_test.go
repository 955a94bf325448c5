package catalog

import (
	"testing"

	"github.com/farmace/beneficios/internal/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		expectedValor money.Centavos
		expectedTitle string
	}{
		{
			name:          "vale gas has fixed face value",
			id:            "vale-gas",
			expectedValor: 12500,
			expectedTitle: "Vale Gás",
		},
		{
			name:          "pharmacy benefit carries the ceiling amount",
			id:            "vale-farmacia-santa-cecilia",
			expectedValor: 30000,
			expectedTitle: "Vale Farmácia Santa Cecília",
		},
		{
			name:          "fuel benefit has no parseable amount",
			id:            "vale-combustivel",
			expectedValor: 0,
			expectedTitle: "Vale Combustível",
		},
		{
			name:          "health plan",
			id:            "plano-saude",
			expectedValor: 7900,
			expectedTitle: "Plano de Saúde",
		},
		{
			name:          "transit benefit",
			id:            "vale-transporte",
			expectedValor: 3500,
			expectedTitle: "Vale Transporte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := Lookup(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.expectedTitle, b.Title)
			assert.Equal(t, tt.expectedValor, b.Valor)
		})
	}
}

func TestLookup_UnknownID(t *testing.T) {
	_, ok := Lookup("vale-inexistente")
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	require.Len(t, all, 6)

	all[0].Title = "mutated"

	again := All()
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestPartnerScopedBenefits(t *testing.T) {
	b, ok := Lookup("vale-farmacia-gentil")
	require.True(t, ok)

	p, ok := LookupPartner(b.PartnerID)
	require.True(t, ok)
	assert.Equal(t, "farmacia-gentil", p.ID)
	assert.Contains(t, p.NameVariants, b.Title)
}

func TestLookupPartner(t *testing.T) {
	p, ok := LookupPartner("farmacia-santa-cecilia")
	require.True(t, ok)
	assert.Len(t, p.NameVariants, 3)
	assert.Contains(t, p.NameVariants, "Farmácia Santa Cecília")

	_, ok = LookupPartner("padaria-do-centro")
	assert.False(t, ok)
}

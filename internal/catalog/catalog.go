// Package catalog holds the static benefit catalog and the partner
// registry. Face values are attached as integer centavos, derived once
// from the display labels at package init rather than re-parsed at every
// issuance.
package catalog

import "github.com/farmace/beneficios/internal/domain/money"

// Beneficio is a catalog entry an employee can select when requesting a
// voucher. ValorLabel is the human-facing face value ("R$ 125,00",
// "Máx R$ 300,00", "Consultar valor"); Valor is the parsed amount, zero
// when the label carries no numeric token.
type Beneficio struct {
	ID          string
	Title       string
	Description string
	ValorLabel  string
	Valor       money.Centavos
	// PartnerID links partner-scoped benefits to the partner registry;
	// empty for benefits not tied to one establishment
	PartnerID string
}

var beneficios = []Beneficio{
	{
		ID:          "vale-gas",
		Title:       "Vale Gás",
		Description: "Benefício para compra de gás de cozinha",
		ValorLabel:  "R$ 125,00",
	},
	{
		ID:          "vale-farmacia-santa-cecilia",
		Title:       "Vale Farmácia Santa Cecília",
		Description: "Benefício para compras na Farmácia Santa Cecília",
		ValorLabel:  "Máx R$ 300,00",
		PartnerID:   "farmacia-santa-cecilia",
	},
	{
		ID:          "vale-farmacia-gentil",
		Title:       "Vale Farmácia Gentil",
		Description: "Benefício para compras na Farmácia Gentil",
		ValorLabel:  "Máx R$ 300,00",
		PartnerID:   "farmacia-gentil",
	},
	{
		ID:          "vale-combustivel",
		Title:       "Vale Combustível",
		Description: "Benefício para abastecimento de veículos",
		ValorLabel:  "Consultar valor",
	},
	{
		ID:          "plano-saude",
		Title:       "Plano de Saúde",
		Description: "Cobertura de assistência médica e hospitalar",
		ValorLabel:  "R$ 79,00",
	},
	{
		ID:          "vale-transporte",
		Title:       "Vale Transporte",
		Description: "Auxílio para deslocamento urbano",
		ValorLabel:  "R$ 35,00",
	},
}

var byID map[string]*Beneficio

func init() {
	byID = make(map[string]*Beneficio, len(beneficios))
	for i := range beneficios {
		beneficios[i].Valor = money.ParseValorLabel(beneficios[i].ValorLabel)
		byID[beneficios[i].ID] = &beneficios[i]
	}
}

// Lookup resolves a benefit id to its catalog entry
func Lookup(id string) (*Beneficio, bool) {
	b, ok := byID[id]
	return b, ok
}

// All returns the full catalog in display order
func All() []Beneficio {
	out := make([]Beneficio, len(beneficios))
	copy(out, beneficios)
	return out
}

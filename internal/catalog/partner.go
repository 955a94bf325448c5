package catalog

// Partner is an establishment authorized to redeem vouchers and invoice
// for them. NameVariants lists every spelling historically written into
// voucher records for this partner; invoice lookups union across all of
// them so older records are not lost.
type Partner struct {
	ID           string
	Name         string
	NameVariants []string
}

var partners = []Partner{
	{
		ID:   "farmacia-santa-cecilia",
		Name: "Farmacia Santa Cecilia",
		NameVariants: []string{
			"Farmacia Santa Cecilia",
			"Vale Farmácia Santa Cecília",
			"Farmácia Santa Cecília",
		},
	},
	{
		ID:   "farmacia-gentil",
		Name: "Farmácia Gentil",
		NameVariants: []string{
			"Farmácia Gentil",
			"Vale Farmácia Gentil",
		},
	},
}

var partnersByID map[string]*Partner

func init() {
	partnersByID = make(map[string]*Partner, len(partners))
	for i := range partners {
		partnersByID[partners[i].ID] = &partners[i]
	}
}

// LookupPartner resolves a stable partner id
func LookupPartner(id string) (*Partner, bool) {
	p, ok := partnersByID[id]
	return p, ok
}

// Partners returns all registered partners
func Partners() []Partner {
	out := make([]Partner, len(partners))
	copy(out, partners)
	return out
}

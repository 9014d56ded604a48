package places

// DefaultPlaces returns the hardcoded seed of the code book: the major
// Italian municipalities plus the most common foreign-country codes. A full
// national code book can be layered on top via LoadDirectory.
func DefaultPlaces() []Place {
	return []Place{
		{Code: "A662", Name: "Bari", Province: "BA"},
		{Code: "A944", Name: "Bologna", Province: "BO"},
		{Code: "B157", Name: "Brescia", Province: "BS"},
		{Code: "B354", Name: "Cagliari", Province: "CA"},
		{Code: "C351", Name: "Catania", Province: "CT"},
		{Code: "D612", Name: "Firenze", Province: "FI"},
		{Code: "D969", Name: "Genova", Province: "GE"},
		{Code: "E625", Name: "Livorno", Province: "LI"},
		{Code: "F158", Name: "Messina", Province: "ME"},
		{Code: "F205", Name: "Milano", Province: "MI"},
		{Code: "F257", Name: "Modena", Province: "MO"},
		{Code: "F839", Name: "Napoli", Province: "NA"},
		{Code: "G224", Name: "Padova", Province: "PD"},
		{Code: "G273", Name: "Palermo", Province: "PA"},
		{Code: "G337", Name: "Parma", Province: "PR"},
		{Code: "G478", Name: "Perugia", Province: "PG"},
		{Code: "G999", Name: "Prato", Province: "PO"},
		{Code: "H199", Name: "Ravenna", Province: "RA"},
		{Code: "H224", Name: "Reggio Calabria", Province: "RC"},
		{Code: "H501", Name: "Roma", Province: "RM"},
		{Code: "H703", Name: "Salerno", Province: "SA"},
		{Code: "L219", Name: "Torino", Province: "TO"},
		{Code: "L424", Name: "Trieste", Province: "TS"},
		{Code: "L736", Name: "Venezia", Province: "VE"},
		{Code: "L781", Name: "Verona", Province: "VR"},

		{Code: "Z100", Name: "Albania", Foreign: true},
		{Code: "Z110", Name: "Francia", Foreign: true},
		{Code: "Z112", Name: "Germania", Foreign: true},
		{Code: "Z114", Name: "Regno Unito", Foreign: true},
		{Code: "Z129", Name: "Romania", Foreign: true},
		{Code: "Z131", Name: "Spagna", Foreign: true},
		{Code: "Z133", Name: "Svizzera", Foreign: true},
		{Code: "Z138", Name: "Ucraina", Foreign: true},
		{Code: "Z210", Name: "Cina", Foreign: true},
		{Code: "Z219", Name: "Giappone", Foreign: true},
		{Code: "Z222", Name: "India", Foreign: true},
		{Code: "Z330", Name: "Marocco", Foreign: true},
		{Code: "Z336", Name: "Egitto", Foreign: true},
		{Code: "Z352", Name: "Tunisia", Foreign: true},
		{Code: "Z401", Name: "Canada", Foreign: true},
		{Code: "Z404", Name: "Stati Uniti", Foreign: true},
		{Code: "Z600", Name: "Argentina", Foreign: true},
		{Code: "Z602", Name: "Brasile", Foreign: true},
		{Code: "Z700", Name: "Australia", Foreign: true},
	}
}

// NewSeededRegistry creates a registry preloaded with DefaultPlaces.
func NewSeededRegistry() *Registry {
	registry := NewRegistry()
	seed := DefaultPlaces()
	for i := range seed {
		// Seed entries are statically valid.
		_ = registry.Register(&seed[i])
	}
	return registry
}

package core

// Brand is one of the house brands a brief can be generated for.
type Brand struct {
	Key    string
	Label  string
	Themes []string // creative themes the brand competes across
}

var brands = []Brand{
	{Key: "bebodywise", Label: "Bebodywise", Themes: []string{"weight", "immunity", "energy", "confidence"}},
	{Key: "man_matters", Label: "Man Matters", Themes: []string{"hair_loss", "performance", "energy", "confidence"}},
	{Key: "little_joys", Label: "Little Joys", Themes: []string{"immunity", "parenting", "safety", "energy"}},
}

// Brands returns the brand registry in display order.
func Brands() []Brand {
	out := make([]Brand, len(brands))
	copy(out, brands)
	return out
}

// LookupBrand finds a brand by key.
func LookupBrand(key string) (Brand, bool) {
	for _, b := range brands {
		if b.Key == key {
			return b, true
		}
	}
	return Brand{}, false
}

package model

// Ассортимент

type Flavour struct {
	ID    string
	Title string
}

var Flavours = []Flavour{
	{ID: "onion", Title: "Onion"},
	{ID: "carrot", Title: "Carrot"},
	{ID: "greenchilli", Title: "Green Chilli"},
	{ID: "amla", Title: "Amla"},
}

// Quantities - фасовка в граммах
var Quantities = []string{"150", "250", "500"}

func LookupFlavour(id string) (Flavour, bool) {
	for _, flavour := range Flavours {
		if flavour.ID == id {
			return flavour, true
		}
	}
	return Flavour{}, false
}

// FlavourTitle returns the display name of a flavour id, or the id itself for
// flavours no longer in the catalog.
func FlavourTitle(id string) string {
	if flavour, ok := LookupFlavour(id); ok {
		return flavour.Title
	}
	return id
}

func IsQuantity(grams string) bool {
	for _, q := range Quantities {
		if q == grams {
			return true
		}
	}
	return false
}

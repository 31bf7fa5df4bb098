// Package branch holds the physical pickup locations referenced by orders.
package branch

// Branch is a physical pickup location.
type Branch struct {
	ID           string
	Name         string
	NameLocal    string
	Address      string
	AddressLocal string
}

var branches = []Branch{
	{
		ID:           "haram-emad",
		Name:         "Haram – Emad Street",
		NameLocal:    "الهرم – شارع عماد",
		Address:      "Emad Street, beside El Safwa Store",
		AddressLocal: "شارع عماد، بجانب محل الصفوة",
	},
	{
		ID:           "haram-omnia",
		Name:         "Haram – Omnia Station",
		NameLocal:    "الهرم – محطة أمنية",
		Address:      "Omnia Station, beside El Montazah",
		AddressLocal: "محطة أمنية، بجانب المنتزه",
	},
	{
		ID:           "october-mehwar",
		Name:         "6th of October – El Abd Extension",
		NameLocal:    "أكتوبر – إمتداد العبد",
		Address:      "El Abd Extension, opposite October 6 University",
		AddressLocal: "إمتداد العبد - أمام جامعة ٦ أكتوبر",
	},
}

// All returns a copy of the branch list.
func All() []Branch {
	out := make([]Branch, len(branches))
	copy(out, branches)
	return out
}

// Lookup resolves a branch by id, falling back to the first branch when the
// id is unknown. The fallback is a documented behavior, not an error: old
// orders may reference branches that no longer exist.
func Lookup(branches []Branch, id string) (Branch, bool) {
	for _, b := range branches {
		if b.ID == id {
			return b, true
		}
	}
	if len(branches) > 0 {
		return branches[0], false
	}
	return Branch{}, false
}

package catalog

// Kind is the catalog an item belongs to.
type Kind string

// Catalog kinds.
const (
	Product Kind = "product"
	Food    Kind = "food"
)

// Kinds lists every kind in display order.
func Kinds() []Kind { return []Kind{Product, Food} }

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == Product || k == Food
}

var categories = map[Kind][]string{
	Product: {"pakaian", "aksesoris", "elektronik", "kecantikan", "rumah tangga", "lainnya"},
	Food:    {"makanan ringan", "makanan berat", "minuman", "dessert", "lainnya"},
}

var statuses = map[Kind][]string{
	Product: {"ready", "habis"},
	Food:    {"available", "soldout", "draft"},
}

// Categories returns the allowed categories for the kind.
func (k Kind) Categories() []string {
	return append([]string(nil), categories[k]...)
}

// Statuses returns the allowed stock statuses for the kind.
func (k Kind) Statuses() []string {
	return append([]string(nil), statuses[k]...)
}

func (k Kind) hasCategory(c string) bool { return contains(categories[k], c) }

func (k Kind) hasStatus(s string) bool { return contains(statuses[k], s) }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

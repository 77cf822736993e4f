package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Field limits.
const (
	MaxIDLength          = 128
	MaxNameLength        = 200
	MaxDescriptionLength = 4000
)

var preorderDays = map[int]bool{0: true, 3: true, 7: true, 10: true}

// Item is a product or food listing (immutable value object).
type Item struct {
	id           string
	kind         Kind
	name         string
	description  string
	category     string
	price        float64
	status       string
	preorderDays int
	createdAt    int64
	updatedAt    int64
}

// Params carries the client-supplied fields of an Item.
type Params struct {
	Name         string
	Description  string
	Category     string
	Price        float64
	Status       string
	PreorderDays int
}

// New validates and creates an Item. Timestamps are set by the service layer.
func New(id string, kind Kind, p Params) (Item, error) {
	if !kind.IsValid() {
		return Item{}, fmt.Errorf("unknown kind %q", kind)
	}
	if id == "" {
		return Item{}, fmt.Errorf("item ID is required")
	}
	if len(id) > MaxIDLength {
		return Item{}, fmt.Errorf("item ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Item{}, fmt.Errorf("item ID must be alphanumeric with underscores and hyphens")
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Item{}, fmt.Errorf("name is required")
	}
	if len(name) > MaxNameLength {
		return Item{}, fmt.Errorf("name too long (max %d)", MaxNameLength)
	}
	if len(p.Description) > MaxDescriptionLength {
		return Item{}, fmt.Errorf("description too long (max %d)", MaxDescriptionLength)
	}
	if !kind.hasCategory(p.Category) {
		return Item{}, fmt.Errorf("category %q is not allowed for %s", p.Category, kind)
	}
	if p.Price < 0 {
		return Item{}, fmt.Errorf("price must be non-negative")
	}
	if p.Status != "" && !kind.hasStatus(p.Status) {
		return Item{}, fmt.Errorf("status %q is not allowed for %s", p.Status, kind)
	}
	if !preorderDays[p.PreorderDays] {
		return Item{}, fmt.Errorf("preorder days must be one of 0, 3, 7, 10")
	}

	return Item{
		id:           id,
		kind:         kind,
		name:         name,
		description:  strings.TrimSpace(p.Description),
		category:     p.Category,
		price:        p.Price,
		status:       p.Status,
		preorderDays: p.PreorderDays,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(id string, kind Kind, p Params, createdAt, updatedAt int64) Item {
	return Item{
		id: id, kind: kind, name: p.Name, description: p.Description,
		category: p.Category, price: p.Price, status: p.Status, preorderDays: p.PreorderDays,
		createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the item identifier.
func (i *Item) ID() string { return i.id }

// Kind returns the catalog kind.
func (i *Item) Kind() Kind { return i.kind }

// Name returns the display name.
func (i *Item) Name() string { return i.name }

// Description returns the free-text description.
func (i *Item) Description() string { return i.description }

// Category returns the kind-specific category.
func (i *Item) Category() string { return i.category }

// Price returns the price.
func (i *Item) Price() float64 { return i.price }

// Status returns the stock status, empty if unset.
func (i *Item) Status() string { return i.status }

// PreorderDays returns the preorder lead time; 0 means ready stock.
func (i *Item) PreorderDays() int { return i.preorderDays }

// CreatedAt returns the creation time in unix millis.
func (i *Item) CreatedAt() int64 { return i.createdAt }

// UpdatedAt returns the last update time in unix millis.
func (i *Item) UpdatedAt() int64 { return i.updatedAt }

// Params returns the client-supplied fields.
func (i *Item) Params() Params {
	return Params{
		Name: i.name, Description: i.description, Category: i.category,
		Price: i.price, Status: i.status, PreorderDays: i.preorderDays,
	}
}

// WithTimestamps returns a copy with the given timestamps.
func (i *Item) WithTimestamps(createdAt, updatedAt int64) Item {
	c := *i
	c.createdAt = createdAt
	c.updatedAt = updatedAt
	return c
}

// SearchText is the text the ranker matches against: name, description and
// category, skipping empty ones, lower-cased.
func (i *Item) SearchText() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{i.name, i.description, i.category} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

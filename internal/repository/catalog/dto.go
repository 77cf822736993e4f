package catalog

import (
	"fmt"
	"strconv"

	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
)

// itemToHash converts a domain Item to a map for HSET.
func itemToHash(item *domcat.Item) map[string]string {
	return map[string]string{
		"name":          item.Name(),
		"description":   item.Description(),
		"category":      item.Category(),
		"price":         strconv.FormatFloat(item.Price(), 'f', -1, 64),
		"status":        item.Status(),
		"preorder_days": strconv.Itoa(item.PreorderDays()),
		"created_at":    strconv.FormatInt(item.CreatedAt(), 10),
		"updated_at":    strconv.FormatInt(item.UpdatedAt(), 10),
	}
}

// itemFromHash hydrates a domain Item from an HGETALL result map.
func itemFromHash(kind domcat.Kind, id string, m map[string]string) (domcat.Item, error) {
	price, err := parseFloat(m["price"])
	if err != nil {
		return domcat.Item{}, fmt.Errorf("invalid price: %w", err)
	}
	preorder, err := parseInt(m["preorder_days"])
	if err != nil {
		return domcat.Item{}, fmt.Errorf("invalid preorder_days: %w", err)
	}
	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return domcat.Item{}, fmt.Errorf("invalid created_at: %w", err)
	}

	updatedAt := createdAt
	if s := m["updated_at"]; s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			updatedAt = parsed
		}
	}

	p := domcat.Params{
		Name:         m["name"],
		Description:  m["description"],
		Category:     m["category"],
		Price:        price,
		Status:       m["status"],
		PreorderDays: int(preorder),
	}
	return domcat.Reconstruct(id, kind, p, createdAt, updatedAt), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

package katalog

import (
	"time"

	dombatch "github.com/kailas-cloud/katalog/internal/domain/batch"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
)

// Kind selects a catalog.
type Kind string

// Catalog kinds.
const (
	KindProduct Kind = "product"
	KindFood    Kind = "food"
)

// ItemInput holds the writable fields of a catalog item.
type ItemInput struct {
	Name         string
	Description  string
	Category     string
	Price        float64
	Status       string
	PreorderDays int // 0, 3, 7 or 10
}

// Item is a stored catalog item.
type Item struct {
	ID           string
	Kind         Kind
	Name         string
	Description  string
	Category     string
	Price        float64
	Status       string
	PreorderDays int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Preferences holds a user's survey answers.
type Preferences struct {
	ProductCategories []string
	FoodCategories    []string
	LikedKeywords     []string
	SurveyCompleted   bool
	UpdatedAt         time.Time
}

// RecommendRequest describes a recommendation query.
// An empty Kind returns every kind; Limit 0 uses the configured default.
type RecommendRequest struct {
	UserID    string
	SessionID string
	Kind      Kind
	Limit     int
}

// Recommendation is a ranked item with its similarity score.
type Recommendation struct {
	Item  Item
	Score float64
}

// Section holds the recommendations of one kind.
type Section struct {
	Kind  Kind
	Items []Recommendation
}

// Recommendations is the result of a recommendation query.
type Recommendations struct {
	Tokens   []string
	Sections []Section
}

// --- converters ---

func (in ItemInput) toInternal() domcat.Params {
	return domcat.Params{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		Status:       in.Status,
		PreorderDays: in.PreorderDays,
	}
}

func fromInternalItem(it *domcat.Item) Item {
	return Item{
		ID:           it.ID(),
		Kind:         Kind(it.Kind()),
		Name:         it.Name(),
		Description:  it.Description(),
		Category:     it.Category(),
		Price:        it.Price(),
		Status:       it.Status(),
		PreorderDays: it.PreorderDays(),
		CreatedAt:    time.UnixMilli(it.CreatedAt()),
		UpdatedAt:    time.UnixMilli(it.UpdatedAt()),
	}
}

func fromInternalPreferences(p *dompref.Preferences) Preferences {
	return Preferences{
		ProductCategories: p.ProductCategories(),
		FoodCategories:    p.FoodCategories(),
		LikedKeywords:     p.LikedKeywords(),
		SurveyCompleted:   p.SurveyCompleted(),
		UpdatedAt:         time.UnixMilli(p.UpdatedAt()),
	}
}

func fromInternalResponse(resp recommenduc.Response) Recommendations {
	out := Recommendations{
		Tokens:   resp.Tokens,
		Sections: make([]Section, 0, len(resp.Sections)),
	}
	for _, s := range resp.Sections {
		sec := Section{Kind: Kind(s.Kind), Items: make([]Recommendation, 0, len(s.Items))}
		for i := range s.Items {
			sec.Items = append(sec.Items, Recommendation{
				Item:  fromInternalItem(&s.Items[i].Item),
				Score: s.Items[i].Score,
			})
		}
		out.Sections = append(out.Sections, sec)
	}
	return out
}

func fromInternalBatch(results []dombatch.Result) BatchResponse {
	out := BatchResponse{Items: make([]BatchResult, len(results))}
	for i, r := range results {
		out.Items[i] = BatchResult{ID: r.ID(), Status: string(r.Status()), Err: r.Err()}
	}
	out.Succeeded, out.Failed = dombatch.Count(results)
	return out
}

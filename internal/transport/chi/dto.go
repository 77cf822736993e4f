package chi

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/katalog/internal/domain"
	dombatch "github.com/kailas-cloud/katalog/internal/domain/batch"
	domcat "github.com/kailas-cloud/katalog/internal/domain/catalog"
	dompref "github.com/kailas-cloud/katalog/internal/domain/preference"
	recommenduc "github.com/kailas-cloud/katalog/internal/usecase/recommend"
	"github.com/kailas-cloud/katalog/internal/version"
	"github.com/kailas-cloud/katalog/pkg/tfidf"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

type rankDocument struct {
	ID   string `json:"id" validate:"required,max=128"`
	Text string `json:"text" validate:"max=10000"`
}

type rankRequest struct {
	Documents   []rankDocument `json:"documents" validate:"max=1000,dive"`
	QueryTokens []string       `json:"query_tokens" validate:"max=200"`
	TopN        int            `json:"top_n" validate:"min=0,max=1000"`
}

type rankedItem struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

type rankResponse struct {
	Items []rankedItem `json:"items"`
}

type itemRequest struct {
	ID           string  `json:"id,omitempty" validate:"omitempty,max=128"`
	Name         string  `json:"name" validate:"required,max=200"`
	Description  string  `json:"description" validate:"max=4000"`
	Category     string  `json:"category" validate:"required"`
	Price        float64 `json:"price" validate:"gte=0"`
	Status       string  `json:"status,omitempty"`
	PreorderDays int     `json:"preorder_days" validate:"oneof=0 3 7 10"`
}

func (r *itemRequest) params() domcat.Params {
	return domcat.Params{
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Price:        r.Price,
		Status:       r.Status,
		PreorderDays: r.PreorderDays,
	}
}

type itemResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Status       string    `json:"status,omitempty"`
	PreorderDays int       `json:"preorder_days"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type itemListResponse struct {
	Items []itemResponse `json:"items"`
	Total int64          `json:"total"`
}

type batchUpsertRequest struct {
	Items []itemRequest `json:"items" validate:"required,min=1,dive"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required,max=128"`
}

type batchItemResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type batchResponse struct {
	Items     []batchItemResult `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

type preferencesRequest struct {
	ProductCategories []string `json:"product_categories" validate:"max=50"`
	FoodCategories    []string `json:"food_categories" validate:"max=50"`
	LikedKeywords     []string `json:"liked_keywords" validate:"max=50"`
	SurveyCompleted   bool     `json:"survey_completed"`
}

type preferencesResponse struct {
	UserID            string    `json:"user_id"`
	ProductCategories []string  `json:"product_categories"`
	FoodCategories    []string  `json:"food_categories"`
	LikedKeywords     []string  `json:"liked_keywords"`
	SurveyCompleted   bool      `json:"survey_completed"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type sessionTokensRequest struct {
	Tokens []string `json:"tokens" validate:"max=50"`
}

type sessionTokensResponse struct {
	SessionID string   `json:"session_id"`
	Tokens    []string `json:"tokens"`
}

type recommendedItem struct {
	itemResponse
	Score float64 `json:"score"`
}

type recommendationSection struct {
	Kind  string            `json:"kind"`
	Items []recommendedItem `json:"items"`
}

type recommendationsResponse struct {
	UserID   string                  `json:"user_id"`
	Tokens   []string                `json:"tokens"`
	Sections []recommendationSection `json:"sections"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Build  version.Info      `json:"build"`
}

func itemToResponse(item *domcat.Item) itemResponse {
	return itemResponse{
		ID:           item.ID(),
		Kind:         string(item.Kind()),
		Name:         item.Name(),
		Description:  item.Description(),
		Category:     item.Category(),
		Price:        item.Price(),
		Status:       item.Status(),
		PreorderDays: item.PreorderDays(),
		CreatedAt:    time.UnixMilli(item.CreatedAt()).UTC(),
		UpdatedAt:    time.UnixMilli(item.UpdatedAt()).UTC(),
	}
}

func preferencesToResponse(userID string, p *dompref.Preferences) preferencesResponse {
	return preferencesResponse{
		UserID:            userID,
		ProductCategories: nonNil(p.ProductCategories()),
		FoodCategories:    nonNil(p.FoodCategories()),
		LikedKeywords:     nonNil(p.LikedKeywords()),
		SurveyCompleted:   p.SurveyCompleted(),
		UpdatedAt:         time.UnixMilli(p.UpdatedAt()).UTC(),
	}
}

func rankDocumentsFromRequest(in []rankDocument) []tfidf.Document {
	docs := make([]tfidf.Document, len(in))
	for i, d := range in {
		docs[i] = tfidf.Document{ID: d.ID, Text: d.Text}
	}
	return docs
}

func rankedToResponse(scored []tfidf.Scored) rankResponse {
	items := make([]rankedItem, len(scored))
	for i, sc := range scored {
		items[i] = rankedItem{ID: sc.ID, Score: sc.Score}
	}
	return rankResponse{Items: items}
}

func recommendationsToResponse(userID string, resp recommenduc.Response) recommendationsResponse {
	sections := make([]recommendationSection, len(resp.Sections))
	for i, sec := range resp.Sections {
		items := make([]recommendedItem, len(sec.Items))
		for j := range sec.Items {
			items[j] = recommendedItem{
				itemResponse: itemToResponse(&sec.Items[j].Item),
				Score:        sec.Items[j].Score,
			}
		}
		sections[i] = recommendationSection{Kind: string(sec.Kind), Items: items}
	}
	return recommendationsResponse{
		UserID:   userID,
		Tokens:   nonNil(resp.Tokens),
		Sections: sections,
	}
}

func batchToResponse(results []dombatch.Result) batchResponse {
	items := make([]batchItemResult, len(results))
	for i, r := range results {
		items[i] = batchItemResult{ID: r.ID(), Status: string(r.Status())}
		if err := r.Err(); err != nil {
			items[i].Error = batchErrorMessage(err)
		}
	}
	ok, failed := dombatch.Count(results)
	return batchResponse{Items: items, Succeeded: ok, Failed: failed}
}

// batchErrorMessage exposes validation details but hides storage failures.
func batchErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidItem), errors.Is(err, domain.ErrInvalidKind):
		return err.Error()
	case errors.Is(err, domain.ErrItemNotFound):
		return domain.ErrItemNotFound.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	default:
		return "internal error"
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

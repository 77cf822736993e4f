package preference

import (
	"fmt"
	"strings"
)

// Limits on survey answers.
const (
	MaxEntries     = 50
	MaxEntryLength = 100
)

// Preferences holds a user's onboarding survey answers.
type Preferences struct {
	productCategories []string
	foodCategories    []string
	likedKeywords     []string
	surveyCompleted   bool
	updatedAt         int64
}

// New validates and creates Preferences. Entries are trimmed; blank entries are dropped.
func New(productCategories, foodCategories, likedKeywords []string, surveyCompleted bool) (Preferences, error) {
	pc, err := cleanList("product_categories", productCategories)
	if err != nil {
		return Preferences{}, err
	}
	fc, err := cleanList("food_categories", foodCategories)
	if err != nil {
		return Preferences{}, err
	}
	kw, err := cleanList("liked_keywords", likedKeywords)
	if err != nil {
		return Preferences{}, err
	}
	return Preferences{
		productCategories: pc,
		foodCategories:    fc,
		likedKeywords:     kw,
		surveyCompleted:   surveyCompleted,
	}, nil
}

// Reconstruct creates Preferences without validation (storage hydration).
func Reconstruct(
	productCategories, foodCategories, likedKeywords []string, surveyCompleted bool, updatedAt int64,
) Preferences {
	return Preferences{
		productCategories: productCategories,
		foodCategories:    foodCategories,
		likedKeywords:     likedKeywords,
		surveyCompleted:   surveyCompleted,
		updatedAt:         updatedAt,
	}
}

// ProductCategories returns the selected product categories.
func (p *Preferences) ProductCategories() []string { return p.productCategories }

// FoodCategories returns the selected food categories.
func (p *Preferences) FoodCategories() []string { return p.foodCategories }

// LikedKeywords returns the free-text keywords.
func (p *Preferences) LikedKeywords() []string { return p.likedKeywords }

// SurveyCompleted reports whether onboarding is finished.
func (p *Preferences) SurveyCompleted() bool { return p.surveyCompleted }

// UpdatedAt returns the last update time in unix millis.
func (p *Preferences) UpdatedAt() int64 { return p.updatedAt }

// WithUpdatedAt returns a copy stamped with updatedAt.
func (p *Preferences) WithUpdatedAt(updatedAt int64) Preferences {
	c := *p
	c.updatedAt = updatedAt
	return c
}

// Tokens builds ranker query tokens: product categories, food categories and
// liked keywords lower-cased, followed by session tokens as given. Blank
// tokens are dropped and duplicates keep their first position.
// prefs may be nil when the user has not answered the survey yet.
func Tokens(prefs *Preferences, session []string) []string {
	var fromProfile []string
	if prefs != nil {
		fromProfile = make([]string, 0,
			len(prefs.productCategories)+len(prefs.foodCategories)+len(prefs.likedKeywords))
		for _, list := range [][]string{prefs.productCategories, prefs.foodCategories, prefs.likedKeywords} {
			for _, t := range list {
				fromProfile = append(fromProfile, strings.ToLower(t))
			}
		}
	}

	seen := make(map[string]struct{}, len(fromProfile)+len(session))
	out := make([]string, 0, len(fromProfile)+len(session))
	for _, list := range [][]string{fromProfile, session} {
		for _, t := range list {
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// CleanSessionTokens validates tokens cached for a session.
func CleanSessionTokens(tokens []string) ([]string, error) {
	return cleanList("tokens", tokens)
}

func cleanList(name string, in []string) ([]string, error) {
	if len(in) > MaxEntries {
		return nil, fmt.Errorf("%s: too many entries (max %d)", name, MaxEntries)
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(s) > MaxEntryLength {
			return nil, fmt.Errorf("%s: entry too long (max %d)", name, MaxEntryLength)
		}
		out = append(out, s)
	}
	return out, nil
}

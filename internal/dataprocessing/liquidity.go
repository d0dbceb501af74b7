package dataprocessing

import (
	"strings"

	"yieldboard/pkg/contracts/domain"
)

// illiquidCategories are the investment channels classified as illiquid:
// real estate, investment funds and loans.
var illiquidCategories = map[string]struct{}{
	`נדל"ן`:       {},
	"קרנות השקעה": {},
	"הלוואות":     {},
}

// Classify derives the liquidity label of a row. A row without a category
// has no liquidity. An existing canonical label is kept; anything else is
// recomputed from the category.
func Classify(category, existing *string) *string {
	if category == nil {
		return nil
	}
	c := strings.TrimSpace(*category)
	if c == "" {
		return nil
	}

	if existing != nil {
		switch strings.TrimSpace(*existing) {
		case domain.LiquidityLiquid:
			return domain.StringPtr(domain.LiquidityLiquid)
		case domain.LiquidityIlliquid:
			return domain.StringPtr(domain.LiquidityIlliquid)
		}
	}

	if _, ok := illiquidCategories[c]; ok {
		return domain.StringPtr(domain.LiquidityIlliquid)
	}
	return domain.StringPtr(domain.LiquidityLiquid)
}

// ResolveLiquidity fills the liquidity column of t, creating it when the
// source has none. It returns how many rows got a freshly derived value
// instead of keeping a canonical one.
func ResolveLiquidity(t *Table) int {
	categories := t.Column(ColCategory)
	existing := t.Column(ColLiquidity)

	resolved := make([]string, t.Len())
	derived := 0
	for i := range resolved {
		var current *string
		if existing != nil {
			current = cellPtr(existing[i])
		}
		var category *string
		if categories != nil {
			category = cellPtr(categories[i])
		}

		label := Classify(category, current)
		if label == nil {
			continue
		}
		resolved[i] = *label
		if current == nil || strings.TrimSpace(*current) != *label {
			derived++
		}
	}

	t.SetColumn(ColLiquidity, resolved)
	return derived
}

// cellPtr maps an empty or whitespace-only cell to nil. Non-blank cells
// are kept verbatim.
func cellPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

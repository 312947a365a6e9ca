// This file implements the listing filter pipeline: a deterministic,
// full-recompute transformation from the normalized product set plus the
// current filter criteria to the ordered sequence shown to the customer.
//
// 本文件实现列表过滤管道：从规范化的产品集合和当前过滤条件
// 到展示给顾客的有序序列的确定性全量重算转换。
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yourusername/docemila/internal/model"
)

// Apply runs the filter steps in order (search, category, price, rating)
// and then sorts the survivors. The input slice is never mutated. An empty
// result is a valid outcome, not an error.
//
// Apply 按顺序执行过滤步骤（搜索、类别、价格、评分），然后对结果排序。
// 输入切片永远不会被修改。空结果是有效的结果，不是错误。
func Apply(products []model.Product, c model.FilterCriteria) []model.Product {
	result := make([]model.Product, 0, len(products))

	term := strings.ToLower(strings.TrimSpace(c.SearchTerm))
	for _, p := range products {
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		if !matchesCategory(p, c.Category) {
			continue
		}
		if p.Price < c.MinPrice {
			continue
		}
		if c.MaxPrice > 0 && p.Price > c.MaxPrice {
			continue
		}
		if c.MinRating > 0 && p.Rating < c.MinRating {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, c.SortKey)
	return result
}

// matchesTerm reports whether the lowercased term occurs in the product's
// name, description, or category.
func matchesTerm(p model.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

// matchesCategory reports whether the product passes the category filter.
// An empty value, "all", or the original storefront's "todos" disable it.
func matchesCategory(p model.Product, category string) bool {
	switch category {
	case "", model.CategoryAll, "todos":
		return true
	}
	return p.Category == category
}

// sortProducts orders the result per the sort key. Sorting is stable: ties
// keep their relative order from the input, which for the relevance key is
// the original file order. An unknown key behaves like relevance.
//
// sortProducts 根据排序键对结果排序。排序是稳定的：
// 相等的元素保持输入中的相对顺序；未知的键等同于relevance。
func sortProducts(products []model.Product, sortKey string) {
	switch sortKey {
	case model.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case model.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case model.SortNameAsc:
		// The storefront is Brazilian Portuguese; plain byte comparison
		// would misplace accented names like "Torta de Limão".
		col := collate.New(language.BrazilianPortuguese)
		sort.SliceStable(products, func(i, j int) bool {
			return col.CompareString(products[i].Name, products[j].Name) < 0
		})
	case model.SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// relevance: keep the original order
		// relevance：保持原始顺序
	}
}

// CategoryCounts returns the number of products per category, preceded by a
// total count under "all". Categories appear in first-occurrence order.
//
// CategoryCounts 返回每个类别的产品数量，以"all"下的总数开头。
// 类别按首次出现的顺序排列。
func CategoryCounts(products []model.Product) []model.CategoryCount {
	counts := []model.CategoryCount{{Category: model.CategoryAll, Count: len(products)}}
	index := make(map[string]int)

	for _, p := range products {
		if i, ok := index[p.Category]; ok {
			counts[i].Count++
			continue
		}
		index[p.Category] = len(counts)
		counts = append(counts, model.CategoryCount{Category: p.Category, Count: 1})
	}
	return counts
}

// MaxPrice returns the highest price in the set, but never less than floor,
// so the price-range control keeps a usable span even when every product is
// cheaper than the floor.
//
// MaxPrice 返回集合中的最高价格，但不低于floor，
// 这样即使所有产品都低于floor，价格范围控件也保持可用的跨度。
func MaxPrice(products []model.Product, floor float64) float64 {
	max := floor
	for _, p := range products {
		if p.Price > max {
			max = p.Price
		}
	}
	return max
}

// ClampPriceRange clamps the criteria's price bounds into [0, max] and
// substitutes max when no upper bound was supplied. Out-of-range input is
// corrected, never rejected.
//
// ClampPriceRange 将条件的价格边界限制在[0, max]内，
// 并在未提供上限时代入max。超出范围的输入会被修正，而不是拒绝。
func ClampPriceRange(c *model.FilterCriteria, max float64) {
	if c.MinPrice < 0 {
		c.MinPrice = 0
	}
	if c.MinPrice > max {
		c.MinPrice = max
	}
	if c.MaxPrice <= 0 || c.MaxPrice > max {
		c.MaxPrice = max
	}
	if c.MaxPrice < c.MinPrice {
		c.MaxPrice = c.MinPrice
	}
}

// Package catalog holds the static insurance product catalog. Products are
// compiled-in constants and immutable at runtime, so the package is safe to
// read from any number of goroutines.
package catalog

const (
	CategoryHealth = "health"
	CategoryLife   = "life"

	// DefaultFlyerCount is the number of flyer slots every product carries.
	DefaultFlyerCount = 30
)

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	FlyerCount int    `json:"flyerCount"`
}

var products = []Product{
	// Health insurance products
	{ID: "accident-insurance", Name: "ACCIDENT INSURANCE", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "aca-marketplace", Name: "ACA MARKETPLACE PLANS", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "critical-illness", Name: "CRITICAL ILLNESS INSURANCE", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "dental-vision", Name: "DENTAL & VISION INSURANCE", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "group-health", Name: "GROUP HEALTH PLANS", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "individual-family", Name: "INDIVIDUAL & FAMILY HEALTH PLANS", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "short-term-medical", Name: "SHORT-TERM MEDICAL PLANS", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "supplemental-health", Name: "SUPPLEMENTAL HEALTH PLANS", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "medicare-supplement", Name: "MEDICARE SUPPLEMENT/MEDIGAP PLAN", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "medicare-advantage", Name: "MEDICARE ADVANTAGE PLAN – MA PLAN", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "medicare-advantage-pdp", Name: "MEDICARE ADVANTAGE PRESCRIPTION DRUG PLAN – MA-PDP", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},
	{ID: "prescription-drug-plan", Name: "PRESCRIPTION DRUG PLAN – PDP", Category: CategoryHealth, FlyerCount: DefaultFlyerCount},

	// Life insurance products
	{ID: "term-life", Name: "TERM LIFE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "whole-life", Name: "WHOLE LIFE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "universal-life", Name: "UNIVERSAL LIFE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "indexed-universal-life", Name: "INDEXED UNIVERSAL LIFE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "final-expense", Name: "FINAL EXPENSE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "group-life", Name: "GROUP LIFE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "survivorship-life", Name: "SURVIVORSHIP LIFE INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
	{ID: "accidental-death", Name: "ACCIDENTAL DEATH AND DISMEMBERMENT (AD&D) INSURANCE", Category: CategoryLife, FlyerCount: DefaultFlyerCount},
}

var index = func() map[string]Product {
	m := make(map[string]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}()

// Lookup returns the product for id. The boolean is false for unknown
// identifiers; callers render a not-found state rather than failing.
func Lookup(id string) (Product, bool) {
	p, ok := index[id]
	return p, ok
}

// All returns every product in catalog order.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ByCategory returns products in the given category, in catalog order.
func ByCategory(category string) []Product {
	var out []Product
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Exists reports whether id names a known product.
func Exists(id string) bool {
	_, ok := index[id]
	return ok
}

package retail

import (
	"fmt"
	"strings"
)

// GenerateProducts returns count products numbered from SKU-000001.
// The batch replaces the generator's product cache, which order generation
// reads unit prices from.
func (g *Generator) GenerateProducts(count int) ([]Product, error) {
	if err := checkCount("product", count); err != nil {
		return nil, err
	}

	products := make([]Product, 0, count)
	g.products.replace(count)

	createdFrom := g.now.AddDate(-3, 0, 0)
	createdTo := g.now.AddDate(0, -6, 0)

	for i := 0; i < count; i++ {
		cat := pick(g.rng, Categories)
		sub := pick(g.rng, cat.Subcategories)

		price := g.centsBetween(toCents(cat.MinPrice), toCents(cat.MaxPrice))
		cost := quantize(price.Mul(one.Sub(cat.Margin)))

		created := g.dateTimeBetween(createdFrom, createdTo)
		updated := g.dateTimeBetween(created, g.now)

		name := strings.Join([]string{pick(g.rng, Brands), sub, pick(g.rng, productWords)}, " ")

		p := Product{
			ProductID:       fmt.Sprintf("SKU-%06d", i+1),
			ProductName:     name,
			CategoryID:      cat.ID,
			CategoryName:    cat.Name,
			SubcategoryName: sub,
			Brand:           pick(g.rng, Brands),
			UnitPrice:       price,
			UnitCost:        cost,
			StockQuantity:   g.rng.IntN(maxStock + 1),
			IsActive:        g.chance(0.90),
			CreatedAt:       created,
			UpdatedAt:       updated,
		}

		products = append(products, p)
		g.products.add(p.ProductID, p.UnitPrice)
	}

	return products, nil
}

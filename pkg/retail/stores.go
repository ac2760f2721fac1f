package retail

import "fmt"

// GenerateStores returns count stores numbered from STORE-0001. Stores are
// standalone: nothing else in the dataset references them.
func (g *Generator) GenerateStores(count int) ([]Store, error) {
	if err := checkCount("store", count); err != nil {
		return nil, err
	}

	stores := make([]Store, 0, count)

	openFrom := g.now.AddDate(-10, 0, 0)
	openTo := g.now.AddDate(-1, 0, 0)

	for i := 0; i < count; i++ {
		region := regionDist.Pick(g.rng)
		state := pick(g.rng, Regions[region])

		opened := g.dateBetween(openFrom, openTo)
		created := g.atRandomTime(opened)
		updated := g.dateTimeBetween(created, g.now)

		city := cityIn(g.rng, state)

		stores = append(stores, Store{
			StoreID:     fmt.Sprintf("STORE-%04d", i+1),
			StoreName:   fmt.Sprintf("Loja %s - %s", city, state),
			StoreType:   storeTypeDist.Pick(g.rng),
			Region:      region,
			City:        city,
			State:       state,
			ManagerName: newPerson(g.rng).full(),
			OpenDate:    opened,
			IsActive:    g.chance(0.95),
			CreatedAt:   created,
			UpdatedAt:   updated,
		})
	}

	return stores, nil
}

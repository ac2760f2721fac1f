package retail

import "fmt"

// GenerateCustomers returns count customers numbered from CUST-00000001.
// The batch replaces the generator's customer cache.
func (g *Generator) GenerateCustomers(count int) ([]Customer, error) {
	if err := checkCount("customer", count); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, count)
	g.customers.replace(count)

	regFrom := g.now.AddDate(-5, 0, 0)
	regTo := g.now.AddDate(0, 0, -30)

	for i := 0; i < count; i++ {
		registered := g.dateBetween(regFrom, regTo)
		created := g.atRandomTime(registered)
		updated := g.dateTimeBetween(created, g.now)

		p := newPerson(g.rng)
		email := p.email(g.rng)
		state := pick(g.rng, statesUF)

		c := Customer{
			CustomerID:       fmt.Sprintf("CUST-%08d", i+1),
			FirstName:        p.first,
			LastName:         p.last,
			Email:            email,
			Phone:            phone(g.rng, state),
			AddressLine1:     streetAddress(g.rng),
			City:             cityIn(g.rng, state),
			State:            state,
			PostalCode:       postalCode(g.rng),
			CountryCode:      "BR",
			CustomerSegment:  segmentDist.Pick(g.rng),
			RegistrationDate: registered,
			IsActive:         g.chance(0.95),
			CreatedAt:        created,
			UpdatedAt:        updated,
		}

		customers = append(customers, c)
		g.customers.add(c.CustomerID, struct{}{})
	}

	return customers, nil
}

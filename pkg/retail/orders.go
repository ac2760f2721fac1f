package retail

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// OrderPools restricts which customers and products orders may reference.
// A nil slice means "use the generator's cache"; a non-nil empty slice is an
// explicitly empty pool.
type OrderPools struct {
	CustomerIDs []string
	ProductIDs  []string
}

// GenerateOrders returns count orders numbered from ORD-0000000001 together
// with their line items. Every item references an order of the same call.
func (g *Generator) GenerateOrders(count int, pools OrderPools) ([]Order, []OrderItem, error) {
	return g.generateOrders(count, g.avgItems, pools)
}

func (g *Generator) generateOrders(count, avgItems int, pools OrderPools) ([]Order, []OrderItem, error) {
	if err := checkCount("order", count); err != nil {
		return nil, nil, err
	}
	if count == 0 {
		return []Order{}, []OrderItem{}, nil
	}

	customerIDs := pools.CustomerIDs
	if customerIDs == nil {
		customerIDs = g.customers.ids
	}
	productIDs := pools.ProductIDs
	if productIDs == nil {
		productIDs = g.products.ids
	}
	if len(customerIDs) == 0 {
		return nil, nil, fmt.Errorf("%w: no customer ids supplied and none generated", ErrMissingDependency)
	}
	if len(productIDs) == 0 {
		return nil, nil, fmt.Errorf("%w: no product ids supplied and none generated", ErrMissingDependency)
	}

	orders := make([]Order, 0, count)
	items := make([]OrderItem, 0, count*max(avgItems, 1))

	from := g.now.AddDate(-2, 0, 0)

	for i := 0; i < count; i++ {
		orderID := fmt.Sprintf("ORD-%010d", i+1)
		customerID := pick(g.rng, customerIDs)
		orderDate := g.dateTimeBetween(from, g.now)

		n := g.itemCount(avgItems)
		subtotal := decimal.Zero

		for j := 0; j < n; j++ {
			item := g.orderItem(orderID, j+1, productIDs, orderDate)
			subtotal = subtotal.Add(item.LineTotal)
			items = append(items, item)
		}

		discount := quantize(subtotal.Mul(pick(g.rng, orderDiscountRates)))
		shipping := pick(g.rng, shippingCosts)

		orders = append(orders, Order{
			OrderID:         orderID,
			CustomerID:      customerID,
			OrderDate:       orderDate,
			OrderStatus:     statusDist.Pick(g.rng),
			ShippingAddress: fullAddress(g.rng),
			PaymentMethod:   paymentDist.Pick(g.rng),
			Subtotal:        subtotal,
			DiscountAmount:  discount,
			ShippingCost:    shipping,
			TotalAmount:     subtotal.Sub(discount).Add(shipping),
			CreatedAt:       orderDate,
			UpdatedAt:       g.dateTimeBetween(orderDate, g.now),
		})
	}

	return orders, items, nil
}

// itemCount draws round(N(avg, avg/2)) clamped to [1, maxItemsPerOrder].
func (g *Generator) itemCount(avg int) int {
	mean := float64(avg)
	n := int(math.Round(g.rng.NormFloat64()*mean/2 + mean))
	return min(max(n, 1), maxItemsPerOrder)
}

func (g *Generator) orderItem(orderID string, seq int, productIDs []string, at time.Time) OrderItem {
	productID := pick(g.rng, productIDs)
	quantity := 1 + g.rng.IntN(maxQuantity)

	price, ok := g.products.lookup(productID)
	if !ok {
		price = g.centsBetween(fallbackMinCents, fallbackMaxCents)
	}
	pct := pick(g.rng, lineDiscounts)

	total := decimal.NewFromInt(int64(quantity)).
		Mul(price).
		Mul(one.Sub(pct.Div(hundred)))

	return OrderItem{
		OrderItemID:     fmt.Sprintf("%s-%03d", orderID, seq),
		OrderID:         orderID,
		ProductID:       productID,
		Quantity:        quantity,
		UnitPrice:       price,
		DiscountPercent: pct,
		LineTotal:       quantize(total),
		CreatedAt:       at,
	}
}

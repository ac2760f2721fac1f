package retail

import (
	"errors"
	"fmt"
)

// Default entity counts.
const (
	DefaultNumCustomers     = 1000
	DefaultNumProducts      = 500
	DefaultNumStores        = 50
	DefaultNumOrders        = 5000
	DefaultAvgItemsPerOrder = 3
)

// GeneratorConfig sizes a full dataset. Seed is the only source of
// randomness.
type GeneratorConfig struct {
	NumCustomers     int   `json:"num_customers" yaml:"num_customers"`
	NumProducts      int   `json:"num_products" yaml:"num_products"`
	NumStores        int   `json:"num_stores" yaml:"num_stores"`
	NumOrders        int   `json:"num_orders" yaml:"num_orders"`
	AvgItemsPerOrder int   `json:"avg_items_per_order" yaml:"avg_items_per_order"`
	Seed             int64 `json:"seed" yaml:"seed"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		NumCustomers:     DefaultNumCustomers,
		NumProducts:      DefaultNumProducts,
		NumStores:        DefaultNumStores,
		NumOrders:        DefaultNumOrders,
		AvgItemsPerOrder: DefaultAvgItemsPerOrder,
		Seed:             DefaultSeed,
	}
}

// Validate reports every negative count at once.
func (c GeneratorConfig) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    int
	}{
		{"num_customers", c.NumCustomers},
		{"num_products", c.NumProducts},
		{"num_stores", c.NumStores},
		{"num_orders", c.NumOrders},
		{"avg_items_per_order", c.AvgItemsPerOrder},
	} {
		if f.v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidArgument, f.name, f.v))
		}
	}
	return errors.Join(errs...)
}

// Dataset is the output of GenerateAll.
type Dataset struct {
	Config     GeneratorConfig `json:"config"`
	Customers  []Customer      `json:"customers"`
	Products   []Product       `json:"products"`
	Stores     []Store         `json:"stores"`
	Orders     []Order         `json:"orders"`
	OrderItems []OrderItem     `json:"order_items"`
}

// Tables returns the dataset keyed by table name.
func (d *Dataset) Tables() map[string][]Record {
	return map[string][]Record{
		TableCustomers:  Records(d.Customers),
		TableProducts:   Records(d.Products),
		TableStores:     Records(d.Stores),
		TableOrders:     Records(d.Orders),
		TableOrderItems: Records(d.OrderItems),
	}
}

// Counts returns the number of rows per table.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		TableCustomers:  len(d.Customers),
		TableProducts:   len(d.Products),
		TableStores:     len(d.Stores),
		TableOrders:     len(d.Orders),
		TableOrderItems: len(d.OrderItems),
	}
}

// Rows returns the total number of records across all tables.
func (d *Dataset) Rows() int {
	return len(d.Customers) + len(d.Products) + len(d.Stores) + len(d.Orders) + len(d.OrderItems)
}

// Records converts a slice of entities to a slice of Record.
func Records[T Record](in []T) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// GenerateAll reseeds with cfg.Seed, clears the caches and generates
// customers, products, stores, then orders. Calling it twice with the same
// config on the same Generator yields the same dataset.
func (g *Generator) GenerateAll(cfg GeneratorConfig) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g.Seed(cfg.Seed)
	g.Reset()
	g.avgItems = cfg.AvgItemsPerOrder

	customers, err := g.GenerateCustomers(cfg.NumCustomers)
	if err != nil {
		return nil, fmt.Errorf("customers: %w", err)
	}
	products, err := g.GenerateProducts(cfg.NumProducts)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	stores, err := g.GenerateStores(cfg.NumStores)
	if err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}
	orders, items, err := g.GenerateOrders(cfg.NumOrders, OrderPools{})
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}

	return &Dataset{
		Config:     cfg,
		Customers:  customers,
		Products:   products,
		Stores:     stores,
		Orders:     orders,
		OrderItems: items,
	}, nil
}

// Sample generates a small dataset in one call.
func Sample(customers, products, orders, stores int, seed int64) (*Dataset, error) {
	cfg := GeneratorConfig{
		NumCustomers:     customers,
		NumProducts:      products,
		NumStores:        stores,
		NumOrders:        orders,
		AvgItemsPerOrder: DefaultAvgItemsPerOrder,
		Seed:             seed,
	}
	return New(seed).GenerateAll(cfg)
}

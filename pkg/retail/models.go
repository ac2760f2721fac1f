package retail

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table names, used as keys of Dataset.Tables and as storage buckets downstream.
const (
	TableCustomers  = "customers"
	TableProducts   = "products"
	TableStores     = "stores"
	TableOrders     = "orders"
	TableOrderItems = "order_items"
)

// TableNames lists every table in dependency order.
var TableNames = []string{TableCustomers, TableProducts, TableStores, TableOrders, TableOrderItems}

// Record is implemented by every generated entity.
type Record interface {
	// Key returns the business key of the record.
	Key() string
	// Table returns the table the record belongs to.
	Table() string
}

// Customer is a registered shopper.
type Customer struct {
	CustomerID       string    `json:"customer_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	AddressLine1     string    `json:"address_line1"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	PostalCode       string    `json:"postal_code"`
	CountryCode      string    `json:"country_code"`
	CustomerSegment  string    `json:"customer_segment"`
	RegistrationDate time.Time `json:"registration_date"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c Customer) Key() string   { return c.CustomerID }
func (c Customer) Table() string { return TableCustomers }

// Product is a catalog item. UnitCost never exceeds UnitPrice.
type Product struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	CategoryID      string          `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	SubcategoryName string          `json:"subcategory_name"`
	Brand           string          `json:"brand"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	StockQuantity   int             `json:"stock_quantity"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p Product) Key() string   { return p.ProductID }
func (p Product) Table() string { return TableProducts }

// Store is a physical or online point of sale.
type Store struct {
	StoreID     string    `json:"store_id"`
	StoreName   string    `json:"store_name"`
	StoreType   string    `json:"store_type"`
	Region      string    `json:"region"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ManagerName string    `json:"manager_name"`
	OpenDate    time.Time `json:"open_date"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s Store) Key() string   { return s.StoreID }
func (s Store) Table() string { return TableStores }

// Order is the header of a purchase. TotalAmount always equals
// Subtotal - DiscountAmount + ShippingCost.
type Order struct {
	OrderID         string          `json:"order_id"`
	CustomerID      string          `json:"customer_id"`
	OrderDate       time.Time       `json:"order_date"`
	OrderStatus     string          `json:"order_status"`
	ShippingAddress string          `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o Order) Key() string   { return o.OrderID }
func (o Order) Table() string { return TableOrders }

// OrderItem is a line of an order. UnitPrice is a snapshot of the product
// price taken when the order was generated.
type OrderItem struct {
	OrderItemID     string          `json:"order_item_id"`
	OrderID         string          `json:"order_id"`
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (i OrderItem) Key() string   { return i.OrderItemID }
func (i OrderItem) Table() string { return TableOrderItems }

package retail

import "github.com/shopspring/decimal"

// Category describes one product category and how its products are priced.
type Category struct {
	ID            string
	Name          string
	Subcategories []string
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal
	Margin        decimal.Decimal
}

// Categories is the fixed product catalog structure. Order matters: the
// category id is derived from the position.
var Categories = []Category{
	{
		ID:            "CAT-001",
		Name:          "Electronics",
		Subcategories: []string{"Smartphones", "Laptops", "Tablets", "Accessories", "TVs"},
		MinPrice:      decimal.RequireFromString("99.99"),
		MaxPrice:      decimal.RequireFromString("9999.99"),
		Margin:        decimal.RequireFromString("0.25"),
	},
	{
		ID:            "CAT-002",
		Name:          "Fashion",
		Subcategories: []string{"Men's Clothing", "Women's Clothing", "Shoes", "Accessories", "Sportswear"},
		MinPrice:      decimal.RequireFromString("29.99"),
		MaxPrice:      decimal.RequireFromString("799.99"),
		Margin:        decimal.RequireFromString("0.45"),
	},
	{
		ID:            "CAT-003",
		Name:          "Home & Garden",
		Subcategories: []string{"Furniture", "Decor", "Kitchen", "Bedding", "Garden"},
		MinPrice:      decimal.RequireFromString("19.99"),
		MaxPrice:      decimal.RequireFromString("2999.99"),
		Margin:        decimal.RequireFromString("0.35"),
	},
	{
		ID:            "CAT-004",
		Name:          "Beauty",
		Subcategories: []string{"Skincare", "Makeup", "Haircare", "Fragrances", "Personal Care"},
		MinPrice:      decimal.RequireFromString("14.99"),
		MaxPrice:      decimal.RequireFromString("499.99"),
		Margin:        decimal.RequireFromString("0.55"),
	},
	{
		ID:            "CAT-005",
		Name:          "Grocery",
		Subcategories: []string{"Fresh", "Pantry", "Beverages", "Frozen", "Organic"},
		MinPrice:      decimal.RequireFromString("2.99"),
		MaxPrice:      decimal.RequireFromString("199.99"),
		Margin:        decimal.RequireFromString("0.20"),
	},
}

var Brands = []string{
	"TechMax", "StyleCo", "HomeEssentials", "BeautyPro", "FreshMarket",
	"ElectroPrime", "FashionForward", "ComfortZone", "GlowUp", "NaturalChoice",
	"SmartLife", "UrbanStyle", "CasaFeliz", "BelezaPura", "SaborNatural",
}

// Customer segments.
const (
	SegmentBronze   = "BRONZE"
	SegmentSilver   = "SILVER"
	SegmentGold     = "GOLD"
	SegmentPlatinum = "PLATINUM"
)

var segmentDist = NewWeighted(
	Choice[string]{SegmentBronze, 0.50},
	Choice[string]{SegmentSilver, 0.30},
	Choice[string]{SegmentGold, 0.15},
	Choice[string]{SegmentPlatinum, 0.05},
)

// Order statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
	StatusReturned  = "RETURNED"
)

var statusDist = NewWeighted(
	Choice[string]{StatusPending, 0.05},
	Choice[string]{StatusConfirmed, 0.10},
	Choice[string]{StatusShipped, 0.15},
	Choice[string]{StatusDelivered, 0.60},
	Choice[string]{StatusCancelled, 0.05},
	Choice[string]{StatusReturned, 0.05},
)

// Payment methods.
const (
	PaymentCreditCard = "CREDIT_CARD"
	PaymentDebitCard  = "DEBIT_CARD"
	PaymentPix        = "PIX"
	PaymentBoleto     = "BOLETO"
	PaymentWallet     = "WALLET"
)

var paymentDist = NewWeighted(
	Choice[string]{PaymentCreditCard, 0.35},
	Choice[string]{PaymentDebitCard, 0.15},
	Choice[string]{PaymentPix, 0.30},
	Choice[string]{PaymentBoleto, 0.10},
	Choice[string]{PaymentWallet, 0.10},
)

// Store types.
const (
	StoreFlagship  = "FLAGSHIP"
	StoreStandard  = "STANDARD"
	StoreOutlet    = "OUTLET"
	StorePopup     = "POPUP"
	StoreWarehouse = "WAREHOUSE"
)

var storeTypeDist = NewWeighted(
	Choice[string]{StoreFlagship, 0.05},
	Choice[string]{StoreStandard, 0.70},
	Choice[string]{StoreOutlet, 0.15},
	Choice[string]{StorePopup, 0.05},
	Choice[string]{StoreWarehouse, 0.05},
)

// Regions maps each Brazilian macro-region to its federative units.
var Regions = map[string][]string{
	"Norte":        {"AC", "AP", "AM", "PA", "RO", "RR", "TO"},
	"Nordeste":     {"AL", "BA", "CE", "MA", "PB", "PE", "PI", "RN", "SE"},
	"Centro-Oeste": {"DF", "GO", "MT", "MS"},
	"Sudeste":      {"ES", "MG", "RJ", "SP"},
	"Sul":          {"PR", "RS", "SC"},
}

// regionDist weights regions by approximate population share.
var regionDist = NewWeighted(
	Choice[string]{"Norte", 0.08},
	Choice[string]{"Nordeste", 0.27},
	Choice[string]{"Centro-Oeste", 0.08},
	Choice[string]{"Sudeste", 0.42},
	Choice[string]{"Sul", 0.15},
)

var (
	// three in seven lines carry no discount
	lineDiscounts = []decimal.Decimal{
		decimal.Zero, decimal.Zero, decimal.Zero,
		decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(15), decimal.NewFromInt(20),
	}

	orderDiscountRates = []decimal.Decimal{
		decimal.Zero, decimal.Zero, decimal.Zero,
		decimal.RequireFromString("0.05"), decimal.RequireFromString("0.10"),
	}

	shippingCosts = []decimal.Decimal{
		decimal.Zero,
		decimal.RequireFromString("9.99"),
		decimal.RequireFromString("14.99"),
		decimal.RequireFromString("19.99"),
		decimal.RequireFromString("29.99"),
	}
)

const (
	maxItemsPerOrder = 10
	maxQuantity      = 5
	maxStock         = 1000
)

// fallbackPrice bounds, in cents, for order lines whose product is unknown.
const (
	fallbackMinCents = 1000
	fallbackMaxCents = 50000
)

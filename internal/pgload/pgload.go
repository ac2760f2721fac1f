// Package pgload bulk loads a generated dataset into PostgreSQL with COPY.
package pgload

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pkg.jsn.cam/retailgen/pkg/retail"
)

// Beginner is satisfied by *pgx.Conn and *pgxpool.Pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type table struct {
	name    string
	columns []string
	rows    func(*retail.Dataset) [][]any
}

// tables is in foreign key order.
var tables = []table{
	{
		name: retail.TableCustomers,
		columns: []string{"customer_id", "first_name", "last_name", "email", "phone",
			"address_line1", "city", "state", "postal_code", "country_code",
			"customer_segment", "registration_date", "is_active", "created_at", "updated_at"},
		rows: func(ds *retail.Dataset) [][]any {
			out := make([][]any, len(ds.Customers))
			for i, c := range ds.Customers {
				out[i] = []any{c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone,
					c.AddressLine1, c.City, c.State, c.PostalCode, c.CountryCode,
					c.CustomerSegment, c.RegistrationDate, c.IsActive, c.CreatedAt, c.UpdatedAt}
			}
			return out
		},
	},
	{
		name: retail.TableProducts,
		columns: []string{"product_id", "product_name", "category_id", "category_name",
			"subcategory_name", "brand", "unit_price", "unit_cost", "stock_quantity",
			"is_active", "created_at", "updated_at"},
		rows: func(ds *retail.Dataset) [][]any {
			out := make([][]any, len(ds.Products))
			for i, p := range ds.Products {
				out[i] = []any{p.ProductID, p.ProductName, p.CategoryID, p.CategoryName,
					p.SubcategoryName, p.Brand, Numeric(p.UnitPrice), Numeric(p.UnitCost),
					int32(p.StockQuantity), p.IsActive, p.CreatedAt, p.UpdatedAt}
			}
			return out
		},
	},
	{
		name: retail.TableStores,
		columns: []string{"store_id", "store_name", "store_type", "region", "city", "state",
			"manager_name", "open_date", "is_active", "created_at", "updated_at"},
		rows: func(ds *retail.Dataset) [][]any {
			out := make([][]any, len(ds.Stores))
			for i, s := range ds.Stores {
				out[i] = []any{s.StoreID, s.StoreName, s.StoreType, s.Region, s.City, s.State,
					s.ManagerName, s.OpenDate, s.IsActive, s.CreatedAt, s.UpdatedAt}
			}
			return out
		},
	},
	{
		name: retail.TableOrders,
		columns: []string{"order_id", "customer_id", "order_date", "order_status",
			"shipping_address", "payment_method", "subtotal", "discount_amount",
			"shipping_cost", "total_amount", "created_at", "updated_at"},
		rows: func(ds *retail.Dataset) [][]any {
			out := make([][]any, len(ds.Orders))
			for i, o := range ds.Orders {
				out[i] = []any{o.OrderID, o.CustomerID, o.OrderDate, o.OrderStatus,
					o.ShippingAddress, o.PaymentMethod, Numeric(o.Subtotal), Numeric(o.DiscountAmount),
					Numeric(o.ShippingCost), Numeric(o.TotalAmount), o.CreatedAt, o.UpdatedAt}
			}
			return out
		},
	},
	{
		name: retail.TableOrderItems,
		columns: []string{"order_item_id", "order_id", "product_id", "quantity",
			"unit_price", "discount_percent", "line_total", "created_at"},
		rows: func(ds *retail.Dataset) [][]any {
			out := make([][]any, len(ds.OrderItems))
			for i, it := range ds.OrderItems {
				out[i] = []any{it.OrderItemID, it.OrderID, it.ProductID, int32(it.Quantity),
					Numeric(it.UnitPrice), Numeric(it.DiscountPercent), Numeric(it.LineTotal), it.CreatedAt}
			}
			return out
		},
	},
}

// Numeric converts d exactly.
func Numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// Options tune a load.
type Options struct {
	// Truncate empties the five tables before copying.
	Truncate bool
	Logger   *zap.Logger
}

// Load creates the schema if needed and copies every table of ds in one
// transaction. It returns the number of rows copied per table.
func Load(ctx context.Context, db Beginner, ds *retail.Dataset, opts Options) (map[string]int64, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("pgload")

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, stmt := range ddl {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	if opts.Truncate {
		if _, err := tx.Exec(ctx, truncateSQL()); err != nil {
			return nil, fmt.Errorf("truncate: %w", err)
		}
	}

	copied := make(map[string]int64, len(tables))
	for _, t := range tables {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{t.name}, t.columns, pgx.CopyFromRows(t.rows(ds)))
		if err != nil {
			return nil, fmt.Errorf("copy %s: %w", t.name, err)
		}
		copied[t.name] = n
		logger.Debug("table copied", zap.String("table", t.name), zap.Int64("rows", n))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	logger.Info("dataset loaded", zap.Int64("seed", ds.Config.Seed), zap.Any("rows", copied))
	return copied, nil
}

func truncateSQL() string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.name
	}
	return "TRUNCATE " + strings.Join(names, ", ")
}

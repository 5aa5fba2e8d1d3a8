package pos

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/kirana-pos/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrNotEnoughStock  = errors.New("not enough stock")
	ErrNotInCart       = errors.New("product is not in the cart")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// DefaultTaxRate is the Nepali VAT rate.
const DefaultTaxRate = 0.13

type line struct {
	product  models.Product
	quantity int
}

// Cart holds the lines of one sale in the order they were added. Each line is
// capped at the stock of the product snapshot it was added with.
// A Cart is not safe for concurrent use.
type Cart struct {
	taxRate decimal.Decimal
	lines   []line
}

func NewCart(taxRate float64) *Cart {
	return &Cart{taxRate: decimal.NewFromFloat(taxRate)}
}

func (c *Cart) find(productID string) int {
	for i, l := range c.lines {
		if l.product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one more unit of p in the cart.
func (c *Cart) Add(p models.Product) error {
	if p.Stock <= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
	}

	i := c.find(p.ID)
	if i < 0 {
		c.lines = append(c.lines, line{product: p, quantity: 1})
		return nil
	}
	if c.lines[i].quantity+1 > p.Stock {
		return fmt.Errorf("%w: only %d %s of %s", ErrNotEnoughStock, p.Stock, p.Unit, p.Name)
	}
	c.lines[i].product = p
	c.lines[i].quantity++
	return nil
}

// UpdateQuantity changes a line by change units. A line that reaches zero is
// removed; going above stock leaves the line unchanged.
func (c *Cart) UpdateQuantity(productID string, change int) error {
	i := c.find(productID)
	if i < 0 {
		return ErrNotInCart
	}

	q := c.lines[i].quantity + change
	if q <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	if p := c.lines[i].product; q > p.Stock {
		return fmt.Errorf("%w: only %d %s of %s", ErrNotEnoughStock, p.Stock, p.Unit, p.Name)
	}
	c.lines[i].quantity = q
	return nil
}

func (c *Cart) Remove(productID string) {
	if i := c.find(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func lineTotal(l line) decimal.Decimal {
	return decimal.NewFromFloat(l.product.Price).Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Items freezes the cart into order lines.
func (c *Cart) Items() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, models.OrderItem{
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			Quantity:    l.quantity,
			Price:       l.product.Price,
			Total:       lineTotal(l).InexactFloat64(),
		})
	}
	return items
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Totals rounds tax to paisa; total is subtotal plus the rounded tax.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(lineTotal(l))
	}
	tax := subtotal.Mul(c.taxRate).Round(2)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    subtotal.Add(tax).InexactFloat64(),
	}
}

// Package cart holds the session shopping cart and the drawer state.
package cart

import (
	"sync"
	"time"

	"storefront/models"

	"github.com/shopspring/decimal"
)

type Controller struct {
	mu     sync.Mutex
	items  []models.CartItem
	isOpen bool

	Now func() time.Time
}

func NewController() *Controller {
	return &Controller{Now: time.Now}
}

// Add inserts product unless an item with the same id is already in the cart.
// A successful insert opens the drawer.
func (c *Controller) Add(product models.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.Id == product.Id {
			return false
		}
	}

	c.items = append(c.items, models.CartItem{Product: product, AddedAt: c.Now()})
	c.isOpen = true

	return true
}

func (c *Controller) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.Id == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}

	return false
}

func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Controller) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = true
}

func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
}

func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Total sums prices in decimal and rounds to cents.
func (c *Controller) Total() decimal.Decimal {
	return Total(c.Items())
}

func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price))
	}
	return total.Round(2)
}

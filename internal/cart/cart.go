// Package cart implements the shopping cart engine: an ordered list of line
// items with at most one line per product id, plus the derived total.
//
// Package cart 实现购物车引擎：有序的行项目列表，
// 每个产品id最多一行，以及派生的总价。
//
// All operations are total functions: removing an absent id or updating an
// unknown line is a no-op, never an error. Mutations are serialized by a
// mutex because carts are driven by concurrent HTTP requests; each operation
// reads the live state under the lock, so two rapid quantity updates can
// never act on a stale snapshot.
package cart

import (
	"sync"

	"github.com/yourusername/docemila/internal/model"
)

// Cart holds the line items for one shopping session.
// The zero value is not usable; create carts with New.
type Cart struct {
	mu    sync.Mutex
	items []model.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{items: make([]model.CartItem, 0, 8)}
}

// Add puts one unit of the product into the cart. If a line item with the
// same id already exists its quantity is incremented; the stored product
// snapshot is deliberately not refreshed from the argument. A new line is
// appended otherwise, so first-add order is preserved for iteration.
func (c *Cart) Add(p model.Product) {
	c.AddN(p, 1)
}

// AddN adds n units of the product, following the same consolidation rule
// as Add. Values of n below 1 are treated as 1.
func (c *Cart) AddN(p model.Product, n int) {
	if n < 1 {
		n = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity += n
			return
		}
	}
	c.items = append(c.items, model.CartItem{Product: p, Quantity: n})
}

// Remove deletes the line item with the given id. Unknown ids are a no-op.
func (c *Cart) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id int) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line item's quantity to exactly quantity (an
// absolute set, not a delta). A quantity below 1 behaves identically to
// Remove. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(id, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.removeLocked(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Items returns a copy of the line items in first-add order.
func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the sum of price times quantity over all line items,
// unrounded. Display rounding is a serialization concern.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Len returns the number of line items (not the summed quantity).
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every line item. The cart is only ever emptied by this
// explicit call, never automatically.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.items[:0]
}

// ComputeTotal is the pure form of Total for an arbitrary item list.
// ComputeTotal 是Total的纯函数形式，用于任意的行项目列表。
func ComputeTotal(items []model.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

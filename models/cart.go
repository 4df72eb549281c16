package models

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// CartItem pairs a product snapshot with a quantity. An item never exists
// with quantity <= 0; callers remove it instead.
type CartItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// TotalCents is the line total (price x quantity) in cents.
func (ci *CartItem) TotalCents() int64 {
	return ci.Product.PriceCents * int64(ci.Quantity)
}

// Cart maps product IDs to cart items. It lives in the session and dies with
// it. Two concurrent requests on the same session (browser tabs) may touch
// the same cart, so every operation serializes on the cart's own mutex.
//
// Aggregates (item count, total) are recomputed from the map on every call,
// never cached on the struct.
type Cart struct {
	mu    sync.Mutex
	items map[uint]*CartItem
}

func NewCart() *Cart {
	return &Cart{items: make(map[uint]*CartItem)}
}

// AddProduct inserts the product or increases the existing quantity. The
// quantity, cumulative with whatever is already in the cart, is capped by the
// stock on the supplied product snapshot.
func (c *Cart) AddProduct(product *Product, quantity int) error {
	if product == nil {
		return errors.Wrap(ErrInvalidArgument, "product is required")
	}
	if quantity <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "quantity must be positive, got %d", quantity)
	}
	if quantity > product.Stock {
		return errors.Wrapf(ErrInsufficientStock, "requested %d of %q, %d in stock", quantity, product.Name, product.Stock)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.items[product.ID]; ok {
		newQuantity := existing.Quantity + quantity
		if newQuantity > product.Stock {
			return errors.Wrapf(ErrInsufficientStock, "cart already holds %d of %q, adding %d exceeds stock of %d",
				existing.Quantity, product.Name, quantity, product.Stock)
		}
		existing.Product = product
		existing.Quantity = newQuantity
		return nil
	}

	c.items[product.ID] = &CartItem{Product: product, Quantity: quantity}
	return nil
}

// UpdateQuantity sets the absolute quantity for a product already in the
// cart. Stock is re-read from the catalog at call time, not taken from the
// snapshot. A quantity <= 0 removes the item.
func (c *Cart) UpdateQuantity(ctx context.Context, catalog ProductFinder, productID uint, quantity int) error {
	if !c.ContainsProduct(productID) {
		return errors.Wrapf(ErrNotFound, "product %d not in cart", productID)
	}
	if quantity <= 0 {
		c.RemoveProduct(productID)
		return nil
	}

	product, err := catalog.FindProduct(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return errors.Wrapf(ErrInsufficientStock, "requested %d of %q, %d in stock", quantity, product.Name, product.Stock)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[productID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "product %d not in cart", productID)
	}
	item.Product = product
	item.Quantity = quantity
	return nil
}

// RemoveProduct deletes the item. Removing an absent product is a no-op.
func (c *Cart) RemoveProduct(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, productID)
}

func (c *Cart) GetItem(productID uint) *CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[productID]
}

// Items returns an unordered snapshot of the cart's items.
func (c *Cart) Items() []*CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]*CartItem, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	return items
}

// ItemsSortedByName returns a fresh snapshot ordered by product name, ties
// broken by product ID. Safe to range over while the cart keeps mutating.
func (c *Cart) ItemsSortedByName() []*CartItem {
	items := c.Items()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Product.Name != items[j].Product.Name {
			return items[i].Product.Name < items[j].Product.Name
		}
		return items[i].Product.ID < items[j].Product.ID
	})
	return items
}

// ItemCount is the sum of quantities across all items.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// ProductCount is the number of distinct products.
func (c *Cart) ProductCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalCents sums all line totals. Saturates at MaxInt64 rather than
// wrapping on absurdly large carts.
func (c *Cart) TotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, item := range c.items {
		line := item.TotalCents()
		if line < 0 || total > math.MaxInt64-line {
			return math.MaxInt64
		}
		total += line
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[uint]*CartItem)
}

func (c *Cart) ContainsProduct(productID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[productID]
	return ok
}

// ValidateStock reconciles every item against current catalog stock.
// Items whose product is gone, inactive or out of stock are removed;
// quantities above stock are clamped down. Snapshots of surviving items are
// refreshed so prices and names match the catalog. Returns one human-readable
// message per adjustment, in display (name) order. Running it twice without a
// catalog change in between yields no messages the second time.
func (c *Cart) ValidateStock(ctx context.Context, catalog ProductFinder) ([]string, error) {
	var messages []string

	for _, item := range c.ItemsSortedByName() {
		productID := item.Product.ID
		name := item.Product.Name

		product, err := catalog.FindProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.RemoveProduct(productID)
				messages = append(messages, fmt.Sprintf("%s is no longer available and was removed from your cart", name))
				continue
			}
			return nil, err
		}

		c.mu.Lock()
		current, ok := c.items[productID]
		if !ok {
			c.mu.Unlock()
			continue
		}
		switch {
		case product.Stock == 0 || !product.Active:
			delete(c.items, productID)
			messages = append(messages, fmt.Sprintf("%s is no longer available and was removed from your cart", product.Name))
		case current.Quantity > product.Stock:
			old := current.Quantity
			current.Product = product
			current.Quantity = product.Stock
			messages = append(messages, fmt.Sprintf("%s: quantity reduced from %d to %d (limited stock)", product.Name, old, product.Stock))
		default:
			current.Product = product
		}
		c.mu.Unlock()
	}

	return messages, nil
}

// Package warehouse holds concrete types that satisfy the store contracts
// without declaring them.
package warehouse

import (
	"errors"
	"slices"

	"adapter-generator/store"
)

// ErrOutOfStock is returned by Depot.Reserve.
var ErrOutOfStock = errors.New("out of stock")

// Greeting has implicit and explicit implementations of store.Greeter.
// Adapters must pick the explicit ones.
type Greeting struct{}

func (Greeting) Baz() int            { return 1 }
func (Greeting) Foo() string         { return "implicit" }
func (Greeting) Greeter_Baz() int    { return 42 }
func (Greeting) Greeter_Foo() string { return "explicit" }

// Depot satisfies store.Inventory. Name is backed by a field.
type Depot struct {
	Name     string
	levels   map[string]int
	handlers []store.ChangeHandler
}

// NewDepot returns a depot with the given stock levels.
func NewDepot(name string, levels map[string]int) *Depot {
	return &Depot{Name: name, levels: levels}
}

// Reserve takes qty units of sku.
//
//adapt:out remaining
func (d *Depot) Reserve(sku string, qty int, remaining *int) error {
	left := d.levels[sku]
	if left < qty {
		*remaining = left
		return ErrOutOfStock
	}

	d.levels[sku] = left - qty
	*remaining = left - qty
	d.notify(sku)

	return nil
}

func (d *Depot) Restock(skus ...string) int {
	for _, sku := range skus {
		d.levels[sku]++
		d.notify(sku)
	}

	return len(skus)
}

func (d *Depot) At(sku string) int { return d.levels[sku] }

func (d *Depot) AddChangeHandler(h store.ChangeHandler) {
	d.handlers = append(d.handlers, h)
}

func (d *Depot) RemoveChangeHandler(h store.ChangeHandler) {
	d.handlers = slices.DeleteFunc(d.handlers, func(x store.ChangeHandler) bool { return x == h })
}

func (d *Depot) notify(sku string) {
	for _, h := range d.handlers {
		h.OnChange(sku, d.levels[sku])
	}
}

// Account satisfies store.Ledger.
type Account struct {
	balance int64
}

func (a *Account) Apply(delta int64, balance *int64) bool {
	a.balance += delta
	*balance = a.balance

	return a.balance >= 0
}

func (a *Account) Total() int64 { return a.balance }

// Cell satisfies store.Swapper[T] for any T.
type Cell[T any] struct {
	V T
}

func (c *Cell[T]) Swap(x *T) T {
	old := c.V
	c.V, *x = *x, old

	return old
}

// Bins backs store.Shelf with its own map type.
type Bins map[string]int

// Base provides Label through embedding.
type Base struct {
	label string
}

func (b *Base) Label() string     { return b.label }
func (b *Base) SetLabel(v string) { b.label = v }

// Tagged satisfies store.Labeled through its embedded *Base.
type Tagged struct {
	*Base
	ID int
}

// Shadowed overrides the embedded Label getter only, so the accessors no
// longer belong to one property.
type Shadowed struct {
	*Base
}

func (Shadowed) Label() string { return "shadowed" }

// Orders satisfies store.Tracker.
type Orders struct {
	states map[int64]store.OrderStatus
}

// NewOrders returns an empty order book.
func NewOrders() *Orders {
	return &Orders{states: make(map[int64]store.OrderStatus)}
}

func (o *Orders) Status(orderID int64) store.OrderStatus {
	if s, ok := o.states[orderID]; ok {
		return s
	}

	return store.StatusPending
}

func (o *Orders) Advance(orderID int64, to store.OrderStatus) (store.OrderStatus, error) {
	prev := o.Status(orderID)
	if prev == store.StatusCancelled {
		return prev, errors.New("order cancelled")
	}

	o.states[orderID] = to

	return prev, nil
}

// Twins embeds two types that both provide Close at the same depth.
type Twins struct {
	Left
	Right
}

type Left struct{}

func (Left) Close() error { return nil }

type Right struct{}

func (Right) Close() error { return nil }

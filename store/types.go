// Package store declares the contracts used by the fixtures and examples.
package store

// Greeter is implemented explicitly by warehouse.Greeting.
type Greeter interface {
	Baz() int
	Foo() string
}

// ChangeHandler observes stock changes.
type ChangeHandler interface {
	OnChange(sku string, stock int)
}

// Inventory covers every accessor shape: methods with out and variadic
// parameters, a property, an indexer and an event.
type Inventory interface {
	// Reserve takes qty units of sku and reports what is left.
	//adapt:out remaining
	Reserve(sku string, qty int, remaining *int) error
	Restock(skus ...string) int

	Name() string
	SetName(v string)

	At(sku string) int

	AddChangeHandler(h ChangeHandler)
	RemoveChangeHandler(h ChangeHandler)
}

// Ledger applies signed deltas; balance is read and written by reference.
type Ledger interface {
	Apply(delta int64, balance *int64) bool
	Total() int64
}

// Swapper exchanges a stored value with the caller's.
type Swapper[T any] interface {
	Swap(x *T) T
}

// Shelf is a writable indexer.
type Shelf interface {
	At(sku string) int
	SetAt(sku string, n int)
}

// Labeled is a read-write property.
type Labeled interface {
	Label() string
	SetLabel(v string)
}

// OrderStatus is a named non-struct type used as a parameter.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Tracker reports order status transitions.
type Tracker interface {
	Status(orderID int64) OrderStatus
	Advance(orderID int64, to OrderStatus) (OrderStatus, error)
}

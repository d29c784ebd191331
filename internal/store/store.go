// Package store holds the cart/order aggregation state. Every mutation
// replaces the current State with a new value and notifies subscribers, so
// observers can rely on Version (or slice identity) to detect changes.
package store

import (
	"sync"
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// State is an immutable snapshot of a cart. Lines is never modified after the
// snapshot is published.
type State struct {
	Lines       []domain.CartLine   `json:"lines"`
	Mode        domain.DeliveryMode `json:"delivery_mode"`
	TableNumber *int                `json:"table_number,omitempty"`
	Version     uint64              `json:"version"`
}

// TotalItemCount returns the sum of all line quantities
func (s State) TotalItemCount() int {
	count := 0
	for _, l := range s.Lines {
		count += l.Quantity
	}
	return count
}

// TotalPrice returns the sum of quantity × unit price over all lines
func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Line returns the line for the given item id
func (s State) Line(id int) (domain.CartLine, bool) {
	for _, l := range s.Lines {
		if l.Item.ItemID() == id {
			return l, true
		}
	}
	return domain.CartLine{}, false
}

// Subscriber is called with the new state after every mutation
type Subscriber func(State)

// Store is a mutex-guarded cart. Removal always deletes the whole line.
type Store struct {
	mu     sync.Mutex
	state  State
	subs   map[int]Subscriber
	nextID int
	now    func() time.Time
}

// New creates an empty store with counter delivery
func New() *Store {
	return &Store{
		state: State{Lines: []domain.CartLine{}, Mode: domain.DeliveryCounter},
		subs:  make(map[int]Subscriber),
		now:   time.Now,
	}
}

// Snapshot returns the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TotalItemCount is recomputed from the current lines on every call
func (s *Store) TotalItemCount() int {
	return s.Snapshot().TotalItemCount()
}

// TotalPrice is recomputed from the current lines on every call
func (s *Store) TotalPrice() decimal.Decimal {
	return s.Snapshot().TotalPrice()
}

// Subscribe registers fn for change notifications and returns a function that
// removes it again.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// AddItem increments the line for item, or appends a new one. qty below 1 is
// treated as 1.
func (s *Store) AddItem(item domain.CatalogItem, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mutate(func(cur State) (State, bool) {
		lines := make([]domain.CartLine, 0, len(cur.Lines)+1)
		found := false
		for _, l := range cur.Lines {
			if l.Item.ItemID() == item.ItemID() {
				l.Quantity += qty
				found = true
			}
			lines = append(lines, l)
		}
		if !found {
			lines = append(lines, domain.CartLine{Item: item, Quantity: qty})
		}
		cur.Lines = lines
		return cur, true
	})
}

// RemoveItem deletes the line for id regardless of its quantity
func (s *Store) RemoveItem(id int) {
	s.mutate(func(cur State) (State, bool) {
		lines := make([]domain.CartLine, 0, len(cur.Lines))
		for _, l := range cur.Lines {
			if l.Item.ItemID() != id {
				lines = append(lines, l)
			}
		}
		if len(lines) == len(cur.Lines) {
			return cur, false
		}
		cur.Lines = lines
		return cur, true
	})
}

// UpdateQuantity sets the quantity of the line for id. A quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(id, qty int) {
	if qty <= 0 {
		s.RemoveItem(id)
		return
	}
	s.mutate(func(cur State) (State, bool) {
		lines := make([]domain.CartLine, len(cur.Lines))
		changed := false
		for i, l := range cur.Lines {
			if l.Item.ItemID() == id && l.Quantity != qty {
				l.Quantity = qty
				changed = true
			}
			lines[i] = l
		}
		cur.Lines = lines
		return cur, changed
	})
}

// Clear empties the cart and resets delivery to counter with no table
func (s *Store) Clear() {
	s.mutate(cleared)
}

// ClearIfVersion clears the cart only while it is still at version. It
// reports whether the version matched.
func (s *Store) ClearIfVersion(version uint64) bool {
	ok := false
	s.mutate(func(cur State) (State, bool) {
		if cur.Version != version {
			return cur, false
		}
		ok = true
		return cleared(cur)
	})
	return ok
}

func cleared(cur State) (State, bool) {
	if len(cur.Lines) == 0 && cur.Mode == domain.DeliveryCounter && cur.TableNumber == nil {
		return cur, false
	}
	cur.Lines = []domain.CartLine{}
	cur.Mode = domain.DeliveryCounter
	cur.TableNumber = nil
	return cur, true
}

// SetDeliveryMode changes the delivery mode. Switching to counter drops the
// table number.
func (s *Store) SetDeliveryMode(mode domain.DeliveryMode) {
	s.mutate(func(cur State) (State, bool) {
		cur.Mode = mode
		if mode == domain.DeliveryCounter {
			cur.TableNumber = nil
		}
		return cur, true
	})
}

// SetTableNumber sets or clears the table number
func (s *Store) SetTableNumber(n *int) {
	s.mutate(func(cur State) (State, bool) {
		if n == nil {
			cur.TableNumber = nil
		} else {
			v := *n
			cur.TableNumber = &v
		}
		return cur, true
	})
}

// GenerateOrder snapshots the current cart into a pending order. The cart is
// left untouched.
func (s *Store) GenerateOrder(customerName string) domain.Order {
	order, _ := s.GenerateVersionedOrder(customerName)
	return order
}

// GenerateVersionedOrder is GenerateOrder that also returns the version of
// the state the order was taken from.
func (s *Store) GenerateVersionedOrder(customerName string) (domain.Order, uint64) {
	s.mu.Lock()
	cur := s.state
	now := s.now()
	s.mu.Unlock()

	items := make([]domain.CartLine, len(cur.Lines))
	copy(items, cur.Lines)

	var table *int
	if cur.TableNumber != nil {
		v := *cur.TableNumber
		table = &v
	}

	return domain.Order{
		ID:           now.UnixMilli(),
		Items:        items,
		Total:        cur.TotalPrice(),
		Mode:         cur.Mode,
		TableNumber:  table,
		CustomerName: customerName,
		CreatedAt:    now,
		Status:       domain.OrderStatusPending,
	}, cur.Version
}

// mutate applies fn under the lock and, when fn reports a change, publishes
// the new state to subscribers outside the lock.
func (s *Store) mutate(fn func(State) (State, bool)) {
	s.mu.Lock()
	next, changed := fn(s.state)
	if !changed {
		s.mu.Unlock()
		return
	}
	next.Version = s.state.Version + 1
	s.state = next

	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
}

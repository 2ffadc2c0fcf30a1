// Package memory implements the persistence gateways with in-process maps.
// It backs the channel transport for local development and is the store the
// integration tests run against.
package memory

import (
	"context"
	"sync"

	"github.com/phoffmann/entitysync/internal/domain"
	"github.com/phoffmann/entitysync/internal/worker"
)

// Store holds every entity type plus recorded dead letters. All methods are
// safe for concurrent use. Returned entities are copies, so callers can
// mutate them without racing the store.
type Store struct {
	mu sync.RWMutex

	customers  map[int64]domain.Customer
	telephones map[int64]domain.TelephoneNumber
	products   map[int64]domain.Product
	suppliers  map[int64]domain.Supplier
	orders     map[int64]domain.Order

	deadLetters []worker.DeadLetter

	nextID int64
}

func NewStore() *Store {
	return &Store{
		customers:  make(map[int64]domain.Customer),
		telephones: make(map[int64]domain.TelephoneNumber),
		products:   make(map[int64]domain.Product),
		suppliers:  make(map[int64]domain.Supplier),
		orders:     make(map[int64]domain.Order),
	}
}

func (s *Store) allocateID() int64 {
	s.nextID++
	return s.nextID
}

// Customers

func (s *Store) CustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := c
	copied.Phones = clonePhones(c.Phones)
	return &copied, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.allocateID()
	for i := range c.Phones {
		c.Phones[i].ID = s.allocateID()
		c.Phones[i].CustomerID = &c.ID
	}
	stored := *c
	stored.Phones = clonePhones(c.Phones)
	s.customers[c.ID] = stored
	return c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.customers[c.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	// Nil keeps the stored phone set; a non-nil slice replaces it with
	// fresh rows.
	if c.Phones == nil {
		c.Phones = clonePhones(existing.Phones)
	} else {
		for i := range c.Phones {
			c.Phones[i].ID = s.allocateID()
			c.Phones[i].CustomerID = &c.ID
		}
	}
	stored := *c
	stored.Phones = clonePhones(c.Phones)
	s.customers[c.ID] = stored
	return c, nil
}

func clonePhones(phones []domain.TelephoneNumber) []domain.TelephoneNumber {
	if phones == nil {
		return nil
	}
	cloned := make([]domain.TelephoneNumber, len(phones))
	copy(cloned, phones)
	return cloned
}

// Telephone numbers

func (s *Store) TelephoneByID(ctx context.Context, id int64) (*domain.TelephoneNumber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.telephones[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (s *Store) CreateTelephone(ctx context.Context, t *domain.TelephoneNumber) (*domain.TelephoneNumber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.allocateID()
	s.telephones[t.ID] = *t
	return t, nil
}

func (s *Store) UpdateTelephone(ctx context.Context, t *domain.TelephoneNumber) (*domain.TelephoneNumber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.telephones[t.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.telephones[t.ID] = *t
	return t, nil
}

// Products

func (s *Store) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.allocateID()
	s.products[p.ID] = *p
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.products[p.ID] = *p
	return p, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	return list, nil
}

// Suppliers

func (s *Store) SupplierByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sup, ok := s.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := sup
	return &copied, nil
}

func (s *Store) CreateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup.ID = s.allocateID()
	s.suppliers[sup.ID] = *sup
	return sup, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppliers[sup.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.suppliers[sup.ID] = *sup
	return sup, nil
}

// Orders

func (s *Store) OrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := o
	copied.Items = cloneItems(o.Items)
	return &copied, nil
}

func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.allocateID()
	for i := range o.Items {
		o.Items[i].ID = s.allocateID()
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = cloneItems(o.Items)
	s.orders[o.ID] = stored
	return o, nil
}

func (s *Store) UpdateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	for i := range o.Items {
		if o.Items[i].ID == 0 {
			o.Items[i].ID = s.allocateID()
		}
		o.Items[i].OrderID = o.ID
	}
	stored := *o
	stored.Items = cloneItems(o.Items)
	s.orders[o.ID] = stored
	return o, nil
}

func cloneItems(items []domain.OrderItem) []domain.OrderItem {
	if items == nil {
		return nil
	}
	cloned := make([]domain.OrderItem, len(items))
	copy(cloned, items)
	return cloned
}

// Dead letters

func (s *Store) Record(ctx context.Context, letter worker.DeadLetter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deadLetters = append(s.deadLetters, letter)
	return nil
}

// DeadLetters returns a copy of all recorded dead letters.
func (s *Store) DeadLetters() []worker.DeadLetter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	letters := make([]worker.DeadLetter, len(s.deadLetters))
	copy(letters, s.deadLetters)
	return letters
}

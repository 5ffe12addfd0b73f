package services

import (
	"context"

	"storefront/models"
	"storefront/repository"

	"gorm.io/gorm"
)

// In-memory fakes mirroring the repository contracts, used by the cart
// and order tests where the interesting behavior is state, not call
// sequencing.

type fakeProductRepo struct {
	products map[uint]*models.Product
	nextID   uint
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[uint]*models.Product{}, nextID: 1}
	for i := range products {
		p := products[i]
		if p.ID == 0 {
			p.ID = f.nextID
		}
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
		f.products[p.ID] = &p
	}
	return f
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	for id := uint(1); id < f.nextID; id++ {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *p
	return &copy, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = f.nextID
	f.nextID++
	p := *product
	f.products[p.ID] = &p
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	p := *product
	f.products[p.ID] = &p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint) error {
	delete(f.products, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}, nextID: 1}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) (string, error) {
	id := string(rune('a' + f.nextID))
	f.nextID++
	if session.Cart == nil {
		session.Cart = map[uint]int{}
	}
	f.sessions[id] = session
	return id, nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	return f.sessions[sessionID], nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionRepo) UpdateCart(ctx context.Context, sessionID string, mutate func(cart map[uint]int) error) (*models.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if err := mutate(session.Cart); err != nil {
		return nil, err
	}
	return session, nil
}

// add seeds a session directly, bypassing login.
func (f *fakeSessionRepo) add(id string, session *models.Session) {
	if session.Cart == nil {
		session.Cart = map[uint]int{}
	}
	f.sessions[id] = session
}

// fakeOrderRepo applies the conditional-decrement commit semantics of
// the real repository against a linked fakeProductRepo.
type fakeOrderRepo struct {
	products *fakeProductRepo
	orders   []*models.Order
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{products: products}
}

func (f *fakeOrderRepo) PlaceOrder(ctx context.Context, order *models.Order) error {
	for _, item := range order.Items {
		p, ok := f.products.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			return &repository.StockConflictError{ProductID: item.ProductID}
		}
	}
	for _, item := range order.Items {
		f.products.products[item.ProductID].Stock -= item.Quantity
	}
	order.ID = uint(len(f.orders) + 1)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, *f.orders[i])
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Summary(ctx context.Context) (*repository.SalesSummary, error) {
	summary := &repository.SalesSummary{}
	for _, o := range f.orders {
		summary.TotalOrders++
		summary.TotalRevenue += o.TotalAmount
		for _, item := range o.Items {
			summary.TotalItemsSold += int64(item.Quantity)
		}
	}
	return summary, nil
}

func (f *fakeOrderRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	sold := map[uint]int64{}
	for _, o := range f.orders {
		for _, item := range o.Items {
			sold[item.ProductID] += int64(item.Quantity)
		}
	}
	var top []repository.TopProduct
	for id, n := range sold {
		name := ""
		if p, ok := f.products.products[id]; ok {
			name = p.Name
		}
		top = append(top, repository.TopProduct{ProductID: id, Name: name, TotalSold: n})
	}
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

package impl

import (
	"context"
	"sort"
	"time"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. They implement the
// same contracts as the postgres layer, including the conditional stock
// update semantics.

type fakeStore struct {
	users     map[uuid.UUID]*entity.User
	business  map[uuid.UUID]*entity.Business
	products  map[uuid.UUID]*entity.Product
	orders    map[uuid.UUID]*entity.Order
	returns   map[uuid.UUID]*entity.Return
	forecasts map[uuid.UUID]*entity.SalesForecastModel
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uuid.UUID]*entity.User),
		business:  make(map[uuid.UUID]*entity.Business),
		products:  make(map[uuid.UUID]*entity.Product),
		orders:    make(map[uuid.UUID]*entity.Order),
		returns:   make(map[uuid.UUID]*entity.Return),
		forecasts: make(map[uuid.UUID]*entity.SalesForecastModel),
	}
}

// fakeTxManager runs the callback directly against the store. Tests exercise
// service semantics, not transactional isolation.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&fakeFactory{store: m.store})
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) UserRepo() repository.UserRepository {
	return &fakeUserRepo{store: f.store}
}

func (f *fakeFactory) BusinessRepo() repository.BusinessRepository {
	return &fakeBusinessRepo{store: f.store}
}

func (f *fakeFactory) ProductRepo() repository.ProductRepository {
	return &fakeProductRepo{store: f.store}
}

func (f *fakeFactory) OrderRepo() repository.OrderRepository {
	return &fakeOrderRepo{store: f.store}
}

func (f *fakeFactory) ReturnRepo() repository.ReturnRepository {
	return &fakeReturnRepo{store: f.store}
}

func (f *fakeFactory) ForecastModelRepo() repository.ForecastModelRepository {
	return &fakeForecastModelRepo{store: f.store}
}

// --- users ---

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.store.users[id]; ok {
		clone := *user

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.store.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.store.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.store.users[user.ID] = &clone

	return nil
}

// --- businesses ---

type fakeBusinessRepo struct {
	store *fakeStore
}

func (r *fakeBusinessRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Business, error) {
	if business, ok := r.store.business[id]; ok {
		clone := *business

		return &clone, nil
	}

	return nil, repository.ErrBusinessNotFound
}

func (r *fakeBusinessRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Business, error) {
	var out []*entity.Business
	for _, business := range r.store.business {
		if business.OwnerID == ownerID {
			clone := *business
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })

	return out, nil
}

func (r *fakeBusinessRepo) Create(_ context.Context, business *entity.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	clone := *business
	r.store.business[business.ID] = &clone

	return nil
}

func (r *fakeBusinessRepo) Update(_ context.Context, business *entity.Business) error {
	if _, ok := r.store.business[business.ID]; !ok {
		return repository.ErrBusinessNotFound
	}
	clone := *business
	r.store.business[business.ID] = &clone

	return nil
}

func (r *fakeBusinessRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.business, id)

	return nil
}

// --- products ---

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	if product, ok := r.store.products[id]; ok {
		clone := *product

		return &clone, nil
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) FindByName(_ context.Context, businessID uuid.UUID, name string) (*entity.Product, error) {
	for _, product := range r.store.products {
		if product.BusinessID == businessID && product.Name == name {
			clone := *product

			return &clone, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, businessID uuid.UUID, sku string) (*entity.Product, error) {
	for _, product := range r.store.products {
		if product.BusinessID == businessID && product.SKU == sku {
			clone := *product

			return &clone, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) ListByBusiness(_ context.Context, businessID uuid.UUID) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, product := range r.store.products {
		if product.BusinessID == businessID {
			clone := *product
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })

	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for _, existing := range r.store.products {
		if existing.BusinessID == product.BusinessID && existing.SKU == product.SKU {
			return domainerrors.ErrDuplicateSKU.WrapMessage("sku already exists for this business")
		}
	}
	clone := *product
	r.store.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.store.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	r.store.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) DeleteBySKU(_ context.Context, businessID uuid.UUID, sku string) error {
	for id, product := range r.store.products {
		if product.BusinessID == businessID && product.SKU == sku {
			delete(r.store.products, id)

			return nil
		}
	}

	return repository.ErrProductNotFound
}

func (r *fakeProductRepo) AdjustStock(_ context.Context, productID uuid.UUID, delta int, guardAvailable bool) error {
	product, ok := r.store.products[productID]
	if !ok {
		return repository.ErrStockConflict
	}
	if guardAvailable && product.CurrentStock+delta < 0 {
		return repository.ErrStockConflict
	}
	product.CurrentStock += delta

	return nil
}

func (r *fakeProductRepo) DecrementStockClamped(_ context.Context, productID uuid.UUID, qty int) error {
	product, ok := r.store.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.CurrentStock -= qty
	if product.CurrentStock < 0 {
		product.CurrentStock = 0
	}

	return nil
}

// --- orders ---

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	if order, ok := r.store.orders[id]; ok {
		clone := *order

		return &clone, nil
	}

	return nil, repository.ErrOrderNotFound
}

func inRange(t time.Time, dateRange repository.DateRange) bool {
	day := dateOnly(t)
	if dateRange.From != nil && day.Before(dateOnly(*dateRange.From)) {
		return false
	}
	if dateRange.To != nil && day.After(dateOnly(*dateRange.To)) {
		return false
	}

	return true
}

func (r *fakeOrderRepo) ListByBusiness(_ context.Context, businessID uuid.UUID, dateRange repository.DateRange) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, order := range r.store.orders {
		if order.BusinessID == businessID && inRange(order.Date, dateRange) {
			clone := *order
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	return out, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	clone := *order
	r.store.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.store.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	clone := *order
	r.store.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.orders, id)

	return nil
}

// --- returns ---

type fakeReturnRepo struct {
	store *fakeStore
}

func (r *fakeReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Return, error) {
	if ret, ok := r.store.returns[id]; ok {
		clone := *ret

		return &clone, nil
	}

	return nil, repository.ErrReturnNotFound
}

func (r *fakeReturnRepo) ListByBusiness(_ context.Context, businessID uuid.UUID, dateRange repository.DateRange) ([]*entity.Return, error) {
	var out []*entity.Return
	for _, ret := range r.store.returns {
		if ret.BusinessID == businessID && inRange(ret.Date, dateRange) {
			clone := *ret
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	return out, nil
}

func (r *fakeReturnRepo) Create(_ context.Context, ret *entity.Return) error {
	if ret.ID == uuid.Nil {
		ret.ID = uuid.New()
	}
	clone := *ret
	r.store.returns[ret.ID] = &clone

	return nil
}

func (r *fakeReturnRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.store.returns, id)

	return nil
}

// --- forecast models ---

type fakeForecastModelRepo struct {
	store *fakeStore
}

func (r *fakeForecastModelRepo) FindByBusiness(_ context.Context, businessID uuid.UUID) (*entity.SalesForecastModel, error) {
	if model, ok := r.store.forecasts[businessID]; ok {
		clone := *model

		return &clone, nil
	}

	return nil, repository.ErrForecastModelNotFound
}

func (r *fakeForecastModelRepo) Save(_ context.Context, model *entity.SalesForecastModel) error {
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	clone := *model
	r.store.forecasts[model.BusinessID] = &clone

	return nil
}

func (r *fakeForecastModelRepo) DeleteByBusiness(_ context.Context, businessID uuid.UUID) error {
	delete(r.store.forecasts, businessID)

	return nil
}

// --- supporting fakes ---

// noopCache satisfies the analytics cache without storing anything.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, []byte) error         { return nil }
func (noopCache) Invalidate(context.Context, string) error          { return nil }

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Check(password, hash string) bool     { return "hashed:"+password == hash }

// staticTokenService returns fixed tokens and validates against a fixed user.
type staticTokenService struct {
	userID uuid.UUID
}

func (s *staticTokenService) GenerateTokens(uuid.UUID) (string, string, error) {
	return "access-token", "refresh-token", nil
}

func (s *staticTokenService) ValidateAccessToken(string) (uuid.UUID, error) {
	return s.userID, nil
}

func (s *staticTokenService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	if token != "refresh-token" {
		return uuid.Nil, repository.ErrUserNotFound
	}

	return s.userID, nil
}

func (s *staticTokenService) GetRefreshTokenDuration() time.Duration {
	return time.Hour
}

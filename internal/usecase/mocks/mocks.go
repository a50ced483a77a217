package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// MockAccountRepository is an in-memory implementation of
// usecase.AccountRepository. Per-method Func fields override the default
// map-backed behavior.
type MockAccountRepository struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]*domain.Account

	CreateFunc              func(ctx context.Context, account *domain.Account) error
	GetByIDFunc             func(ctx context.Context, id int64) (*domain.Account, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error)
	GetByIDsForUpdateFunc   func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	UpdateFunc              func(ctx context.Context, account *domain.Account) error
	UpdateBalanceFunc       func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	SetClosedAtFunc         func(ctx context.Context, tx usecase.Transaction, id int64, closedAt time.Time) error
	DeleteFunc              func(ctx context.Context, id int64) error
	ListFunc                func(ctx context.Context) ([]*domain.Account, error)
	CountActiveFunc         func(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error)
	MaxBalanceCustomersFunc func(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[int64]*domain.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if account.ID == 0 {
		m.nextID++
		account.ID = m.nextID
	} else if account.ID > m.nextID {
		m.nextID = account.ID
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) SetClosedAt(ctx context.Context, tx usecase.Transaction, id int64, closedAt time.Time) error {
	if m.SetClosedAtFunc != nil {
		return m.SetClosedAtFunc(ctx, tx, id, closedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.ClosedAt = &closedAt
	}
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.accounts))
	for id := range m.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, m.accounts[id])
	}
	return accounts, nil
}

func (m *MockAccountRepository) CountActive(ctx context.Context, city domain.City, accountType domain.AccountType, currency domain.Currency) (int, error) {
	if m.CountActiveFunc != nil {
		return m.CountActiveFunc(ctx, city, accountType, currency)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, acc := range m.accounts {
		if !acc.Closed() && acc.City == city && acc.Type == accountType && acc.Currency == currency {
			count++
		}
	}
	return count, nil
}

func (m *MockAccountRepository) MaxBalanceCustomers(ctx context.Context, accountType domain.AccountType, currency domain.Currency, city *domain.City) ([]*domain.CustomerBalanceStat, error) {
	if m.MaxBalanceCustomersFunc != nil {
		return m.MaxBalanceCustomersFunc(ctx, accountType, currency, city)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var stats []*domain.CustomerBalanceStat
	max := decimal.Zero
	for _, acc := range m.accounts {
		if acc.Type != accountType || acc.Currency != currency {
			continue
		}
		if city != nil && acc.City != *city {
			continue
		}
		if acc.Balance.GreaterThan(max) {
			max = acc.Balance
			stats = nil
		}
		if acc.Balance.Equal(max) {
			stats = append(stats, &domain.CustomerBalanceStat{
				NationalID: acc.CustomerNationalID,
				AccountID:  acc.ID,
				City:       acc.City,
				Balance:    acc.Balance,
			})
		}
	}
	return stats, nil
}

// MockActivityRepository is an in-memory implementation of
// usecase.ActivityRepository.
type MockActivityRepository struct {
	mu         sync.RWMutex
	activities []*domain.AccountActivity

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, activity *domain.AccountActivity) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.AccountActivity, error)
	ListByAccountFunc func(ctx context.Context, accountID int64, limit, offset int) ([]*domain.AccountActivity, error)
}

func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{}
}

func (m *MockActivityRepository) Create(ctx context.Context, tx usecase.Transaction, activity *domain.AccountActivity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, activity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, activity)
	return nil
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id string) (*domain.AccountActivity, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrActivityNotFound
}

func (m *MockActivityRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.AccountActivity, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AccountActivity
	for _, a := range m.activities {
		if (a.SenderAccountID != nil && *a.SenderAccountID == accountID) ||
			(a.ReceiverAccountID != nil && *a.ReceiverAccountID == accountID) {
			result = append(result, a)
		}
	}
	return result, nil
}

// All returns every recorded activity.
func (m *MockActivityRepository) All() []*domain.AccountActivity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AccountActivity(nil), m.activities...)
}

// MockOrderRepository is an in-memory implementation of
// usecase.OrderRepository.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.RegularTransferOrder

	CreateFunc func(ctx context.Context, order *domain.RegularTransferOrder) error
	ListFunc   func(ctx context.Context) ([]*domain.RegularTransferOrder, error)
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]*domain.RegularTransferOrder)}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.RegularTransferOrder) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.RegularTransferOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) Update(ctx context.Context, order *domain.RegularTransferOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*domain.RegularTransferOrder, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.orders))
	for id := range m.orders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	orders := make([]*domain.RegularTransferOrder, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, m.orders[id])
	}
	return orders, nil
}

// MockCustomerRepository is an in-memory implementation of
// usecase.CustomerRepository.
type MockCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer

	GetByNationalIDFunc func(ctx context.Context, nationalID string) (*domain.Customer, error)
}

func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{customers: make(map[string]*domain.Customer)}
}

func (m *MockCustomerRepository) Add(customer *domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers[customer.NationalID] = customer
}

func (m *MockCustomerRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error) {
	if m.GetByNationalIDFunc != nil {
		return m.GetByNationalIDFunc(ctx, nationalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.customers[nationalID]; ok {
		return c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

// MockNotificationSender records sent notifications.
type MockNotificationSender struct {
	mu   sync.Mutex
	sent []SentNotification
}

type SentNotification struct {
	NationalID string
	Message    string
}

func NewMockNotificationSender() *MockNotificationSender {
	return &MockNotificationSender{}
}

func (m *MockNotificationSender) Send(ctx context.Context, nationalID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentNotification{NationalID: nationalID, Message: message})
}

// Sent returns the recorded notifications.
func (m *MockNotificationSender) Sent() []SentNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentNotification(nil), m.sent...)
}

// MockRateProvider returns a fixed rate or an error.
type MockRateProvider struct {
	RateFunc func(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
}

func (m *MockRateProvider) Rate(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	if m.RateFunc != nil {
		return m.RateFunc(ctx, from, to)
	}
	return decimal.NewFromInt(1), nil
}

// MockTransaction tracks commit/rollback calls.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager hands out MockTransactions.
type MockTxManager struct {
	mu   sync.Mutex
	Txs  []*MockTransaction
	Fail bool
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.Fail {
		return nil, fmt.Errorf("begin transaction failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// MockIDGenerator hands out sequential ids.
type MockIDGenerator struct {
	mu sync.Mutex
	n  int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.n++
	return fmt.Sprintf("id-%d", m.n)
}

// FixedClock returns a fixed instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time { return c.Time }

package tests

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"worldmarket/internal/domain"
	"worldmarket/internal/redis"
	"worldmarket/internal/repository"
	"worldmarket/internal/worldid"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.UserProfile

	// Counters for verification
	CreateCallCount    int32
	SetSellerCallCount int32

	// Error injection
	CreateError    error
	SetSellerError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.UserProfile),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByNullifierHash(ctx context.Context, hash string) (*domain.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.NullifierHash == hash {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) SetSeller(ctx context.Context, id, username string) error {
	atomic.AddInt32(&m.SetSellerCallCount, 1)
	if m.SetSellerError != nil {
		return m.SetSellerError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsSeller = true
	user.Username = username
	return nil
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.UserProfile, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK PRODUCT REPOSITORY
// ──────────────────────────────────────────────

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockProductRepository creates a new mock product repository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

// AddProduct adds a product to the mock repository.
func (m *MockProductRepository) AddProduct(product *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
}

// GetProduct returns a product for test assertions.
func (m *MockProductRepository) GetProduct(id string) *domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.products[id]
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *product
	return &copy, nil
}

func (m *MockProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Product, 0)
	for _, p := range m.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Country != "" && p.Country != filter.Country {
			continue
		}
		copy := *p
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockProductRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Product, 0)
	for _, p := range m.products {
		if p.SellerID == sellerID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockProductRepository) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	product.Status = status
	return nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.ListingPayment

	// Counters for verification
	CreateCallCount      int32
	MarkFailedCallCount  int32
	MarkSuccessCallCount int32

	// Error injection
	CreateError      error
	MarkFailedError  error
	MarkSuccessError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.ListingPayment),
	}
}

// AddPayment adds a payment to the mock repository.
func (m *MockPaymentRepository) AddPayment(payment *domain.ListingPayment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

// GetPayment returns a payment for test assertions.
func (m *MockPaymentRepository) GetPayment(id string) *domain.ListingPayment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[id]
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.ListingPayment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment.CreatedAt = time.Now()
	m.payments[payment.ID] = payment
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.ListingPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetPending(ctx context.Context, productID, sellerID string, paymentType domain.PaymentType) (*domain.ListingPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		if p.ProductID == productID && p.SellerID == sellerID && p.PaymentType == paymentType && p.Status == domain.PaymentStatusPending {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockPaymentRepository) MarkFailed(ctx context.Context, id, reason string) error {
	atomic.AddInt32(&m.MarkFailedCallCount, 1)
	if m.MarkFailedError != nil {
		return m.MarkFailedError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = domain.PaymentStatusFailed
	payment.FailureReason = reason
	return nil
}

func (m *MockPaymentRepository) MarkSuccess(ctx context.Context, id, transactionHash string) error {
	atomic.AddInt32(&m.MarkSuccessCallCount, 1)
	if m.MarkSuccessError != nil {
		return m.MarkSuccessError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = domain.PaymentStatusSuccess
	payment.TransactionHash = transactionHash
	return nil
}

func (m *MockPaymentRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.ListingPayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.ListingPayment, 0)
	for _, p := range m.payments {
		if p.ProductID == productID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK CONFIG REPOSITORY
// ──────────────────────────────────────────────

// MockConfigRepository is a mock implementation of ConfigRepository.
type MockConfigRepository struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage

	// Counters for verification
	GetCallCount int32

	// Error injection
	GetError error
}

// NewMockConfigRepository creates a new mock config repository.
func NewMockConfigRepository() *MockConfigRepository {
	return &MockConfigRepository{
		entries: make(map[string]json.RawMessage),
	}
}

// SetEntry stores a raw configuration document.
func (m *MockConfigRepository) SetEntry(key string, value json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// Clear drops all stored configuration documents.
func (m *MockConfigRepository) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]json.RawMessage)
}

func (m *MockConfigRepository) Get(ctx context.Context, key string) (*domain.ConfigEntry, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.entries[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.ConfigEntry{Key: key, Value: value}, nil
}

func (m *MockConfigRepository) Set(ctx context.Context, entry *domain.ConfigEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry.Value
	return nil
}

// ──────────────────────────────────────────────
// MOCK CONFIG CACHE
// ──────────────────────────────────────────────

// MockConfigCache is an in-memory stand-in for the Redis config cache.
type MockConfigCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockConfigCache creates a new mock config cache.
func NewMockConfigCache() *MockConfigCache {
	return &MockConfigCache{
		values: make(map[string][]byte),
	}
}

func (m *MockConfigCache) GetConfig(ctx context.Context, key string, dst any) (bool, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return false, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MockConfigCache) SetConfig(ctx context.Context, key string, value any) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = raw
	return nil
}

func (m *MockConfigCache) InvalidateConfig(ctx context.Context, key string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// ──────────────────────────────────────────────
// MOCK PRODUCT CACHE
// ──────────────────────────────────────────────

// MockProductCache is an in-memory stand-in for the Redis product cache.
type MockProductCache struct {
	mu       sync.RWMutex
	products map[string]*redis.CachedProduct

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
}

// NewMockProductCache creates a new mock product cache.
func NewMockProductCache() *MockProductCache {
	return &MockProductCache{
		products: make(map[string]*redis.CachedProduct),
	}
}

func (m *MockProductCache) GetProduct(ctx context.Context, productID string) (*redis.CachedProduct, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[productID]
	if !ok {
		return nil, nil
	}
	copy := *product
	return &copy, nil
}

func (m *MockProductCache) SetProduct(ctx context.Context, product *redis.CachedProduct) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *product
	m.products[product.ID] = &copy
	return nil
}

func (m *MockProductCache) InvalidateProduct(ctx context.Context, productID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, productID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory stand-in for the Redis lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// ForceBusy makes every acquisition fail as already held.
	ForceBusy bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquirePaymentLock(ctx context.Context, productID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceBusy || m.locks[productID] {
		return false, nil
	}
	m.locks[productID] = true
	return true, nil
}

func (m *MockLockStore) ReleasePaymentLock(ctx context.Context, productID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, productID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK WORLD ID PORTAL
// ──────────────────────────────────────────────

// MockProofVerifier is a mock implementation of worldid.ProofVerifier.
type MockProofVerifier struct {
	// Counters for verification
	VerifyCallCount int32

	// Error injection
	VerifyError error

	mu          sync.Mutex
	lastRequest worldid.VerifyRequest
}

// NewMockProofVerifier creates a new mock proof verifier.
func NewMockProofVerifier() *MockProofVerifier {
	return &MockProofVerifier{}
}

func (m *MockProofVerifier) VerifyProof(ctx context.Context, req worldid.VerifyRequest) error {
	atomic.AddInt32(&m.VerifyCallCount, 1)
	m.mu.Lock()
	m.lastRequest = req
	m.mu.Unlock()
	return m.VerifyError
}

// LastRequest returns the most recent verification request.
func (m *MockProofVerifier) LastRequest() worldid.VerifyRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// MockTransactionReader is a mock implementation of worldid.TransactionReader.
type MockTransactionReader struct {
	mu           sync.RWMutex
	transactions map[string]*worldid.Transaction

	// Counters for verification
	LookupCallCount int32

	// Error injection
	LookupError error
}

// NewMockTransactionReader creates a new mock transaction reader.
func NewMockTransactionReader() *MockTransactionReader {
	return &MockTransactionReader{
		transactions: make(map[string]*worldid.Transaction),
	}
}

// AddTransaction registers a transaction under its reference.
func (m *MockTransactionReader) AddTransaction(tx *worldid.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[tx.Reference] = tx
}

func (m *MockTransactionReader) TransactionByReference(ctx context.Context, reference string) (*worldid.Transaction, error) {
	atomic.AddInt32(&m.LookupCallCount, 1)
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx, ok := m.transactions[reference]
	if !ok {
		return nil, &worldid.APIError{StatusCode: 404, Detail: "transaction not found"}
	}
	copy := *tx
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK CONVERSATION REPOSITORIES
// ──────────────────────────────────────────────

// MockConversationRepository is a mock implementation of ConversationRepository.
type MockConversationRepository struct {
	mu            sync.RWMutex
	conversations map[string]*domain.Conversation

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockConversationRepository creates a new mock conversation repository.
func NewMockConversationRepository() *MockConversationRepository {
	return &MockConversationRepository{
		conversations: make(map[string]*domain.Conversation),
	}
}

// AddConversation adds a conversation to the mock repository.
func (m *MockConversationRepository) AddConversation(conv *domain.Conversation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conv.ID] = conv
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations[conv.ID] = conv
	return nil
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conv, ok := m.conversations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *conv
	return &copy, nil
}

func (m *MockConversationRepository) GetByProductAndBuyer(ctx context.Context, productID, buyerID string) (*domain.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.conversations {
		if c.ProductID == productID && c.BuyerID == buyerID {
			copy := *c
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockConversationRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Conversation, 0)
	for _, c := range m.conversations {
		if c.BuyerID == userID || c.SellerID == userID {
			copy := *c
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockConversationRepository) TouchLastMessage(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[id]
	if !ok {
		return repository.ErrNotFound
	}
	conv.LastMessageAt = time.Now()
	return nil
}

// MockMessageRepository is a mock implementation of MessageRepository.
type MockMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message

	// Counters for verification
	CreateCallCount   int32
	MarkReadCallCount int32

	// Error injection
	CreateError error
}

// NewMockMessageRepository creates a new mock message repository.
func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{}
}

// AddMessage adds a message to the mock repository.
func (m *MockMessageRepository) AddMessage(msg *domain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.CreatedAt = time.Now()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *MockMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Message, 0)
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			copy := *msg
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockMessageRepository) GetLast(ctx context.Context, conversationID string) (*domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var last *domain.Message
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			last = msg
		}
	}
	if last == nil {
		return nil, nil
	}
	copy := *last
	return &copy, nil
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, conversationID, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID && msg.SenderID != userID && !msg.Read {
			count++
		}
	}
	return count, nil
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	atomic.AddInt32(&m.MarkReadCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID && msg.SenderID != userID {
			msg.Read = true
		}
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK REPORT REPOSITORY
// ──────────────────────────────────────────────

// MockReportRepository is a mock implementation of ReportRepository.
type MockReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockReportRepository creates a new mock report repository.
func NewMockReportRepository() *MockReportRepository {
	return &MockReportRepository{
		reports: make(map[string]*domain.Report),
	}
}

// AddReport adds a report to the mock repository.
func (m *MockReportRepository) AddReport(report *domain.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = report
}

// GetReport returns a report for test assertions.
func (m *MockReportRepository) GetReport(id string) *domain.Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reports[id]
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.Report) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID] = report
	return nil
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	report, ok := m.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *report
	return &copy, nil
}

func (m *MockReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Report, 0)
	for _, r := range m.reports {
		if r.Status == status {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus, resolvedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return repository.ErrNotFound
	}
	report.Status = status
	report.ResolvedBy = resolvedBy
	return nil
}

// ──────────────────────────────────────────────
// MOCK FAVORITE REPOSITORY
// ──────────────────────────────────────────────

// MockFavoriteRepository is a mock implementation of FavoriteRepository.
type MockFavoriteRepository struct {
	mu        sync.RWMutex
	favorites []*domain.Favorite

	// Counters for verification
	AddCallCount int32

	// Error injection
	AddError error
}

// NewMockFavoriteRepository creates a new mock favorite repository.
func NewMockFavoriteRepository() *MockFavoriteRepository {
	return &MockFavoriteRepository{}
}

func (m *MockFavoriteRepository) Add(ctx context.Context, fav *domain.Favorite) error {
	atomic.AddInt32(&m.AddCallCount, 1)
	if m.AddError != nil {
		return m.AddError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.favorites {
		if f.UserID == fav.UserID && f.ProductID == fav.ProductID {
			return nil
		}
	}
	copy := *fav
	m.favorites = append(m.favorites, &copy)
	return nil
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.favorites {
		if f.UserID == userID && f.ProductID == productID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Favorite
	// Insertion order is oldest first; callers get newest first.
	for i := len(m.favorites) - 1; i >= 0; i-- {
		if m.favorites[i].UserID == userID {
			copy := *m.favorites[i]
			result = append(result, &copy)
		}
	}
	return result, nil
}

// Package memory provides in-process implementations of the persistence
// ports. It backs the memory database driver for local development and acts
// as the storage double in tests. All guarantees of the durable
// implementations hold here too: unique gateway and external ids, one
// subscription per transaction, per-key serialization of status updates.
package memory

import (
	"context"
	"sync"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	errs "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
)

// Store holds all in-memory tables behind one mutex. Contention is not a
// concern at the scale this driver targets.
type Store struct {
	mu sync.RWMutex

	timeProvider coreport.TimeProvider

	transactions  map[uint64]*entity.Transaction
	byGatewayID   map[string]uint64
	byExternalID  map[string]uint64
	nextTxnID     uint64

	subscriptions   map[uint64]*entity.Subscription
	byTransactionID map[uint64]uint64
	nextSubID       uint64

	users          map[uint64]*entity.User
	byUsername     map[string]uint64
	byEmail        map[string]uint64
	nextUserID     uint64

	events      map[uint64]*entity.WebhookEvent
	eventOrder  []uint64
	nextEventID uint64
}

// NewStore creates an empty in-memory store
func NewStore(timeProvider coreport.TimeProvider) *Store {
	return &Store{
		timeProvider:    timeProvider,
		transactions:    make(map[uint64]*entity.Transaction),
		byGatewayID:     make(map[string]uint64),
		byExternalID:    make(map[string]uint64),
		subscriptions:   make(map[uint64]*entity.Subscription),
		byTransactionID: make(map[uint64]uint64),
		users:           make(map[uint64]*entity.User),
		byUsername:      make(map[string]uint64),
		byEmail:         make(map[string]uint64),
		events:          make(map[uint64]*entity.WebhookEvent),
	}
}

// Transactions returns the transaction repository view of the store
func (s *Store) Transactions() *TransactionRepository {
	return &TransactionRepository{store: s}
}

// Subscriptions returns the subscription repository view of the store
func (s *Store) Subscriptions() *SubscriptionRepository {
	return &SubscriptionRepository{store: s}
}

// Users returns the user repository view of the store
func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

// WebhookEvents returns the webhook event repository view of the store
func (s *Store) WebhookEvents() *WebhookEventRepository {
	return &WebhookEventRepository{store: s}
}

func copyTransaction(txn *entity.Transaction) *entity.Transaction {
	cp := *txn
	if txn.PaymentData != nil {
		pd := *txn.PaymentData
		cp.PaymentData = &pd
	}
	if txn.UserID != nil {
		id := *txn.UserID
		cp.UserID = &id
	}
	return &cp
}

func copySubscription(sub *entity.Subscription) *entity.Subscription {
	cp := *sub
	return &cp
}

func copyUser(user *entity.User) *entity.User {
	cp := *user
	return &cp
}

func copyEvent(event *entity.WebhookEvent) *entity.WebhookEvent {
	cp := *event
	cp.RawPayload = append([]byte(nil), event.RawPayload...)
	return &cp
}

// TransactionRepository is the in-memory transaction storage implementation
type TransactionRepository struct {
	store *Store
}

// Create persists a new transaction
func (r *TransactionRepository) Create(_ context.Context, txn *entity.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byGatewayID[txn.GatewayID]; exists {
		return errs.ErrDuplicateTransaction
	}
	if _, exists := s.byExternalID[txn.ExternalID]; exists {
		return errs.ErrDuplicateTransaction
	}

	s.nextTxnID++
	txn.ID = s.nextTxnID
	s.transactions[txn.ID] = copyTransaction(txn)
	s.byGatewayID[txn.GatewayID] = txn.ID
	s.byExternalID[txn.ExternalID] = txn.ID
	return nil
}

// GetByGatewayID retrieves a transaction by the provider's transaction id
func (r *TransactionRepository) GetByGatewayID(_ context.Context, gatewayID string) (*entity.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byGatewayID[gatewayID]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	return copyTransaction(s.transactions[id]), nil
}

// GetByExternalID retrieves a transaction by the caller-generated token
func (r *TransactionRepository) GetByExternalID(_ context.Context, externalID string) (*entity.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byExternalID[externalID]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	return copyTransaction(s.transactions[id]), nil
}

// UpdateStatus writes a new status under the store lock, which serializes
// concurrent updates per key the same way the row lock does in postgres.
func (r *TransactionRepository) UpdateStatus(
	_ context.Context,
	gatewayID string,
	status entity.TransactionStatus,
	patch *entity.PaymentData,
) (*entity.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byGatewayID[gatewayID]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}

	txn := s.transactions[id]
	txn.Status = status
	txn.UpdatedAt = s.timeProvider.Now()
	if patch != nil {
		pd := *patch
		txn.PaymentData = &pd
	}
	return copyTransaction(txn), nil
}

// SubscriptionRepository is the in-memory subscription storage implementation
type SubscriptionRepository struct {
	store *Store
}

// Create persists a new subscription, rejecting a second activation for the
// same source transaction.
func (r *SubscriptionRepository) Create(_ context.Context, sub *entity.Subscription) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTransactionID[sub.TransactionID]; exists {
		return errs.ErrStorage
	}

	s.nextSubID++
	sub.ID = s.nextSubID
	s.subscriptions[sub.ID] = copySubscription(sub)
	s.byTransactionID[sub.TransactionID] = sub.ID
	return nil
}

// GetActiveByUserID returns the user's current subscription
func (r *SubscriptionRepository) GetActiveByUserID(_ context.Context, userID uint64) (*entity.Subscription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.timeProvider.Now()
	var best *entity.Subscription
	for _, sub := range s.subscriptions {
		if sub.UserID != userID || !sub.IsCurrent(now) {
			continue
		}
		if best == nil || sub.EndsAt.After(best.EndsAt) {
			best = sub
		}
	}
	if best == nil {
		return nil, errs.ErrSubscriptionNotFound
	}
	return copySubscription(best), nil
}

// GetByTransactionID returns the subscription a transaction already produced
func (r *SubscriptionRepository) GetByTransactionID(_ context.Context, transactionID uint64) (*entity.Subscription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byTransactionID[transactionID]
	if !ok {
		return nil, errs.ErrSubscriptionNotFound
	}
	return copySubscription(s.subscriptions[id]), nil
}

// UserRepository is the in-memory user storage implementation
type UserRepository struct {
	store *Store
}

// Create persists a new user
func (r *UserRepository) Create(_ context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return errs.ErrDuplicateUser
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return errs.ErrDuplicateUser
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = copyUser(user)
	s.byUsername[user.Username] = user.ID
	s.byEmail[user.Email] = user.ID
	return nil
}

// GetByID retrieves a user by primary key
func (r *UserRepository) GetByID(_ context.Context, id uint64) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return copyUser(s.users[id]), nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return copyUser(s.users[id]), nil
}

// WebhookEventRepository is the in-memory webhook event storage implementation
type WebhookEventRepository struct {
	store *Store
}

// Create persists an event record immediately on receipt
func (r *WebhookEventRepository) Create(_ context.Context, event *entity.WebhookEvent) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	event.ID = s.nextEventID
	s.events[event.ID] = copyEvent(event)
	s.eventOrder = append(s.eventOrder, event.ID)
	return nil
}

// ListUnprocessed returns unprocessed events oldest first
func (r *WebhookEventRepository) ListUnprocessed(_ context.Context) ([]*entity.WebhookEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []*entity.WebhookEvent
	for _, id := range s.eventOrder {
		if event := s.events[id]; !event.Processed {
			events = append(events, copyEvent(event))
		}
	}
	return events, nil
}

// MarkProcessed flips the processed flag
func (r *WebhookEventRepository) MarkProcessed(_ context.Context, id uint64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return errs.ErrStorage
	}
	event.Processed = true
	return nil
}

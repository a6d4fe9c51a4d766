// Package memory is the in-process store: orders, delivery records and the
// notification log kept in maps behind a single-writer unit of work.
//
// One unit of work at a time holds the writer slot, from Begin until Commit or
// Rollback. Its writes are staged and become visible together on Commit. Reads
// outside a unit of work see committed state only. Every value handed out is a copy,
// so callers cannot change stored aggregates behind the store's back.
package memory

import (
	"errors"
	"slices"
	"sync"

	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"
)

var (
	// ErrDuplicateKey is the port level sentinel, re-exported for callers of this package.
	ErrDuplicateKey = ports.ErrDuplicateKey
	// ErrNoTransaction is returned by writes made outside Begin and Commit.
	ErrNoTransaction = errors.New("no active transaction")
)

// Store holds the committed state. Share one Store between all units of work.
type Store struct {
	// writer slot, taken by UnitOfWork.Begin
	writer chan struct{}

	mu            sync.RWMutex
	orders        map[string]*order.Order
	orderIDs      []string // insertion order
	orderByTN     map[string]string
	records       map[kernel.UUID]*delivery.Record
	recordIDs     []kernel.UUID
	recordByOrder map[string]kernel.UUID
	notifications []*notification.Notification
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		writer:        make(chan struct{}, 1),
		orders:        make(map[string]*order.Order),
		orderByTN:     make(map[string]string),
		records:       make(map[kernel.UUID]*delivery.Record),
		recordByOrder: make(map[string]kernel.UUID),
	}
}

// staging collects the writes of one unit of work.
type staging struct {
	orders        map[string]*order.Order
	newOrderIDs   []string
	records       map[kernel.UUID]*delivery.Record
	newRecordIDs  []kernel.UUID
	notifications []*notification.Notification
}

func newStaging() *staging {
	return &staging{
		orders:  make(map[string]*order.Order),
		records: make(map[kernel.UUID]*delivery.Record),
	}
}

// apply publishes staged writes. The caller holds the writer slot.
func (s *Store) apply(st *staging) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderIDs = append(s.orderIDs, st.newOrderIDs...)
	for id, o := range st.orders {
		s.orders[id] = o
		if tn := o.TrackingNumber(); tn != "" {
			s.orderByTN[tn] = id
		}
	}

	s.recordIDs = append(s.recordIDs, st.newRecordIDs...)
	for id, r := range st.records {
		s.records[id] = r
		s.recordByOrder[r.OrderID()] = id
	}

	s.notifications = append(s.notifications, st.notifications...)
}

func (s *Store) order(id string) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) orderIDByTrackingNumber(trackingNumber string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.orderByTN[trackingNumber]
	return id, ok
}

func (s *Store) record(id kernel.UUID) (*delivery.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

func (s *Store) recordIDByOrder(orderID string) (kernel.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.recordByOrder[orderID]
	return id, ok
}

func (s *Store) lastSequence() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.notifications) == 0 {
		return 0
	}
	return s.notifications[len(s.notifications)-1].Sequence()
}

func (s *Store) snapshotOrders() ([]string, map[string]*order.Order) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.orderIDs), cloneMap(s.orders)
}

func (s *Store) snapshotRecords() ([]kernel.UUID, map[kernel.UUID]*delivery.Record) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recordIDs), cloneMap(s.records)
}

func (s *Store) snapshotNotifications() []*notification.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notifications)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyOrder(o *order.Order) *order.Order {
	cp := *o
	return &cp
}

func copyRecord(r *delivery.Record) *delivery.Record {
	cp := *r
	return &cp
}

func copyNotification(n *notification.Notification) *notification.Notification {
	cp := *n
	return &cp
}

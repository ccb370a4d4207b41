// Package registry holds the in-memory producer collection the dashboard
// and the producer list render from.
package registry

import (
	"context"
	"farmregistry/cmd/internal/contract"
	"farmregistry/cmd/internal/domain/stats"
	"slices"
	"sync"

	"github.com/labstack/gommon/log"
)

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// DataSource is where Load fetches producers from. The REST client and the
// producer service both implement it.
type DataSource interface {
	ListProducers(ctx context.Context, query string) ([]*contract.Producer, error)
}

// State is a snapshot of the store. Slices are copies, the producers they
// point to are shared and must not be modified.
type State struct {
	Producers        []*contract.Producer
	OrderedProducers []*contract.Producer
	Status           Status
	Err              error
}

// Store owns the producer collection, its presentation order and the load
// status. Only Load, Add and SetOrderedProducers mutate it.
type Store struct {
	source DataSource

	mu        sync.RWMutex
	producers []*contract.Producer
	ordered   []*contract.Producer
	status    Status
	err       error
}

func New(source DataSource) *Store {
	return &Store{
		source:    source,
		producers: []*contract.Producer{},
		ordered:   []*contract.Producer{},
		status:    StatusLoading,
	}
}

// Load fetches producers matching query and replaces the collection.
//
// The lock is not held while the source is queried, so overlapping loads
// are not serialized: whichever response arrives last wins. A failed load
// moves the store to StatusFailed and keeps the previous collection.
func (s *Store) Load(ctx context.Context, query string) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.err = nil
	s.mu.Unlock()

	producers, err := s.source.ListProducers(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		log.Errorf("failed to load producers: %v", err)
		s.status = StatusFailed
		s.err = err
		return err
	}

	if producers == nil {
		producers = []*contract.Producer{}
	}
	s.producers = producers
	s.ordered = LatestFirst(producers)
	s.status = StatusReady
	return nil
}

// Add appends records to the collection. The ordered view and the status
// are left alone, call SetOrderedProducers to refresh the view.
func (s *Store) Add(records ...*contract.Producer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.producers = append(s.producers, records...)
}

// SetOrderedProducers replaces the ordered view verbatim, nothing is sorted.
func (s *Store) SetOrderedProducers(records []*contract.Producer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ordered = slices.Clone(records)
	if s.ordered == nil {
		s.ordered = []*contract.Producer{}
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Producers:        slices.Clone(s.producers),
		OrderedProducers: slices.Clone(s.ordered),
		Status:           s.status,
		Err:              s.err,
	}
}

// Summary runs the dashboard aggregations over the current collection.
func (s *Store) Summary() *contract.Summary {
	return stats.Summarize(s.State().Producers)
}

// LatestFirst returns producers in reverse order, so the row the source
// returned last comes first.
func LatestFirst(producers []*contract.Producer) []*contract.Producer {
	ordered := make([]*contract.Producer, len(producers))
	for i, p := range producers {
		ordered[len(producers)-1-i] = p
	}
	return ordered
}

package store

import (
	"sort"
	"sync"

	"ieltslab/internal/model"
)

// MemoryStore keeps all state in process memory behind one mutex.
type MemoryStore struct {
	mu     sync.Mutex
	tests  map[string]*model.Test
	orders map[string]*model.Order
	jobs   map[string]*model.Job
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tests:  make(map[string]*model.Test),
		orders: make(map[string]*model.Order),
		jobs:   make(map[string]*model.Job),
	}
}

// PutTest stores a test keyed by its id.
func (s *MemoryStore) PutTest(t *model.Test) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tests[t.TestID] = t
}

// GetTest retrieves a test by id.
func (s *MemoryStore) GetTest(testID string) (*model.Test, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tests[testID]
	if !ok {
		return nil, false
	}
	// Return a copy so callers cannot mutate stored state
	tCopy := *t
	return &tCopy, true
}

// PutOrder stores an order keyed by its id.
func (s *MemoryStore) PutOrder(o *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = o
}

// ListOrders returns copies of all orders, newest first.
func (s *MemoryStore) ListOrders() []*model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		oCopy := *o
		if o.Test != nil {
			tCopy := *o.Test
			oCopy.Test = &tCopy
		}
		out = append(out, &oCopy)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkOrdersGraded transitions every order for the test to graded.
func (s *MemoryStore) MarkOrdersGraded(testID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, o := range s.orders {
		if o.TestID == testID && o.Status != model.OrderGraded {
			o.Status = model.OrderGraded
			changed++
		}
	}
	return changed
}

// PutJob stores a graded submission keyed by its id.
func (s *MemoryStore) PutJob(j *model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[j.JobID] = j
}

// GetJob retrieves a graded submission by id.
func (s *MemoryStore) GetJob(jobID string) (*model.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[jobID]
	if !ok {
		return nil, false
	}
	jCopy := *j
	return &jCopy, true
}

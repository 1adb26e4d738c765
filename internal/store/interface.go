package store

import "ieltslab/internal/model"

// Store defines the data access interface for tests, orders and jobs.
// Entries live for the process lifetime; nothing is ever evicted.
type Store interface {
	// PutTest stores a generated test. Tests are immutable once stored.
	PutTest(t *model.Test)

	// GetTest retrieves a test by id
	GetTest(testID string) (*model.Test, bool)

	// PutOrder stores a test order
	PutOrder(o *model.Order)

	// ListOrders returns all orders, newest first
	ListOrders() []*model.Order

	// MarkOrdersGraded flips every order referencing the test to graded
	// and returns how many orders changed. Safe to call repeatedly.
	MarkOrdersGraded(testID string) int

	// PutJob stores a graded submission. Jobs are immutable and never deleted.
	PutJob(j *model.Job)

	// GetJob retrieves a graded submission by id
	GetJob(jobID string) (*model.Job, bool)
}

// Package lookup memoizes the pick-lists the form pages render on every
// request. Entries expire after a short TTL so new registrations appear
// without a restart; write paths call Invalidate to shorten that window.
package lookup

import (
	"context"
	"sync"
	"time"

	donorStore "bloodbank/internal/adapters/storage/donor"
	hospitalStore "bloodbank/internal/adapters/storage/hospital"
	recipientStore "bloodbank/internal/adapters/storage/recipient"
)

// TTL is how long a cached pick-list stays fresh.
const TTL = 60 * time.Second

// DonorLookupStore defines the donor store interface needed by the cache.
type DonorLookupStore interface {
	ListLookup(ctx context.Context) ([]donorStore.Lookup, error)
}

// RecipientLookupStore defines the recipient store interface needed by the cache.
type RecipientLookupStore interface {
	ListLookup(ctx context.Context) ([]recipientStore.Lookup, error)
}

// HospitalLookupStore defines the hospital store interface needed by the cache.
type HospitalLookupStore interface {
	ListLookup(ctx context.Context) ([]hospitalStore.Lookup, error)
}

// entry is one memoized list with its load time.
type entry[T any] struct {
	mu       sync.Mutex
	value    []T
	loadedAt time.Time
}

// get returns the cached value or reloads it through load when stale.
func (e *entry[T]) get(ttl time.Duration, now time.Time, load func() ([]T, error)) ([]T, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loadedAt.IsZero() && now.Sub(e.loadedAt) < ttl {
		return e.value, nil
	}
	value, err := load()
	if err != nil {
		// Serve the stale list if there is one; a flaky read should not
		// blank out a form that rendered fine a second ago.
		if !e.loadedAt.IsZero() {
			return e.value, nil
		}
		return nil, err
	}
	e.value = value
	e.loadedAt = now
	return value, nil
}

func (e *entry[T]) invalidate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loadedAt = time.Time{}
	e.value = nil
}

// Cache memoizes donor, recipient and hospital pick-lists.
type Cache struct {
	donors     DonorLookupStore
	recipients RecipientLookupStore
	hospitals  HospitalLookupStore
	ttl        time.Duration
	now        func() time.Time

	donorList     entry[donorStore.Lookup]
	recipientList entry[recipientStore.Lookup]
	hospitalList  entry[hospitalStore.Lookup]
}

// New creates a Cache with the default TTL.
func New(donors DonorLookupStore, recipients RecipientLookupStore, hospitals HospitalLookupStore) *Cache {
	return &Cache{
		donors:     donors,
		recipients: recipients,
		hospitals:  hospitals,
		ttl:        TTL,
		now:        time.Now,
	}
}

// Donors returns the donor pick-list, reloading at most once per TTL.
func (c *Cache) Donors(ctx context.Context) ([]donorStore.Lookup, error) {
	return c.donorList.get(c.ttl, c.now(), func() ([]donorStore.Lookup, error) {
		return c.donors.ListLookup(ctx)
	})
}

// Recipients returns the recipient pick-list.
func (c *Cache) Recipients(ctx context.Context) ([]recipientStore.Lookup, error) {
	return c.recipientList.get(c.ttl, c.now(), func() ([]recipientStore.Lookup, error) {
		return c.recipients.ListLookup(ctx)
	})
}

// Hospitals returns the hospital pick-list.
func (c *Cache) Hospitals(ctx context.Context) ([]hospitalStore.Lookup, error) {
	return c.hospitalList.get(c.ttl, c.now(), func() ([]hospitalStore.Lookup, error) {
		return c.hospitals.ListLookup(ctx)
	})
}

// InvalidateDonors drops the cached donor list after a donor write.
func (c *Cache) InvalidateDonors() { c.donorList.invalidate() }

// InvalidateRecipients drops the cached recipient list after a recipient write.
func (c *Cache) InvalidateRecipients() { c.recipientList.invalidate() }

// InvalidateHospitals drops the cached hospital list after a registration.
func (c *Cache) InvalidateHospitals() { c.hospitalList.invalidate() }

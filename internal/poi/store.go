// Package poi holds the in-memory POI list that both slice views and the
// track map render from. The store is the single source of truth for the UI;
// any sqlite-backed persistence is a mirror, never the authority.
package poi

import (
	"fmt"
	"sync"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

// localIDSeed starts the local id counter well above anything a server
// would assign, so locally created POIs never collide with bulk-loaded ones.
const localIDSeed = 100

// Subscriber receives the full POI list after every mutation. There is no
// diff model: consumers re-render all markers from the snapshot.
type Subscriber func(pois []models.POI)

// Store is an ordered, mutable list of POIs
type Store struct {
	mu          sync.Mutex
	pois        []models.POI
	nextID      int
	subscribers []Subscriber
}

// NewStore creates an empty POI store
func NewStore() *Store {
	return &Store{nextID: localIDSeed}
}

// Subscribe registers fn to be called with a snapshot of the list after
// every mutation. Subscriptions last for the lifetime of the store.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// NextID returns a fresh locally-unique POI id
func (s *Store) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("poi-%d", s.nextID)
	s.nextID++
	return id
}

// Add appends a POI to the list. The caller supplies the id, normally from
// NextID for user-created POIs or the server id for bulk-loaded ones.
func (s *Store) Add(p models.POI) {
	s.mu.Lock()
	s.pois = append(s.pois, p)
	s.mu.Unlock()
	s.publish()
}

// Delete removes the POI at index. Out-of-range indices are a no-op: callers
// derive the index from a rendered list that can be stale by at most one
// mutation, so a miss is expected, not an error.
func (s *Store) Delete(index int) {
	s.mu.Lock()
	if index < 0 || index >= len(s.pois) {
		s.mu.Unlock()
		return
	}
	s.pois = append(s.pois[:index], s.pois[index+1:]...)
	s.mu.Unlock()
	s.publish()
}

// Replace substitutes the whole list, used when a loaded dataset carries its
// own bundled POIs
func (s *Store) Replace(pois []models.POI) {
	s.mu.Lock()
	s.pois = make([]models.POI, len(pois))
	copy(s.pois, pois)
	s.mu.Unlock()
	s.publish()
}

// List returns a snapshot of the current POI list
func (s *Store) List() []models.POI {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.POI, len(s.pois))
	copy(out, s.pois)
	return out
}

// Len returns the number of POIs in the store
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pois)
}

func (s *Store) publish() {
	s.mu.Lock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	snapshot := make([]models.POI, len(s.pois))
	copy(snapshot, s.pois)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

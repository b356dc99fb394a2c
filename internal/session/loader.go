// Package session orchestrates one survey load: slice fetch then track
// fetch, both completing before anything renders, with the whole load
// degrading to synthetic data if either fetch fails. A newer submission
// supersedes any still-running load; the stale result is discarded rather
// than letting a late response overwrite a newer one.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/groundscan/gpr-backend-go/internal/models"
	"github.com/groundscan/gpr-backend-go/internal/provider"
)

// StatusSampleData is surfaced when a load degraded to synthetic data
const StatusSampleData = "Backend unavailable — loading sample data"

// ErrStale marks a load that finished after a newer one was submitted
var ErrStale = errors.New("load superseded by a newer query")

// LoadResult is one fully loaded survey: the slice and its track together.
// Partial results never exist; either both fetches succeeded against the
// same source or both came from the synthetic generator.
type LoadResult struct {
	RequestID string
	Dataset   *models.SliceDataset
	Track     *models.GPSTrack
}

// Manager runs survey loads. remote may be nil for synthetic-only mode.
type Manager struct {
	remote    provider.DataProvider
	synthetic provider.DataProvider

	seq uint64 // last issued load sequence number

	mu      sync.Mutex
	current *LoadResult
	status  string
}

// NewManager creates a load manager
func NewManager(remote, synthetic provider.DataProvider) *Manager {
	return &Manager{remote: remote, synthetic: synthetic}
}

// Load runs a full survey load for the query. Returns ErrStale when another
// Load was issued while this one was in flight: last submission wins, and a
// stale response must not overwrite a newer one.
func (m *Manager) Load(ctx context.Context, q models.SliceQuery) (*LoadResult, error) {
	mySeq := atomic.AddUint64(&m.seq, 1)
	requestID := uuid.NewString()

	dataset, track, degraded := m.fetchBoth(ctx, q)

	result := &LoadResult{RequestID: requestID, Dataset: dataset, Track: track}
	if err := m.publish(mySeq, result, degraded, q.Date); err != nil {
		log.Printf("discarding stale load %s for %s", requestID, q.Date)
		return nil, err
	}

	return result, nil
}

// publish installs result as the current load unless a newer load has been
// issued. The sequence comparison and the write share one critical section:
// checking outside it would let a stale result slip in after a newer load
// already published.
func (m *Manager) publish(mySeq uint64, result *LoadResult, degraded bool, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if atomic.LoadUint64(&m.seq) != mySeq {
		return ErrStale
	}

	m.current = result
	if degraded {
		m.status = StatusSampleData
	} else {
		m.status = "Loaded survey " + date
	}
	return nil
}

// fetchBoth fetches slice then track from the remote provider. If either
// fetch fails, both are re-fetched from the synthetic provider so the result
// is never a remote/synthetic mix.
func (m *Manager) fetchBoth(ctx context.Context, q models.SliceQuery) (*models.SliceDataset, *models.GPSTrack, bool) {
	if m.remote != nil {
		dataset, err := m.remote.FetchSlice(ctx, q)
		if err == nil {
			track, err := m.remote.FetchTrack(ctx, models.TrackFilter{Date: q.Date})
			if err == nil {
				return dataset, track, false
			}
			log.Printf("track fetch failed for %s: %v", q.Date, err)
		} else {
			log.Printf("slice fetch failed for %s: %v", q.Date, err)
		}
	}

	// Synthetic generation does not fail for well-formed queries; if it
	// somehow does, an empty load is still better than a dead UI.
	dataset, err := m.synthetic.FetchSlice(ctx, q)
	if err != nil {
		log.Printf("synthetic slice generation failed: %v", err)
	}
	track, err := m.synthetic.FetchTrack(ctx, models.TrackFilter{Date: q.Date})
	if err != nil {
		log.Printf("synthetic track generation failed: %v", err)
	}
	return dataset, track, true
}

// Current returns the most recent completed load, or nil before any load
func (m *Manager) Current() *LoadResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Status returns the user-visible status line for the last load
func (m *Manager) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

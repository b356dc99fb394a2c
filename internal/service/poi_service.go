package service

import (
	"fmt"

	"github.com/groundscan/gpr-backend-go/internal/models"
	"github.com/groundscan/gpr-backend-go/internal/poi"
	"github.com/groundscan/gpr-backend-go/internal/repository"
)

// POIService handles business logic for points of interest. Every mutation
// goes to the repository mirror and to the in-memory store, which stays the
// authority the viewer surfaces render from.
type POIService struct {
	poiRepo *repository.POIRepository
	store   *poi.Store
}

// NewPOIService creates a new POI service
func NewPOIService(poiRepo *repository.POIRepository, store *poi.Store) *POIService {
	return &POIService{poiRepo: poiRepo, store: store}
}

// Create validates and stores a new POI
func (s *POIService) Create(p models.POI) error {
	if p.ID == "" {
		return fmt.Errorf("poi id is required")
	}
	if !p.Type.Valid() {
		return fmt.Errorf("invalid poi type %q", p.Type)
	}

	existing, err := s.poiRepo.GetByID(p.ID)
	if err != nil {
		return fmt.Errorf("failed to check poi id: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("poi %s already exists", p.ID)
	}

	if err := s.poiRepo.Create(p); err != nil {
		return err
	}

	s.store.Add(p)
	return nil
}

// List retrieves POIs, optionally filtered by type
func (s *POIService) List(poiType models.POIType) (*models.POIListResponse, error) {
	if poiType != "" && !poiType.Valid() {
		return nil, fmt.Errorf("invalid poi type %q", poiType)
	}

	pois, err := s.poiRepo.List(poiType)
	if err != nil {
		return nil, fmt.Errorf("failed to list pois: %w", err)
	}

	return &models.POIListResponse{Data: pois, Count: len(pois)}, nil
}

// Get retrieves a single POI by id, nil when absent
func (s *POIService) Get(id string) (*models.POI, error) {
	return s.poiRepo.GetByID(id)
}

// Update validates and updates an existing POI
func (s *POIService) Update(p models.POI) error {
	if !p.Type.Valid() {
		return fmt.Errorf("invalid poi type %q", p.Type)
	}
	if err := s.poiRepo.Update(p); err != nil {
		return err
	}

	// Mirror into the store: swap the matching entry, keep order.
	current := s.store.List()
	for i := range current {
		if current[i].ID == p.ID {
			current[i] = p
			s.store.Replace(current)
			break
		}
	}
	return nil
}

// Delete removes a POI by id
func (s *POIService) Delete(id string) error {
	if err := s.poiRepo.Delete(id); err != nil {
		return err
	}

	for i, existing := range s.store.List() {
		if existing.ID == id {
			s.store.Delete(i)
			break
		}
	}
	return nil
}

// ReplaceAll substitutes the whole POI set, used when a dataset arrives with
// its own bundled annotations
func (s *POIService) ReplaceAll(pois []models.POI) error {
	for _, p := range pois {
		if p.ID == "" {
			return fmt.Errorf("poi id is required")
		}
		if !p.Type.Valid() {
			return fmt.Errorf("invalid poi type %q", p.Type)
		}
	}

	if err := s.poiRepo.ReplaceAll(pois); err != nil {
		return err
	}

	s.store.Replace(pois)
	return nil
}

// Types returns the enumerated list of valid POI types
func (s *POIService) Types() []models.POIType {
	return models.POITypes()
}

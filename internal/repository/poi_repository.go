package repository

import (
	"database/sql"
	"fmt"

	"github.com/groundscan/gpr-backend-go/internal/database"
	"github.com/groundscan/gpr-backend-go/internal/models"
)

// POIRepository handles database operations for points of interest. This is
// the persistence mirror behind the in-memory store: the store remains the
// authority for the UI, the repository survives reloads.
type POIRepository struct {
	db *sql.DB
}

// NewPOIRepository creates a new POI repository
func NewPOIRepository(db *sql.DB) *POIRepository {
	return &POIRepository{db: db}
}

const poiColumns = `id, type, label, slice_x, slice_y, lat, lon, mile_marker, notes, created_at, updated_at`

func scanPOI(row interface{ Scan(...interface{}) error }) (models.POI, error) {
	var p models.POI
	err := row.Scan(
		&p.ID, &p.Type, &p.Label, &p.SliceX, &p.SliceY,
		&p.Lat, &p.Lon, &p.MileMarker, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create inserts a new POI
func (r *POIRepository) Create(p models.POI) error {
	query := `INSERT INTO pois (id, type, label, slice_x, slice_y, lat, lon, mile_marker, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, p.ID, p.Type, p.Label, p.SliceX, p.SliceY, p.Lat, p.Lon, p.MileMarker, p.Notes)
	if err != nil {
		return fmt.Errorf("failed to create poi: %w", err)
	}

	return nil
}

// List retrieves all POIs, optionally filtered by type, ordered by creation
func (r *POIRepository) List(poiType models.POIType) ([]models.POI, error) {
	query := "SELECT " + poiColumns + " FROM pois"
	var args []interface{}

	if poiType != "" {
		query += " WHERE type = ?"
		args = append(args, poiType)
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pois: %w", err)
	}
	defer rows.Close()

	var pois []models.POI
	for rows.Next() {
		p, err := scanPOI(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poi: %w", err)
		}
		pois = append(pois, p)
	}

	return pois, rows.Err()
}

// GetByID retrieves a single POI by id, returning nil when absent
func (r *POIRepository) GetByID(id string) (*models.POI, error) {
	query := "SELECT " + poiColumns + " FROM pois WHERE id = ?"

	p, err := scanPOI(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}

	return &p, nil
}

// Update replaces the mutable fields of a POI by id
func (r *POIRepository) Update(p models.POI) error {
	query := `UPDATE pois
		SET type = ?, label = ?, slice_x = ?, slice_y = ?, lat = ?, lon = ?,
			mile_marker = ?, notes = ?, updated_at = datetime('now')
		WHERE id = ?`

	res, err := r.db.Exec(query, p.Type, p.Label, p.SliceX, p.SliceY, p.Lat, p.Lon, p.MileMarker, p.Notes, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update poi: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("poi %s not found", p.ID)
	}

	return nil
}

// Delete removes a POI by id. Deleting an absent id is not an error.
func (r *POIRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM pois WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete poi: %w", err)
	}
	return nil
}

// ReplaceAll substitutes the whole table with the given list in one
// transaction, so readers never observe a half-replaced set
func (r *POIRepository) ReplaceAll(pois []models.POI) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM pois"); err != nil {
			return fmt.Errorf("failed to clear pois: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO pois (id, type, label, slice_x, slice_y, lat, lon, mile_marker, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range pois {
			if _, err := stmt.Exec(p.ID, p.Type, p.Label, p.SliceX, p.SliceY, p.Lat, p.Lon, p.MileMarker, p.Notes); err != nil {
				return fmt.Errorf("failed to insert poi %s: %w", p.ID, err)
			}
		}

		return nil
	})
}

package services

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rentora/rentora-be/internal/models"
)

// PropertyServiceProvider defines the interface for property services.
// Every operation is scoped to the authenticated owner.
type PropertyServiceProvider interface {
	List(ctx context.Context, userID string) ([]models.Property, error)
	Create(ctx context.Context, userID, name, address string, rawUnits json.RawMessage) (models.Property, error)
	Update(ctx context.Context, userID, id, name, address string, rawUnits json.RawMessage) (models.Property, error)
	Delete(ctx context.Context, userID, id string) error
}

// PropertyService provides owner-scoped CRUD over property records.
type PropertyService struct {
	db *sql.DB
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *sql.DB) *PropertyService {
	return &PropertyService{db: db}
}

// scanProperty is a helper to scan a property from a row or rows object.
func scanProperty(scanner interface{ Scan(...interface{}) error }) (models.Property, error) {
	var prop models.Property
	var unitsJSON string

	err := scanner.Scan(&prop.ID, &prop.UserID, &prop.Name, &prop.Address, &unitsJSON, &prop.CreatedAt)
	if err != nil {
		return prop, err
	}
	if err := prop.DecodeUnits(unitsJSON); err != nil {
		return prop, err
	}
	return prop, nil
}

// List retrieves all properties owned by the given user, in store order.
func (s *PropertyService) List(ctx context.Context, userID string) ([]models.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, address, units_json, created_at FROM properties WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []models.Property{}
	for rows.Next() {
		prop, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, prop)
	}
	return properties, rows.Err()
}

// Create validates and persists a new property for the given owner. Raw
// unit input is normalized before it is stored.
func (s *PropertyService) Create(ctx context.Context, userID, name, address string, rawUnits json.RawMessage) (models.Property, error) {
	if name == "" || address == "" {
		return models.Property{}, &ValidationError{Message: "Property name and address are required"}
	}

	prop := models.Property{
		ID:      uuid.New().String(),
		UserID:  userID,
		Name:    name,
		Address: address,
		Units:   models.ParseUnits(rawUnits),
	}

	unitsJSON, err := prop.EncodeUnits()
	if err != nil {
		return models.Property{}, err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO properties(id, user_id, name, address, units_json) VALUES(?, ?, ?, ?, ?)",
		prop.ID, prop.UserID, prop.Name, prop.Address, unitsJSON)
	if err != nil {
		return models.Property{}, err
	}

	return s.get(ctx, userID, prop.ID)
}

// Update replaces a property's name, address and entire unit list. The
// match predicate combines record id and owner id, so a property owned by
// someone else is indistinguishable from one that does not exist.
func (s *PropertyService) Update(ctx context.Context, userID, id, name, address string, rawUnits json.RawMessage) (models.Property, error) {
	if name == "" || address == "" {
		return models.Property{}, &ValidationError{Message: "Property name and address are required"}
	}

	prop := models.Property{Units: models.ParseUnits(rawUnits)}
	unitsJSON, err := prop.EncodeUnits()
	if err != nil {
		return models.Property{}, err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE properties SET name = ?, address = ?, units_json = ? WHERE id = ? AND user_id = ?",
		name, address, unitsJSON, id, userID)
	if err != nil {
		return models.Property{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Property{}, err
	}
	if affected == 0 {
		return models.Property{}, ErrNotFound
	}

	return s.get(ctx, userID, id)
}

// Delete removes a property owned by the given user. Deleting an already
// absent id lands on ErrNotFound, so repeat deletes are harmless.
func (s *PropertyService) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM properties WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// get fetches a single property with the same owner-scoped predicate the
// mutating operations use.
func (s *PropertyService) get(ctx context.Context, userID, id string) (models.Property, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, address, units_json, created_at FROM properties WHERE id = ? AND user_id = ?",
		id, userID)
	prop, err := scanProperty(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Property{}, ErrNotFound
		}
		return models.Property{}, err
	}
	return prop, nil
}

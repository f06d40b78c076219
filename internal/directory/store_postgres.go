package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	id "trackwatch/pkg/domain"
	"trackwatch/pkg/platform/sentinel"
)

// PostgresStore reads the user directory from the shared users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetUser(ctx context.Context, userID id.UserID) (*User, error) {
	query := `
		SELECT id, name, user_type, COALESCE(travel_id, ''), COALESCE(device_token, '')
		FROM users
		WHERE id = $1
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, userID.String()).Scan(
		&user.ID,
		&user.Name,
		&user.UserType,
		&user.TravelID,
		&user.DeviceToken,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) FindTravelAdmin(ctx context.Context, travelID id.TravelID) (*Admin, error) {
	// Selection policy is "first match"; ordering is arbitrary by contract.
	query := `
		SELECT id, COALESCE(travel_id, ''), name, COALESCE(device_token, '')
		FROM users
		WHERE user_type = $1 AND travel_id = $2
		LIMIT 1
	`
	var admin Admin
	err := s.db.QueryRowContext(ctx, query, UserTypeTravelAdmin, travelID.String()).Scan(
		&admin.ID,
		&admin.TravelID,
		&admin.Name,
		&admin.DeviceToken,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("query travel admin: %w", err)
	}
	return &admin, nil
}

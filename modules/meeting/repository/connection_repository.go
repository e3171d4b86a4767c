package repository

import (
	"context"
	"database/sql"

	"github.com/Akius1/cv-review-sub000/core/database"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/modules/meeting/entity"

	"github.com/google/uuid"
)

// ConnectionRepository handles calendar_connections database operations
type ConnectionRepository struct {
	DB database.Database
}

func NewConnectionRepository(db database.Database) *ConnectionRepository {
	return &ConnectionRepository{DB: db}
}

type ConnectionRepositoryInterface interface {
	GetByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error)
	Save(ctx context.Context, conn *entity.CalendarConnection) error
	Delete(ctx context.Context, userID uuid.UUID, provider string) error
}

const connColumns = `id, user_id, provider, email, access_token, refresh_token, token_expires_at, created_at, updated_at`

func (r *ConnectionRepository) GetByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `SELECT ` + connColumns + ` FROM calendar_connections WHERE user_id = $1 AND provider = $2`

	var conn entity.CalendarConnection
	err := r.DB.GetContext(ctx, &conn, query, userID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ConnectionRepository:GetByUserAndProvider", err)
		return nil, err
	}
	return &conn, nil
}

func (r *ConnectionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	query := `SELECT ` + connColumns + ` FROM calendar_connections WHERE user_id = $1 ORDER BY provider`

	var conns []entity.CalendarConnection
	if err := r.DB.SelectContext(ctx, &conns, query, userID); err != nil {
		logger.Error("ConnectionRepository:ListByUser", err)
		return nil, err
	}
	return conns, nil
}

// Save upserts a connection, refreshing tokens in place.
func (r *ConnectionRepository) Save(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		INSERT INTO calendar_connections (id, user_id, provider, email, access_token, refresh_token, token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, provider) DO UPDATE
		SET email = $4, access_token = $5, refresh_token = $6, token_expires_at = $7, updated_at = NOW()
	`
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	err := r.DB.ExecContext(ctx, query,
		conn.ID, conn.UserID, conn.Provider, conn.Email,
		conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt)
	if err != nil {
		logger.Error("ConnectionRepository:Save", err)
		return err
	}
	return nil
}

func (r *ConnectionRepository) Delete(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `DELETE FROM calendar_connections WHERE user_id = $1 AND provider = $2`
	if err := r.DB.ExecContext(ctx, query, userID, provider); err != nil {
		logger.Error("ConnectionRepository:Delete", err)
		return err
	}
	return nil
}

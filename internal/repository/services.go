package repository

import (
	"context"
	"database/sql"
	"fmt"

	"carebook/internal/database"
	"carebook/internal/models"

	"github.com/lib/pq"
)

type ServiceRepository struct {
	db *database.DB
}

func NewServiceRepository(db *database.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (title, description, image, price_per_hour, category, features)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		service.Title,
		service.Description,
		service.Image,
		service.PricePerHour,
		service.Category,
		pq.Array(service.Features),
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)

	return err
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	service := &models.Service{}
	query := `
		SELECT id, title, description, image, price_per_hour, category, features, created_at, updated_at
		FROM services
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&service.ID,
		&service.Title,
		&service.Description,
		&service.Image,
		&service.PricePerHour,
		&service.Category,
		pq.Array(&service.Features),
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return service, err
}

func (r *ServiceRepository) List(ctx context.Context, category string, page, pageSize int) ([]models.Service, error) {
	var services []models.Service
	var args []interface{}
	argIndex := 1

	query := `
		SELECT id, title, description, image, price_per_hour, category, features, created_at, updated_at
		FROM services
		WHERE 1=1`

	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, category)
		argIndex++
	}

	query += ` ORDER BY created_at DESC`

	if page > 0 && pageSize > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, pageSize, (page-1)*pageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var service models.Service
		err := rows.Scan(
			&service.ID,
			&service.Title,
			&service.Description,
			&service.Image,
			&service.PricePerHour,
			&service.Category,
			pq.Array(&service.Features),
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, rows.Err()
}

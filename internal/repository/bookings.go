package repository

import (
	"context"
	"database/sql"

	"carebook/internal/database"
	"carebook/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (user_id, service_id, status, payment_status, start_time, end_time,
		                      duration_hours, division, district, city, area, address, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.ServiceID,
		booking.Status,
		booking.PaymentStatus,
		booking.StartTime,
		booking.EndTime,
		booking.DurationHours,
		booking.Location.Division,
		booking.Location.District,
		booking.Location.City,
		booking.Location.Area,
		booking.Location.Address,
		booking.TotalCost,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	return err
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, user_id, service_id, status, payment_status, start_time, end_time,
		       duration_hours, division, district, city, area, address, total_cost,
		       session_id, transaction_id, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceID,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.Location.Division,
		&booking.Location.District,
		&booking.Location.City,
		&booking.Location.Area,
		&booking.Location.Address,
		&booking.TotalCost,
		&booking.SessionID,
		&booking.TransactionID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return booking, err
}

// GetByUserID returns the user's bookings newest first, each joined with a
// minimal projection of its service for the history page.
func (r *BookingRepository) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	query := `
		SELECT b.id, b.user_id, b.service_id, b.status, b.payment_status, b.start_time, b.end_time,
		       b.duration_hours, b.division, b.district, b.city, b.area, b.address, b.total_cost,
		       b.session_id, b.transaction_id, b.created_at, b.updated_at,
		       s.title, s.image
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var booking models.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.ServiceID,
			&booking.Status,
			&booking.PaymentStatus,
			&booking.StartTime,
			&booking.EndTime,
			&booking.DurationHours,
			&booking.Location.Division,
			&booking.Location.District,
			&booking.Location.City,
			&booking.Location.Area,
			&booking.Location.Address,
			&booking.TotalCost,
			&booking.SessionID,
			&booking.TransactionID,
			&booking.CreatedAt,
			&booking.UpdatedAt,
			&booking.ServiceTitle,
			&booking.ServiceImage,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// MarkPaid applies the reconciliation outcome as one conditional update: the
// three payment fields change together, and only if the booking has not been
// reconciled already. Returns false when the row was already paid or absent,
// which makes concurrent duplicate reconciliation a no-op.
func (r *BookingRepository) MarkPaid(ctx context.Context, id, sessionID, transactionID string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', status = 'Confirmed',
		    session_id = $1, transaction_id = $2, updated_at = NOW()
		WHERE id = $3 AND payment_status <> 'paid'`

	result, err := r.db.ExecContext(ctx, query, sessionID, transactionID, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// Cancel soft-cancels a booking. The record is kept so payment history
// survives cancellation of an already-paid booking.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'Cancelled', updated_at = NOW()
		WHERE id = $1 AND status <> 'Cancelled'`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

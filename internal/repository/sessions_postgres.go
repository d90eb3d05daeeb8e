package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

type SessionPostgres struct {
	db *sql.DB
}

func NewSessionPostgres(db *sql.DB) *SessionPostgres {
	return &SessionPostgres{db: db}
}

// sessionColumns selects a session joined with its class type and trainer,
// with remaining spots computed against confirmed bookings.
const sessionColumns = `
	s.id, s.class_type_id, ct.name, s.trainer_id,
	u.first_name || ' ' || u.last_name,
	to_char(s.session_date, 'YYYY-MM-DD'), to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
	s.price, s.max_members,
	s.max_members - (SELECT COUNT(*) FROM bookings b WHERE b.session_id = s.id AND b.status = 'confirmed')`

func (r *SessionPostgres) ListClassTypes(ctx context.Context) ([]domain.ClassType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM class_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list class types: %w", err)
	}
	defer rows.Close()

	types := []domain.ClassType{}
	for rows.Next() {
		var ct domain.ClassType
		if err := rows.Scan(&ct.ID, &ct.Name); err != nil {
			return nil, fmt.Errorf("scan class type: %w", err)
		}
		types = append(types, ct)
	}
	return types, rows.Err()
}

func (r *SessionPostgres) CreateSession(ctx context.Context, trainerID string, s domain.NewSession) (*domain.Session, error) {
	query := `INSERT INTO sessions (class_type_id, trainer_id, session_date, start_time, end_time, price, max_members)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		s.ClassTypeID, trainerID, s.Date, s.StartTime, s.EndTime, s.Price, s.MaxMembers).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return r.GetSession(ctx, id)
}

func (r *SessionPostgres) GetSession(ctx context.Context, id int64) (*domain.Session, error) {
	query := fmt.Sprintf(`SELECT %s
	          FROM sessions s
	          JOIN class_types ct ON ct.id = s.class_type_id
	          JOIN users u ON u.user_id = s.trainer_id
	          WHERE s.id = $1`, sessionColumns)

	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

func (r *SessionPostgres) ListAvailable(ctx context.Context, f domain.SessionFilter) ([]domain.Session, error) {
	query := fmt.Sprintf(`SELECT %s
	          FROM sessions s
	          JOIN class_types ct ON ct.id = s.class_type_id
	          JOIN users u ON u.user_id = s.trainer_id
	          WHERE s.session_date >= CURRENT_DATE
	            AND ($1 = 0 OR s.class_type_id = $1)
	            AND ($2 = '' OR s.session_date >= $2::date)
	            AND ($3 = '' OR s.session_date <= $3::date)
	          ORDER BY s.session_date, s.start_time`, sessionColumns)

	rows, err := r.db.QueryContext(ctx, query, f.ClassTypeID, f.DateFrom, f.DateTo)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func (r *SessionPostgres) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	query := `SELECT b.id, b.user_id, b.session_id, ct.name,
	                 u.first_name || ' ' || u.last_name,
	                 to_char(s.session_date, 'YYYY-MM-DD'), to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
	                 b.price, b.status
	          FROM bookings b
	          JOIN sessions s ON s.id = b.session_id
	          JOIN class_types ct ON ct.id = s.class_type_id
	          JOIN users u ON u.user_id = s.trainer_id
	          WHERE b.user_id = $1
	          ORDER BY s.session_date DESC, s.start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.SessionID, &b.ClassType, &b.TrainerName,
			&b.Date, &b.StartTime, &b.EndTime, &b.Price, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *SessionPostgres) CancelBooking(ctx context.Context, userID string, bookingID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = 'cancelled' WHERE id = $1 AND user_id = $2 AND status = 'confirmed'`,
		bookingID, userID)
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("cancel booking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.ClassTypeID, &s.ClassType, &s.TrainerID, &s.TrainerName,
		&s.Date, &s.StartTime, &s.EndTime, &s.Price, &s.MaxMembers, &s.SpotsRemaining)
	if err != nil {
		return nil, err
	}
	if s.SpotsRemaining < 0 {
		s.SpotsRemaining = 0
	}
	s.IsFull = s.SpotsRemaining == 0
	return &s, nil
}

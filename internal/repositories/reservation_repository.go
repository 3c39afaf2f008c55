package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// ReservationRepository defines reservation operations against a tenant store.
type ReservationRepository interface {
	Create(executor SQLExecutor, reservation *models.Reservation) (int64, error)
	GetByID(executor SQLExecutor, id int64) (*models.Reservation, error)
	GetAll(executor SQLExecutor, filters models.ReservationFilters) ([]models.Reservation, error)
	Update(executor SQLExecutor, reservation *models.Reservation) error
	UpdateStatus(executor SQLExecutor, id int64, status string, updatedAt time.Time) error
	Delete(executor SQLExecutor, id int64) error
	CountUpcoming(executor SQLExecutor, from time.Time) (int, error)
}

type reservationRepository struct{}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository() ReservationRepository {
	return &reservationRepository{}
}

const reservationColumns = `id, customer_name, customer_phone, to_char(date, 'YYYY-MM-DD'), time, party_size, table_id, status, source, priority, notes, created_at, updated_at`

func scanReservation(row interface{ Scan(...interface{}) error }, rv *models.Reservation) error {
	return row.Scan(
		&rv.ID, &rv.CustomerName, &rv.CustomerPhone, &rv.Date, &rv.Time, &rv.PartySize,
		&rv.TableID, &rv.Status, &rv.Source, &rv.Priority, &rv.Notes, &rv.CreatedAt, &rv.UpdatedAt,
	)
}

func (r *reservationRepository) Create(executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := `INSERT INTO reservations
	            (customer_name, customer_phone, date, time, party_size, table_id, status, source, priority, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          RETURNING id`

	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		reservation.CustomerName, reservation.CustomerPhone, reservation.Date, reservation.Time,
		reservation.PartySize, reservation.TableID, reservation.Status, reservation.Source,
		reservation.Priority, reservation.Notes, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating reservation (constraint: %s): %v", ErrDatabaseError, pqErr.Constraint, err)
		}
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation.ID, nil
}

func (r *reservationRepository) GetByID(executor SQLExecutor, id int64) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	err := scanReservation(executor.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id), reservation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reservation by ID %d: %v", ErrDatabaseError, id, err)
	}
	return reservation, nil
}

func (r *reservationRepository) GetAll(executor SQLExecutor, filters models.ReservationFilters) ([]models.Reservation, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + reservationColumns + ` FROM reservations`)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if filters.Date != nil && *filters.Date != "" {
		conditions = append(conditions, fmt.Sprintf("date = $%d", argCounter))
		args = append(args, *filters.Date)
		argCounter++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCounter))
		args = append(args, *filters.Status)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY date, time")

	reservations := []models.Reservation{}
	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv models.Reservation
		if err := scanReservation(rows, &rv); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

func (r *reservationRepository) Update(executor SQLExecutor, reservation *models.Reservation) error {
	query := `UPDATE reservations SET
	            customer_name = $1, customer_phone = $2, date = $3, time = $4, party_size = $5,
	            table_id = $6, status = $7, source = $8, priority = $9, notes = $10, updated_at = $11
	          WHERE id = $12`

	reservation.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		reservation.CustomerName, reservation.CustomerPhone, reservation.Date, reservation.Time,
		reservation.PartySize, reservation.TableID, reservation.Status, reservation.Source,
		reservation.Priority, reservation.Notes, reservation.UpdatedAt, reservation.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for reservation ID %d: %v", ErrDatabaseError, reservation.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) UpdateStatus(executor SQLExecutor, id int64, status string, updatedAt time.Time) error {
	result, err := executor.Exec(`UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("%w: updating reservation status for ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for reservation status update ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting reservation ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) CountUpcoming(executor SQLExecutor, from time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reservations
	          WHERE date >= $1 AND status IN ('pending', 'confirmed')`
	err := executor.QueryRow(query, from.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting upcoming reservations: %v", ErrDatabaseError, err)
	}
	return count, nil
}

package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resto_pos_backend/internal/models"

	"github.com/lib/pq"
)

// StaffRepository defines staff, shift and salary-payment operations against
// a tenant store.
type StaffRepository interface {
	CreateStaff(executor SQLExecutor, staff *models.StaffMember) (int64, error)
	GetStaffByID(executor SQLExecutor, id int64) (*models.StaffMember, error)
	GetAllStaff(executor SQLExecutor) ([]models.StaffMember, error)
	UpdateStaff(executor SQLExecutor, staff *models.StaffMember) error
	DeleteStaff(executor SQLExecutor, id int64) error
	GetRoles(executor SQLExecutor) ([]string, error)

	CreateShift(executor SQLExecutor, shift *models.Shift) (int64, error)
	GetShiftByID(executor SQLExecutor, id int64) (*models.Shift, error)
	GetShifts(executor SQLExecutor, staffID *int64) ([]models.Shift, error)
	UpdateShift(executor SQLExecutor, shift *models.Shift) error
	DeleteShift(executor SQLExecutor, id int64) error

	CreateSalaryPayment(executor SQLExecutor, payment *models.SalaryPayment) (int64, error)
	GetSalaryPayments(executor SQLExecutor, staffID *int64) ([]models.SalaryPayment, error)
	DeleteSalaryPayment(executor SQLExecutor, id int64) error
}

type staffRepository struct{}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository() StaffRepository {
	return &staffRepository{}
}

const staffColumns = `id, name, role, pin, permissions, phone, email, salary_type, salary_rate, active, created_at, updated_at`

func scanStaff(row interface{ Scan(...interface{}) error }, s *models.StaffMember) error {
	return row.Scan(
		&s.ID, &s.Name, &s.Role, &s.PIN, pq.Array(&s.Permissions), &s.Phone, &s.Email,
		&s.SalaryType, &s.SalaryRate, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
}

func (r *staffRepository) CreateStaff(executor SQLExecutor, staff *models.StaffMember) (int64, error) {
	query := `INSERT INTO staff_members
	            (name, role, pin, permissions, phone, email, salary_type, salary_rate, active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`

	currentTime := time.Now()
	staff.CreatedAt = currentTime
	staff.UpdatedAt = currentTime
	if staff.Permissions == nil {
		staff.Permissions = []string{}
	}

	err := executor.QueryRow(query,
		staff.Name, staff.Role, staff.PIN, pq.Array(staff.Permissions), staff.Phone, staff.Email,
		staff.SalaryType, staff.SalaryRate, staff.Active, staff.CreatedAt, staff.UpdatedAt,
	).Scan(&staff.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating staff member: %v", ErrDatabaseError, err)
	}
	return staff.ID, nil
}

func (r *staffRepository) GetStaffByID(executor SQLExecutor, id int64) (*models.StaffMember, error) {
	staff := &models.StaffMember{}
	err := scanStaff(executor.QueryRow(`SELECT `+staffColumns+` FROM staff_members WHERE id = $1`, id), staff)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff member by ID %d: %v", ErrDatabaseError, id, err)
	}
	return staff, nil
}

func (r *staffRepository) GetAllStaff(executor SQLExecutor) ([]models.StaffMember, error) {
	staffList := []models.StaffMember{}
	rows, err := executor.Query(`SELECT ` + staffColumns + ` FROM staff_members ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.StaffMember
		if err := scanStaff(rows, &s); err != nil {
			return nil, fmt.Errorf("%w: scanning staff member: %v", ErrDatabaseError, err)
		}
		staffList = append(staffList, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff rows: %v", ErrDatabaseError, err)
	}
	return staffList, nil
}

func (r *staffRepository) UpdateStaff(executor SQLExecutor, staff *models.StaffMember) error {
	query := `UPDATE staff_members SET
	            name = $1, role = $2, pin = $3, permissions = $4, phone = $5, email = $6,
	            salary_type = $7, salary_rate = $8, active = $9, updated_at = $10
	          WHERE id = $11`

	staff.UpdatedAt = time.Now()
	if staff.Permissions == nil {
		staff.Permissions = []string{}
	}
	result, err := executor.Exec(query,
		staff.Name, staff.Role, staff.PIN, pq.Array(staff.Permissions), staff.Phone, staff.Email,
		staff.SalaryType, staff.SalaryRate, staff.Active, staff.UpdatedAt, staff.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating staff member ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for staff member ID %d: %v", ErrDatabaseError, staff.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteStaff(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM staff_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting staff member ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting staff member ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) GetRoles(executor SQLExecutor) ([]string, error) {
	roles := []string{}
	rows, err := executor.Query(`SELECT DISTINCT role FROM staff_members WHERE role <> '' ORDER BY role`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff roles: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("%w: scanning staff role: %v", ErrDatabaseError, err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff role rows: %v", ErrDatabaseError, err)
	}
	return roles, nil
}

// --- Shift methods ---

func (r *staffRepository) CreateShift(executor SQLExecutor, shift *models.Shift) (int64, error) {
	query := `INSERT INTO shifts (staff_id, clock_in, clock_out, opening_cash, closing_cash, sales, tips, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	if shift.ClockIn.IsZero() {
		shift.ClockIn = time.Now()
	}
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		shift.StaffID, shift.ClockIn, shift.ClockOut, shift.OpeningCash,
		shift.ClosingCash, shift.Sales, shift.Tips, shift.CreatedAt,
	).Scan(&shift.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating shift: staff ID %d does not exist", ErrDatabaseError, shift.StaffID)
		}
		return 0, fmt.Errorf("%w: creating shift: %v", ErrDatabaseError, err)
	}
	return shift.ID, nil
}

func (r *staffRepository) GetShiftByID(executor SQLExecutor, id int64) (*models.Shift, error) {
	shift := &models.Shift{}
	query := `SELECT s.id, s.staff_id, s.clock_in, s.clock_out, s.opening_cash, s.closing_cash, s.sales, s.tips, s.created_at, sm.name
	          FROM shifts s JOIN staff_members sm ON s.staff_id = sm.id
	          WHERE s.id = $1`
	err := executor.QueryRow(query, id).Scan(
		&shift.ID, &shift.StaffID, &shift.ClockIn, &shift.ClockOut, &shift.OpeningCash,
		&shift.ClosingCash, &shift.Sales, &shift.Tips, &shift.CreatedAt, &shift.StaffName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting shift by ID %d: %v", ErrDatabaseError, id, err)
	}
	return shift, nil
}

func (r *staffRepository) GetShifts(executor SQLExecutor, staffID *int64) ([]models.Shift, error) {
	shifts := []models.Shift{}
	query := `SELECT s.id, s.staff_id, s.clock_in, s.clock_out, s.opening_cash, s.closing_cash, s.sales, s.tips, s.created_at, sm.name
	          FROM shifts s JOIN staff_members sm ON s.staff_id = sm.id`
	var args []interface{}
	if staffID != nil {
		query += ` WHERE s.staff_id = $1`
		args = append(args, *staffID)
	}
	query += ` ORDER BY s.clock_in DESC`

	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying shifts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Shift
		if err := rows.Scan(
			&s.ID, &s.StaffID, &s.ClockIn, &s.ClockOut, &s.OpeningCash,
			&s.ClosingCash, &s.Sales, &s.Tips, &s.CreatedAt, &s.StaffName,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning shift: %v", ErrDatabaseError, err)
		}
		shifts = append(shifts, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shift rows: %v", ErrDatabaseError, err)
	}
	return shifts, nil
}

func (r *staffRepository) UpdateShift(executor SQLExecutor, shift *models.Shift) error {
	query := `UPDATE shifts SET clock_in = $1, clock_out = $2, opening_cash = $3, closing_cash = $4, sales = $5, tips = $6
	          WHERE id = $7`

	result, err := executor.Exec(query,
		shift.ClockIn, shift.ClockOut, shift.OpeningCash, shift.ClosingCash,
		shift.Sales, shift.Tips, shift.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating shift ID %d: %v", ErrDatabaseError, shift.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for shift ID %d: %v", ErrDatabaseError, shift.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffRepository) DeleteShift(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting shift ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting shift ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Salary payment methods ---

func (r *staffRepository) CreateSalaryPayment(executor SQLExecutor, payment *models.SalaryPayment) (int64, error) {
	query := `INSERT INTO salary_payments (staff_id, amount, payment_type, payment_date, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	err := executor.QueryRow(query,
		payment.StaffID, payment.Amount, payment.PaymentType, payment.PaymentDate,
		payment.Notes, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, fmt.Errorf("%w: creating salary payment: staff ID %d does not exist", ErrDatabaseError, payment.StaffID)
		}
		return 0, fmt.Errorf("%w: creating salary payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

func (r *staffRepository) GetSalaryPayments(executor SQLExecutor, staffID *int64) ([]models.SalaryPayment, error) {
	payments := []models.SalaryPayment{}
	query := `SELECT id, staff_id, amount, payment_type, to_char(payment_date, 'YYYY-MM-DD'), notes, created_at FROM salary_payments`
	var args []interface{}
	if staffID != nil {
		query += ` WHERE staff_id = $1`
		args = append(args, *staffID)
	}
	query += ` ORDER BY payment_date DESC`

	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying salary payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.SalaryPayment
		if err := rows.Scan(&p.ID, &p.StaffID, &p.Amount, &p.PaymentType, &p.PaymentDate, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning salary payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating salary payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

func (r *staffRepository) DeleteSalaryPayment(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM salary_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting salary payment ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting salary payment ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

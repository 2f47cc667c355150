package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/domain/employee"
	"github.com/PBJT-Finger/Backend-Finger-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, schedule_type, shift_id, active, created_at, updated_at
		FROM employees
		WHERE employee_code = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, code).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.ScheduleType,
		&emp.ShiftID, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// GetByCodes implements employee.EmployeeRepository.
func (r *employeeRepository) GetByCodes(ctx context.Context, codes []string) (map[string]employee.Employee, error) {
	result := make(map[string]employee.Employee, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, schedule_type, shift_id, active, created_at, updated_at
		FROM employees
		WHERE employee_code = ANY($1)
	`

	rows, err := q.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.ScheduleType,
			&emp.ShiftID, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result[emp.EmployeeCode] = emp
	}

	return result, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, schedule_type, shift_id, active, created_at, updated_at
		FROM employees
		WHERE active
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.ScheduleType,
			&emp.ShiftID, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

package repositories

import (
	"context"
	"database/sql"
	"log"

	"estatecrm/internal/models"
)

const employeeColumns = `id, user_type, name, phone, email, emp_number, builder_id, active, created_at`

type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &EmployeeRepository{db: db}
}

// GetByID returns nil, nil when no such employee exists; callers decide
// whether that means an unknown actor or an unknown target.
func (r *EmployeeRepository) GetByID(ctx context.Context, id int) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	var e models.Employee
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.UserType, &e.Name, &e.Phone, &e.Email, &e.EmpNumber,
		&e.BuilderID, &e.Active, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) ListActiveByRole(ctx context.Context, builderID int, userType string) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE builder_id = $1 AND user_type = $2 AND active = true
		ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, builderID, userType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.UserType, &e.Name, &e.Phone, &e.Email,
			&e.EmpNumber, &e.BuilderID, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

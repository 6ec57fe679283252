package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"estatecrm/internal/models"
	"estatecrm/internal/services"
)

const leadColumns = `lead_id, customer_name, customer_phone_number, customer_email,
	interested_project_id, interested_project_name, lead_source_id, city,
	lead_added_user_type, lead_added_user_id, assigned_user_type, assigned_id,
	assigned_name, assigned_emp_number, assigned_priority, status_id, sqft, budget,
	booked, created_at, updated_at`

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

// Insert commits the lead row and its birth ledger entry in one transaction so
// a lead never exists without history.
func (r *LeadRepository) Insert(ctx context.Context, lead *models.Lead, entry *models.LeadUpdate) error {
	const query = `
		INSERT INTO leads (customer_name, customer_phone_number, customer_email,
			interested_project_id, interested_project_name, lead_source_id, city,
			lead_added_user_type, lead_added_user_id, assigned_user_type, assigned_id,
			assigned_name, assigned_emp_number, assigned_priority, status_id, sqft,
			budget, booked, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,false,$18,$19)
		RETURNING lead_id
	`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, query,
		lead.CustomerName, lead.CustomerPhone, lead.CustomerEmail,
		lead.InterestedProjectID, lead.InterestedProjectName, lead.LeadSourceID, lead.City,
		lead.AddedUserType, lead.AddedUserID,
		nullStr(lead.AssignedUserType), nullInt(lead.AssignedID),
		nullStr(lead.AssignedName), nullStr(lead.AssignedEmpNumber), nullStr(lead.AssignedPriority),
		lead.StatusID, lead.Sqft, lead.Budget, lead.CreatedAt, lead.UpdatedAt,
	).Scan(&lead.ID)
	if err != nil {
		return err
	}
	entry.LeadID = lead.ID
	if err := insertLeadUpdate(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LeadRepository) GetByID(ctx context.Context, id int) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1`
	lead, err := scanLead(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, services.ErrLeadNotFound
	}
	return lead, err
}

// Filter builds the conjunction query. The owner clause is always present;
// booked leads are excluded unless the filter explicitly asks for them.
func (r *LeadRepository) Filter(ctx context.Context, f models.LeadFilter) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE lead_added_user_type = $1 AND lead_added_user_id = $2 AND booked = $3`
	args := []interface{}{f.OwnerType, f.OwnerID, f.Booked}
	i := 4

	if f.AssigneeID > 0 {
		query += fmt.Sprintf(" AND assigned_user_type = $%d AND assigned_id = $%d", i, i+1)
		args = append(args, f.AssigneeType, f.AssigneeID)
		i += 2
	}
	if f.StatusID > 0 {
		query += fmt.Sprintf(" AND status_id = $%d", i)
		args = append(args, f.StatusID)
		i++
	}
	if f.City != "" {
		query += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", i)
		args = append(args, f.City)
		i++
	}
	if f.Search != "" {
		query += fmt.Sprintf(` AND (customer_name ILIKE $%d OR customer_phone_number ILIKE $%d
			OR customer_email ILIKE $%d OR interested_project_name ILIKE $%d
			OR assigned_name ILIKE $%d)`, i, i, i, i, i)
		args = append(args, "%"+f.Search+"%")
		i++
	}
	if f.CreatedFrom != nil {
		query += fmt.Sprintf(" AND created_at::date >= $%d::date", i)
		args = append(args, *f.CreatedFrom)
		i++
	}
	if f.CreatedTo != nil {
		query += fmt.Sprintf(" AND created_at::date <= $%d::date", i)
		args = append(args, *f.CreatedTo)
		i++
	}
	if f.UpdatedFrom != nil {
		query += fmt.Sprintf(" AND updated_at::date >= $%d::date", i)
		args = append(args, *f.UpdatedFrom)
		i++
	}
	if f.UpdatedTo != nil {
		query += fmt.Sprintf(" AND updated_at::date <= $%d::date", i)
		args = append(args, *f.UpdatedTo)
		i++
	}
	query += " ORDER BY created_at DESC, lead_id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lead)
	}
	return out, rows.Err()
}

func (r *LeadRepository) UpdateAssignment(ctx context.Context, lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET assigned_user_type=$1, assigned_id=$2, assigned_name=$3,
			assigned_emp_number=$4, assigned_priority=$5, updated_at=$6
		WHERE lead_id=$7
	`
	_, err := r.db.ExecContext(ctx, query,
		lead.AssignedUserType, lead.AssignedID, lead.AssignedName,
		lead.AssignedEmpNumber, lead.AssignedPriority, lead.UpdatedAt, lead.ID)
	return err
}

// ApplyTransition commits the status change and the ledger entry in one
// transaction. The WHERE clause pins the status the caller validated against;
// losing that race surfaces as ErrLeadModified.
func (r *LeadRepository) ApplyTransition(ctx context.Context, lead *models.Lead, entry *models.LeadUpdate) error {
	const query = `
		UPDATE leads SET status_id=$1, updated_at=$2
		WHERE lead_id=$3 AND status_id=$4 AND booked = false
	`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, entry.StatusID, entry.CreatedAt, lead.ID, lead.StatusID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return services.ErrLeadModified
	}
	if err := insertLeadUpdate(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	lead.StatusID = entry.StatusID
	lead.UpdatedAt = entry.CreatedAt
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	var (
		lead         models.Lead
		assignedType sql.NullString
		assignedID   sql.NullInt64
		assignedName sql.NullString
		assignedEmp  sql.NullString
		priority     sql.NullString
	)
	err := row.Scan(
		&lead.ID, &lead.CustomerName, &lead.CustomerPhone, &lead.CustomerEmail,
		&lead.InterestedProjectID, &lead.InterestedProjectName, &lead.LeadSourceID, &lead.City,
		&lead.AddedUserType, &lead.AddedUserID, &assignedType, &assignedID,
		&assignedName, &assignedEmp, &priority, &lead.StatusID, &lead.Sqft, &lead.Budget,
		&lead.Booked, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.AssignedUserType = assignedType.String
	lead.AssignedID = int(assignedID.Int64)
	lead.AssignedName = assignedName.String
	lead.AssignedEmpNumber = assignedEmp.String
	lead.AssignedPriority = priority.String
	return &lead, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

package repositories

import (
	"context"
	"database/sql"
	"log"

	"estatecrm/internal/models"
)

type LeadUpdateRepository struct {
	db *sql.DB
}

func NewLeadUpdateRepository(db *sql.DB) *LeadUpdateRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadUpdateRepository{db: db}
}

// queryRower is satisfied by both *sql.DB and *sql.Tx so the insert and
// transition transactions can reuse the same entry write.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func insertLeadUpdate(ctx context.Context, q queryRower, entry *models.LeadUpdate) error {
	const query = `
		INSERT INTO lead_updates (lead_id, status_id, feedback, next_action,
			followup_date, action_date, updated_by_emp_type, updated_by_emp_id,
			updated_by_emp_name, updated_by_emp_phone, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING update_id
	`
	return q.QueryRowContext(ctx, query,
		entry.LeadID, entry.StatusID, entry.Feedback, entry.NextAction,
		entry.FollowupDate, entry.ActionDate, entry.ByEmpType, entry.ByEmpID,
		entry.ByEmpName, entry.ByEmpPhone, entry.CreatedAt,
	).Scan(&entry.ID)
}

func (r *LeadUpdateRepository) ListByLead(ctx context.Context, leadID int) ([]models.LeadUpdate, error) {
	const query = `
		SELECT update_id, lead_id, status_id, feedback, next_action, followup_date,
			action_date, updated_by_emp_type, updated_by_emp_id, updated_by_emp_name,
			updated_by_emp_phone, created_at
		FROM lead_updates
		WHERE lead_id = $1
		ORDER BY created_at ASC, update_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LeadUpdate
	for rows.Next() {
		var (
			e        models.LeadUpdate
			followup sql.NullTime
			action   sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.LeadID, &e.StatusID, &e.Feedback, &e.NextAction,
			&followup, &action, &e.ByEmpType, &e.ByEmpID, &e.ByEmpName,
			&e.ByEmpPhone, &e.CreatedAt); err != nil {
			return nil, err
		}
		if followup.Valid {
			t := followup.Time
			e.FollowupDate = &t
		}
		if action.Valid {
			t := action.Time
			e.ActionDate = &t
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

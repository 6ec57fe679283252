package repositories

import (
	"context"
	"database/sql"
	"log"

	"estatecrm/internal/models"
)

type StatusRepository struct {
	db *sql.DB
}

func NewStatusRepository(db *sql.DB) *StatusRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &StatusRepository{db: db}
}

func (r *StatusRepository) List(ctx context.Context) ([]models.LeadStatus, error) {
	const query = `
		SELECT status_id, status_name, sort_order, requires_followup_date, terminal
		FROM lead_statuses
		ORDER BY sort_order ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LeadStatus
	for rows.Next() {
		var st models.LeadStatus
		if err := rows.Scan(&st.ID, &st.Name, &st.SortOrder, &st.RequiresFollowupDate, &st.Terminal); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

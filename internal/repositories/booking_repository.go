package repositories

import (
	"context"
	"database/sql"
	"log"

	"estatecrm/internal/models"
	"estatecrm/internal/services"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &BookingRepository{db: db}
}

// CreateForLead inserts the booking and flips the lead out of the active pool
// in one transaction. The booked = false guard makes a lost race surface as
// ErrAlreadyBooked instead of a second booking row.
func (r *BookingRepository) CreateForLead(ctx context.Context, booking *models.Booking) error {
	const markBooked = `
		UPDATE leads SET booked = true, sqft = $1, budget = $2, updated_at = $3
		WHERE lead_id = $4 AND booked = false
	`
	const insertBooking = `
		INSERT INTO bookings (booking_ref, lead_id, property_id, flat_number,
			floor_number, block_number, asset, sqft, budget, booked_by_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING booking_id
	`
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, markBooked, booking.Sqft, booking.Budget, booking.CreatedAt, booking.LeadID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return services.ErrAlreadyBooked
	}

	err = tx.QueryRowContext(ctx, insertBooking,
		booking.Reference, booking.LeadID, booking.PropertyID, booking.FlatNumber,
		booking.FloorNumber, booking.BlockNumber, booking.Asset, booking.Sqft,
		booking.Budget, booking.BookedByID, booking.CreatedAt,
	).Scan(&booking.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *BookingRepository) GetByLeadID(ctx context.Context, leadID int) (*models.Booking, error) {
	const query = `
		SELECT booking_id, booking_ref, lead_id, property_id, flat_number, floor_number,
			block_number, asset, sqft, budget, booked_by_id, created_at
		FROM bookings WHERE lead_id = $1
	`
	var b models.Booking
	err := r.db.QueryRowContext(ctx, query, leadID).Scan(
		&b.ID, &b.Reference, &b.LeadID, &b.PropertyID, &b.FlatNumber, &b.FloorNumber,
		&b.BlockNumber, &b.Asset, &b.Sqft, &b.Budget, &b.BookedByID, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, services.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByBuilder(ctx context.Context, builderID int) ([]models.BookedLead, error) {
	query := `
		SELECT ` + prefixColumns("l", leadColumns) + `,
			b.booking_id, b.booking_ref, b.lead_id, b.property_id, b.flat_number,
			b.floor_number, b.block_number, b.asset, b.sqft, b.budget, b.booked_by_id,
			b.created_at
		FROM bookings b
		JOIN leads l ON l.lead_id = b.lead_id
		WHERE l.lead_added_user_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, builderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BookedLead
	for rows.Next() {
		var (
			bl           models.BookedLead
			assignedType sql.NullString
			assignedID   sql.NullInt64
			assignedName sql.NullString
			assignedEmp  sql.NullString
			priority     sql.NullString
		)
		l := &bl.Lead
		b := &bl.Booking
		err := rows.Scan(
			&l.ID, &l.CustomerName, &l.CustomerPhone, &l.CustomerEmail,
			&l.InterestedProjectID, &l.InterestedProjectName, &l.LeadSourceID, &l.City,
			&l.AddedUserType, &l.AddedUserID, &assignedType, &assignedID,
			&assignedName, &assignedEmp, &priority, &l.StatusID, &l.Sqft, &l.Budget,
			&l.Booked, &l.CreatedAt, &l.UpdatedAt,
			&b.ID, &b.Reference, &b.LeadID, &b.PropertyID, &b.FlatNumber,
			&b.FloorNumber, &b.BlockNumber, &b.Asset, &b.Sqft, &b.Budget,
			&b.BookedByID, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		l.AssignedUserType = assignedType.String
		l.AssignedID = int(assignedID.Int64)
		l.AssignedName = assignedName.String
		l.AssignedEmpNumber = assignedEmp.String
		l.AssignedPriority = priority.String
		out = append(out, bl)
	}
	return out, rows.Err()
}

package database

import (
	"database/sql"

	"github.com/Sourabh6826/school-erp/app/models"
)

const feeHeadColumns = `id, name, description, session, frequency, installment_count,
	due_day, due_months, late_fee_amount, grace_period_days, is_transport_fee, created_at, updated_at`

func scanFeeHead(row interface{ Scan(...interface{}) error }) (*models.FeeHead, error) {
	h := &models.FeeHead{}
	err := row.Scan(
		&h.ID, &h.Name, &h.Description, &h.Session, &h.Frequency, &h.InstallmentCount,
		&h.DueDay, &h.DueMonths, &h.LateFeeAmount, &h.GracePeriodDays, &h.IsTransportFee,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func loadAmounts(db *sql.DB, heads []*models.FeeHead) error {
	byID := make(map[string]*models.FeeHead, len(heads))
	for _, h := range heads {
		byID[h.ID] = h
	}

	rows, err := db.Query(`
		SELECT fa.id, fa.fee_head_id, fa.class_name, fa.amount
		FROM fee_amounts fa
		JOIN fee_heads fh ON fa.fee_head_id = fh.id
		ORDER BY fa.class_name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		a := &models.FeeAmount{}
		if err := rows.Scan(&a.ID, &a.FeeHeadID, &a.ClassName, &a.Amount); err != nil {
			continue
		}
		if h, ok := byID[a.FeeHeadID]; ok {
			h.Amounts = append(h.Amounts, a)
		}
	}
	return rows.Err()
}

// GetFeeHeads returns the fee heads of a session (all sessions when empty),
// with per-class amounts attached, in creation order.
func GetFeeHeads(db *sql.DB, session string) ([]*models.FeeHead, error) {
	query := `SELECT ` + feeHeadColumns + ` FROM fee_heads`
	var args []interface{}
	if session != "" {
		query += ` WHERE session = $1`
		args = append(args, session)
	}
	query += ` ORDER BY created_at`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var heads []*models.FeeHead
	for rows.Next() {
		h, err := scanFeeHead(rows)
		if err != nil {
			continue
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadAmounts(db, heads); err != nil {
		return nil, err
	}
	return heads, nil
}

func GetFeeHeadByID(db *sql.DB, id string) (*models.FeeHead, error) {
	h, err := scanFeeHead(db.QueryRow(`SELECT `+feeHeadColumns+` FROM fee_heads WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := loadAmounts(db, []*models.FeeHead{h}); err != nil {
		return nil, err
	}
	return h, nil
}

// CreateFeeHead inserts a head and its per-class amount rows in one
// transaction.
func CreateFeeHead(db *sql.DB, h *models.FeeHead) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
		INSERT INTO fee_heads (name, description, session, frequency, installment_count,
			due_day, due_months, late_fee_amount, grace_period_days, is_transport_fee)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, h.Name, h.Description, h.Session, h.Frequency, h.InstallmentCount,
		h.DueDay, h.DueMonths, h.LateFeeAmount, h.GracePeriodDays, h.IsTransportFee,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return err
	}

	for _, a := range h.Amounts {
		a.FeeHeadID = h.ID
		err = tx.QueryRow(`
			INSERT INTO fee_amounts (fee_head_id, class_name, amount)
			VALUES ($1, $2, $3) RETURNING id
		`, h.ID, a.ClassName, a.Amount).Scan(&a.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateFeeHead rewrites a head and replaces its amount rows. Historical
// transactions keep referencing the head; edits only affect future
// computations.
func UpdateFeeHead(db *sql.DB, h *models.FeeHead) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE fee_heads
		SET name = $1, description = $2, frequency = $3, installment_count = $4,
			due_day = $5, due_months = $6, late_fee_amount = $7,
			grace_period_days = $8, is_transport_fee = $9, updated_at = NOW()
		WHERE id = $10
	`, h.Name, h.Description, h.Frequency, h.InstallmentCount,
		h.DueDay, h.DueMonths, h.LateFeeAmount, h.GracePeriodDays, h.IsTransportFee, h.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if _, err := tx.Exec(`DELETE FROM fee_amounts WHERE fee_head_id = $1`, h.ID); err != nil {
		return err
	}
	for _, a := range h.Amounts {
		a.FeeHeadID = h.ID
		err = tx.QueryRow(`
			INSERT INTO fee_amounts (fee_head_id, class_name, amount)
			VALUES ($1, $2, $3) RETURNING id
		`, h.ID, a.ClassName, a.Amount).Scan(&a.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func DeleteFeeHead(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM fee_heads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetGlobalSettings returns the installment schedule for a session, falling
// back to a single-installment default when none is configured.
func GetGlobalSettings(db *sql.DB, session string) (*models.GlobalFeeSetting, error) {
	s := &models.GlobalFeeSetting{}
	err := db.QueryRow(`
		SELECT id, session, installment_count, due_months, due_day,
			late_fee_amount, late_fee_start_day, late_fee_frequency
		FROM global_fee_settings WHERE session = $1
	`, session).Scan(
		&s.ID, &s.Session, &s.InstallmentCount, &s.DueMonths, &s.DueDay,
		&s.LateFeeAmount, &s.LateFeeStartDay, &s.LateFeeFrequency,
	)
	if err == sql.ErrNoRows {
		return &models.GlobalFeeSetting{
			Session:          session,
			InstallmentCount: 1,
			DueDay:           10,
			LateFeeFrequency: models.LateFeeOnce,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func UpsertGlobalSettings(db *sql.DB, s *models.GlobalFeeSetting) error {
	return db.QueryRow(`
		INSERT INTO global_fee_settings (session, installment_count, due_months, due_day,
			late_fee_amount, late_fee_start_day, late_fee_frequency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session) DO UPDATE
		SET installment_count = EXCLUDED.installment_count,
			due_months = EXCLUDED.due_months,
			due_day = EXCLUDED.due_day,
			late_fee_amount = EXCLUDED.late_fee_amount,
			late_fee_start_day = EXCLUDED.late_fee_start_day,
			late_fee_frequency = EXCLUDED.late_fee_frequency
		RETURNING id
	`, s.Session, s.InstallmentCount, s.DueMonths, s.DueDay,
		s.LateFeeAmount, s.LateFeeStartDay, s.LateFeeFrequency,
	).Scan(&s.ID)
}

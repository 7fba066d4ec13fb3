package database

import (
	"database/sql"

	"github.com/sirupsen/logrus"
)

// RunMigrations creates or updates the schema. Statements are idempotent so
// the app can run them on every start.
func RunMigrations(db *sql.DB) error {
	logrus.Info("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS fee_heads (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			session VARCHAR(10) NOT NULL,
			frequency VARCHAR(20) NOT NULL DEFAULT 'INSTALLMENTS'
				CHECK (frequency IN ('ONCE', 'INSTALLMENTS')),
			installment_count INT NOT NULL DEFAULT 1,
			due_day INT NOT NULL DEFAULT 10,
			due_months VARCHAR(50) NOT NULL DEFAULT '',
			late_fee_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			grace_period_days INT NOT NULL DEFAULT 0,
			is_transport_fee BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, session)
		)`,

		`CREATE TABLE IF NOT EXISTS fee_amounts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fee_head_id UUID NOT NULL REFERENCES fee_heads(id) ON DELETE CASCADE,
			class_name VARCHAR(50) NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			UNIQUE (fee_head_id, class_name)
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(200) NOT NULL,
			student_class VARCHAR(10) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE'
				CHECK (status IN ('ACTIVE', 'ALUMNI', 'TC_ISSUED')),
			contact_number VARCHAR(15) NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			enrollment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			has_transport BOOLEAN NOT NULL DEFAULT false,
			transport_fee_head_id UUID REFERENCES fee_heads(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS global_fee_settings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			session VARCHAR(10) UNIQUE NOT NULL,
			installment_count INT NOT NULL DEFAULT 1,
			due_months VARCHAR(100) NOT NULL DEFAULT '',
			due_day INT NOT NULL DEFAULT 10,
			late_fee_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			late_fee_start_day INT NOT NULL DEFAULT 15,
			late_fee_frequency VARCHAR(20) NOT NULL DEFAULT 'ONCE'
				CHECK (late_fee_frequency IN ('ONCE', 'PER_DAY'))
		)`,

		`CREATE SEQUENCE IF NOT EXISTS receipt_no_seq`,

		`CREATE TABLE IF NOT EXISTS receipts (
			id UUID PRIMARY KEY,
			receipt_no INT UNIQUE NOT NULL DEFAULT nextval('receipt_no_seq'),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			payment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			total_amount NUMERIC(10,2) NOT NULL,
			remarks TEXT NOT NULL DEFAULT '',
			payment_mode VARCHAR(10) NOT NULL DEFAULT 'CASH'
				CHECK (payment_mode IN ('CASH', 'ONLINE')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS fee_transactions (
			id UUID PRIMARY KEY,
			receipt_id UUID NOT NULL REFERENCES receipts(id) ON DELETE CASCADE,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			fee_head_id UUID NOT NULL REFERENCES fee_heads(id),
			installment_number INT NOT NULL DEFAULT 1,
			amount_paid NUMERIC(10,2) NOT NULL,
			payment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			remarks TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE INDEX IF NOT EXISTS idx_fee_transactions_student
			ON fee_transactions (student_id, fee_head_id, installment_number)`,

		`CREATE TABLE IF NOT EXISTS inventory_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			category VARCHAR(20) NOT NULL DEFAULT 'OTHER'
				CHECK (category IN ('STATIONERY', 'FURNITURE', 'ELECTRONICS', 'OTHER')),
			quantity INT NOT NULL DEFAULT 0,
			reorder_level INT NOT NULL DEFAULT 10,
			unit_price NUMERIC(10,2),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS inventory_transactions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			item_id UUID NOT NULL REFERENCES inventory_items(id) ON DELETE CASCADE,
			direction VARCHAR(5) NOT NULL CHECK (direction IN ('IN', 'OUT')),
			quantity INT NOT NULL CHECK (quantity > 0),
			transaction_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			remarks TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS bank_statement_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			date DATE NOT NULL,
			description TEXT NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			ref_number VARCHAR(100) NOT NULL DEFAULT '',
			is_reconciled BOOLEAN NOT NULL DEFAULT false,
			matched_transaction_id UUID REFERENCES fee_transactions(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			logrus.WithError(err).Error("Migration statement failed")
			return err
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

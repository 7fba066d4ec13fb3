package database

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/models"
)

const inventoryItemColumns = `id, name, category, quantity, reorder_level, unit_price, created_at, updated_at`

func scanInventoryItem(row interface{ Scan(...interface{}) error }) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity, &item.ReorderLevel,
		&item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetInventoryItems lists stock lines, optionally limited to one category or
// to items below their reorder level.
func GetInventoryItems(db *sql.DB, category string, lowStockOnly bool) ([]*models.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE 1=1`
	var args []interface{}
	if category != "" {
		args = append(args, category)
		query += ` AND category = $1`
	}
	if lowStockOnly {
		query += ` AND quantity < reorder_level`
	}
	query += ` ORDER BY name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func GetInventoryItemByID(db *sql.DB, id string) (*models.InventoryItem, error) {
	return scanInventoryItem(db.QueryRow(`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1`, id))
}

func CreateInventoryItem(db *sql.DB, item *models.InventoryItem) error {
	if item.Category == "" {
		item.Category = models.CategoryOther
	}
	return db.QueryRow(`
		INSERT INTO inventory_items (name, category, quantity, reorder_level, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, item.Name, item.Category, item.Quantity, item.ReorderLevel, item.UnitPrice,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// UpdateInventoryItem rewrites the descriptive fields. Quantity is not
// touched here; stock moves only through inventory transactions.
func UpdateInventoryItem(db *sql.DB, item *models.InventoryItem) error {
	result, err := db.Exec(`
		UPDATE inventory_items
		SET name = $1, category = $2, reorder_level = $3, unit_price = $4, updated_at = NOW()
		WHERE id = $5
	`, item.Name, item.Category, item.ReorderLevel, item.UnitPrice, item.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteInventoryItem(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetInventoryTransactions returns stock movements newest first, optionally
// for one item.
func GetInventoryTransactions(db *sql.DB, itemID string) ([]*models.InventoryTransaction, error) {
	query := `
		SELECT t.id, t.item_id, i.name, t.direction, t.quantity, t.transaction_date, t.remarks
		FROM inventory_transactions t
		JOIN inventory_items i ON t.item_id = i.id`
	var args []interface{}
	if itemID != "" {
		query += ` WHERE t.item_id = $1`
		args = append(args, itemID)
	}
	query += ` ORDER BY t.transaction_date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.InventoryTransaction
	for rows.Next() {
		t := &models.InventoryTransaction{}
		err := rows.Scan(&t.ID, &t.ItemID, &t.ItemName, &t.Direction, &t.Quantity, &t.TransactionDate, &t.Remarks)
		if err != nil {
			continue
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// CreateInventoryTransaction records a stock movement and adjusts the item's
// on-hand quantity atomically. The item row is locked so concurrent movements
// cannot both pass the overdraw check against a stale quantity.
func CreateInventoryTransaction(db *sql.DB, t *models.InventoryTransaction) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	item, err := scanInventoryItem(tx.QueryRow(
		`SELECT `+inventoryItemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, t.ItemID))
	if err != nil {
		return err
	}

	if err := item.Apply(t.Direction, t.Quantity); err != nil {
		return err
	}
	t.ItemName = item.Name

	if _, err := tx.Exec(`UPDATE inventory_items SET quantity = $1, updated_at = NOW() WHERE id = $2`,
		item.Quantity, item.ID); err != nil {
		return err
	}

	err = tx.QueryRow(`
		INSERT INTO inventory_transactions (item_id, direction, quantity, remarks)
		VALUES ($1, $2, $3, $4)
		RETURNING id, transaction_date
	`, t.ItemID, t.Direction, t.Quantity, t.Remarks).Scan(&t.ID, &t.TransactionDate)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logrus.Infof("Inventory %s of %d recorded for %s (now %d on hand)",
		t.Direction, t.Quantity, item.Name, item.Quantity)
	return nil
}

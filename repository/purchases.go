package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/comprasapp/purchase-list/model"
)

type PurchaseRepoMysql struct {
	db *sql.DB
}

func NewPurchaseRepoMysql(user, password, dbname string) *PurchaseRepoMysql {
	return &PurchaseRepoMysql{db: open(user, password, dbname)}
}

// recomputeListTotal persists the sum of all purchase amounts currently
// attached to the list. Must run inside the same transaction as the purchase
// mutation so the cached total never drifts from the rows.
func recomputeListTotal(ctx context.Context, tx *sql.Tx, listID int) error {
	statement := `UPDATE purchase_lists
					SET total_purchases = (SELECT COALESCE(SUM(amount), 0) FROM purchases WHERE list_id = ?)
					WHERE id = ?`
	_, err := tx.ExecContext(ctx, statement, listID, listID)
	return err
}

func (p *PurchaseRepoMysql) Create(purchase *model.Purchase) (*model.Purchase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	statement := `INSERT INTO purchases(list_id, category_id, buyer_id, recorder_id, purchase_date, description, amount, created_at)
					VALUES(?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, statement,
		purchase.ListID, purchase.CategoryID, purchase.BuyerID, purchase.RecorderID,
		purchase.PurchaseDate, purchase.Description, purchase.Amount, purchase.CreatedAt)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	purchase.ID = int(id)

	if err := recomputeListTotal(ctx, tx, purchase.ListID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (p *PurchaseRepoMysql) Update(purchase *model.Purchase) (*model.Purchase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	statement := `UPDATE purchases
					SET category_id = ?, buyer_id = ?, recorder_id = ?, purchase_date = ?, description = ?, amount = ?
					WHERE id = ?`
	_, err = tx.ExecContext(ctx, statement,
		purchase.CategoryID, purchase.BuyerID, purchase.RecorderID,
		purchase.PurchaseDate, purchase.Description, purchase.Amount, purchase.ID)
	if err != nil {
		return nil, err
	}

	if err := recomputeListTotal(ctx, tx, purchase.ListID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (p *PurchaseRepoMysql) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var listID int
	statement := "SELECT list_id FROM purchases WHERE id = ?"
	if err := tx.QueryRowContext(ctx, statement, id).Scan(&listID); err != nil {
		return err
	}

	statement = "DELETE FROM purchases WHERE id = ?"
	if _, err := tx.ExecContext(ctx, statement, id); err != nil {
		return err
	}

	if err := recomputeListTotal(ctx, tx, listID); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *PurchaseRepoMysql) FindByID(id int) (*model.Purchase, error) {
	statement := `SELECT id, list_id, category_id, buyer_id, recorder_id, purchase_date, description, amount, created_at
					FROM purchases WHERE id = ?`
	purchase := &model.Purchase{}
	err := p.db.QueryRow(statement, id).
		Scan(&purchase.ID, &purchase.ListID, &purchase.CategoryID, &purchase.BuyerID,
			&purchase.RecorderID, &purchase.PurchaseDate, &purchase.Description,
			&purchase.Amount, &purchase.CreatedAt)
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (p *PurchaseRepoMysql) FindWithFilter(filter *model.PurchaseFilter) ([]model.PurchaseDetails, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT p.id, p.list_id, p.category_id, p.buyer_id, p.recorder_id,
					p.purchase_date, p.description, p.amount, p.created_at,
					cat.name, ub.first_names, ub.last_names, ur.first_names, ur.last_names
					FROM purchases p
					INNER JOIN categories cat ON cat.id = p.category_id
					INNER JOIN users ub ON ub.id = p.buyer_id
					INNER JOIN users ur ON ur.id = p.recorder_id
					WHERE p.list_id = ? AND p.buyer_id = ?`)
	args := []interface{}{filter.ListID, filter.BuyerID}

	if filter.Category != "" {
		sb.WriteString(" AND cat.name LIKE ?")
		args = append(args, "%"+filter.Category+"%")
	}
	if filter.Description != "" {
		sb.WriteString(" AND p.description LIKE ?")
		args = append(args, "%"+filter.Description+"%")
	}
	sb.WriteString(" ORDER BY p.purchase_date DESC")

	rows, err := p.db.Query(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []model.PurchaseDetails{}
	for rows.Next() {
		var d model.PurchaseDetails
		err := rows.Scan(&d.ID, &d.ListID, &d.CategoryID, &d.BuyerID, &d.RecorderID,
			&d.PurchaseDate, &d.Description, &d.Amount, &d.CreatedAt,
			&d.CategoryName, &d.BuyerFirstNames, &d.BuyerLastNames,
			&d.RecorderFirstNames, &d.RecorderLastNames)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return purchases, nil
}

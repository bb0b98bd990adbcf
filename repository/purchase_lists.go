package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comprasapp/purchase-list/model"
)

type PurchaseListRepoMysql struct {
	db *sql.DB
}

func NewPurchaseListRepoMysql(user, password, dbname string) *PurchaseListRepoMysql {
	return &PurchaseListRepoMysql{db: open(user, password, dbname)}
}

const listColumns = "id, name, created_at, status, finalized_at, total_purchases, creator_id, join_code"

func scanList(row interface{ Scan(...interface{}) error }) (*model.PurchaseList, error) {
	list := &model.PurchaseList{}
	var finalizedAt sql.NullTime
	var joinCode sql.NullString
	err := row.Scan(&list.ID, &list.Name, &list.CreatedAt, &list.Status,
		&finalizedAt, &list.TotalPurchases, &list.CreatorID, &joinCode)
	if err != nil {
		return nil, err
	}
	if finalizedAt.Valid {
		list.FinalizedAt = &finalizedAt.Time
	}
	list.JoinCode = joinCode.String
	return list, nil
}

// Create inserts the list, derives the join code from the assigned primary
// key and enrolls the creator as an approved 100% collaborator. The three
// writes commit or roll back together.
func (p *PurchaseListRepoMysql) Create(list *model.PurchaseList, codeSuffix string) (*model.PurchaseList, error) {
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

	statement := "INSERT INTO purchase_lists(name, created_at, status, total_purchases, creator_id) VALUES(?, ?, ?, ?, ?)"
	result, err := tx.ExecContext(ctx, statement,
		list.Name, list.CreatedAt, list.Status, list.TotalPurchases, list.CreatorID)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	list.ID = int(id)

	// The code embeds the primary key, so it can only be assigned after the
	// insert.
	list.JoinCode = strconv.Itoa(list.ID) + codeSuffix
	statement = "UPDATE purchase_lists SET join_code = ? WHERE id = ?"
	if _, err = tx.ExecContext(ctx, statement, list.JoinCode, list.ID); err != nil {
		return nil, err
	}

	statement = "INSERT INTO purchase_list_collaborators(list_id, user_id, percentage, status, is_creator) VALUES(?, ?, ?, ?, ?)"
	_, err = tx.ExecContext(ctx, statement,
		list.ID, list.CreatorID, decimal.NewFromInt(100), model.CollaboratorStatusApproved, true)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *PurchaseListRepoMysql) FindByID(id int) (*model.PurchaseList, error) {
	statement := "SELECT " + listColumns + " FROM purchase_lists WHERE id = ?"
	return scanList(p.db.QueryRow(statement, id))
}

func (p *PurchaseListRepoMysql) FindByJoinCode(code string) (*model.PurchaseList, error) {
	statement := "SELECT " + listColumns + " FROM purchase_lists WHERE join_code = ?"
	return scanList(p.db.QueryRow(statement, code))
}

func (p *PurchaseListRepoMysql) UpdateStatus(id int, status string) (*model.PurchaseList, error) {
	statement := "UPDATE purchase_lists SET status = ? WHERE id = ?"
	if _, err := p.db.Exec(statement, status, id); err != nil {
		return nil, err
	}
	return p.FindByID(id)
}

func (p *PurchaseListRepoMysql) FindByCreator(filter *model.ListFilter) ([]model.PurchaseList, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + listColumns + " FROM purchase_lists WHERE creator_id = ?")
	args := []interface{}{filter.UserID}

	if filter.Status != "" {
		sb.WriteString(" AND status = ?")
		args = append(args, filter.Status)
	}
	if filter.Name != "" {
		sb.WriteString(" AND name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := p.db.Query(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []model.PurchaseList{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *list)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

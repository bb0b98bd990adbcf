package repository

import (
	"database/sql"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/comprasapp/purchase-list/model"
)

type CollaboratorRepoMysql struct {
	db *sql.DB
}

func NewCollaboratorRepoMysql(user, password, dbname string) *CollaboratorRepoMysql {
	return &CollaboratorRepoMysql{db: open(user, password, dbname)}
}

func (c *CollaboratorRepoMysql) Add(collaborator *model.Collaborator) (*model.Collaborator, error) {
	statement := "INSERT INTO purchase_list_collaborators(list_id, user_id, percentage, status, is_creator) VALUES(?, ?, ?, ?, ?)"
	result, err := c.db.Exec(statement,
		collaborator.ListID, collaborator.UserID, collaborator.Percentage,
		collaborator.Status, collaborator.IsCreator)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	collaborator.ID = int(id)
	return collaborator, nil
}

func (c *CollaboratorRepoMysql) FindByListAndUser(listID, userID int) (*model.Collaborator, error) {
	statement := `SELECT id, list_id, user_id, percentage, status, is_creator
					FROM purchase_list_collaborators
					WHERE list_id = ? AND user_id = ?`
	collaborator := &model.Collaborator{}
	err := c.db.QueryRow(statement, listID, userID).
		Scan(&collaborator.ID, &collaborator.ListID, &collaborator.UserID,
			&collaborator.Percentage, &collaborator.Status, &collaborator.IsCreator)
	if err != nil {
		return nil, err
	}
	return collaborator, nil
}

func (c *CollaboratorRepoMysql) UpdateStatus(id int, status string) error {
	statement := "UPDATE purchase_list_collaborators SET status = ? WHERE id = ?"
	_, err := c.db.Exec(statement, status, id)
	return err
}

func (c *CollaboratorRepoMysql) UpdatePercentage(id int, percentage decimal.Decimal) error {
	statement := "UPDATE purchase_list_collaborators SET percentage = ? WHERE id = ?"
	_, err := c.db.Exec(statement, percentage, id)
	return err
}

func (c *CollaboratorRepoMysql) FindByList(filter *model.CollaboratorFilter) ([]model.CollaboratorDetails, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT c.id, c.list_id, c.user_id, c.percentage, c.status, c.is_creator,
					u.first_names, u.last_names
					FROM purchase_list_collaborators c
					INNER JOIN users u ON u.id = c.user_id
					WHERE c.list_id = ?`)
	args := []interface{}{filter.ListID}

	if len(filter.Statuses) > 0 {
		sb.WriteString(" AND c.status IN (?" + strings.Repeat(", ?", len(filter.Statuses)-1) + ")")
		for _, status := range filter.Statuses {
			args = append(args, status)
		}
	}
	if filter.Name != "" {
		sb.WriteString(" AND (u.first_names LIKE ? OR u.last_names LIKE ?)")
		pattern := "%" + filter.Name + "%"
		args = append(args, pattern, pattern)
	}
	sb.WriteString(" ORDER BY c.percentage DESC")

	rows, err := c.db.Query(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collaborators := []model.CollaboratorDetails{}
	for rows.Next() {
		var d model.CollaboratorDetails
		err := rows.Scan(&d.ID, &d.ListID, &d.UserID, &d.Percentage, &d.Status,
			&d.IsCreator, &d.FirstNames, &d.LastNames)
		if err != nil {
			return nil, err
		}
		collaborators = append(collaborators, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return collaborators, nil
}

// FindWithPurchaseTotals attributes to each collaborator the purchases they
// bought within the list. The LEFT JOIN keeps collaborators with no
// purchases, reported with a zero total.
func (c *CollaboratorRepoMysql) FindWithPurchaseTotals(listID int) ([]model.CollaboratorTotal, error) {
	statement := `SELECT c.id, c.list_id, c.user_id, c.percentage, c.status, c.is_creator,
					u.first_names, u.last_names, COALESCE(SUM(p.amount), 0)
					FROM purchase_list_collaborators c
					INNER JOIN users u ON u.id = c.user_id
					LEFT JOIN purchases p ON p.list_id = c.list_id AND p.buyer_id = c.user_id
					WHERE c.list_id = ?
					GROUP BY c.id, c.list_id, c.user_id, c.percentage, c.status, c.is_creator, u.first_names, u.last_names
					ORDER BY c.percentage DESC`

	rows, err := c.db.Query(statement, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []model.CollaboratorTotal{}
	for rows.Next() {
		var t model.CollaboratorTotal
		err := rows.Scan(&t.ID, &t.ListID, &t.UserID, &t.Percentage, &t.Status,
			&t.IsCreator, &t.FirstNames, &t.LastNames, &t.TotalPurchases)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return totals, nil
}

var memberListSortFields = map[string]bool{
	"name":            true,
	"created_at":      true,
	"status":          true,
	"total_purchases": true,
}

func sortColumn(sort string) string {
	if memberListSortFields[strings.TrimSpace(sort)] {
		return "l." + strings.TrimSpace(sort)
	}
	return "l.created_at"
}

func (c *CollaboratorRepoMysql) FindListsByMember(filter *model.ListFilter, page, size int, sort string) (*model.ListPage, error) {
	where := `FROM purchase_lists l
					INNER JOIN purchase_list_collaborators co ON co.list_id = l.id
					WHERE co.user_id = ? AND co.status = ?`
	args := []interface{}{filter.UserID, model.CollaboratorStatusApproved}

	if filter.Status != "" {
		where += " AND l.status = ?"
		args = append(args, filter.Status)
	}
	if filter.Name != "" {
		where += " AND l.name LIKE ?"
		args = append(args, "%"+filter.Name+"%")
	}

	var total int
	if err := c.db.QueryRow("SELECT COUNT(*) "+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	statement := `SELECT l.id, l.name, l.created_at, l.status, l.finalized_at,
					l.total_purchases, l.creator_id, l.join_code ` + where +
		" ORDER BY " + sortColumn(sort) + " DESC LIMIT ? OFFSET ?"
	args = append(args, size, page*size)

	rows, err := c.db.Query(statement, args...)
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

	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	return &model.ListPage{
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Content:       lists,
	}, nil
}

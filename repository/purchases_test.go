package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comprasapp/purchase-list/model"
)

var recomputeQuery = regexp.QuoteMeta(`UPDATE purchase_lists
					SET total_purchases = (SELECT COALESCE(SUM(amount), 0) FROM purchases WHERE list_id = ?)
					WHERE id = ?`)

func testPurchase() *model.Purchase {
	return &model.Purchase{
		ListID:       9,
		CategoryID:   7,
		BuyerID:      1,
		RecorderID:   1,
		PurchaseDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description:  "weekly shop",
		Amount:       decimal.NewFromInt(50),
		CreatedAt:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestPurchaseRepoMysql_Create(t *testing.T) {
	insert := regexp.QuoteMeta(`INSERT INTO purchases(list_id, category_id, buyer_id, recorder_id, purchase_date, description, amount, created_at)
					VALUES(?, ?, ?, ?, ?, ?, ?, ?)`)

	t.Run("commits the insert together with the total recompute", func(t *testing.T) {
		db, mock := NewMock()
		repo := &PurchaseRepoMysql{db}

		mock.ExpectBegin()
		mock.ExpectExec(insert).
			WithArgs(9, 7, 1, 1, sqlmock.AnyArg(), "weekly shop", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(21, 1))
		mock.ExpectExec(recomputeQuery).WithArgs(9, 9).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		purchase, err := repo.Create(testPurchase())
		require.NoError(t, err)
		assert.Equal(t, 21, purchase.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("rolls back when the recompute fails", func(t *testing.T) {
		db, mock := NewMock()
		repo := &PurchaseRepoMysql{db}

		mock.ExpectBegin()
		mock.ExpectExec(insert).
			WithArgs(9, 7, 1, 1, sqlmock.AnyArg(), "weekly shop", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(21, 1))
		mock.ExpectExec(recomputeQuery).WithArgs(9, 9).
			WillReturnError(errors.New("deadlock"))
		mock.ExpectRollback()

		_, err := repo.Create(testPurchase())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPurchaseRepoMysql_Update(t *testing.T) {
	db, mock := NewMock()
	repo := &PurchaseRepoMysql{db}

	update := regexp.QuoteMeta(`UPDATE purchases
					SET category_id = ?, buyer_id = ?, recorder_id = ?, purchase_date = ?, description = ?, amount = ?
					WHERE id = ?`)

	mock.ExpectBegin()
	mock.ExpectExec(update).
		WithArgs(7, 1, 1, sqlmock.AnyArg(), "weekly shop", sqlmock.AnyArg(), 21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(recomputeQuery).WithArgs(9, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	purchase := testPurchase()
	purchase.ID = 21
	_, err := repo.Update(purchase)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepoMysql_Delete(t *testing.T) {
	selectList := regexp.QuoteMeta("SELECT list_id FROM purchases WHERE id = ?")
	deleteRow := regexp.QuoteMeta("DELETE FROM purchases WHERE id = ?")

	t.Run("resolves the list before deleting", func(t *testing.T) {
		db, mock := NewMock()
		repo := &PurchaseRepoMysql{db}

		mock.ExpectBegin()
		mock.ExpectQuery(selectList).WithArgs(21).
			WillReturnRows(sqlmock.NewRows([]string{"list_id"}).AddRow(9))
		mock.ExpectExec(deleteRow).WithArgs(21).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(recomputeQuery).WithArgs(9, 9).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(21))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("purchase does not exist", func(t *testing.T) {
		db, mock := NewMock()
		repo := &PurchaseRepoMysql{db}

		mock.ExpectBegin()
		mock.ExpectQuery(selectList).WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"list_id"}))
		mock.ExpectRollback()

		assert.Error(t, repo.Delete(42))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPurchaseRepoMysql_FindWithFilter(t *testing.T) {
	columns := []string{
		"id", "list_id", "category_id", "buyer_id", "recorder_id",
		"purchase_date", "description", "amount", "created_at",
		"name", "buyer_first", "buyer_last", "recorder_first", "recorder_last",
	}

	t.Run("joins category and user names", func(t *testing.T) {
		db, mock := NewMock()
		repo := &PurchaseRepoMysql{db}

		rows := sqlmock.NewRows(columns).
			AddRow(21, 9, 7, 1, 2, time.Now(), "weekly shop", "50", time.Now(),
				"Food", "Ana", "Doe", "Bob", "Doe")
		mock.ExpectQuery("SELECT p.id, p.list_id").WithArgs(9, 1).WillReturnRows(rows)

		purchases, err := repo.FindWithFilter(&model.PurchaseFilter{ListID: 9, BuyerID: 1})
		require.NoError(t, err)
		require.Len(t, purchases, 1)
		assert.Equal(t, "Food", purchases[0].CategoryName)
		assert.Equal(t, "Ana", purchases[0].BuyerFirstNames)
		assert.Equal(t, "Bob", purchases[0].RecorderFirstNames)
	})
	t.Run("category and description filters expand into the query", func(t *testing.T) {
		db, mock := NewMock()
		repo := &PurchaseRepoMysql{db}

		mock.ExpectQuery("SELECT p.id, p.list_id").
			WithArgs(9, 1, "%Food%", "%shop%").
			WillReturnRows(sqlmock.NewRows(columns))

		purchases, err := repo.FindWithFilter(&model.PurchaseFilter{
			ListID: 9, BuyerID: 1, Category: "Food", Description: "shop",
		})
		require.NoError(t, err)
		assert.Empty(t, purchases)
	})
}

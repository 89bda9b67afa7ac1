package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var movementCols = []string{
	"id", "product_id", "direction", "quantity",
	"project_id", "order_id", "coalesce", "created_by", "created_at",
}

func TestCreateMovement(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`insert into inventory_movements`).
		WithArgs(int64(7), DirOut, decimal.NewFromInt(12), nil, nil, "site delivery", nil).
		WillReturnRows(sqlmock.NewRows(movementCols).
			AddRow(int64(1), int64(7), DirOut, "12", nil, nil, "site delivery", nil, now))

	repo := NewRepo(db)
	m, err := repo.Create(context.Background(), Movement{
		ProductID: 7,
		Direction: DirOut,
		Quantity:  decimal.NewFromInt(12),
		Note:      "site delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, DirOut, m.Direction)
	assert.True(t, decimal.NewFromInt(12).Equal(m.Quantity))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMovementNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`select .* from inventory_movements where id`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(movementCols))

	repo := NewRepo(db)
	_, err = repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMovementNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovementsByProduct(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`select .* from inventory_movements where true and product_id`).
		WithArgs(int64(7), 100).
		WillReturnRows(sqlmock.NewRows(movementCols).
			AddRow(int64(2), int64(7), DirIn, "30", nil, nil, "", nil, now).
			AddRow(int64(1), int64(7), DirOut, "12", nil, nil, "site delivery", nil, now.Add(-time.Hour)))

	repo := NewRepo(db)
	got, err := repo.List(context.Background(), ListFilter{ProductID: 7})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, DirIn, got[0].Direction)
	assert.Equal(t, "site delivery", got[1].Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockLevelSignsMovements(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`select coalesce\(sum`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("18"))

	repo := NewRepo(db)
	level, err := repo.StockLevel(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(18).Equal(level))
	assert.NoError(t, mock.ExpectationsWereMet())
}

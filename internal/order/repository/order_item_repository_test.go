package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
)

func TestNewMySQLOrderItemRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLOrderItemRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestOrderItemRepository_InsertBatch(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOrderItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO order_items \\(order_id, item_id, quantity\\) VALUES \\(\\?, \\?, \\?\\), \\(\\?, \\?, \\?\\)").
		WithArgs(uint64(7), uint64(1), 2, uint64(7), uint64(2), 1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.InsertBatch(context.Background(), tx, 7, []domain.OrderLineItem{
		{ItemID: 1, Quantity: 2},
		{ItemID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepository_InsertBatch_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOrderItemRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	assert.NoError(t, repo.InsertBatch(context.Background(), tx, 7, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderItemRepository_InsertBatch_Error(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMySQLOrderItemRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO order_items").WillReturnError(errors.New("foreign key constraint fails"))

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.InsertBatch(context.Background(), tx, 7, []domain.OrderLineItem{{ItemID: 99, Quantity: 1}})
	assert.ErrorContains(t, err, "inserting order items")
}

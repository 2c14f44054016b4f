package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySchema_RunsEveryStatementInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, stmt := range schema {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, applySchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(schema[0]).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(schema[1]).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = applySchema(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema statement 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPromoteAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE profiles SET is_admin").WithArgs("owner@emberandwick.in").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE profiles SET is_admin").WithArgs("nobody@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, promoteAdmin(context.Background(), db, "owner@emberandwick.in"))
	assert.Error(t, promoteAdmin(context.Background(), db, "nobody@example.com"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSampleCart(t *testing.T) {
	c := sampleCart()
	require.Len(t, c.Items(), 2)
	assert.Equal(t, "999", c.Subtotal().String())
}

func TestSchema_OrderTimestampsAreTimestamptz(t *testing.T) {
	var orders string
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS orders (") {
			orders = stmt
		}
	}
	require.NotEmpty(t, orders)
	assert.Contains(t, orders, "created_at TIMESTAMPTZ")
	assert.Contains(t, orders, "updated_at TIMESTAMPTZ")
}

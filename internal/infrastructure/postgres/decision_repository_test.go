package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockout-agent/internal/domain"
	"github.com/jhoicas/stockout-agent/internal/domain/entity"
)

// fakeQuerier registra las sentencias ejecutadas; no hay base de datos detrás.
type fakeQuerier struct {
	execs   []string
	args    [][]any
	execErr error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	f.args = append(f.args, args)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestEnsureSchema_SentenciasSeparadas(t *testing.T) {
	q := &fakeQuerier{}
	require.NoError(t, EnsureSchema(context.Background(), q))

	require.Len(t, q.execs, 2)
	assert.Contains(t, q.execs[0], "CREATE TABLE IF NOT EXISTS decisions")
	assert.Contains(t, q.execs[1], "CREATE INDEX IF NOT EXISTS idx_decisions_product")
}

func TestAppend_ParametrosConCentinela(t *testing.T) {
	q := &fakeQuerier{}
	d := entity.Decision{
		ProductID: "P004", ProductName: "Product D", Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ObservedStock: 40, DailyDemand: 0, DaysOfStock: entity.Unbounded(), LeadTimeDays: 3,
		RiskFactor: entity.Bounded(0), RiskLevel: entity.RiskLow, Action: entity.ActionNoAction,
	}
	require.NoError(t, NewDecisionRepository(q).Append(context.Background(), d))

	require.Len(t, q.args, 1)
	args := q.args[0]
	assert.Equal(t, "P004", args[0])
	assert.True(t, decimal.Zero.Equal(args[4].(decimal.Decimal)))
	assert.Equal(t, entity.UnboundedSentinel, args[5])
	assert.Equal(t, "Low", args[8])
}

func TestAppend_ErroresSonDePersistencia(t *testing.T) {
	q := &fakeQuerier{execErr: &pgconn.PgError{Code: "23514", Message: "reorder_qty_check"}}
	err := NewDecisionRepository(q).Append(context.Background(), entity.Decision{ProductID: "P1"})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "decisión inválida")

	q.execErr = errors.New("conexión cerrada")
	err = NewDecisionRepository(q).Append(context.Background(), entity.Decision{ProductID: "P1"})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestLoadAll_ErrorDeConsulta(t *testing.T) {
	_, err := NewDecisionRepository(&fakeQuerier{}).LoadAll(context.Background())
	assert.ErrorIs(t, err, domain.ErrDeserialization)
}

func TestIsCheckViolation(t *testing.T) {
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isCheckViolation(errors.New("otro")))
}

package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		retryable bool
		expose    bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, expose: true, detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, expose: true},
		{code: CodeForbidden, status: http.StatusForbidden, expose: true},
		{code: CodeNotFound, status: http.StatusNotFound, expose: true},
		{code: CodeConflict, status: http.StatusConflict, expose: true},
		{code: CodeIdempotency, status: http.StatusConflict, expose: true, detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, retryable: true, expose: true},
		{code: CodeInternal, status: http.StatusInternalServerError, retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.retryable, meta.Retryable)
			assert.Equal(t, tt.expose, meta.ExposeMessage)
			assert.Equal(t, tt.detailsOK, meta.DetailsAllowed)
			assert.NotEmpty(t, meta.PublicMessage)
		})
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, MetadataFor("SOMETHING_UNKNOWN").HTTPStatus)
}

func TestErrorRendersCodeAndMessage(t *testing.T) {
	err := Newf(CodeNotFound, "order %s not found", "ORD-20260310-0001")
	assert.Equal(t, "NOT_FOUND: order ORD-20260310-0001 not found", err.Error())
	assert.Nil(t, err.Details())
}

func TestWithDetailsLeavesReceiverUntouched(t *testing.T) {
	base := New(CodeValidation, "missing quantity")
	detailed := base.WithDetails(map[string]any{"field": "quantity"})

	assert.Nil(t, base.Details())
	assert.Equal(t, map[string]any{"field": "quantity"}, detailed.Details())
	assert.Equal(t, base.Message(), detailed.Message())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "insert order")

	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, CodeConflict, wrapped.Code())
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load: %w", New(CodeNotFound, "product not found"))

	assert.True(t, stdErrors.Is(err, New(CodeNotFound, "")))
	assert.False(t, stdErrors.Is(err, New(CodeConflict, "")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "invalid status transition", New(CodeConflict, "invalid status transition").PublicMessage())
	assert.Equal(t, "internal server error", New(CodeInternal, "db exploded at 10.0.0.3").PublicMessage())
	assert.Equal(t, "resource not found", New(CodeNotFound, "").PublicMessage())
}

func TestAsReturnsTypedError(t *testing.T) {
	got := As(New(CodeForbidden, "no entry"))
	require.NotNil(t, got)
	assert.Equal(t, CodeForbidden, got.Code())
	assert.Nil(t, As(nil))
	assert.Nil(t, As(stdErrors.New("plain")))
}

func TestCodeOfAndIsCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(CodeNotFound, "order not found"))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeConflict))
	assert.Equal(t, CodeInternal, CodeOf(stdErrors.New("plain")))
}

func TestDumpExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "orders_order_number_key",
		TableName:      "orders",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, pgErr, "insert order")

	dump := Dump(err)
	require.Equal(t, CodeConflict, dump.Code)
	assert.Equal(t, "23505", dump.PGCode)
	assert.Equal(t, "orders_order_number_key", dump.PGConstraint)
	assert.Equal(t, "orders", dump.PGTable)
	assert.Len(t, dump.Chain, 2)
}

func TestDumpLogFieldsOmitPostgresKeysForPlainErrors(t *testing.T) {
	fields := Dump(New(CodeNotFound, "order not found")).LogFields()
	assert.Equal(t, CodeNotFound, fields["error_code"])
	assert.NotContains(t, fields, "pg_code")

	fields = Dump(Wrap(CodeConflict, &pgconn.PgError{Code: "23505"}, "insert")).LogFields()
	assert.Equal(t, "23505", fields["pg_code"])
}

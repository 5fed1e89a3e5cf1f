package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify_NilPassesThrough(t *testing.T) {
	assert.Nil(t, Classify(nil, "noop"))
}

func TestClassify_AlreadyClassifiedIsUntouched(t *testing.T) {
	original := Conflict(ReviewAlreadyExists, "you already reviewed this product")

	classified := Classify(fmt.Errorf("create review: %w", original), "create review")

	assert.Same(t, original, classified)
}

func TestClassify_RecordNotFound(t *testing.T) {
	classified := Classify(gorm.ErrRecordNotFound, "load product")

	assert.Equal(t, KindNotFound, classified.Kind)
	assert.Equal(t, ResourceNotFound, classified.Code)
	assert.True(t, errors.Is(classified, gorm.ErrRecordNotFound))
}

func TestClassify_PostgresCodes(t *testing.T) {
	tests := []struct {
		name     string
		pgCode   string
		wantKind Kind
		wantCode string
	}{
		{"unique violation", pgUniqueViolation, KindConflict, ResourceAlreadyExists},
		{"foreign key violation", pgForeignKeyViolation, KindNotFound, ResourceNotFound},
		{"check violation", pgCheckViolation, KindValidation, ValidationInvalidInput},
		{"not null violation", pgNotNullViolation, KindValidation, ValidationInvalidInput},
		{"serialization failure", pgSerializationFail, KindTransient, InternalTransient},
		{"deadlock", pgDeadlockDetected, KindTransient, InternalTransient},
		{"lock not available", pgLockNotAvailable, KindTransient, InternalTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(&pgconn.PgError{Code: tt.pgCode}, "checkout")

			assert.Equal(t, tt.wantKind, classified.Kind)
			assert.Equal(t, tt.wantCode, classified.Code)
		})
	}
}

func TestClassify_SQLiteMessages(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		wantKind Kind
	}{
		{"unique", "UNIQUE constraint failed: reviews.user_id, reviews.product_id", KindConflict},
		{"foreign key", "FOREIGN KEY constraint failed", KindNotFound},
		{"check", "CHECK constraint failed: chk_reviews_rating", KindValidation},
		{"busy", "database is locked", KindTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(errors.New(tt.message), "create review")

			assert.Equal(t, tt.wantKind, classified.Kind)
		})
	}
}

func TestClassify_UnknownFallsBackToInternal(t *testing.T) {
	classified := Classify(errors.New("connection reset by peer"), "list orders")

	assert.Equal(t, KindInternal, classified.Kind)
	assert.Equal(t, InternalDatabaseError, classified.Code)
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound(OrderNotFound, "order not found"))

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}

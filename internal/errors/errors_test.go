package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{
			name:     "not found error type",
			errType:  ErrTypeNotFound,
			expected: "NOT_FOUND",
		},
		{
			name:     "read error type",
			errType:  ErrTypeRead,
			expected: "READ",
		},
		{
			name:     "schema error type",
			errType:  ErrTypeSchema,
			expected: "SCHEMA",
		},
		{
			name:     "no valid data error type",
			errType:  ErrTypeNoValidData,
			expected: "NO_VALID_DATA",
		},
		{
			name:     "config error type",
			errType:  ErrTypeConfig,
			expected: "CONFIG",
		},
		{
			name:     "export error type",
			errType:  ErrTypeExport,
			expected: "EXPORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeNoValidData,
				Message: "no valid rows remain after cleaning",
				Cause:   nil,
			},
			wantMessage: "[NO_VALID_DATA] no valid rows remain after cleaning",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeRead,
				Message: "failed to read CSV file: sales.csv",
				Cause:   fmt.Errorf("unexpected EOF"),
			},
			wantMessage: "[READ] failed to read CSV file: sales.csv: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewReadError("sales.csv", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewConfigError("invalid configuration", nil).
		WithContext("field", "output_dir").
		WithContext("value", "")

	require.NotNil(t, err.Context)
	assert.Equal(t, "output_dir", err.Context["field"])
	assert.Equal(t, "", err.Context["value"])
}

func TestNewSchemaError_SortsMissingColumns(t *testing.T) {
	tests := []struct {
		name        string
		missing     []string
		wantMessage string
	}{
		{
			name:        "single missing column",
			missing:     []string{"price"},
			wantMessage: "[SCHEMA] missing required columns: price",
		},
		{
			name:        "multiple columns sorted",
			missing:     []string{"quantity", "date", "price"},
			wantMessage: "[SCHEMA] missing required columns: date, price, quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSchemaError(tt.missing)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestNewSchemaError_DoesNotMutateInput(t *testing.T) {
	missing := []string{"quantity", "date"}
	_ = NewSchemaError(missing)
	assert.Equal(t, []string{"quantity", "date"}, missing)
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		expected  bool
	}{
		{
			name:      "not found error matches",
			err:       NewNotFoundError("missing.csv"),
			predicate: IsNotFoundError,
			expected:  true,
		},
		{
			name:      "read error matches",
			err:       NewReadError("bad.csv", errors.New("parse failure")),
			predicate: IsReadError,
			expected:  true,
		},
		{
			name:      "schema error matches",
			err:       NewSchemaError([]string{"price"}),
			predicate: IsSchemaError,
			expected:  true,
		},
		{
			name:      "no valid data error matches",
			err:       NewNoValidDataError(10),
			predicate: IsNoValidDataError,
			expected:  true,
		},
		{
			name:      "config error matches",
			err:       NewConfigError("bad config", nil),
			predicate: IsConfigError,
			expected:  true,
		},
		{
			name:      "export error matches",
			err:       NewExportError("report.xlsx", errors.New("disk full")),
			predicate: IsExportError,
			expected:  true,
		},
		{
			name:      "wrong type does not match",
			err:       NewNotFoundError("missing.csv"),
			predicate: IsSchemaError,
			expected:  false,
		},
		{
			name:      "plain error does not match",
			err:       errors.New("plain"),
			predicate: IsNotFoundError,
			expected:  false,
		},
		{
			name:      "nil error does not match",
			err:       nil,
			predicate: IsReadError,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.predicate(tt.err))
		})
	}
}

func TestTypePredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("cleaning stage: %w", NewNoValidDataError(3))
	assert.True(t, IsNoValidDataError(err))
	assert.False(t, IsSchemaError(err))
}

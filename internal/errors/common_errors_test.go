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
		{name: "input missing", errType: ErrTypeInputMissing, expected: "INPUT_MISSING"},
		{name: "schema", errType: ErrTypeSchema, expected: "SCHEMA"},
		{name: "insufficient data", errType: ErrTypeInsufficientData, expected: "INSUFFICIENT_DATA"},
		{name: "export", errType: ErrTypeExport, expected: "EXPORT"},
		{name: "parsing", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
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
				Type:    ErrTypeSchema,
				Message: "missing required columns: hdi",
			},
			wantMessage: "[SCHEMA] missing required columns: hdi",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeExport,
				Message: "failed to export hdi_top10.csv",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[EXPORT] failed to export hdi_top10.csv: disk full",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeConfig,
			},
			wantMessage: "[CONFIG] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewStorageError("cannot create output directory", cause)

	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, NewAppError(ErrTypeSchema, "x", nil).Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	appError := &AppError{Type: ErrTypeParsing, Message: "bad cell"}

	result := appError.WithContext("row", 12)

	assert.Same(t, appError, result)
	require.Contains(t, result.Context, "row")
	assert.Equal(t, 12, result.Context["row"])
}

func TestAppError_Is(t *testing.T) {
	err := fmt.Errorf("load table: %w", NewSchemaError([]string{"hdi"}))

	assert.True(t, errors.Is(err, &AppError{Type: ErrTypeSchema}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrTypeInputMissing}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrTypeSchema, Message: "other"}))
}

func TestIsType(t *testing.T) {
	inner := NewParsingError("invalid year", errors.New("strconv"))
	outer := NewExportError("hdi.db", inner)
	wrapped := fmt.Errorf("run: %w", outer)

	assert.True(t, IsType(wrapped, ErrTypeExport))
	assert.True(t, IsType(wrapped, ErrTypeParsing))
	assert.False(t, IsType(wrapped, ErrTypeSchema))
	assert.False(t, IsType(errors.New("plain"), ErrTypeExport))
	assert.False(t, IsType(nil, ErrTypeExport))

	assert.Equal(t, ErrTypeExport, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}

func TestNewSchemaError(t *testing.T) {
	missing := []string{"year", "hdi"}
	err := NewSchemaError(missing)

	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Equal(t, "missing required columns: hdi, year", err.Message)
	assert.Equal(t, []string{"hdi", "year"}, err.Context["missing_columns"])
	// Caller's slice is left untouched
	assert.Equal(t, []string{"year", "hdi"}, missing)
}

func TestNewInputMissingError(t *testing.T) {
	err := NewInputMissingError("data/raw", []string{".csv", ".xlsx"})

	assert.Equal(t, ErrTypeInputMissing, err.Type)
	assert.Contains(t, err.Error(), ".csv|.xlsx")
	assert.Equal(t, "data/raw", err.Context["directory"])
}

func TestNewInsufficientDataError(t *testing.T) {
	err := NewInsufficientDataError("education_income_correlation", 1)

	assert.Equal(t, ErrTypeInsufficientData, err.Type)
	assert.Equal(t, "education_income_correlation", err.Context["statistic"])
	assert.Equal(t, 1, err.Context["observations"])
}

func TestNewExportError(t *testing.T) {
	cause := errors.New("read-only file system")
	err := NewExportError("hdi_by_state.csv", cause)

	assert.Equal(t, ErrTypeExport, err.Type)
	assert.Equal(t, "hdi_by_state.csv", err.Context["output"])
	assert.ErrorIs(t, err, cause)
}

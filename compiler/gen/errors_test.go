package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"schema error on column",
			NewSchemaError("order_item", "order_id", "duplicate field", errors.New("underlying error")),
			"pogen: table order_item, column order_id: duplicate field: underlying error",
		},
		{
			"schema error on table",
			NewSchemaError("users", "", "empty type name", nil),
			"pogen: table users: empty type name",
		},
		{
			"config error with value",
			NewConfigError("Workers", -1, "must be positive"),
			`pogen: invalid Workers "-1": must be positive`,
		},
		{
			"config error without value",
			NewConfigError("Package", nil, "cannot be empty"),
			"pogen: invalid Package: cannot be empty",
		},
		{
			"generation error",
			NewGenerationError("write", "model/UserPO.go", "write file", errors.New("disk full")),
			"pogen: write model/UserPO.go: write file: disk full",
		},
		{
			"generation error without file",
			NewGenerationError("render", "", "", errors.New("boom")),
			"pogen: render: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}
}

func TestSchemaError(t *testing.T) {
	cause := errors.New("root cause")
	err := NewSchemaError("users", "", "", cause)
	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrInvalidSchema)
	assert.NotErrorIs(t, err, ErrGenerationFailed)

	assert.True(t, IsSchemaError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsSchemaError(errors.New("other")))
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("Target", nil, "missing")
	assert.ErrorIs(t, err, ErrMissingConfig)
	assert.True(t, IsConfigError(err))
	assert.False(t, IsConfigError(errors.New("other")))
}

func TestGenerationError(t *testing.T) {
	cause := errors.New("denied")
	err := NewGenerationError("remove", "x.go", "", cause)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidSchema)
	assert.True(t, IsGenerationError(err))
	assert.False(t, IsGenerationError(cause))
}

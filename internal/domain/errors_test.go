package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("s.repo.Issue -> %w", ErrDuplicateInvitee)

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, ErrDuplicateInvitee))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestKindOf_Unexpected(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestInsufficientStock(t *testing.T) {
	err := InsufficientStock(7, 3)

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, uint(7), err.Details["item_id"])
	assert.Equal(t, 3, err.Details["requested"])
	assert.Nil(t, ErrInsufficientStock.Details)
}

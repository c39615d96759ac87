package request

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCodeRequest_Validate(t *testing.T) {
	valid := []string{"alice", "@Alice", "a.b_c", "user_1", "x", "abcdefghijklmnopqrstuvwxyz0123"}
	for _, username := range valid {
		req := RequestCodeRequest{Username: username}
		assert.NoError(t, req.Validate(), username)
	}

	invalid := []string{"", " ", ".alice", "alice.", "al..ice", "al ice", "alice-b", "abcdefghijklmnopqrstuvwxyz01234"}
	for _, username := range invalid {
		req := RequestCodeRequest{Username: username}
		assert.Error(t, req.Validate(), username)
	}
}

func TestVerifyCodeRequest_Validate(t *testing.T) {
	req := VerifyCodeRequest{Username: "@Bob", Code: "0042"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "bob", req.Username)

	for _, code := range []string{"", "123", "123456789", "12a4"} {
		req := VerifyCodeRequest{Username: "bob", Code: code}
		assert.Error(t, req.Validate(), code)
	}
}

func TestSaleRequest(t *testing.T) {
	req := SaleRequest{Items: []SaleLine{{ItemID: 1, Quantity: 2}, {ItemID: 2, Quantity: 1}, {ItemID: 1, Quantity: 3}}}
	require.NoError(t, req.Validate())
	assert.Equal(t, map[uint]int{1: 5, 2: 1}, req.Quantities())

	bad := decimal.NewFromInt(-1)
	req.DiscountPercent = &bad
	assert.Error(t, req.Validate())

	req = SaleRequest{Items: []SaleLine{{ItemID: 1, Quantity: 0}}}
	assert.Error(t, req.Validate())
}

func TestConfirmPaymentRequest_DefaultsToPaid(t *testing.T) {
	req := ConfirmPaymentRequest{Code: "abc"}
	require.NoError(t, req.Validate())
	require.NotNil(t, req.Paid)
	assert.True(t, *req.Paid)
}

func TestRoleRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RoleRequest{Role: "bartender"}).Validate())
	assert.Error(t, (&RoleRequest{Role: "superuser"}).Validate())
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParseRole("superuser")
	require.Error(t, err)
	assert.Equal(t, KindInvalid, KindOf(err))
}

func TestRole_Can(t *testing.T) {
	all := []Capability{
		CapUnlimitedInvites, CapBypassCapacity, CapAdmin, CapVerifyTickets, CapConfirmPayment,
		CapSellBar, CapHandleIncidents, CapAssignIncidents, CapSpecialAdmission,
	}

	want := map[Role]map[Capability]bool{
		RoleGuest: {},
		RoleAdmin: {
			CapUnlimitedInvites: true, CapBypassCapacity: true, CapAdmin: true, CapVerifyTickets: true,
			CapConfirmPayment: true, CapSellBar: true, CapHandleIncidents: true, CapSpecialAdmission: true,
		},
		RoleStaff:           {CapBypassCapacity: true, CapSpecialAdmission: true},
		RoleTicketInspector: {CapVerifyTickets: true, CapConfirmPayment: true},
		RoleSecurity:        {CapHandleIncidents: true, CapAssignIncidents: true, CapSpecialAdmission: true},
		RoleBartender:       {CapSellBar: true},
	}
	require.Len(t, want, len(Roles))

	for _, role := range Roles {
		for _, c := range all {
			t.Run(string(role)+"/"+c.String(), func(t *testing.T) {
				assert.Equal(t, want[role][c], role.Can(c))
			})
		}
	}

	assert.False(t, Role("unknown").Can(CapAdmin))
}

func TestNormalizeHandle(t *testing.T) {
	assert.Equal(t, "alice", NormalizeHandle(" @Alice "))
	assert.Equal(t, "bob.smith", NormalizeHandle("bob.smith"))
	assert.Equal(t, "", NormalizeHandle("  "))
}

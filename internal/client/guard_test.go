package client

import (
	"testing"

	"nearest-blood-locator/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func identityWith(role entity.Role) *Identity {
	return &Identity{Username: "user", Role: role}
}

func TestAccessGuard(t *testing.T) {
	tests := []struct {
		name     string
		session  staticSession
		view     View
		required []entity.Role
		want     Decision
	}{
		{"loading", staticSession{loading: true}, ViewDonorDashboard, []entity.Role{entity.RoleDonor}, Pending()},
		{"anonymous", staticSession{}, ViewDonorDashboard, []entity.Role{entity.RoleDonor}, Redirect(ViewLogin)},
		{"right role", staticSession{identity: identityWith(entity.RoleDonor)}, ViewDonorDashboard, []entity.Role{entity.RoleDonor}, Render()},
		{"bank on donor view", staticSession{identity: identityWith(entity.RoleBank)}, ViewDonorDashboard, []entity.Role{entity.RoleDonor}, Redirect(ViewBankDashboard)},
		{"recipient on bank view", staticSession{identity: identityWith(entity.RoleRecipient)}, ViewBankDashboard, []entity.Role{entity.RoleBank}, Redirect(ViewRecipientDashboard)},
		{"donor on recipient view", staticSession{identity: identityWith(entity.RoleDonor)}, ViewRecipientDashboard, []entity.Role{entity.RoleRecipient}, Redirect(ViewDonorDashboard)},
		{"any signed in", staticSession{identity: identityWith(entity.RoleRecipient)}, ViewSearch, nil, Render()},
		{"one of several", staticSession{identity: identityWith(entity.RoleBank)}, ViewDonors, []entity.Role{entity.RoleRecipient, entity.RoleBank}, Render()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAccessGuard(tt.session).Guard(tt.view, tt.required...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleRouter(t *testing.T) {
	assert.Equal(t, Pending(), NewRoleRouter(staticSession{loading: true}).Route())
	assert.Equal(t, Redirect(ViewLogin), NewRoleRouter(staticSession{}).Route())

	for role, view := range map[entity.Role]View{
		entity.RoleDonor:     ViewDonorDashboard,
		entity.RoleBank:      ViewBankDashboard,
		entity.RoleRecipient: ViewRecipientDashboard,
	} {
		got := NewRoleRouter(staticSession{identity: identityWith(role)}).Route()
		assert.Equal(t, Redirect(view), got, role)
	}
}

func TestDashboardFor_UnknownRoleGoesToLogin(t *testing.T) {
	assert.Equal(t, ViewLogin, DashboardFor(""))
	assert.Equal(t, ViewLogin, DashboardFor("admin"))
}

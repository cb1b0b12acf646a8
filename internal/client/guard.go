package client

import "nearest-blood-locator/internal/domain/entity"

// View is a client destination.
type View string

const (
	ViewLogin              View = "/login"
	ViewDashboard          View = "/dashboard"
	ViewDonorDashboard     View = "/donor-dashboard"
	ViewBankDashboard      View = "/bloodbank-dashboard"
	ViewRecipientDashboard View = "/recipient-dashboard"
	ViewSearch             View = "/search"
	ViewDonors             View = "/donors"
)

type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeRender
	OutcomeRedirect
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeRender:
		return "render"
	case OutcomeRedirect:
		return "redirect"
	}
	return "unknown"
}

// Decision is the result of guarding or routing. Target is set only for redirects.
type Decision struct {
	Outcome Outcome
	Target  View
}

func Pending() Decision             { return Decision{Outcome: OutcomePending} }
func Render() Decision              { return Decision{Outcome: OutcomeRender} }
func Redirect(target View) Decision { return Decision{Outcome: OutcomeRedirect, Target: target} }

// SessionReader is the read side of Session.
type SessionReader interface {
	Loading() bool
	Identity() (Identity, bool)
}

// DashboardFor maps a role to its own dashboard. Roles outside the closed set
// cannot reach a dashboard and go back to login.
func DashboardFor(role entity.Role) View {
	switch role {
	case entity.RoleBank:
		return ViewBankDashboard
	case entity.RoleRecipient:
		return ViewRecipientDashboard
	case entity.RoleDonor:
		return ViewDonorDashboard
	}
	return ViewLogin
}

type AccessGuard struct {
	session SessionReader
}

func NewAccessGuard(session SessionReader) *AccessGuard {
	return &AccessGuard{session: session}
}

// Guard decides whether view may render. A caller with the wrong role is sent
// to their own dashboard, never to an error.
func (g *AccessGuard) Guard(view View, required ...entity.Role) Decision {
	if g.session.Loading() {
		return Pending()
	}
	identity, ok := g.session.Identity()
	if !ok {
		return Redirect(ViewLogin)
	}
	if len(required) == 0 {
		return Render()
	}
	for _, role := range required {
		if identity.Role == role {
			return Render()
		}
	}
	return Redirect(DashboardFor(identity.Role))
}

type RoleRouter struct {
	session SessionReader
}

func NewRoleRouter(session SessionReader) *RoleRouter {
	return &RoleRouter{session: session}
}

// Route resolves the generic dashboard entry to the caller's role dashboard.
func (r *RoleRouter) Route() Decision {
	if r.session.Loading() {
		return Pending()
	}
	identity, ok := r.session.Identity()
	if !ok {
		return Redirect(ViewLogin)
	}
	return Redirect(DashboardFor(identity.Role))
}

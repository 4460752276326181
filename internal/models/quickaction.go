package models

// QuickAction is a role-specific shortcut the widget renders above the
// composer. Tapping one pre-fills its label as the outgoing message.
type QuickAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var quickActionsByRole = map[Role][]QuickAction{
	RoleStudent: {
		{ID: "visa_status", Label: "Check my visa status", Icon: "passport"},
		{ID: "reservations", Label: "My reservation status", Icon: "calendar"},
		{ID: "payments", Label: "Payment history", Icon: "credit-card"},
		{ID: "find_tutor", Label: "Find a tutor", Icon: "book"},
	},
	RoleAgent: {
		{ID: "commissions", Label: "Commission overview", Icon: "percent"},
		{ID: "pipeline", Label: "My student pipeline", Icon: "users"},
		{ID: "reservations", Label: "Client reservations", Icon: "calendar"},
	},
	RoleTutor: {
		{ID: "sessions", Label: "Upcoming sessions", Icon: "clock"},
		{ID: "payouts", Label: "Payout schedule", Icon: "credit-card"},
		{ID: "profile", Label: "Update my tutor profile", Icon: "user"},
	},
	RoleVendor: {
		{ID: "orders", Label: "Open orders", Icon: "package"},
		{ID: "listings", Label: "Manage listings", Icon: "list"},
		{ID: "payouts", Label: "Payout schedule", Icon: "credit-card"},
	},
}

// QuickActionsFor returns the shortcut list for a role. Unknown or staff
// roles fall back to the student set.
func QuickActionsFor(role Role) []QuickAction {
	if qa, ok := quickActionsByRole[role]; ok {
		return qa
	}
	return quickActionsByRole[RoleStudent]
}

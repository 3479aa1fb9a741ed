package model

// Capability is an explicit permission passed by the caller into core
// operations that mutate shared state.  The core never inspects ambient
// identity or token claims; the HTTP layer translates the caller's role
// into capabilities and hands them in as plain values.
type Capability string

const (
	// CapManageScreenings allows scheduling and cancelling screenings.
	CapManageScreenings Capability = "screenings:manage"
	// CapRedeemTickets allows marking tickets as used at the door.
	CapRedeemTickets Capability = "tickets:redeem"
)

// Has reports whether the capability set contains the wanted capability.
func Has(caps []Capability, want Capability) bool {
	for _, c := range caps {
		if c == want {
			return true
		}
	}
	return false
}

package invite

import "time"

// Invite is a single-use friendship invitation. The code doubles as the
// document ID and as the redemption capability: whoever holds it may redeem.
type Invite struct {
	Code        string    `json:"code" firestore:"code"`
	InviterID   string    `json:"inviterId" firestore:"inviterId"`
	InviterName string    `json:"inviterName" firestore:"inviterName"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// Expired reports whether the invite's window has passed. Expiry is a
// wall-clock comparison at read time; the store does not enforce it.
func (i Invite) Expired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

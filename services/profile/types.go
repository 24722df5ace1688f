package profile

import "time"

type Profile struct {
	UID           string    `json:"uid" firestore:"uid"`
	Email         *string   `json:"email" firestore:"email"`
	DisplayName   *string   `json:"displayName" firestore:"displayName"`
	PhotoURL      *string   `json:"photoUrl" firestore:"photoUrl"`
	ChildNickname *string   `json:"childNickname" firestore:"childNickname"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}

// Update carries the mutable profile fields. Nil means leave unchanged.
type Update struct {
	DisplayName   *string
	PhotoURL      *string
	ChildNickname *string
}

package friend

// Friend is one directional edge of a friendship: a denormalized snapshot
// of the other party stored under the owner's friends subcollection. A
// friendship exists only when both directions are present.
type Friend struct {
	UID         string  `json:"uid" firestore:"uid"`
	DisplayName *string `json:"displayName" firestore:"displayName"`
	PhotoURL    *string `json:"photoUrl" firestore:"photoUrl"`
}

package activity

import "time"

// Participant is a membership entry on an activity. Display data is a
// snapshot from join time, not a live profile reference.
type Participant struct {
	UID      string  `json:"uid" firestore:"uid"`
	Name     string  `json:"name" firestore:"name"`
	PhotoURL *string `json:"photoUrl" firestore:"photoUrl"`
}

type Activity struct {
	ID              string        `json:"id" firestore:"id"`
	Title           string        `json:"title" firestore:"title"`
	Date            time.Time     `json:"date" firestore:"date"`
	Location        *string       `json:"location" firestore:"location"`
	CreatorID       string        `json:"creatorId" firestore:"creatorId"`
	CreatorName     string        `json:"creatorName" firestore:"creatorName"`
	CreatorPhotoURL *string       `json:"creatorPhotoUrl" firestore:"creatorPhotoUrl"`
	Participants    []Participant `json:"participants" firestore:"participants"`
	// ParticipantIDs mirrors Participants by uid so membership queries can
	// use array-contains; keep the two in sync on every write.
	ParticipantIDs []string  `json:"participantIds" firestore:"participantIds"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}

type NewActivity struct {
	Title           string
	Date            time.Time
	Location        *string
	CreatorID       string
	CreatorName     string
	CreatorPhotoURL *string
}

// Patch carries the creator-mutable fields. Nil means leave unchanged;
// an empty Location clears it.
type Patch struct {
	Title    *string
	Date     *time.Time
	Location *string
}

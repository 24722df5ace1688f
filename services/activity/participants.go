package activity

// Membership is keyed by uid alone. Name and photo are display payload, so
// a participant whose display data drifted between join and leave still
// matches their original entry.

// addParticipant appends p unless a participant with the same uid is
// already present. Returns the resulting list and whether it changed.
func addParticipant(participants []Participant, p Participant) ([]Participant, bool) {
	for _, existing := range participants {
		if existing.UID == p.UID {
			return participants, false
		}
	}
	return append(participants, p), true
}

// removeParticipant drops the entry matching uid, if any. The creator's
// entry is never dropped; the creator exits only by deleting the whole
// activity.
func removeParticipant(participants []Participant, uid string, creatorID string) ([]Participant, bool) {
	if uid == creatorID {
		return participants, false
	}
	for i, existing := range participants {
		if existing.UID == uid {
			result := make([]Participant, 0, len(participants)-1)
			result = append(result, participants[:i]...)
			result = append(result, participants[i+1:]...)
			return result, true
		}
	}
	return participants, false
}

func participantIDs(participants []Participant) []string {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.UID
	}
	return ids
}

package activity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Service interface {
	// Create stores a new activity with the creator as its only
	// participant and returns the stored record.
	Create(ctx context.Context, data NewActivity) (*Activity, error)
	Get(ctx context.Context, id string) (*Activity, error)
	// Update patches title, date and location. Creator-only enforcement is
	// the caller's responsibility; identity is not re-checked here.
	Update(ctx context.Context, id string, patch Patch) error
	// Delete removes the activity. Deleting an absent id is success.
	Delete(ctx context.Context, id string) error
	// Join adds the participant unless their uid is already a member.
	Join(ctx context.Context, id string, p Participant) error
	// Leave removes the participant with the given uid. Absent uids and the
	// creator's own uid are no-ops; the creator exits only via Delete.
	Leave(ctx context.Context, id string, uid string) error
}

type service struct {
	db *firestore.Client
}

var _ Service = (*service)(nil)

const collection = "activities"

func NewService(db *firestore.Client) Service {
	return &service{
		db: db,
	}
}

var (
	NotFound = errors.New("activity not found")
	Invalid  = errors.New("invalid activity")
)

func (s *service) Create(ctx context.Context, data NewActivity) (*Activity, error) {
	if strings.TrimSpace(data.Title) == "" {
		return nil, fmt.Errorf("%w: title required", Invalid)
	}
	if data.Date.IsZero() {
		return nil, fmt.Errorf("%w: date required", Invalid)
	}
	if data.CreatorID == "" || data.CreatorName == "" {
		return nil, fmt.Errorf("%w: creator required", Invalid)
	}

	creator := Participant{
		UID:      data.CreatorID,
		Name:     data.CreatorName,
		PhotoURL: data.CreatorPhotoURL,
	}
	act := Activity{
		Title:           strings.TrimSpace(data.Title),
		Date:            data.Date,
		Location:        normalizeLocation(data.Location),
		CreatorID:       data.CreatorID,
		CreatorName:     data.CreatorName,
		CreatorPhotoURL: data.CreatorPhotoURL,
		Participants:    []Participant{creator},
		ParticipantIDs:  []string{creator.UID},
		CreatedAt:       time.Now(),
	}

	ref := s.db.Collection(collection).NewDoc()
	act.ID = ref.ID
	if _, err := ref.Set(ctx, act); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &act, nil
}

func (s *service) Get(ctx context.Context, id string) (*Activity, error) {
	doc, err := s.db.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NotFound
		}
		return nil, fmt.Errorf("failed to fetch activity %s: %w", id, err)
	}
	act := Activity{}
	if err := doc.DataTo(&act); err != nil {
		return nil, fmt.Errorf("failed to convert activity %s: %w", id, err)
	}
	return &act, nil
}

func (s *service) Update(ctx context.Context, id string, patch Patch) error {
	updates := make([]firestore.Update, 0, 3)
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return fmt.Errorf("%w: title required", Invalid)
		}
		updates = append(updates, firestore.Update{Path: "title", Value: title})
	}
	if patch.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: *patch.Date})
	}
	if patch.Location != nil {
		var value any
		if loc := normalizeLocation(patch.Location); loc != nil {
			value = *loc
		}
		updates = append(updates, firestore.Update{Path: "location", Value: value})
	}
	if len(updates) == 0 {
		return nil
	}
	_, err := s.db.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return NotFound
		}
		return fmt.Errorf("failed to update activity %s: %w", id, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete activity %s: %w", id, err)
	}
	return nil
}

func (s *service) Join(ctx context.Context, id string, p Participant) error {
	if p.UID == "" {
		return fmt.Errorf("%w: participant uid required", Invalid)
	}
	ref := s.db.Collection(collection).Doc(id)
	return s.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		act, err := getInTx(tx, ref)
		if err != nil {
			return err
		}
		updated, changed := addParticipant(act.Participants, p)
		if !changed {
			return nil
		}
		return tx.Update(ref, participantUpdates(updated))
	})
}

func (s *service) Leave(ctx context.Context, id string, uid string) error {
	ref := s.db.Collection(collection).Doc(id)
	return s.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		act, err := getInTx(tx, ref)
		if err != nil {
			return err
		}
		updated, changed := removeParticipant(act.Participants, uid, act.CreatorID)
		if !changed {
			return nil
		}
		return tx.Update(ref, participantUpdates(updated))
	})
}

func getInTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*Activity, error) {
	doc, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NotFound
		}
		return nil, fmt.Errorf("failed to fetch activity %s: %w", ref.ID, err)
	}
	act := Activity{}
	if err := doc.DataTo(&act); err != nil {
		return nil, fmt.Errorf("failed to convert activity %s: %w", ref.ID, err)
	}
	return &act, nil
}

func participantUpdates(participants []Participant) []firestore.Update {
	return []firestore.Update{
		{Path: "participants", Value: participants},
		{Path: "participantIds", Value: participantIDs(participants)},
	}
}

func normalizeLocation(location *string) *string {
	if location == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*location)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

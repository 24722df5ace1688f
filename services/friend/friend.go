package friend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gatherly/services/profile"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Service interface {
	// Add connects two users. Both directional edges are written in one
	// atomic batch; if only one side exists the missing side is completed.
	// Returns AlreadyFriends when both edges are already present.
	Add(ctx context.Context, userID string, friendID string) error
	// Remove deletes both directional edges. Removing an absent friendship
	// is defined as success.
	Remove(ctx context.Context, userID string, friendID string) error
	// List returns the user's friend snapshots ordered by display name
	// ascending. Friends without a display name sort last; ties break on uid.
	// Only the owner's own subcollection is read: an edge whose reverse side
	// is missing never surfaces to the other party, and the next Add between
	// the pair completes it.
	List(ctx context.Context, userID string) ([]Friend, error)
}

type service struct {
	db       *firestore.Client
	profiles profile.Service
}

var _ Service = (*service)(nil)

const (
	userCollection      = "users"
	friendSubCollection = "friends"
)

func NewService(db *firestore.Client, profiles profile.Service) Service {
	return &service{
		db:       db,
		profiles: profiles,
	}
}

var (
	SelfReference  = errors.New("cannot friend yourself")
	AlreadyFriends = errors.New("already friends")
)

func (s *service) edgeRef(ownerID, friendID string) *firestore.DocumentRef {
	return s.db.Collection(userCollection).Doc(ownerID).Collection(friendSubCollection).Doc(friendID)
}

func (s *service) Add(ctx context.Context, userID string, friendID string) error {
	if userID == friendID {
		return SelfReference
	}

	forward := s.edgeRef(userID, friendID)
	reverse := s.edgeRef(friendID, userID)

	hasForward, err := edgeExists(ctx, forward)
	if err != nil {
		return err
	}
	hasReverse, err := edgeExists(ctx, reverse)
	if err != nil {
		return err
	}
	if hasForward && hasReverse {
		return AlreadyFriends
	}

	// A single-sided pair is a repairable inconsistency, not a friendship:
	// only the missing sides are written, and both writes commit together.
	batch := s.db.Batch()
	if !hasForward {
		p, err := s.profiles.Get(ctx, friendID)
		if err != nil {
			return fmt.Errorf("failed to fetch profile %s: %w", friendID, err)
		}
		batch.Set(forward, snapshotOf(p))
	}
	if !hasReverse {
		p, err := s.profiles.Get(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to fetch profile %s: %w", userID, err)
		}
		batch.Set(reverse, snapshotOf(p))
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to write friend edges %s<->%s: %w", userID, friendID, err)
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID string, friendID string) error {
	batch := s.db.Batch()
	batch.Delete(s.edgeRef(userID, friendID))
	batch.Delete(s.edgeRef(friendID, userID))
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to remove friend edges %s<->%s: %w", userID, friendID, err)
	}
	return nil
}

func (s *service) List(ctx context.Context, userID string) ([]Friend, error) {
	iter := s.db.Collection(userCollection).
		Doc(userID).
		Collection(friendSubCollection).
		Documents(ctx)
	defer iter.Stop()

	friends := make([]Friend, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list friends for %s: %w", userID, err)
		}
		f := Friend{}
		if err := doc.DataTo(&f); err != nil {
			return nil, fmt.Errorf("failed to convert friend edge %s: %w", doc.Ref.ID, err)
		}
		friends = append(friends, f)
	}
	sortFriends(friends)
	return friends, nil
}

func edgeExists(ctx context.Context, ref *firestore.DocumentRef) (bool, error) {
	_, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to read friend edge %s: %w", ref.Path, err)
	}
	return true, nil
}

func snapshotOf(p *profile.Profile) Friend {
	return Friend{
		UID:         p.UID,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
	}
}

// sortFriends orders by display name ascending, case-insensitive. Missing
// display names sort after named ones; uid breaks ties so the order is
// stable across reads.
func sortFriends(friends []Friend) {
	sort.Slice(friends, func(i, j int) bool {
		a, b := friends[i], friends[j]
		switch {
		case a.DisplayName == nil && b.DisplayName == nil:
			return a.UID < b.UID
		case a.DisplayName == nil:
			return false
		case b.DisplayName == nil:
			return true
		}
		an := strings.ToLower(*a.DisplayName)
		bn := strings.ToLower(*b.DisplayName)
		if an == bn {
			return a.UID < b.UID
		}
		return an < bn
	})
}

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Service interface {
	// Get returns the profile stored for the given auth uid.
	Get(ctx context.Context, uid string) (*Profile, error)
	// Ensure creates the profile on first authentication if it does not
	// exist yet and returns the stored record either way. CreatedAt is
	// assigned here, never by the caller.
	Ensure(ctx context.Context, p Profile) (*Profile, error)
	Update(ctx context.Context, uid string, update Update) error
}

type service struct {
	db *firestore.Client
}

var _ Service = (*service)(nil)

const userCollection = "users"

func NewService(db *firestore.Client) Service {
	return &service{
		db: db,
	}
}

var NotFound = errors.New("profile not found")

func (s *service) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := s.db.Collection(userCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NotFound
		}
		return nil, fmt.Errorf("failed to fetch profile %s: %w", uid, err)
	}
	p := Profile{}
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to convert profile %s: %w", uid, err)
	}
	return &p, nil
}

func (s *service) Ensure(ctx context.Context, p Profile) (*Profile, error) {
	if p.UID == "" {
		return nil, errors.New("profile uid is empty")
	}
	p.CreatedAt = time.Now()

	ref := s.db.Collection(userCollection).Doc(p.UID)
	_, err := ref.Create(ctx, p)
	if err != nil {
		// A concurrent first-auth call already created it.
		if status.Code(err) == codes.AlreadyExists {
			return s.Get(ctx, p.UID)
		}
		return nil, fmt.Errorf("failed to create profile %s: %w", p.UID, err)
	}
	return &p, nil
}

func (s *service) Update(ctx context.Context, uid string, update Update) error {
	updates := make([]firestore.Update, 0, 3)
	if update.DisplayName != nil {
		updates = append(updates, firestore.Update{Path: "displayName", Value: *update.DisplayName})
	}
	if update.PhotoURL != nil {
		updates = append(updates, firestore.Update{Path: "photoUrl", Value: *update.PhotoURL})
	}
	if update.ChildNickname != nil {
		updates = append(updates, firestore.Update{Path: "childNickname", Value: *update.ChildNickname})
	}
	if len(updates) == 0 {
		return nil
	}
	_, err := s.db.Collection(userCollection).Doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return NotFound
		}
		return fmt.Errorf("failed to update profile %s: %w", uid, err)
	}
	return nil
}

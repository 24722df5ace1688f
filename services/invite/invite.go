package invite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gatherly/services/friend"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Service interface {
	Create(ctx context.Context, inviterID string, inviterName string) (*Invite, error)
	// Get returns the invite as stored. Expiry interpretation is left to
	// the caller; see Redeem for the consuming path.
	Get(ctx context.Context, code string) (*Invite, error)
	// Redeem consumes the invite and connects redeemer and inviter.
	// The invite is deleted whether or not the friendship already existed;
	// it is left intact on SelfRedemption and on infrastructure errors so
	// the redeemer can retry.
	Redeem(ctx context.Context, code string, redeemerID string) error
	// Delete removes the invite. Deleting an absent code is success.
	Delete(ctx context.Context, code string) error
}

type service struct {
	db      *firestore.Client
	friends friend.Service
	ttl     time.Duration
}

var _ Service = (*service)(nil)

const (
	collection = "invites"
	codeLength = 8
)

// DefaultTTL is the invitation validity window.
const DefaultTTL = 7 * 24 * time.Hour

func NewService(db *firestore.Client, friends friend.Service, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{
		db:      db,
		friends: friends,
		ttl:     ttl,
	}
}

var (
	NotFound       = errors.New("invite not found")
	Expired        = errors.New("invite expired")
	SelfRedemption = errors.New("cannot redeem your own invite")
)

// newCode slices a short code out of a dashless v4 UUID. Eight hex chars
// keep codes typeable at ~32 bits; a collision overwrites an open invite,
// which is an accepted risk at this scale.
func newCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:codeLength]
}

func (s *service) Create(ctx context.Context, inviterID string, inviterName string) (*Invite, error) {
	if inviterID == "" {
		return nil, errors.New("inviter id is empty")
	}
	now := time.Now()
	inv := Invite{
		Code:        newCode(),
		InviterID:   inviterID,
		InviterName: inviterName,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if _, err := s.db.Collection(collection).Doc(inv.Code).Set(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return &inv, nil
}

func (s *service) Get(ctx context.Context, code string) (*Invite, error) {
	doc, err := s.db.Collection(collection).Doc(code).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, NotFound
		}
		return nil, fmt.Errorf("failed to fetch invite %s: %w", code, err)
	}
	inv := Invite{}
	if err := doc.DataTo(&inv); err != nil {
		return nil, fmt.Errorf("failed to convert invite %s: %w", code, err)
	}
	return &inv, nil
}

// redeemOutcome decides how a fetched invite is handled for a redeemer:
// consume reports whether the record must be deleted, err is the outcome
// surfaced to the caller. A nil err means redemption proceeds to the
// friend-edge write.
func redeemOutcome(inv *Invite, redeemerID string, now time.Time) (consume bool, err error) {
	if inv.Expired(now) {
		return true, Expired
	}
	if redeemerID == inv.InviterID {
		return false, SelfRedemption
	}
	return true, nil
}

// friendAddBlocks reports whether the friend-edge result stops the invite
// from being consumed. AlreadyFriends does not: redemption is a consuming
// action even when the friendship pre-existed.
func friendAddBlocks(err error) bool {
	return err != nil && !errors.Is(err, friend.AlreadyFriends)
}

func (s *service) Redeem(ctx context.Context, code string, redeemerID string) error {
	inv, err := s.Get(ctx, code)
	if err != nil {
		return err
	}

	ref := s.db.Collection(collection).Doc(code)
	consume, outcome := redeemOutcome(inv, redeemerID, time.Now())
	if outcome != nil {
		if consume {
			if _, err := ref.Delete(ctx); err != nil {
				log.Warn().Err(err).Str("code", code).Msg("failed to clean up expired invite")
			}
		}
		return outcome
	}

	if err := s.friends.Add(ctx, redeemerID, inv.InviterID); friendAddBlocks(err) {
		return fmt.Errorf("failed to connect %s with inviter %s: %w", redeemerID, inv.InviterID, err)
	}

	// Redemption consumes the invite even when the friendship pre-existed.
	// The Exists precondition makes a double redemption lose here instead
	// of both racers succeeding.
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		switch status.Code(err) {
		case codes.NotFound, codes.FailedPrecondition:
			return NotFound
		}
		return fmt.Errorf("failed to consume invite %s: %w", inv.Code, err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	if _, err := s.db.Collection(collection).Doc(code).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete invite %s: %w", code, err)
	}
	return nil
}

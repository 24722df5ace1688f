package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gatherly/services/activity"
	"gatherly/services/friend"
	"gatherly/set"
	"gatherly/utils"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
)

// Feed is the merged view of upcoming activities relevant to a user.
// Warnings names the scopes that could not be loaded; when present the
// activity list is complete for every scope that did succeed.
type Feed struct {
	Activities []activity.Activity `json:"activities"`
	Warnings   []string            `json:"warnings,omitempty"`
}

type Service interface {
	// ForUser aggregates upcoming activities created by the user or their
	// friends, plus activities the user joined, deduplicated by id and
	// sorted ascending by date. Read-only.
	ForUser(ctx context.Context, uid string) (*Feed, error)
}

type service struct {
	db         *firestore.Client
	friends    friend.Service
	batchLimit int
}

var _ Service = (*service)(nil)

const activityCollection = "activities"

// DefaultBatchLimit is the maximum number of ids a single "in" query
// accepts; the backend rejects larger predicates.
const DefaultBatchLimit = 30

func NewService(db *firestore.Client, friends friend.Service, batchLimit int) Service {
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	return &service{
		db:         db,
		friends:    friends,
		batchLimit: batchLimit,
	}
}

func (s *service) ForUser(ctx context.Context, uid string) (*Feed, error) {
	now := time.Now()
	feed := &Feed{}

	// A friend-subsystem outage degrades the feed to the user's own
	// activities instead of failing it outright.
	people := set.FromSlice([]string{uid})
	friends, err := s.friends.List(ctx, uid)
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("friend list unavailable, degrading feed to self scope")
		feed.Warnings = append(feed.Warnings, "friend list unavailable; showing only your own activities")
	} else {
		for _, f := range friends {
			people.Add(f.UID)
		}
	}

	creatorIDs := people.ToSlice()
	sort.Strings(creatorIDs)

	results := make([]activity.Activity, 0)
	for _, batch := range chunkIDs(creatorIDs, s.batchLimit) {
		docs, err := s.db.Collection(activityCollection).
			Where("creatorId", "in", batch).
			Where("date", ">=", now).
			Documents(ctx).
			GetAll()
		if err != nil {
			log.Warn().Err(err).Int("batchSize", len(batch)).Msg("creator batch query failed")
			feed.Warnings = append(feed.Warnings, fmt.Sprintf("failed to load activities for %d people", len(batch)))
			continue
		}
		acts, err := utils.GetAllToStructs[activity.Activity](docs)
		if err != nil {
			log.Warn().Err(err).Msg("failed to decode creator batch")
			feed.Warnings = append(feed.Warnings, fmt.Sprintf("failed to load activities for %d people", len(batch)))
			continue
		}
		results = append(results, acts...)
	}

	// Creator scope misses activities the user merely joined; those come
	// from a second, membership-keyed source.
	docs, err := s.db.Collection(activityCollection).
		Where("participantIds", "array-contains", uid).
		Where("date", ">=", now).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("joined-activity query failed")
		feed.Warnings = append(feed.Warnings, "failed to load activities you joined")
	} else {
		acts, err := utils.GetAllToStructs[activity.Activity](docs)
		if err != nil {
			log.Warn().Err(err).Msg("failed to decode joined activities")
			feed.Warnings = append(feed.Warnings, "failed to load activities you joined")
		} else {
			results = append(results, acts...)
		}
	}

	feed.Activities = mergeByID(results)
	return feed, nil
}

// chunkIDs splits ids into batches no larger than size, preserving order.
func chunkIDs(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}

// mergeByID deduplicates by activity id, keeping the first occurrence, and
// sorts ascending by date with id as the tie-break.
func mergeByID(activities []activity.Activity) []activity.Activity {
	seen := set.New[string]()
	merged := make([]activity.Activity, 0, len(activities))
	for _, act := range activities {
		if seen.Contains(act.ID) {
			continue
		}
		seen.Add(act.ID)
		merged = append(merged, act)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Date.Equal(merged[j].Date) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

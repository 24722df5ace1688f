package feed

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"gatherly/services/activity"
)

func TestChunkIDs(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("u%02d", i)
		}
		return out
	}

	tests := []struct {
		name      string
		ids       []string
		size      int
		wantSizes []int
	}{
		{"empty", nil, 30, nil},
		{"under the limit", ids(5), 30, []int{5}},
		{"exactly the limit", ids(30), 30, []int{30}},
		{"over the limit", ids(35), 30, []int{30, 5}},
		{"several batches", ids(70), 30, []int{30, 30, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := chunkIDs(tt.ids, tt.size)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}
			total := 0
			for i, batch := range batches {
				if len(batch) != tt.wantSizes[i] {
					t.Errorf("batch %d has %d ids, want %d", i, len(batch), tt.wantSizes[i])
				}
				total += len(batch)
			}
			if total != len(tt.ids) {
				t.Errorf("batches cover %d ids, want %d", total, len(tt.ids))
			}
		})
	}
}

func TestChunkIDsPreservesEveryID(t *testing.T) {
	// 35 friends exceeds the fanout limit; every one must land in a batch.
	ids := make([]string, 35)
	for i := range ids {
		ids[i] = fmt.Sprintf("friend%02d", i)
	}
	seen := make(map[string]bool)
	for _, batch := range chunkIDs(ids, DefaultBatchLimit) {
		for _, id := range batch {
			if seen[id] {
				t.Errorf("id %s appears in more than one batch", id)
			}
			seen[id] = true
		}
	}
	for _, id := range ids {
		if !seen[id] {
			t.Errorf("id %s missing from batches", id)
		}
	}
}

func TestMergeByID(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.September, d, 18, 0, 0, 0, time.UTC)
	}

	t.Run("deduplicates by id", func(t *testing.T) {
		// Same record coming back from both the creator scope and the
		// participant scope must appear once.
		picnic := activity.Activity{ID: "a1", Title: "Picnic", Date: day(3)}
		merged := mergeByID([]activity.Activity{picnic, picnic})
		if len(merged) != 1 {
			t.Errorf("merged = %d activities, want 1", len(merged))
		}
	})

	t.Run("sorts ascending by date", func(t *testing.T) {
		merged := mergeByID([]activity.Activity{
			{ID: "a3", Date: day(9)},
			{ID: "a1", Date: day(2)},
			{ID: "a2", Date: day(5)},
		})
		want := []string{"a1", "a2", "a3"}
		got := make([]string, len(merged))
		for i, act := range merged {
			got[i] = act.ID
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("order = %v, want %v", got, want)
		}
	})

	t.Run("id breaks date ties", func(t *testing.T) {
		merged := mergeByID([]activity.Activity{
			{ID: "b", Date: day(4)},
			{ID: "a", Date: day(4)},
		})
		if merged[0].ID != "a" || merged[1].ID != "b" {
			t.Errorf("order = [%s %s], want [a b]", merged[0].ID, merged[1].ID)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if merged := mergeByID(nil); len(merged) != 0 {
			t.Errorf("merged = %v, want empty", merged)
		}
	})
}

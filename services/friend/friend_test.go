package friend

import (
	"context"
	"errors"
	"testing"

	"gatherly/services/profile"
	"gatherly/utils"
)

func TestAddSelfReference(t *testing.T) {
	s := &service{}
	err := s.Add(context.Background(), "u1", "u1")
	if !errors.Is(err, SelfReference) {
		t.Errorf("Add(u1, u1) = %v, want SelfReference", err)
	}
}

func TestSortFriends(t *testing.T) {
	tests := []struct {
		name    string
		friends []Friend
		want    []string
	}{
		{
			name: "ascending by display name",
			friends: []Friend{
				{UID: "u3", DisplayName: utils.ToPointer("Charlie")},
				{UID: "u1", DisplayName: utils.ToPointer("Alice")},
				{UID: "u2", DisplayName: utils.ToPointer("Bob")},
			},
			want: []string{"u1", "u2", "u3"},
		},
		{
			name: "case insensitive",
			friends: []Friend{
				{UID: "u2", DisplayName: utils.ToPointer("bob")},
				{UID: "u1", DisplayName: utils.ToPointer("Alice")},
			},
			want: []string{"u1", "u2"},
		},
		{
			name: "nil display names sort last",
			friends: []Friend{
				{UID: "u1"},
				{UID: "u2", DisplayName: utils.ToPointer("Zoe")},
			},
			want: []string{"u2", "u1"},
		},
		{
			name: "uid breaks ties",
			friends: []Friend{
				{UID: "u9", DisplayName: utils.ToPointer("Sam")},
				{UID: "u1", DisplayName: utils.ToPointer("Sam")},
			},
			want: []string{"u1", "u9"},
		},
		{
			name: "all nil ordered by uid",
			friends: []Friend{
				{UID: "u2"},
				{UID: "u1"},
			},
			want: []string{"u1", "u2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortFriends(tt.friends)
			for i, want := range tt.want {
				if tt.friends[i].UID != want {
					t.Errorf("position %d = %s, want %s", i, tt.friends[i].UID, want)
				}
			}
		})
	}
}

func TestSnapshotOf(t *testing.T) {
	name := "Alice"
	photo := "https://example.com/a.png"
	p := profile.Profile{
		UID:         "u1",
		Email:       utils.ToPointer("alice@example.com"),
		DisplayName: &name,
		PhotoURL:    &photo,
	}

	got := snapshotOf(&p)
	if got.UID != "u1" {
		t.Errorf("UID = %s, want u1", got.UID)
	}
	if got.DisplayName == nil || *got.DisplayName != name {
		t.Errorf("DisplayName = %v, want %s", got.DisplayName, name)
	}
	if got.PhotoURL == nil || *got.PhotoURL != photo {
		t.Errorf("PhotoURL = %v, want %s", got.PhotoURL, photo)
	}
}

package invite

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gatherly/services/friend"
)

func TestNewCode(t *testing.T) {
	t.Run("length and charset", func(t *testing.T) {
		code := newCode()
		if len(code) != codeLength {
			t.Fatalf("len(newCode()) = %d, want %d", len(code), codeLength)
		}
		for _, r := range code {
			isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
			if !isHex {
				t.Errorf("unexpected character %q in code %s", r, code)
			}
		}
	})

	t.Run("codes differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			code := newCode()
			if seen[code] {
				t.Fatalf("duplicate code %s after %d draws", code, i)
			}
			seen[code] = true
		}
	})
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"window still open", now.Add(time.Hour), false},
		{"window passed", now.Add(-time.Second), true},
		{"exactly at expiry", now, false},
		{"seven days out", now.Add(DefaultTTL), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := Invite{Code: "abcd1234", ExpiresAt: tt.expiresAt}
			if got := inv.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRedeemOutcome(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	open := Invite{Code: "abcd1234", InviterID: "inviter", ExpiresAt: now.Add(time.Hour)}
	stale := Invite{Code: "abcd1234", InviterID: "inviter", ExpiresAt: now.Add(-time.Hour)}

	tests := []struct {
		name        string
		inv         Invite
		redeemerID  string
		wantConsume bool
		wantErr     error
	}{
		{"valid redemption consumes", open, "redeemer", true, nil},
		{"expired consumes and fails", stale, "redeemer", true, Expired},
		{"self redemption keeps the invite", open, "inviter", false, SelfRedemption},
		{"expiry wins over self redemption", stale, "inviter", true, Expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consume, err := redeemOutcome(&tt.inv, tt.redeemerID, now)
			if consume != tt.wantConsume {
				t.Errorf("consume = %v, want %v", consume, tt.wantConsume)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFriendAddBlocks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"success consumes", nil, false},
		{"already friends still consumes", friend.AlreadyFriends, false},
		{"wrapped already friends still consumes", fmt.Errorf("redeem: %w", friend.AlreadyFriends), false},
		{"missing profile blocks consumption", fmt.Errorf("failed to fetch profile u1: %w", errors.New("unavailable")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := friendAddBlocks(tt.err); got != tt.want {
				t.Errorf("friendAddBlocks(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

package api

import (
	"time"

	"gatherly/services/invite"
)

type ensureProfileRequest struct {
	Email         *string `json:"email"`
	DisplayName   *string `json:"displayName"`
	PhotoURL      *string `json:"photoUrl"`
	ChildNickname *string `json:"childNickname"`
}

type updateProfileRequest struct {
	DisplayName   *string `json:"displayName"`
	PhotoURL      *string `json:"photoUrl"`
	ChildNickname *string `json:"childNickname"`
}

type createActivityRequest struct {
	Title    string    `json:"title" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Location *string   `json:"location"`
}

type patchActivityRequest struct {
	Title    *string    `json:"title"`
	Date     *time.Time `json:"date"`
	Location *string    `json:"location"`
}

type inviteResponse struct {
	Code        string    `json:"code"`
	InviterID   string    `json:"inviterId"`
	InviterName string    `json:"inviterName"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Expired     bool      `json:"expired"`
}

func toInviteResponse(inv *invite.Invite, now time.Time) inviteResponse {
	return inviteResponse{
		Code:        inv.Code,
		InviterID:   inv.InviterID,
		InviterName: inv.InviterName,
		CreatedAt:   inv.CreatedAt,
		ExpiresAt:   inv.ExpiresAt,
		Expired:     inv.Expired(now),
	}
}

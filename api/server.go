package api

import (
	"errors"
	"net/http"
	"time"

	"gatherly/services/activity"
	"gatherly/services/feed"
	"gatherly/services/friend"
	"gatherly/services/invite"
	"gatherly/services/profile"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

type Server struct {
	Profiles   profile.Service
	Friends    friend.Service
	Invites    invite.Service
	Activities activity.Service
	Feed       feed.Service
}

func NewServer(
	profiles profile.Service,
	friends friend.Service,
	invites invite.Service,
	activities activity.Service,
	feedService feed.Service,
) Server {
	return Server{
		Profiles:   profiles,
		Friends:    friends,
		Invites:    invites,
		Activities: activities,
		Feed:       feedService,
	}
}

func (s Server) RegisterRoutes(r *gin.Engine, authClient *auth.Client) {
	authed := r.Group("/", RequireAuth(authClient))

	authed.POST("/profile", s.EnsureProfile)
	authed.GET("/profile", s.GetProfile)
	authed.PATCH("/profile", s.UpdateProfile)

	authed.GET("/friends", s.ListFriends)
	authed.DELETE("/friends/:uid", s.RemoveFriend)

	authed.POST("/invites", s.CreateInvite)
	authed.GET("/invites/:code", s.GetInvite)
	authed.POST("/invites/:code/redeem", s.RedeemInvite)
	authed.DELETE("/invites/:code", s.DeleteInvite)

	authed.POST("/activities", s.CreateActivity)
	authed.GET("/activities/:id", s.GetActivity)
	authed.PATCH("/activities/:id", s.UpdateActivity)
	authed.DELETE("/activities/:id", s.DeleteActivity)
	authed.POST("/activities/:id/join", s.JoinActivity)
	authed.POST("/activities/:id/leave", s.LeaveActivity)

	authed.GET("/feed", s.GetFeed)
}

// EnsureProfile (POST /profile)
func (s Server) EnsureProfile(c *gin.Context) {
	var req ensureProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.Profiles.Ensure(c.Request.Context(), profile.Profile{
		UID:           UserID(c),
		Email:         req.Email,
		DisplayName:   req.DisplayName,
		PhotoURL:      req.PhotoURL,
		ChildNickname: req.ChildNickname,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile (GET /profile)
func (s Server) GetProfile(c *gin.Context) {
	p, err := s.Profiles.Get(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProfile (PATCH /profile)
func (s Server) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.Profiles.Update(c.Request.Context(), UserID(c), profile.Update{
		DisplayName:   req.DisplayName,
		PhotoURL:      req.PhotoURL,
		ChildNickname: req.ChildNickname,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFriends (GET /friends)
func (s Server) ListFriends(c *gin.Context) {
	friends, err := s.Friends.List(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// RemoveFriend (DELETE /friends/:uid)
func (s Server) RemoveFriend(c *gin.Context) {
	if err := s.Friends.Remove(c.Request.Context(), UserID(c), c.Param("uid")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateInvite (POST /invites)
func (s Server) CreateInvite(c *gin.Context) {
	uid := UserID(c)
	p, err := s.Profiles.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	inv, err := s.Invites.Create(c.Request.Context(), uid, displayNameOf(p))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toInviteResponse(inv, time.Now()))
}

// GetInvite (GET /invites/:code)
func (s Server) GetInvite(c *gin.Context) {
	inv, err := s.Invites.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toInviteResponse(inv, time.Now()))
}

// RedeemInvite (POST /invites/:code/redeem)
func (s Server) RedeemInvite(c *gin.Context) {
	if err := s.Invites.Redeem(c.Request.Context(), c.Param("code"), UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteInvite (DELETE /invites/:code)
func (s Server) DeleteInvite(c *gin.Context) {
	if err := s.Invites.Delete(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateActivity (POST /activities)
func (s Server) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uid := UserID(c)
	p, err := s.Profiles.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	act, err := s.Activities.Create(c.Request.Context(), activity.NewActivity{
		Title:           req.Title,
		Date:            req.Date,
		Location:        req.Location,
		CreatorID:       uid,
		CreatorName:     displayNameOf(p),
		CreatorPhotoURL: p.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, act)
}

// GetActivity (GET /activities/:id)
func (s Server) GetActivity(c *gin.Context) {
	act, err := s.Activities.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, act)
}

// UpdateActivity (PATCH /activities/:id) is creator-only; the boundary owns
// that check, the service does not re-verify.
func (s Server) UpdateActivity(c *gin.Context) {
	var req patchActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	act, err := s.Activities.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if act.CreatorID != UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator can edit an activity"})
		return
	}
	err = s.Activities.Update(c.Request.Context(), id, activity.Patch{
		Title:    req.Title,
		Date:     req.Date,
		Location: req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteActivity (DELETE /activities/:id) is creator-only.
func (s Server) DeleteActivity(c *gin.Context) {
	id := c.Param("id")
	act, err := s.Activities.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, activity.NotFound) {
			// Redundant deletes are success from the caller's view.
			c.Status(http.StatusNoContent)
			return
		}
		respondError(c, err)
		return
	}
	if act.CreatorID != UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator can delete an activity"})
		return
	}
	if err := s.Activities.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// JoinActivity (POST /activities/:id/join)
func (s Server) JoinActivity(c *gin.Context) {
	uid := UserID(c)
	p, err := s.Profiles.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	err = s.Activities.Join(c.Request.Context(), c.Param("id"), activity.Participant{
		UID:      uid,
		Name:     displayNameOf(p),
		PhotoURL: p.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LeaveActivity (POST /activities/:id/leave)
func (s Server) LeaveActivity(c *gin.Context) {
	uid := UserID(c)
	id := c.Param("id")
	act, err := s.Activities.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if act.CreatorID == uid {
		c.JSON(http.StatusConflict, gin.H{"error": "the creator leaves by deleting the activity"})
		return
	}
	if err := s.Activities.Leave(c.Request.Context(), id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFeed (GET /feed)
func (s Server) GetFeed(c *gin.Context) {
	result, err := s.Feed.ForUser(c.Request.Context(), UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func displayNameOf(p *profile.Profile) string {
	if p.DisplayName != nil && *p.DisplayName != "" {
		return *p.DisplayName
	}
	if p.Email != nil && *p.Email != "" {
		return *p.Email
	}
	return p.UID
}

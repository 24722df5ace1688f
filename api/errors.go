package api

import (
	"errors"
	"net/http"

	"gatherly/services/activity"
	"gatherly/services/friend"
	"gatherly/services/invite"
	"gatherly/services/profile"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// respondError maps domain sentinels to HTTP statuses. Infrastructure
// failures are logged with the request path and surfaced generically.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, profile.NotFound),
		errors.Is(err, activity.NotFound),
		errors.Is(err, invite.NotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, friend.AlreadyFriends):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, friend.SelfReference),
		errors.Is(err, invite.SelfRedemption),
		errors.Is(err, activity.Invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, invite.Expired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case status.Code(err) == codes.Unavailable:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

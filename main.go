package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"gatherly/api"
	"gatherly/clients/gcp"
	"gatherly/envvars"
	"gatherly/services/activity"
	"gatherly/services/feed"
	"gatherly/services/friend"
	"gatherly/services/invite"
	"gatherly/services/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()
	env := envvars.GetEnv()
	if envvars.IsProd(env) {
		gin.SetMode(gin.ReleaseMode)
	}

	db := gcp.CreateFirestore(ctx, env.ProjectID)
	defer db.Close()
	authClient := gcp.CreateAuth(ctx, env.ProjectID)

	profiles := profile.NewService(db)
	friends := friend.NewService(db, profiles)
	invites := invite.NewService(db, friends, invite.DefaultTTL)
	activities := activity.NewService(db)
	feedService := feed.NewService(db, friends, feed.DefaultBatchLimit)

	server := api.NewServer(profiles, friends, invites, activities, feedService)

	r := gin.Default()
	r.Use(cors.Default())
	server.RegisterRoutes(r, authClient)

	s := &http.Server{
		Handler: r,
		Addr:    "0.0.0.0:" + env.Port,
	}

	slog.Info("Starting HTTP server on port " + env.Port)
	log.Fatal(s.ListenAndServe())
}

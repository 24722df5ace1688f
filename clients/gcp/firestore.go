package gcp

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

func CreateFirestore(ctx context.Context, projectID string) *firestore.Client {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create firestore client: %v", err)
	}
	return client
}

// CreateAuth returns the Firebase auth client used to verify ID tokens at
// the HTTP boundary.
func CreateAuth(ctx context.Context, projectID string) *auth.Client {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		log.Fatalf("Failed to create firebase app: %v", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to create firebase auth client: %v", err)
	}
	return client
}

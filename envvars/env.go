package envvars

import (
	"log"
	"os"
)

const (
	ProjectID   = "GCP_PROJECT_ID"
	Environment = "ENVIRONMENT"
	Port        = "PORT"
)

const (
	ProductionEnv = "production"
	DevEnv        = "dev"
)

type Env struct {
	ProjectID   string
	Environment string
	Port        string
}

func GetEnv() Env {
	projectID, ok := os.LookupEnv(ProjectID)
	if !ok {
		log.Fatalf("%s required", ProjectID)
	}
	environment, ok := os.LookupEnv(Environment)
	if !ok {
		environment = DevEnv
	}
	port, ok := os.LookupEnv(Port)
	if !ok {
		port = "8080"
	}
	return Env{
		ProjectID:   projectID,
		Environment: environment,
		Port:        port,
	}
}

func IsProd(e Env) bool {
	return e.Environment == ProductionEnv
}

func IsDev(e Env) bool {
	return e.Environment == DevEnv
}

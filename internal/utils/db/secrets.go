// internal/utils/db/secrets.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Credentials as stored in the Secrets Manager secret payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RetrieveCredentials resolves database credentials env-first
// (DB_USERNAME/DB_PASSWORD); deployments without env credentials fall back
// to AWS Secrets Manager under DB_SECRET_ID.
func RetrieveCredentials(ctx context.Context) (string, string, error) {
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	if username != "" && password != "" {
		return username, password, nil
	}

	secretID := os.Getenv("DB_SECRET_ID")
	if secretID == "" {
		return "", "", fmt.Errorf("no DB credentials: set DB_USERNAME/DB_PASSWORD or DB_SECRET_ID")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", "", fmt.Errorf("load aws config: %w", err)
	}
	client := secretsmanager.NewFromConfig(cfg)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("get secret value: %w", err)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*out.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("decode secret payload: %w", err)
	}
	return secret.Username, secret.Password, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// BuildDSN assembles the postgres DSN from the environment plus resolved
// credentials.
func BuildDSN(ctx context.Context) (string, error) {
	username, password, err := RetrieveCredentials(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		envOr("DB_HOST", "localhost"),
		username,
		password,
		envOr("DB_NAME", "tikoschool"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
	), nil
}

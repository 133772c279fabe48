package diagnostics

import (
	"context"
	"fmt"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// LoadSecret fetches a Secret Manager resource name
// ("projects/.../secrets/.../versions/latest"). When envFallback is
// non-empty and set, its value is used instead and Secret Manager is
// never contacted, so the process stays runnable without GCP
// credentials during local development. An empty secretName with no
// fallback returns empty without error: the secret simply isn't
// configured.
func LoadSecret(ctx context.Context, secretName, envFallback string) (string, error) {
	if envFallback != "" {
		if v := os.Getenv(envFallback); v != "" {
			return v, nil
		}
	}
	if secretName == "" {
		return "", nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return "", fmt.Errorf("access secret version %s: %w", secretName, err)
	}

	return string(result.Payload.GetData()), nil
}

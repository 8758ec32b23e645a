package s3media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/antojadoapp/antojado/internal/pkg/env"
)

// Config holds the settings for replicating business images to S3.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // optional, for S3-compatible services
	Enabled         bool
}

// LoadConfig reads S3 configuration from environment variables.
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("S3_MEDIA_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when S3 media replication is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when S3 media replication is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when S3 media replication is enabled")
		}
	}

	return config, nil
}

func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey builds the S3 key for a business image: businesses/<id>/<uuid>.<ext>
func (c *Config) ObjectKey(businessID uint, imageUUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("businesses/%d/%s%s", businessID, imageUUID, ext)
}

package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for serving.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required"}.Error())
	}
	if cfg.DBUser == "" {
		errs = append(errs, ValidationError{Field: "DB_USER", Message: "is required"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{Field: "DB_NAME", Message: "is required"}.Error())
	}

	switch cfg.StorageDriver {
	case "local":
		if cfg.UploadDir == "" {
			errs = append(errs, ValidationError{Field: "UPLOAD_DIR", Message: "is required for the local storage driver"}.Error())
		}
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, ValidationError{Field: "S3_BUCKET_NAME", Message: "is required for the s3 storage driver"}.Error())
		}
	default:
		errs = append(errs, ValidationError{Field: "STORAGE_DRIVER", Message: fmt.Sprintf("unknown driver %q (want local or s3)", cfg.StorageDriver)}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

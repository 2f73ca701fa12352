package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envMongoURI              = "MONGODB_URI"
	envMongoDatabase         = "MONGODB_DATABASE"
	envAWSRegion             = "AWS_REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envAssetBucket           = "ASSET_BUCKET"
	envJWTSecret             = "JWT_SECRET"
	envJWTExpiry             = "JWT_EXPIRY"
	envAdminEmail            = "ADMIN_EMAIL"
	envAdminPasswordHash     = "ADMIN_PASSWORD_HASH"
	envAdminPassword         = "ADMIN_PASSWORD"
	envSMTPHost              = "SMTP_HOST"
	envSMTPPort              = "SMTP_PORT"
	envSMTPUser              = "SMTP_USER"
	envSMTPPassword          = "SMTP_PASSWORD"
	envMailFromName          = "MAIL_FROM_NAME"
	envResendAPIKey          = "RESEND_API_KEY"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultMongoDatabase      = "calmicasa"
	defaultAssetBucket        = "calmicasa"
	defaultJWTExpiry          = 30 * 24 * time.Hour
	defaultSMTPPort           = 587
	defaultMailFromName       = "CalmiCasa"
	minJWTSecretLength        = 32
)

type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	AWS    AWSConfig
	JWT    JWTConfig
	Admin  AdminConfig
	Mail   MailConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

type JWTConfig struct {
	Secret         string
	ExpiryDuration time.Duration
}

// AdminConfig holds the single administrator identity. PasswordHash (bcrypt)
// is the default credential; a bare Password enables the legacy plaintext
// comparison mode kept for compatibility with existing deployments.
type AdminConfig struct {
	Email        string
	PasswordHash string
	Password     string
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromName     string
	ResendAPIKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
		},
		Mongo: MongoConfig{
			URI:      os.Getenv(envMongoURI),
			Database: getEnv(envMongoDatabase, defaultMongoDatabase),
		},
		AWS: AWSConfig{
			Region:          os.Getenv(envAWSRegion),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
			Bucket:          getEnv(envAssetBucket, defaultAssetBucket),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv(envJWTSecret),
			ExpiryDuration: getDurationEnv(envJWTExpiry, defaultJWTExpiry),
		},
		Admin: AdminConfig{
			Email:        os.Getenv(envAdminEmail),
			PasswordHash: os.Getenv(envAdminPasswordHash),
			Password:     os.Getenv(envAdminPassword),
		},
		Mail: MailConfig{
			SMTPHost:     os.Getenv(envSMTPHost),
			SMTPPort:     getIntEnv(envSMTPPort, defaultSMTPPort),
			SMTPUser:     os.Getenv(envSMTPUser),
			SMTPPassword: os.Getenv(envSMTPPassword),
			FromName:     getEnv(envMailFromName, defaultMailFromName),
			ResendAPIKey: os.Getenv(envResendAPIKey),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("%s must be set", envMongoURI)
	}

	if c.AWS.Region == "" {
		return fmt.Errorf("%s must be set", envAWSRegion)
	}

	if c.AWS.AccessKeyID == "" {
		return fmt.Errorf("%s must be set", envAWSAccessKeyID)
	}

	if c.AWS.SecretAccessKey == "" {
		return fmt.Errorf("%s must be set", envAWSSecretAccessKey)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("%s must be set", envJWTSecret)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf("%s must be at least %d characters", envJWTSecret, minJWTSecretLength)
	}

	if c.Admin.Email == "" {
		return fmt.Errorf("%s must be set", envAdminEmail)
	}

	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return fmt.Errorf("%s or %s must be set", envAdminPasswordHash, envAdminPassword)
	}

	if c.Admin.PasswordHash == "" && c.Admin.Password != "" {
		log.Printf("Warning: %s is a plaintext secret; set %s (bcrypt) instead", envAdminPassword, envAdminPasswordHash)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if hours, err := strconv.Atoi(value); err == nil {
			return time.Duration(hours) * time.Hour
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	GSI1IndexName string // cuisine queries
	GSI2IndexName string // visited queries
	EventBusName  string

	// Identity configuration
	UserPoolID       string
	UserPoolClientID string

	// Email configuration
	SESFromAddress string

	// Lambda configuration
	IsLambda bool

	// Logging
	LogLevel string

	// Authentication
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable: getEnv("TABLE_NAME", "tastetrail"),
		GSI1IndexName: getEnv("GSI1_INDEX_NAME", "GSI1"),
		GSI2IndexName: getEnv("GSI2_INDEX_NAME", "GSI2"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "tastetrail-events"),

		// Identity
		UserPoolID:       getEnv("USER_POOL_ID", ""),
		UserPoolClientID: getEnv("USER_POOL_CLIENT_ID", ""),

		// Email
		SESFromAddress: getEnv("SES_FROM_ADDRESS", ""),

		// Lambda
		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		// Authentication
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "tastetrail-backend"),
		JWTAudience: getEnv("JWT_AUDIENCE", "tastetrail"),

		// Logging and features
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.UserPoolID == "" {
			return fmt.Errorf("USER_POOL_ID is required in production")
		}
		if c.UserPoolClientID == "" {
			return fmt.Errorf("USER_POOL_CLIENT_ID is required in production")
		}
		if c.SESFromAddress == "" {
			return fmt.Errorf("SES_FROM_ADDRESS is required in production")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// Package di wires the application together: config, logger, AWS clients,
// repositories, services and the HTTP router.
package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awscognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awssesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"go.uber.org/zap"

	"tastetrail-backend/application/authflow"
	"tastetrail-backend/application/ports"
	"tastetrail-backend/application/services"
	"tastetrail-backend/infrastructure/config"
	"tastetrail-backend/infrastructure/email"
	"tastetrail-backend/infrastructure/identity"
	"tastetrail-backend/infrastructure/messaging/eventbridge"
	"tastetrail-backend/infrastructure/persistence/dynamodb"
	"tastetrail-backend/interfaces/http/rest"
	"tastetrail-backend/interfaces/http/rest/handlers"
	"tastetrail-backend/pkg/auth"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	RestaurantRepo    ports.RestaurantRepository
	ReviewRepo        ports.ReviewRepository
	UserRepo          ports.UserRepository
	EventPublisher    ports.EventPublisher
	Metrics           *observability.Metrics
	RestaurantService *services.RestaurantService
	Initiator         *authflow.Initiator
	CodeSender        authflow.CodeSender
	Router            *rest.Router
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCognitoClient creates a Cognito identity provider client
func ProvideCognitoClient(awsCfg aws.Config) *awscognito.Client {
	return awscognito.NewFromConfig(awsCfg)
}

// ProvideSESClient creates an SES v2 client
func ProvideSESClient(awsCfg aws.Config) *awssesv2.Client {
	return awssesv2.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideRestaurantRepository creates the restaurant repository
func ProvideRestaurantRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.RestaurantRepository {
	return dynamodb.NewRestaurantRepository(
		client,
		cfg.DynamoDBTable,
		cfg.GSI1IndexName,
		cfg.GSI2IndexName,
		logger,
	)
}

// ProvideReviewRepository creates the review repository
func ProvideReviewRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ReviewRepository {
	return dynamodb.NewReviewRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideUserRepository creates the user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the EventBridge publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics instance. Metrics are disabled (nil
// client) unless ENABLE_METRICS is set.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("TasteTrail/%s", cfg.Environment)
	if !cfg.EnableMetrics {
		client = nil
	}
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideRestaurantService creates the restaurant service
func ProvideRestaurantService(
	restaurants ports.RestaurantRepository,
	reviews ports.ReviewRepository,
	events ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.RestaurantService {
	return services.NewRestaurantService(restaurants, reviews, events, metrics, logger)
}

// ProvideIdentityProvider creates the Cognito identity provider adapter
func ProvideIdentityProvider(client *awscognito.Client, cfg *config.Config, logger *zap.Logger) authflow.IdentityProvider {
	return identity.NewCognitoProvider(client, cfg.UserPoolID, cfg.UserPoolClientID, logger)
}

// ProvideCodeSender creates the SES login-code sender
func ProvideCodeSender(client *awssesv2.Client, cfg *config.Config, logger *zap.Logger) authflow.CodeSender {
	return email.NewSESSender(client, cfg.SESFromAddress, logger)
}

// ProvideInitiator creates the passwordless flow front door
func ProvideInitiator(provider authflow.IdentityProvider, logger *zap.Logger) *authflow.Initiator {
	return authflow.NewInitiator(provider, logger)
}

// ProvideErrorHandler creates the boundary error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideJWTValidator creates the local-mode token validator. In Lambda the
// gateway authorizer verifies tokens, so no validator is built there.
func ProvideJWTValidator(cfg *config.Config) *auth.JWTValidator {
	if cfg.IsLambda || cfg.JWTSecret == "" {
		return nil
	}
	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  []string{cfg.JWTAudience},
	})
	if err != nil {
		return nil
	}
	return validator
}

// ProvideAuthHandler creates the auth handler
func ProvideAuthHandler(initiator *authflow.Initiator, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(initiator, errHandler, logger)
}

// ProvideRestaurantHandler creates the restaurant handler
func ProvideRestaurantHandler(service *services.RestaurantService, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *handlers.RestaurantHandler {
	return handlers.NewRestaurantHandler(service, errHandler, logger)
}

// ProvideReviewHandler creates the review handler
func ProvideReviewHandler(service *services.RestaurantService, errHandler *apperrors.ErrorHandler, logger *zap.Logger) *handlers.ReviewHandler {
	return handlers.NewReviewHandler(service, errHandler, logger)
}

// ProvideRouter creates the HTTP router. Gateway identity headers are only
// trusted behind the Lambda entrypoint, which sanitizes them.
func ProvideRouter(
	authHandler *handlers.AuthHandler,
	restaurantHandler *handlers.RestaurantHandler,
	reviewHandler *handlers.ReviewHandler,
	validator *auth.JWTValidator,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		authHandler,
		restaurantHandler,
		reviewHandler,
		validator,
		metrics,
		cfg.IsLambda,
		cfg.EnableCORS,
		logger,
	)
}

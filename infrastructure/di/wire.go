//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"tastetrail-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideCognitoClient,
	ProvideSESClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideRestaurantRepository,
	ProvideReviewRepository,
	ProvideUserRepository,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideRestaurantService,
	ProvideIdentityProvider,
	ProvideCodeSender,
	ProvideInitiator,
	ProvideErrorHandler,
	ProvideJWTValidator,
	ProvideAuthHandler,
	ProvideRestaurantHandler,
	ProvideReviewHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}

package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"tastetrail-backend/infrastructure/config"
	"tastetrail-backend/infrastructure/di"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
)

func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	handler := container.Router.Setup()
	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)
}

// Handler proxies API Gateway requests into the chi router. The gateway's
// JWT authorizer has already verified the token; the claims it attached are
// forwarded as identity headers the middleware trusts. Inbound copies of
// those headers are stripped first so a caller cannot spoof them.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}
	for _, key := range []string{
		"x-api-gateway-authorized", "X-Api-Gateway-Authorized",
		"x-user-id", "X-User-Id",
		"x-user-email", "X-User-Email",
	} {
		delete(req.Headers, key)
	}

	if auth := req.RequestContext.Authorizer; auth != nil && auth.JWT != nil {
		claims := auth.JWT.Claims
		if sub := claims["sub"]; sub != "" {
			req.Headers["X-Api-Gateway-Authorized"] = "true"
			req.Headers["X-User-Id"] = sub
			req.Headers["X-User-Email"] = claims["email"]
		}
	}

	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	if resp.StatusCode >= 500 {
		container.Logger.Error("lambda error response",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.Int("status", resp.StatusCode),
		)
	}

	return resp, err
}

func main() {
	lambda.Start(Handler)
}

package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tastetrail-backend/application/ports"
	"tastetrail-backend/domain/model"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/utils"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type userItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	UserID    string `dynamodbav:"userId"`
	Email     string `dynamodbav:"email"`
	CreatedAt string `dynamodbav:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

func (i userItem) toModel() model.User {
	return model.User{
		UserID:    i.UserID,
		Email:     i.Email,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// CreateUser provisions a user metadata item.
func (r *UserRepository) CreateUser(ctx context.Context, email string) (*model.User, error) {
	userID := uuid.New().String()
	now := utils.NowRFC3339()

	item := userItem{
		PK:        userPK(userID),
		SK:        metadataSortKey,
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to put user", zap.String("email", email), zap.Error(err))
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	user := item.toModel()
	return &user, nil
}

// GetUserByID is a point lookup; absence is a nil result.
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: metadataSortKey},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("get user", err)
	}

	user := item.toModel()
	return &user, nil
}

// GetUserByEmail scans for the email attribute. Registration volume is one
// item per user, so the scan stays cheap; the first match wins.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("email").Equal(expression.Value(email)).
			And(expression.Name("SK").Equal(expression.Value(metadataSortKey)))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user by email", err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get user by email", err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return nil, apperrors.NewDatabaseError("get user by email", err)
	}

	user := item.toModel()
	return &user, nil
}

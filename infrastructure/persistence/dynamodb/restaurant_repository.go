package dynamodb

import (
	"context"
	"errors"

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

// RestaurantRepository implements ports.RestaurantRepository on the single
// table.
type RestaurantRepository struct {
	client    *dynamodb.Client
	tableName string
	gsi1Name  string // userId / cuisineType
	gsi2Name  string // userId / visitedKey
	logger    *zap.Logger
}

// NewRestaurantRepository creates a new RestaurantRepository.
func NewRestaurantRepository(client *dynamodb.Client, tableName, gsi1Name, gsi2Name string, logger *zap.Logger) ports.RestaurantRepository {
	return &RestaurantRepository{
		client:    client,
		tableName: tableName,
		gsi1Name:  gsi1Name,
		gsi2Name:  gsi2Name,
		logger:    logger,
	}
}

// restaurantItem is the DynamoDB shape of a restaurant. The secondary-index
// keys (userId, cuisineType, visitedKey) are attributes of this same item, so
// a single write keeps the projections consistent by construction.
type restaurantItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	RestaurantID string   `dynamodbav:"restaurantId"`
	UserID       string   `dynamodbav:"userId"`
	Name         string   `dynamodbav:"name"`
	Location     string   `dynamodbav:"location,omitempty"`
	CuisineType  string   `dynamodbav:"cuisineType,omitempty"`
	Description  string   `dynamodbav:"description,omitempty"`
	Visited      bool     `dynamodbav:"visited"`
	VisitedKey   string   `dynamodbav:"visitedKey"`
	Rating       *float64 `dynamodbav:"rating,omitempty"`
	CreatedAt    string   `dynamodbav:"createdAt"`
	UpdatedAt    string   `dynamodbav:"updatedAt"`
}

func (i restaurantItem) toModel() model.Restaurant {
	return model.Restaurant{
		RestaurantID: i.RestaurantID,
		UserID:       i.UserID,
		Name:         i.Name,
		Location:     i.Location,
		CuisineType:  model.CuisineType(i.CuisineType),
		Description:  i.Description,
		Visited:      i.Visited,
		Rating:       i.Rating,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// CreateRestaurant writes a fresh item unconditionally; the id is newly
// generated so no duplicate check is needed.
func (r *RestaurantRepository) CreateRestaurant(ctx context.Context, userID string, in model.NewRestaurant) (*model.Restaurant, error) {
	restaurantID := uuid.New().String()
	now := utils.NowRFC3339()

	item := restaurantItem{
		PK:           userPK(userID),
		SK:           restaurantSK(restaurantID),
		RestaurantID: restaurantID,
		UserID:       userID,
		Name:         in.Name,
		Visited:      false,
		VisitedKey:   visitedKey(false),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.CuisineType != nil {
		item.CuisineType = in.CuisineType.String()
	}
	if in.Description != nil {
		item.Description = *in.Description
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, apperrors.NewDatabaseError("create restaurant", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to put restaurant",
			zap.String("userID", userID),
			zap.String("restaurantID", restaurantID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("create restaurant", err)
	}

	restaurant := item.toModel()
	return &restaurant, nil
}

// GetRestaurantByID returns nil when the item does not exist under the
// caller's owner key; absence is not an error.
func (r *RestaurantRepository) GetRestaurantByID(ctx context.Context, userID, restaurantID string) (*model.Restaurant, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: restaurantSK(restaurantID)},
		},
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get restaurant", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item restaurantItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, apperrors.NewDatabaseError("get restaurant", err)
	}

	restaurant := item.toModel()
	return &restaurant, nil
}

// buildRestaurantUpdate translates a patch into an update expression. The
// updatedAt stamp is always refreshed; identity fields never appear because
// the patch type cannot carry them. A visited change also rewrites the GSI2
// key attribute in the same write.
func buildRestaurantUpdate(patch model.RestaurantPatch, now string) expression.UpdateBuilder {
	update := expression.Set(expression.Name("updatedAt"), expression.Value(now))

	if patch.Name.IsSet() {
		update = update.Set(expression.Name("name"), expression.Value(patch.Name.Value()))
	}
	if patch.Location.IsSet() {
		update = update.Set(expression.Name("location"), expression.Value(patch.Location.Value()))
	}
	if patch.CuisineType.IsSet() {
		update = update.Set(expression.Name("cuisineType"), expression.Value(patch.CuisineType.Value().String()))
	}
	if patch.Description.IsSet() {
		update = update.Set(expression.Name("description"), expression.Value(patch.Description.Value()))
	}
	if patch.Visited.IsSet() {
		update = update.Set(expression.Name("visited"), expression.Value(patch.Visited.Value()))
		update = update.Set(expression.Name("visitedKey"), expression.Value(visitedKey(patch.Visited.Value())))
	}
	if patch.Rating.IsSet() {
		update = update.Set(expression.Name("rating"), expression.Value(patch.Rating.Value()))
	}

	return update
}

// UpdateRestaurant applies the patch conditionally on the item existing.
// A conditional-check failure maps to the not-found sentinel.
func (r *RestaurantRepository) UpdateRestaurant(ctx context.Context, userID, restaurantID string, patch model.RestaurantPatch) (*model.Restaurant, error) {
	now := utils.NowRFC3339()

	expr, err := expression.NewBuilder().
		WithUpdate(buildRestaurantUpdate(patch, now)).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("update restaurant", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: restaurantSK(restaurantID)},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, nil
		}
		r.logger.Error("failed to update restaurant",
			zap.String("userID", userID),
			zap.String("restaurantID", restaurantID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("update restaurant", err)
	}

	var item restaurantItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return nil, apperrors.NewDatabaseError("update restaurant", err)
	}

	restaurant := item.toModel()
	return &restaurant, nil
}

// DeleteRestaurant removes the item. Review notes under the restaurant's own
// partition are left in place; no handler exposes this operation.
func (r *RestaurantRepository) DeleteRestaurant(ctx context.Context, userID, restaurantID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: restaurantSK(restaurantID)},
		},
	})
	if err != nil {
		return apperrors.NewDatabaseError("delete restaurant", err)
	}
	return nil
}

// listKeyCondition selects the index and key condition for a list query, in
// priority order: cuisine filter -> GSI1, visited filter -> GSI2, otherwise
// the owner prefix on the primary key. A nil index name means the table's
// primary key.
func (r *RestaurantRepository) listKeyCondition(userID string, filters model.RestaurantFilters) (expression.KeyConditionBuilder, *string) {
	switch {
	case filters.CuisineType != nil:
		return expression.Key("userId").Equal(expression.Value(userID)).
			And(expression.Key("cuisineType").Equal(expression.Value(filters.CuisineType.String()))), aws.String(r.gsi1Name)
	case filters.Visited != nil:
		return expression.Key("userId").Equal(expression.Value(userID)).
			And(expression.Key("visitedKey").Equal(expression.Value(visitedKey(*filters.Visited)))), aws.String(r.gsi2Name)
	default:
		return expression.Key("PK").Equal(expression.Value(userPK(userID))).
			And(expression.Key("SK").BeginsWith(restaurantKeyPrefix)), nil
	}
}

// ListRestaurants runs one page of the selected index query. The search term
// becomes a contains() filter evaluated after the page is fetched, so a page
// can come back shorter than the limit even when more matches exist further
// along the index.
func (r *RestaurantRepository) ListRestaurants(ctx context.Context, userID string, filters model.RestaurantFilters, page model.PageRequest) (*model.RestaurantPage, error) {
	keyCond, indexName := r.listKeyCondition(userID, filters)

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if filters.SearchTerm != "" {
		// Case-sensitive substring containment on the name, applied after the
		// index fetch. The page boundary is decided before this filter runs.
		builder = builder.WithFilter(expression.Name("name").Contains(filters.SearchTerm))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("list restaurants", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 indexName,
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if page.Limit > 0 {
		input.Limit = aws.Int32(page.Limit)
	}
	if page.Cursor != "" {
		startKey, err := decodeCursor(page.Cursor)
		if err != nil {
			return nil, err
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		r.logger.Error("failed to query restaurants",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("list restaurants", err)
	}

	restaurants := make([]model.Restaurant, 0, len(out.Items))
	for _, raw := range out.Items {
		var item restaurantItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("skipping unreadable restaurant item", zap.Error(err))
			continue
		}
		restaurants = append(restaurants, item.toModel())
	}

	nextCursor, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list restaurants", err)
	}

	return &model.RestaurantPage{
		Restaurants: restaurants,
		NextCursor:  nextCursor,
	}, nil
}

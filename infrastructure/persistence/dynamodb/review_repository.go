package dynamodb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tastetrail-backend/application/ports"
	"tastetrail-backend/domain/model"
	apperrors "tastetrail-backend/pkg/errors"
	"tastetrail-backend/pkg/utils"
)

// ReviewRepository implements ports.ReviewRepository. Notes live under the
// restaurant's own partition, not the user's.
type ReviewRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ReviewRepository {
	return &ReviewRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type reviewItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	ReviewID     string `dynamodbav:"reviewId"`
	RestaurantID string `dynamodbav:"restaurantId"`
	UserID       string `dynamodbav:"userId"`
	Text         string `dynamodbav:"text"`
	CreatedAt    string `dynamodbav:"createdAt"`
	UpdatedAt    string `dynamodbav:"updatedAt"`
}

func (i reviewItem) toModel() model.ReviewNote {
	return model.ReviewNote{
		ReviewID:     i.ReviewID,
		RestaurantID: i.RestaurantID,
		UserID:       i.UserID,
		Text:         i.Text,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// AddReviewNote writes a fresh note. Existence of the restaurant is the
// service layer's concern; this is a blind put under the restaurant key.
func (r *ReviewRepository) AddReviewNote(ctx context.Context, userID, restaurantID, text string) (*model.ReviewNote, error) {
	reviewID := uuid.New().String()
	now := utils.NowRFC3339()

	item := reviewItem{
		PK:           restaurantPK(restaurantID),
		SK:           reviewSK(reviewID),
		ReviewID:     reviewID,
		RestaurantID: restaurantID,
		UserID:       userID,
		Text:         text,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, apperrors.NewDatabaseError("add review note", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("failed to put review note",
			zap.String("restaurantID", restaurantID),
			zap.String("reviewID", reviewID),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("add review note", err)
	}

	note := item.toModel()
	return &note, nil
}

// GetReviewNotes returns every note for the restaurant ordered by createdAt
// descending. The ordering is a product guarantee, so it is enforced with an
// explicit sort rather than relying on the sort-key order of random review
// ids.
func (r *ReviewRepository) GetReviewNotes(ctx context.Context, restaurantID string) ([]model.ReviewNote, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(restaurantPK(restaurantID))).
		And(expression.Key("SK").BeginsWith(reviewKeyPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, apperrors.NewDatabaseError("get review notes", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("get review notes", err)
	}

	notes := make([]model.ReviewNote, 0, len(out.Items))
	for _, raw := range out.Items {
		var item reviewItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("skipping unreadable review item", zap.Error(err))
			continue
		}
		notes = append(notes, item.toModel())
	}

	sortReviewsNewestFirst(notes)

	return notes, nil
}

// sortReviewsNewestFirst orders notes by createdAt descending. The query
// already walks the partition in reverse sort-key order, but review ids are
// random, so their key order says nothing about time; the guarantee comes
// from this sort. Stable, so notes sharing a timestamp keep their fetch
// order.
func sortReviewsNewestFirst(notes []model.ReviewNote) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
}

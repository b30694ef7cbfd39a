package dynamodb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tastetrail-backend/domain/model"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "USER#u1", userPK("u1"))
	assert.Equal(t, "RESTAURANT#r1", restaurantSK("r1"))
	assert.Equal(t, "RESTAURANT#r1", restaurantPK("r1"))
	assert.Equal(t, "REVIEW#rev1", reviewSK("rev1"))
	assert.Equal(t, "true", visitedKey(true))
	assert.Equal(t, "false", visitedKey(false))
}

func buildExpr(t *testing.T, patch model.RestaurantPatch) expression.Expression {
	t.Helper()
	expr, err := expression.NewBuilder().
		WithUpdate(buildRestaurantUpdate(patch, "2026-08-28T12:00:00Z")).
		Build()
	require.NoError(t, err)
	return expr
}

func exprNames(expr expression.Expression) map[string]bool {
	names := make(map[string]bool)
	for _, name := range expr.Names() {
		names[name] = true
	}
	return names
}

func TestBuildRestaurantUpdate_AlwaysStampsUpdatedAt(t *testing.T) {
	expr := buildExpr(t, model.RestaurantPatch{})

	names := exprNames(expr)
	assert.True(t, names["updatedAt"])
	assert.Len(t, names, 1)
}

func TestBuildRestaurantUpdate_VisitedAlsoRewritesIndexKey(t *testing.T) {
	expr := buildExpr(t, model.RestaurantPatch{Visited: model.Set(true)})

	names := exprNames(expr)
	assert.True(t, names["visited"])
	assert.True(t, names["visitedKey"])

	var sawBool, sawKey bool
	for _, av := range expr.Values() {
		switch v := av.(type) {
		case *types.AttributeValueMemberBOOL:
			sawBool = v.Value
		case *types.AttributeValueMemberS:
			if v.Value == "true" {
				sawKey = true
			}
		}
	}
	assert.True(t, sawBool)
	assert.True(t, sawKey)
}

func TestBuildRestaurantUpdate_OnlySuppliedFieldsAppear(t *testing.T) {
	expr := buildExpr(t, model.RestaurantPatch{
		Name:   model.Set("Nonna"),
		Rating: model.Set(4.5),
	})

	names := exprNames(expr)
	assert.True(t, names["name"])
	assert.True(t, names["rating"])
	assert.True(t, names["updatedAt"])
	assert.False(t, names["location"])
	assert.False(t, names["cuisineType"])
	assert.False(t, names["visited"])
	assert.False(t, names["visitedKey"])
}

func exprStringValues(expr expression.Expression) map[string]bool {
	values := make(map[string]bool)
	for _, av := range expr.Values() {
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			values[s.Value] = true
		}
	}
	return values
}

func buildKeyCondExpr(t *testing.T, keyCond expression.KeyConditionBuilder) expression.Expression {
	t.Helper()
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	require.NoError(t, err)
	return expr
}

func TestListKeyCondition_CuisineFilterUsesGSI1(t *testing.T) {
	repo := &RestaurantRepository{gsi1Name: "GSI1", gsi2Name: "GSI2"}
	cuisine := model.CuisineThai

	keyCond, index := repo.listKeyCondition("u1", model.RestaurantFilters{CuisineType: &cuisine})

	require.NotNil(t, index)
	assert.Equal(t, "GSI1", *index)

	expr := buildKeyCondExpr(t, keyCond)
	names := exprNames(expr)
	assert.True(t, names["userId"])
	assert.True(t, names["cuisineType"])
	assert.False(t, names["PK"])

	values := exprStringValues(expr)
	assert.True(t, values["u1"])
	assert.True(t, values["Thai"])
}

func TestListKeyCondition_VisitedFilterUsesGSI2(t *testing.T) {
	repo := &RestaurantRepository{gsi1Name: "GSI1", gsi2Name: "GSI2"}
	visited := false

	keyCond, index := repo.listKeyCondition("u1", model.RestaurantFilters{Visited: &visited})

	require.NotNil(t, index)
	assert.Equal(t, "GSI2", *index)

	expr := buildKeyCondExpr(t, keyCond)
	names := exprNames(expr)
	assert.True(t, names["userId"])
	assert.True(t, names["visitedKey"])

	values := exprStringValues(expr)
	assert.True(t, values["false"])
}

func TestListKeyCondition_NoFilterUsesOwnerPrefix(t *testing.T) {
	repo := &RestaurantRepository{gsi1Name: "GSI1", gsi2Name: "GSI2"}

	keyCond, index := repo.listKeyCondition("u1", model.RestaurantFilters{})

	assert.Nil(t, index)

	expr := buildKeyCondExpr(t, keyCond)
	names := exprNames(expr)
	assert.True(t, names["PK"])
	assert.True(t, names["SK"])

	values := exprStringValues(expr)
	assert.True(t, values["USER#u1"])
	assert.True(t, values["RESTAURANT#"])
}

func TestListKeyCondition_CuisineWinsOverVisited(t *testing.T) {
	repo := &RestaurantRepository{gsi1Name: "GSI1", gsi2Name: "GSI2"}
	cuisine := model.CuisineItalian
	visited := true

	_, index := repo.listKeyCondition("u1", model.RestaurantFilters{
		CuisineType: &cuisine,
		Visited:     &visited,
	})

	require.NotNil(t, index)
	assert.Equal(t, "GSI1", *index)
}

func TestBuildRestaurantUpdate_CuisineStoredAsString(t *testing.T) {
	expr := buildExpr(t, model.RestaurantPatch{CuisineType: model.Set(model.CuisineMiddleEastern)})

	var found bool
	for _, av := range expr.Values() {
		if s, ok := av.(*types.AttributeValueMemberS); ok && s.Value == "Middle Eastern" {
			found = true
		}
	}
	assert.True(t, found)
}

// Package dynamodb implements the single-table access-pattern layer.
//
// Every entity lives in one table under a composite (PK, SK) key:
//
//	USER#<userId>       / METADATA                user metadata
//	USER#<userId>       / RESTAURANT#<id>         restaurant
//	RESTAURANT#<id>     / REVIEW#<reviewId>       review note
//
// Two secondary indexes emulate the filtered list queries:
//
//	GSI1: userId / cuisineType
//	GSI2: userId / visitedKey ("true"/"false" — string-typed for the index key)
//
// Ownership is enforced by key construction: a caller can only address items
// under their own USER# partition, so cross-user access reads as absence.
package dynamodb

import "fmt"

const (
	userKeyPrefix       = "USER#"
	restaurantKeyPrefix = "RESTAURANT#"
	reviewKeyPrefix     = "REVIEW#"
	metadataSortKey     = "METADATA"
)

func userPK(userID string) string {
	return userKeyPrefix + userID
}

func restaurantSK(restaurantID string) string {
	return restaurantKeyPrefix + restaurantID
}

func restaurantPK(restaurantID string) string {
	return restaurantKeyPrefix + restaurantID
}

func reviewSK(reviewID string) string {
	return reviewKeyPrefix + reviewID
}

// visitedKey serializes the visited flag for the GSI2 sort key. The index key
// must be string-typed, so the boolean is stored alongside the item as its
// literal text form.
func visitedKey(visited bool) string {
	return fmt.Sprintf("%t", visited)
}

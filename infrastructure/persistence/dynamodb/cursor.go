package dynamodb

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	apperrors "tastetrail-backend/pkg/errors"
)

// Pagination cursors are opaque to callers: base64url over the JSON form of
// the last evaluated key. Every key attribute in this table (and both
// indexes) is string-typed, which keeps the encoding lossless.

func encodeCursor(lastEvaluatedKey map[string]types.AttributeValue) (string, error) {
	if len(lastEvaluatedKey) == 0 {
		return "", nil
	}

	flat := make(map[string]string, len(lastEvaluatedKey))
	for name, av := range lastEvaluatedKey {
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("unexpected key attribute type for %q", name)
		}
		flat[name] = s.Value
	}

	raw, err := json.Marshal(flat)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodeCursor rejects malformed or foreign tokens as a validation error, not
// a silent empty result.
func decodeCursor(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid pagination token").WithCause(err)
	}

	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, apperrors.NewValidationError("invalid pagination token").WithCause(err)
	}
	if len(flat) == 0 {
		return nil, apperrors.NewValidationError("invalid pagination token")
	}

	key := make(map[string]types.AttributeValue, len(flat))
	for name, value := range flat {
		key[name] = &types.AttributeValueMemberS{Value: value}
	}
	return key, nil
}

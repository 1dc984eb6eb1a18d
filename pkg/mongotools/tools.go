package mongotools

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nikmy/fleetsync/pkg/errors"
)

const KeyID = "_id"

func SetAll(fieldKVs ...bson.M) bson.M {
	s := make(map[string]any, len(fieldKVs))
	for _, kv := range fieldKVs {
		for k, v := range kv {
			s[k] = v
		}
	}

	return bson.M{"$set": bson.M(s)}
}

func All() bson.M {
	return bson.M{}
}

func FilterByID(id string) bson.M {
	return bson.M{KeyID: id}
}

// NewID returns a fresh string primary key.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ExposeID renames "_id" to name and renders ObjectIDs as hex strings.
func ExposeID(doc bson.M, name string) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k != KeyID {
			out[k] = v
			continue
		}

		switch id := v.(type) {
		case primitive.ObjectID:
			out[name] = id.Hex()
		default:
			out[name] = id
		}
	}
	return out
}

// HideID renames name to "_id" and drops it when empty.
func HideID(fields map[string]any, name string) bson.M {
	doc := make(bson.M, len(fields))
	for k, v := range fields {
		if k != name {
			doc[k] = v
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		if v != nil {
			doc[KeyID] = v
		}
	}
	return doc
}

func FilterFunc[T any](ctx context.Context, c *mongo.Cursor, filterFunc func(T) bool) ([]T, error) {
	defer c.Close(ctx)

	var filtered []T
	for c.Next(ctx) {
		var item T
		err := c.Decode(&item)
		if err != nil {
			return nil, errors.WrapFail(err, "decode item")
		}

		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}

	return filtered, c.Err()
}

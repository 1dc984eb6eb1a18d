package mongotools

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExposeID(t *testing.T) {
	oid := primitive.NewObjectID()

	type testcase struct {
		name string
		doc  bson.M
		want map[string]any
	}

	tests := [...]testcase{
		{
			name: "string id",
			doc:  bson.M{"_id": "abc", "plate": "ABC-123"},
			want: map[string]any{"id": "abc", "plate": "ABC-123"},
		},
		{
			name: "object id",
			doc:  bson.M{"_id": oid},
			want: map[string]any{"id": oid.Hex()},
		},
		{
			name: "no id",
			doc:  bson.M{"brand": "Toyota"},
			want: map[string]any{"brand": "Toyota"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExposeID(tt.doc, "id"))
		})
	}
}

func TestHideID(t *testing.T) {
	require.Equal(t, bson.M{"_id": "x", "a": 1}, HideID(map[string]any{"id": "x", "a": 1}, "id"))
	require.Equal(t, bson.M{"a": 1}, HideID(map[string]any{"id": "", "a": 1}, "id"))
	require.Equal(t, bson.M{"a": 1}, HideID(map[string]any{"id": nil, "a": 1}, "id"))
}

func TestSetAll(t *testing.T) {
	got := SetAll(bson.M{"a": 1}, bson.M{"b": 2})
	require.Equal(t, bson.M{"$set": bson.M{"a": 1, "b": 2}}, got)
}

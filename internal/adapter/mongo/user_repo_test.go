package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUserIndexModels_UniqueUsernameAndEmail(t *testing.T) {
	models := userIndexModels()
	require.Len(t, models, 2)

	fields := make([]string, 0, 2)
	for _, model := range models {
		keys, ok := model.Keys.(bson.D)
		require.True(t, ok)
		require.Len(t, keys, 1)
		fields = append(fields, keys[0].Key)

		require.NotNil(t, model.Options)
		require.NotNil(t, model.Options.Unique)
		assert.True(t, *model.Options.Unique)
	}
	assert.ElementsMatch(t, []string{"username", "email"}, fields)
}

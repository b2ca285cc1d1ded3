package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
	store "github.com/dropDatabas3/hellojohn-identity/internal/store"
)

func TestRedisAdapterRegistered(t *testing.T) {
	adapter, ok := store.GetAdapter("redis")
	require.True(t, ok, "redis adapter not registered")
	require.Equal(t, "redis", adapter.Name())
}

func TestRedisAdapterConnectRequiresDSN(t *testing.T) {
	adapter, _ := store.GetAdapter("redis")
	_, err := adapter.Connect(context.Background(), store.AdapterConfig{Name: "redis"})
	require.Error(t, err)
}

func TestKeyLayout(t *testing.T) {
	b := NewBackend(nil, "")
	require.Equal(t, "identity:doc:Users:Users/42", b.docKey(repository.UsersCollection, "Users/42"))
	require.Equal(t, "identity:uniq:Users:normalizedEmail:A@B.C",
		b.uniqKey(repository.UsersCollection, repository.FieldNormalizedEmail, "A@B.C"))

	b = NewBackend(nil, "tenant1")
	require.Equal(t, "tenant1:doc:Roles:Roles/Admin", b.docKey(repository.RolesCollection, "Roles/Admin"))
}

func TestUniqueValues(t *testing.T) {
	raw, err := bson.Marshal(&repository.User{
		ID:                 "Users/1",
		NormalizedUserName: "ALICE",
		NormalizedEmail:    "",
	})
	require.NoError(t, err)

	got := uniqueValues(raw, map[string]string{
		repository.FieldNormalizedUserName: "IGNORED",
		repository.FieldNormalizedEmail:    "",
		"missing":                          "",
	})
	require.Equal(t, map[string]string{
		repository.FieldNormalizedUserName: "ALICE",
		repository.FieldNormalizedEmail:    "",
	}, got)
}

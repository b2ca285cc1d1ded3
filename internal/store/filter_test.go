package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dropDatabas3/hellojohn-identity/internal/domain/repository"
)

func mustRaw(t *testing.T, v any) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestFilters_Match(t *testing.T) {
	raw := mustRaw(t, &repository.User{
		ID:              "Users/1",
		NormalizedEmail: "A@B.C",
		Roles:           []string{"Roles/Admin", "Roles/Ops"},
		Claims:          []repository.Claim{{Type: "dept", Value: "eng"}, {Type: "level", Value: "3"}},
	})

	require.True(t, All{}.Match(raw))
	require.True(t, Eq{Field: repository.FieldNormalizedEmail, Value: "A@B.C"}.Match(raw))
	require.False(t, Eq{Field: repository.FieldNormalizedEmail, Value: "a@b.c"}.Match(raw))
	require.False(t, Eq{Field: "missing", Value: ""}.Match(raw))

	require.True(t, ArrayContains{Field: repository.FieldRoles, Value: "Roles/Ops"}.Match(raw))
	require.False(t, ArrayContains{Field: repository.FieldRoles, Value: "Roles/Dev"}.Match(raw))

	require.True(t, ElemMatch{Field: repository.FieldClaims, Fields: map[string]string{"type": "dept", "value": "eng"}}.Match(raw))
	// type y value deben coincidir en el mismo elemento
	require.False(t, ElemMatch{Field: repository.FieldClaims, Fields: map[string]string{"type": "dept", "value": "3"}}.Match(raw))

	require.True(t, And{
		ArrayContains{Field: repository.FieldRoles, Value: "Roles/Admin"},
		Eq{Field: "_id", Value: "Users/1"},
	}.Match(raw))
}

func TestFilters_NilArraysDoNotMatch(t *testing.T) {
	raw := mustRaw(t, &repository.User{ID: "Users/2"})
	require.False(t, ArrayContains{Field: repository.FieldRoles, Value: "Roles/Admin"}.Match(raw))
	require.False(t, ElemMatch{Field: repository.FieldClaims, Fields: map[string]string{"type": "x"}}.Match(raw))
}

func TestFilters_ToBSON(t *testing.T) {
	require.Equal(t, bson.D{}, All{}.ToBSON())
	require.Equal(t, bson.D{{Key: "roles", Value: "Roles/Admin"}},
		ArrayContains{Field: "roles", Value: "Roles/Admin"}.ToBSON())
	require.Equal(t,
		bson.D{{Key: "logins", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
			{Key: "loginProvider", Value: "github"},
			{Key: "providerKey", Value: "42"},
		}}}}},
		ElemMatch{Field: "logins", Fields: map[string]string{"providerKey": "42", "loginProvider": "github"}}.ToBSON())
	require.Equal(t,
		bson.D{{Key: "$and", Value: bson.A{bson.D{{Key: "a", Value: "1"}}}}},
		And{Eq{Field: "a", Value: "1"}}.ToBSON())
}

package repo

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/car_export/internal/models"
	"github.com/Skotchmaster/car_export/internal/util"
)

// Runs against a real server: CONTACT_MONGO_TEST_URI=mongodb://localhost:27017 go test ./internal/repo
func TestMongoContactStore(t *testing.T) {
	uri := os.Getenv("CONTACT_MONGO_TEST_URI")
	if uri == "" {
		t.Skip("CONTACT_MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	db := "car_export_test_" + uuid.NewString()[:8]
	store, err := NewMongoContactStore(ctx, uri, db)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.coll.Database().Drop(context.Background())
		_ = store.Close(context.Background())
	})

	first := models.ContactMessage{Name: "A", Email: "a@example.com", Message: "one", Status: models.ContactStatusNew}
	second := models.ContactMessage{Name: "B", Email: "b@example.com", Message: "two", Status: models.ContactStatusNew}
	require.NoError(t, store.CreateContact(ctx, &first))
	require.NoError(t, store.CreateContact(ctx, &second))
	assert.NotEqual(t, uuid.Nil, first.ID)

	p := util.ParseListParams(url.Values{"limit": {"1"}}.Get, map[string]string{"createdAt": "created_at"}, "createdAt", true)
	total, items, err := store.ListContacts(ctx, p, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 1)

	updated, err := store.UpdateContactStatus(ctx, first.ID, models.ContactStatusResponded)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusResponded, updated.Status)
	assert.Equal(t, first.ID, updated.ID)

	total, _, err = store.ListContacts(ctx, p, models.ContactStatusResponded)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	require.NoError(t, store.DeleteContact(ctx, first.ID))
	assert.ErrorIs(t, store.DeleteContact(ctx, first.ID), ErrNotFound)
	_, err = store.UpdateContactStatus(ctx, first.ID, models.ContactStatusRead)
	assert.ErrorIs(t, err, ErrNotFound)
}

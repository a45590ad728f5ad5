package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/storage/blob"
	"github.com/magabrotheeeer/pandda-console/internal/storage/mockdb"
)

func newTestService() *ClientService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := mockdb.New(context.Background(), blob.NewMemory(), "pandda_mockdb_v1", log)
	return NewClientService(store, log)
}

func strPtr(s string) *string { return &s }

func TestClientService_Lifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := svc.Create(ctx, models.ClientInput{Name: "ACME", Email: "a@acme.test"})
	require.True(t, created.Success)
	id := created.Data.ID
	assert.NotEmpty(t, id)

	updated := svc.Update(ctx, id, models.ClientPatch{Phone: strPtr("123")})
	require.True(t, updated.Success)
	assert.Equal(t, "ACME", updated.Data.Name)
	assert.Equal(t, "a@acme.test", updated.Data.Email)
	require.NotNil(t, updated.Data.Phone)
	assert.Equal(t, "123", *updated.Data.Phone)

	got := svc.Get(ctx, id)
	require.True(t, got.Success)
	require.NotNil(t, got.Data)
	assert.Equal(t, *updated.Data.Phone, *got.Data.Phone)

	deleted := svc.Delete(ctx, id)
	require.True(t, deleted.Success)

	list := svc.List(ctx)
	require.True(t, list.Success)
	for _, c := range list.Data {
		assert.NotEqual(t, id, c.ID)
	}
}

func TestClientService_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   models.ClientInput
	}{
		{name: "no name", in: models.ClientInput{Email: "a@acme.test"}},
		{name: "no email", in: models.ClientInput{Name: "ACME"}},
		{name: "empty", in: models.ClientInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			res := svc.Create(context.Background(), tt.in)
			assert.True(t, res.Is(result.CodeValidation))
			assert.Equal(t, "name and email are required", res.Error.Message)

			list := svc.List(context.Background())
			assert.Len(t, list.Data, 2, "в таблице остались только начальные клиенты")
		})
	}
}

func TestClientService_Seed(t *testing.T) {
	list := newTestService().List(context.Background())
	require.True(t, list.Success)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "ACME Ltda", list.Data[0].Name)
	assert.Nil(t, list.Data[0].SubscriptionID)
	assert.Equal(t, "hello@beta.test", list.Data[1].Email)
}

func TestClientService_MissingRecord(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	assert.True(t, svc.Update(ctx, "c-404", models.ClientPatch{Name: strPtr("x")}).Is(result.CodeNotFound))
	assert.True(t, svc.Delete(ctx, "c-404").Is(result.CodeNotFound))

	got := svc.Get(ctx, "c-404")
	require.True(t, got.Success)
	assert.Nil(t, got.Data)
	assert.Len(t, svc.List(ctx).Data, 2)
}

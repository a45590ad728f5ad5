package mockdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/storage/blob"
)

const testKey = "pandda_mockdb_v1"

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingBackend struct {
	blob.Backend
	putErr error
	getErr error
}

func (f *failingBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.Backend.Get(ctx, key)
}

func (f *failingBackend) Put(ctx context.Context, key string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.Backend.Put(ctx, key, data)
}

func newStore(t *testing.T, opts ...Option) (*Store, *blob.Memory) {
	t.Helper()
	mem := blob.NewMemory()
	return New(context.Background(), mem, testKey, noopLogger(), opts...), mem
}

func TestNew_SeedsWhenEmpty(t *testing.T) {
	s, _ := newStore(t)

	res := s.List(context.Background(), models.TableClients)
	require.True(t, res.Success)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "c-1", res.Data[0].ID())
	assert.Equal(t, "ACME Ltda", res.Data[0].Str("name"))
	assert.Equal(t, "+55 63 99999-0000", res.Data[0].Str("phone"))
	assert.Equal(t, "contato@acme.test", res.Data[0].Str("email"))
	assert.Nil(t, res.Data[0]["subscriptionId"])
	assert.NotEmpty(t, res.Data[0].Str(models.FieldCreatedAt))
	assert.Equal(t, "Beta SA", res.Data[1].Str("name"))

	snap := s.Snapshot()
	for _, table := range models.Tables {
		assert.Contains(t, snap, table)
	}
}

func TestNew_LoadsPersistedState(t *testing.T) {
	mem := blob.NewMemory()
	require.NoError(t, mem.Put(context.Background(), testKey,
		[]byte(`{"plans":[{"id":"p-1","name":"Basic","price":10}]}`)))

	s := New(context.Background(), mem, testKey, noopLogger())

	plans := s.List(context.Background(), models.TablePlans)
	require.True(t, plans.Success)
	require.Len(t, plans.Data, 1)
	assert.Equal(t, "Basic", plans.Data[0].Str("name"))

	clients := s.List(context.Background(), models.TableClients)
	require.True(t, clients.Success)
	assert.Empty(t, clients.Data, "сохранённое состояние заменяет начальные данные")
}

func TestNew_CorruptStateFallsBackToSeed(t *testing.T) {
	for name, raw := range map[string]string{
		"not json": "{broken",
		"null":     "null",
	} {
		t.Run(name, func(t *testing.T) {
			mem := blob.NewMemory()
			require.NoError(t, mem.Put(context.Background(), testKey, []byte(raw)))

			s := New(context.Background(), mem, testKey, noopLogger())
			res := s.List(context.Background(), models.TableClients)
			require.True(t, res.Success)
			assert.Len(t, res.Data, 2)
		})
	}
}

func TestNew_ReadErrorFallsBackToSeed(t *testing.T) {
	b := &failingBackend{Backend: blob.NewMemory(), getErr: errors.New("connection refused")}
	s := New(context.Background(), b, testKey, noopLogger())

	res := s.List(context.Background(), models.TableClients)
	require.True(t, res.Success)
	assert.Len(t, res.Data, 2)
}

func TestList_UnknownTableIsEmpty(t *testing.T) {
	s, _ := newStore(t)
	res := s.List(context.Background(), "nothing")
	require.True(t, res.Success)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
}

func TestList_ReturnsCopies(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	res := s.List(ctx, models.TableClients)
	res.Data[0]["name"] = "mutated"

	again := s.List(ctx, models.TableClients)
	assert.Equal(t, "ACME Ltda", again.Data[0].Str("name"))
}

func TestCreate(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, mem := newStore(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	res := s.Create(ctx, models.TablePlans, models.Record{"name": "Basic", "price": 10.0})
	require.True(t, res.Success)
	assert.Regexp(t, `^pla-[0-9a-z]{7}$`, res.Data.ID())
	assert.Equal(t, "2026-03-01T12:00:00Z", res.Data.Str(models.FieldCreatedAt))

	raw, err := mem.Get(ctx, testKey)
	require.NoError(t, err)
	var st State
	require.NoError(t, json.Unmarshal(raw, &st))
	require.Len(t, st[models.TablePlans], 1)
	assert.Equal(t, res.Data.ID(), st[models.TablePlans][0].ID())
}

func TestCreate_KeepsSuppliedFields(t *testing.T) {
	s, _ := newStore(t)
	res := s.Create(context.Background(), models.TableServers, models.Record{
		"id":        "srv-fixed",
		"name":      "edge",
		"createdAt": "2020-01-01T00:00:00Z",
	})
	require.True(t, res.Success)
	assert.Equal(t, "srv-fixed", res.Data.ID())
	assert.Equal(t, "2020-01-01T00:00:00Z", res.Data.Str(models.FieldCreatedAt))
}

func TestCreate_DuplicateIDIsAppended(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.True(t, s.Create(ctx, models.TableClients, models.Record{"id": "c-1", "name": "dup"}).Success)
	res := s.List(ctx, models.TableClients)
	assert.Len(t, res.Data, 3)

	read := s.Read(ctx, models.TableClients, "c-1")
	assert.Equal(t, "ACME Ltda", read.Data.Str("name"), "читается первая запись с таким id")
}

func TestCreate_RegeneratesCollidingID(t *testing.T) {
	ids := []string{"cli-aaaaaaa", "cli-aaaaaaa", "cli-bbbbbbb"}
	var mu sync.Mutex
	gen := func(string) string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[0]
		ids = ids[1:]
		return id
	}
	s, _ := newStore(t, WithIDGenerator(gen))
	ctx := context.Background()

	first := s.Create(ctx, models.TableClients, models.Record{"name": "one"})
	second := s.Create(ctx, models.TableClients, models.Record{"name": "two"})
	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, "cli-aaaaaaa", first.Data.ID())
	assert.Equal(t, "cli-bbbbbbb", second.Data.ID())
}

func TestCreate_NilRecord(t *testing.T) {
	s, _ := newStore(t)
	res := s.Create(context.Background(), models.TableApps, nil)
	require.True(t, res.Success)
	assert.NotEmpty(t, res.Data.ID())
}

func TestCreate_SaveFailureStillSucceeds(t *testing.T) {
	b := &failingBackend{Backend: blob.NewMemory(), putErr: errors.New("quota exceeded")}
	s := New(context.Background(), b, testKey, noopLogger())
	ctx := context.Background()

	res := s.Create(ctx, models.TableClients, models.Record{"name": "Gamma"})
	require.True(t, res.Success)

	list := s.List(ctx, models.TableClients)
	assert.Len(t, list.Data, 3)
}

func TestRead(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	found := s.Read(ctx, models.TableClients, "c-2")
	require.True(t, found.Success)
	assert.Equal(t, "Beta SA", found.Data.Str("name"))

	missing := s.Read(ctx, models.TableClients, "c-404")
	require.True(t, missing.Success)
	assert.Nil(t, missing.Data)
}

func TestUpdate(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	res := s.Update(ctx, models.TableClients, "c-1", models.Record{"phone": "+55 11 90000-0000", "extra": true})
	require.True(t, res.Success)
	assert.Equal(t, "ACME Ltda", res.Data.Str("name"))
	assert.Equal(t, "+55 11 90000-0000", res.Data.Str("phone"))
	assert.Equal(t, true, res.Data["extra"])

	read := s.Read(ctx, models.TableClients, "c-1")
	assert.Equal(t, "+55 11 90000-0000", read.Data.Str("phone"))
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := newStore(t)
	res := s.Update(context.Background(), models.TableClients, "c-404", models.Record{"name": "x"})
	assert.False(t, res.Success)
	assert.True(t, res.Is(result.CodeNotFound))
}

func TestDelete(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	res := s.Delete(ctx, models.TableClients, "c-1")
	require.True(t, res.Success)
	assert.Equal(t, "ACME Ltda", res.Data.Str("name"))

	list := s.List(ctx, models.TableClients)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "c-2", list.Data[0].ID())

	again := s.Delete(ctx, models.TableClients, "c-1")
	assert.True(t, again.Is(result.CodeNotFound))
}

func TestStore_SurvivesReload(t *testing.T) {
	s, mem := newStore(t)
	ctx := context.Background()

	created := s.Create(ctx, models.TableServers, models.Record{"name": "edge-1"})
	require.True(t, created.Success)
	require.True(t, s.Delete(ctx, models.TableClients, "c-2").Success)

	reloaded := New(ctx, mem, testKey, noopLogger())
	servers := reloaded.List(ctx, models.TableServers)
	require.Len(t, servers.Data, 1)
	assert.Equal(t, created.Data.ID(), servers.Data[0].ID())

	clients := reloaded.List(ctx, models.TableClients)
	require.Len(t, clients.Data, 1)
	assert.Equal(t, "c-1", clients.Data[0].ID())
}

func TestHooks(t *testing.T) {
	var changes []Change
	s, _ := newStore(t, WithHook(func(_ context.Context, c Change) { changes = append(changes, c) }))
	ctx := context.Background()

	created := s.Create(ctx, models.TableApps, models.Record{"name": "tv"})
	s.Update(ctx, models.TableApps, created.Data.ID(), models.Record{"name": "tv2"})
	s.Read(ctx, models.TableApps, created.Data.ID())
	s.Update(ctx, models.TableApps, "app-404", models.Record{})
	s.Delete(ctx, models.TableApps, created.Data.ID())

	require.Len(t, changes, 3)
	assert.Equal(t, OpCreate, changes[0].Op)
	assert.Equal(t, OpUpdate, changes[1].Op)
	assert.Equal(t, "tv2", changes[1].Data.Str("name"))
	assert.Equal(t, OpDelete, changes[2].Op)
	for _, c := range changes {
		assert.Equal(t, models.TableApps, c.Table)
		assert.Equal(t, created.Data.ID(), c.ID)
	}
}

func TestLatency_Cancelled(t *testing.T) {
	s, _ := newStore(t, WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list := s.List(ctx, models.TableClients)
	assert.True(t, list.Is(result.CodeList))

	created := s.Create(ctx, models.TableClients, models.Record{"name": "x"})
	assert.True(t, created.Is(result.CodeCreate))

	read := s.Read(ctx, models.TableClients, "c-1")
	assert.True(t, read.Is(result.CodeGet))

	updated := s.Update(ctx, models.TableClients, "c-1", nil)
	assert.True(t, updated.Is(result.CodeUpdate))

	deleted := s.Delete(ctx, models.TableClients, "c-1")
	assert.True(t, deleted.Is(result.CodeDelete))

	assert.Len(t, s.Snapshot()[models.TableClients], 2, "отменённые операции не меняют состояние")
}

func TestLatency_Waits(t *testing.T) {
	s, _ := newStore(t, WithLatency(20*time.Millisecond))
	started := time.Now()
	res := s.List(context.Background(), models.TableClients)
	require.True(t, res.Success)
	assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)
}

func TestHookPanicKeepsResult(t *testing.T) {
	var calls int
	s, _ := newStore(t,
		WithHook(func(context.Context, Change) { panic("boom") }),
		WithHook(func(context.Context, Change) { calls++ }),
	)
	ctx := context.Background()

	res := s.Create(ctx, models.TableClients, models.Record{"name": "x"})
	require.True(t, res.Success)
	assert.Equal(t, 1, calls)

	got := s.Read(ctx, models.TableClients, res.Data.ID())
	require.True(t, got.Success)
	require.NotNil(t, got.Data)
	assert.Equal(t, "x", got.Data.Str("name"))

	upd := s.Update(ctx, models.TableClients, res.Data.ID(), models.Record{"name": "y"})
	assert.True(t, upd.Success)
	del := s.Delete(ctx, models.TableClients, res.Data.ID())
	assert.True(t, del.Success)
	assert.Equal(t, 3, calls)
}

type panickingBackend struct {
	blob.Backend
	mu    sync.Mutex
	armed bool
}

func (p *panickingBackend) arm(v bool) {
	p.mu.Lock()
	p.armed = v
	p.mu.Unlock()
}

func (p *panickingBackend) Put(ctx context.Context, key string, data []byte) error {
	p.mu.Lock()
	armed := p.armed
	p.mu.Unlock()
	if armed {
		panic("disk on fire")
	}
	return p.Backend.Put(ctx, key, data)
}

// listWithin выполняет List в отдельной горутине и падает, если хранилище зависло.
func listWithin(t *testing.T, s *Store, table string) result.Result[[]models.Record] {
	t.Helper()
	done := make(chan result.Result[[]models.Record], 1)
	go func() { done <- s.List(context.Background(), table) }()
	select {
	case res := <-done:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("store is locked after a panic")
		return result.Result[[]models.Record]{}
	}
}

func TestBackendPanicReleasesLock(t *testing.T) {
	b := &panickingBackend{Backend: blob.NewMemory()}
	s := New(context.Background(), b, testKey, noopLogger())
	ctx := context.Background()

	b.arm(true)
	res := s.Create(ctx, models.TableClients, models.Record{"name": "x"})
	assert.True(t, res.Is(result.CodeCreate))
	require.True(t, listWithin(t, s, models.TableClients).Success)

	upd := s.Update(ctx, models.TableClients, "c-1", models.Record{"name": "y"})
	assert.True(t, upd.Is(result.CodeUpdate))
	require.True(t, listWithin(t, s, models.TableClients).Success)

	del := s.Delete(ctx, models.TableClients, "c-1")
	assert.True(t, del.Is(result.CodeDelete))
	require.True(t, listWithin(t, s, models.TableClients).Success)

	b.arm(false)
	ok := s.Create(ctx, models.TableApps, models.Record{"name": "after"})
	assert.True(t, ok.Success)
}

func TestIDGeneratorPanicReleasesLock(t *testing.T) {
	s, _ := newStore(t, WithIDGenerator(func(string) string { panic("no entropy") }))

	res := s.Create(context.Background(), models.TableClients, models.Record{"name": "x"})
	assert.True(t, res.Is(result.CodeCreate))

	list := listWithin(t, s, models.TableClients)
	require.True(t, list.Success)
	assert.Len(t, list.Data, 2)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	s, _ := newStore(t, WithMetrics(reg))
	ctx := context.Background()

	s.List(ctx, models.TableClients)
	s.Update(ctx, models.TableClients, "c-404", nil)

	expected := `
# HELP mockdb_operations_total Количество операций хранилища по таблицам и исходу.
# TYPE mockdb_operations_total counter
mockdb_operations_total{op="list",outcome="ok",table="clients"} 1
mockdb_operations_total{op="update",outcome="error",table="clients"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "mockdb_operations_total"))

	// повторная регистрация в том же реестре переиспользует коллекторы
	second := New(ctx, blob.NewMemory(), testKey, noopLogger(), WithMetrics(reg))
	second.List(ctx, models.TableClients)
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.ops.WithLabelValues(models.TableClients, OpList, "ok")))
}

func TestMakeID(t *testing.T) {
	assert.Regexp(t, `^cli-[0-9a-z]{7}$`, MakeID(models.TableClients))
	assert.Regexp(t, `^ab-[0-9a-z]{7}$`, MakeID("ab"))
	assert.NotEqual(t, MakeID("subscriptions"), MakeID("subscriptions"))
}

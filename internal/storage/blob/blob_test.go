package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/pandda-console/internal/config"
)

// exerciseBackend проверяет общий контракт драйвера.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Get(ctx, "pandda_mockdb_v1")
	require.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, b.Put(ctx, "pandda_mockdb_v1", []byte(`{"clients":[]}`)))
	got, err := b.Get(ctx, "pandda_mockdb_v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"clients":[]}`, string(got))

	require.NoError(t, b.Put(ctx, "pandda_mockdb_v1", []byte(`{"clients":[{"id":"c-1"}]}`)))
	got, err = b.Get(ctx, "pandda_mockdb_v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"clients":[{"id":"c-1"}]}`, string(got))

	require.NoError(t, b.Put(ctx, "pandda_session_v1", []byte(`{"user":{"id":"u-admin"}}`)))
	require.NoError(t, b.Delete(ctx, "pandda_session_v1"))
	_, err = b.Get(ctx, "pandda_session_v1")
	require.ErrorIs(t, err, ErrNotExist)

	require.NoError(t, b.Delete(ctx, "never_written"), "удаление отсутствующего ключа не ошибка")
	assert.Error(t, b.Put(ctx, "../escape", []byte("x")))
}

func TestMemory(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	data := []byte("abc")
	require.NoError(t, m.Put(context.Background(), "k", data))
	data[0] = 'z'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	f, err := NewFile(dir)
	require.NoError(t, err)
	exerciseBackend(t, f)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "временные файлы не должны оставаться")
	assert.Equal(t, "pandda_mockdb_v1.json", entries[0].Name())
}

func TestFile_EmptyDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	r, err := NewRedis(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	exerciseBackend(t, r)
	assert.Zero(t, mr.TTL("pandda_mockdb_v1"), "ключ без срока жизни")
}

func TestRedis_InvalidAddr(t *testing.T) {
	r, err := NewRedis(context.Background(), config.RedisConnection{AddressRedis: "127.0.0.1:1"})
	assert.Nil(t, r)
	assert.Error(t, err)

	_, err = NewRedis(context.Background(), config.RedisConnection{})
	assert.Error(t, err)
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "console.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	exerciseBackend(t, s)
}

func TestNew_Drivers(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		want    any
		wantErr bool
	}{
		{
			name:   "default is memory",
			mutate: func(cfg *config.Config) { cfg.Storage.Driver = "" },
			want:   &Memory{},
		},
		{
			name: "file",
			mutate: func(cfg *config.Config) {
				cfg.Storage.Driver = DriverFile
				cfg.Storage.FileDir = t.TempDir()
			},
			want: &File{},
		},
		{
			name: "redis",
			mutate: func(cfg *config.Config) {
				cfg.Storage.Driver = DriverRedis
				cfg.AddressRedis = mr.Addr()
			},
			want: &Redis{},
		},
		{
			name: "sqlite",
			mutate: func(cfg *config.Config) {
				cfg.Storage.Driver = DriverSQLite
				cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "console.db")
			},
			want: &SQLite{},
		},
		{
			name:    "postgres without dsn",
			mutate:  func(cfg *config.Config) { cfg.Storage.Driver = DriverPostgres },
			wantErr: true,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *config.Config) { cfg.Storage.Driver = "etcd" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.mutate(cfg)

			b, err := New(context.Background(), cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { b.Close() })
			assert.IsType(t, tt.want, b)
		})
	}
}

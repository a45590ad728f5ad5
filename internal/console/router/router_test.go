package router

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func page(text string) RenderFunc {
	return func(_ context.Context, out *Outlet) error {
		out.Append(template.HTML("<h1>" + text + "</h1>"))
		return nil
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":          "/",
		"#":         "/",
		"#/":        "/",
		"#/clients": "/clients",
		"/plans":    "/plans",
		"apps":      "/apps",
		" #/login ": "/login",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestRouter_Navigate(t *testing.T) {
	out := &Outlet{}
	r := New(out, newNoopLogger(),
		Route{Path: "/", Render: page("home")},
		Route{Path: "/clients", Render: page("clients")},
	)
	ctx := context.Background()

	require.True(t, r.Navigate(ctx, "#/clients"))
	assert.Equal(t, template.HTML("<h1>clients</h1>"), out.HTML())
	assert.Equal(t, "/clients", r.Current())

	require.True(t, r.Navigate(ctx, ""))
	assert.Equal(t, template.HTML("<h1>home</h1>"), out.HTML(), "прежнее содержимое очищается")
}

func TestRouter_NotFound(t *testing.T) {
	out := &Outlet{}
	r := New(out, newNoopLogger(), Route{Path: "/clients", Render: page("clients")})
	ctx := context.Background()

	r.Navigate(ctx, "/clients")
	assert.NotPanics(t, func() {
		assert.False(t, r.Navigate(ctx, "/nowhere"))
	})
	assert.Equal(t, template.HTML("<div>route not found</div>"), out.HTML())
}

func TestRouter_RenderFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   RenderFunc
	}{
		{
			name: "error",
			fn: func(_ context.Context, out *Outlet) error {
				out.Append("<p>partial</p>")
				return errors.New("no data")
			},
		},
		{
			name: "panic",
			fn: func(context.Context, *Outlet) error {
				panic("nil map")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &Outlet{}
			r := New(out, newNoopLogger(), Route{Path: "/broken", Render: tt.fn})

			assert.NotPanics(t, func() {
				assert.False(t, r.Navigate(context.Background(), "#/broken"))
			})
			assert.Equal(t, template.HTML("<div>render failed</div>"), out.HTML())
		})
	}
}

func TestRouter_ResolveIsolatedOutlets(t *testing.T) {
	r := New(&Outlet{}, newNoopLogger(), Route{Path: "/plans", Render: page("plans")})

	a, b := &Outlet{}, &Outlet{}
	require.True(t, r.Resolve(context.Background(), "/plans", a))
	assert.False(t, r.Resolve(context.Background(), "/apps", b))

	assert.Equal(t, template.HTML("<h1>plans</h1>"), a.HTML())
	assert.Equal(t, template.HTML("<div>route not found</div>"), b.HTML())
	assert.Empty(t, r.Current(), "Resolve не меняет текущую навигацию")
}

func TestRouter_Handle(t *testing.T) {
	r := New(&Outlet{}, newNoopLogger())
	assert.False(t, r.Has("/servers"))
	r.Handle("#/servers", page("servers"))
	assert.True(t, r.Has("/servers"))
}

func TestRouter_Start(t *testing.T) {
	out := &Outlet{}
	r := New(out, newNoopLogger(),
		Route{Path: "/", Render: page("home")},
		Route{Path: "/apps", Render: page("apps")},
	)
	changes := make(chan string)
	done := make(chan struct{})
	go func() {
		r.Start(context.Background(), "#/", changes)
		close(done)
	}()

	changes <- "#/apps"
	changes <- "#/missing"
	changes <- "#/apps"
	close(changes)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start не завершился после закрытия канала")
	}
	assert.Equal(t, "/apps", r.Current())
	assert.Equal(t, template.HTML("<h1>apps</h1>"), out.HTML())
}

func TestRouter_StartCancelled(t *testing.T) {
	r := New(&Outlet{}, newNoopLogger(), Route{Path: "/", Render: page("home")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		r.Start(ctx, "/", make(chan string))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start не завершился после отмены контекста")
	}
	assert.Equal(t, "/", r.Current())
}

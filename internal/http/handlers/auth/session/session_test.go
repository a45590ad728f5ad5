package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/pandda-console/internal/http/handlers/auth/session"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

type fakeService struct {
	sess *models.Session
}

func (f fakeService) Session(context.Context) *models.Session { return f.sess }

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name string
		sess *models.Session
		want string
	}{
		{name: "anonymous", want: `{"success":true}`},
		{
			name: "signed in",
			sess: &models.Session{User: models.Identity{ID: "u-common", Email: "user@pandda.test", Role: "common"}, Token: "t"},
			want: `{"success":true,"data":{"user":{"id":"u-common","email":"user@pandda.test","role":"common"},"token":"t"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			session.New(fakeService{sess: tt.sess}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/session", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tt.want, rr.Body.String())
		})
	}
}

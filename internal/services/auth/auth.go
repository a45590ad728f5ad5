// Package services содержит сервис сессии консоли: вход по фиксированному
// списку учётных записей, выход и выдачу текущей сессии.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/pandda-console/internal/config"
	"github.com/magabrotheeeer/pandda-console/internal/lib/jwt"
	"github.com/magabrotheeeer/pandda-console/internal/lib/password"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/storage/blob"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgInternal           = "internal error"
	msgNoSession          = "no active session"
	msgInvalidToken       = "invalid session token"
)

// SessionStore хранит сериализованную сессию под отдельным ключом.
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// AuthService держит единственную на процесс сессию. Последний вызов
// Login или Logout определяет её состояние.
type AuthService struct {
	mu       sync.RWMutex
	session  *models.Session
	accounts []models.Account
	store    SessionStore
	key      string
	maker    jwt.Maker
	log      *slog.Logger
	now      func() time.Time
}

// HashAccounts превращает учётные записи из конфига в список допуска с bcrypt-хешами.
func HashAccounts(accounts []config.Account) ([]models.Account, error) {
	const op = "services.auth.HashAccounts"
	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		hash, err := password.Hash(a.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, a.Email, err)
		}
		out = append(out, models.Account{ID: a.ID, Email: a.Email, PasswordHash: hash, Role: a.Role})
	}
	return out, nil
}

// NewAuthService создает новый экземпляр AuthService. Сессия изначально анонимная,
// сохранённая восстанавливается вызовом Init.
func NewAuthService(accounts []models.Account, store SessionStore, key string, maker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		accounts: accounts,
		store:    store,
		key:      key,
		maker:    maker,
		log:      log,
		now:      time.Now,
	}
}

// Init восстанавливает сохранённую сессию. Отсутствующая, повреждённая
// или просроченная сессия означает анонимное состояние.
func (s *AuthService) Init(ctx context.Context) {
	const op = "services.auth.Init"
	log := s.log.With(slog.String("op", op))

	raw, err := s.store.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotExist) {
		return
	}
	if err != nil {
		log.Error("failed to read session", sl.Err(err))
		return
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil || sess.User.ID == "" {
		log.Warn("stored session is corrupt, starting anonymous")
		return
	}
	if sess.Token != "" {
		if _, err := s.maker.Parse(sess.Token); err != nil {
			log.Info("stored session token rejected, starting anonymous", sl.Err(err))
			return
		}
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()
	log.Info("session restored", slog.String("email", sess.User.Email))
}

// Session возвращает копию текущей сессии или nil.
func (s *AuthService) Session(_ context.Context) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

// Current возвращает идентичность текущей сессии или nil.
func (s *AuthService) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	id := s.session.User
	return &id
}

// Login проверяет учётные данные по списку допуска и открывает сессию.
// Неуспешный вход не меняет текущую сессию.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (res result.Result[models.Session]) {
	const op = "services.auth.Login"
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("login panicked", slog.String("op", op), slog.Any("panic", r))
			res = result.Fail[models.Session](result.CodeAuth, msgInternal)
		}
	}()

	email = strings.TrimSpace(email)
	var account *models.Account
	for i := range s.accounts {
		if s.accounts[i].Email == email && password.Compare(s.accounts[i].PasswordHash, rawPassword) == nil {
			account = &s.accounts[i]
			break
		}
	}
	if account == nil {
		return result.Fail[models.Session](result.CodeInvalidCredentials, msgInvalidCredentials)
	}

	id := models.Identity{ID: account.ID, Email: account.Email, Role: account.Role}
	token, err := s.maker.Issue(id)
	if err != nil {
		s.log.Error("failed to issue session token", slog.String("op", op), sl.Err(err))
		return result.Fail[models.Session](result.CodeAuth, msgInternal)
	}
	now := s.now().UTC()
	sess := models.Session{User: id, Token: token, CreatedAt: &now}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	s.persist(ctx, sess)
	s.log.Info("login", slog.String("email", id.Email), slog.String("role", id.Role))
	return result.OK(sess)
}

// Logout закрывает сессию. Успешен и при отсутствии сессии.
func (s *AuthService) Logout(ctx context.Context) result.Result[struct{}] {
	const op = "services.auth.Logout"

	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		s.log.Error("failed to clear stored session", slog.String("op", op), sl.Err(err))
	}
	return result.OK(struct{}{})
}

// Authenticate проверяет токен запроса: подпись должна быть верной,
// а сам токен совпадать с токеном текущей сессии.
func (s *AuthService) Authenticate(_ context.Context, token string) result.Result[models.Identity] {
	claims, err := s.maker.Parse(token)
	if err != nil {
		return result.Fail[models.Identity](result.CodeUnauthorized, msgInvalidToken)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return result.Fail[models.Identity](result.CodeUnauthorized, msgNoSession)
	}
	if s.session.Token != token {
		return result.Fail[models.Identity](result.CodeUnauthorized, msgInvalidToken)
	}
	return result.OK(claims.Identity())
}

func (s *AuthService) persist(ctx context.Context, sess models.Session) {
	const op = "services.auth.persist"
	raw, err := json.Marshal(sess)
	if err != nil {
		s.log.Error("failed to encode session", slog.String("op", op), sl.Err(err))
		return
	}
	if err := s.store.Put(ctx, s.key, raw); err != nil {
		s.log.Error("failed to store session", slog.String("op", op), sl.Err(err))
	}
}

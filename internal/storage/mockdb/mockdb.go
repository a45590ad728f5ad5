// Package mockdb реализует хранилище консоли: именованные таблицы записей
// в памяти процесса, которые целиком сериализуются в один ключ blob.Backend
// после каждой мутации. При старте снимок читается обратно, а при его
// отсутствии или повреждении используется встроенный набор начальных данных.
//
// Все операции возвращают result.Result и никогда не паникуют наружу.
package mockdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/storage/blob"
)

// Операции хранилища, используются в событиях и метриках.
const (
	OpList   = "list"
	OpCreate = "create"
	OpRead   = "read"
	OpUpdate = "update"
	OpDelete = "delete"
)

const msgNotFound = "record not found"

// State сериализуемое состояние: имя таблицы -> записи в порядке вставки.
type State map[string][]models.Record

// Change описывает успешную мутацию таблицы.
type Change struct {
	Table string        `json:"table"`
	Op    string        `json:"op"`
	ID    string        `json:"id"`
	At    time.Time     `json:"at"`
	Data  models.Record `json:"data,omitempty"`
}

// Hook вызывается после каждой успешной мутации, вне блокировки хранилища.
type Hook func(ctx context.Context, c Change)

// Store хранилище таблиц записей.
type Store struct {
	mu      sync.Mutex
	state   State
	backend blob.Backend
	key     string
	log     *slog.Logger

	latency time.Duration
	hooks   []Hook
	metrics *metrics
	now     func() time.Time
	newID   func(table string) string
}

// Option настраивает Store.
type Option func(*Store)

// WithLatency задаёт искусственную задержку каждой операции.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithHook подписывает обработчик на успешные мутации.
func WithHook(h Hook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, h) }
}

// WithMetrics регистрирует метрики операций в переданном реестре.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Store) { s.metrics = newMetrics(reg) }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(fn func(table string) string) Option {
	return func(s *Store) { s.newID = fn }
}

// New создаёт хранилище и загружает состояние из backend по ключу key.
func New(ctx context.Context, backend blob.Backend, key string, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     key,
		log:     log,
		now:     time.Now,
		newID:   MakeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) State {
	const op = "mockdb.load"
	log := s.log.With(slog.String("op", op), slog.String("key", s.key))

	raw, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotExist) {
		log.Info("no persisted state, using seed dataset")
		return s.seed()
	}
	if err != nil {
		log.Error("failed to read persisted state", sl.Err(err))
		return s.seed()
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil || st == nil {
		if err == nil {
			err = errors.New("empty state")
		}
		log.Error("persisted state is corrupt", sl.Err(err))
		return s.seed()
	}
	ensureTables(st)
	log.Info("state loaded", slog.Int("tables", len(st)))
	return st
}

func (s *Store) seed() State {
	st, err := SeedState(s.now())
	if err != nil {
		s.log.Error("failed to build seed dataset", sl.Err(err))
		st = State{}
	}
	ensureTables(st)
	return st
}

func ensureTables(st State) {
	for _, t := range models.Tables {
		if st[t] == nil {
			st[t] = []models.Record{}
		}
	}
}

// save вызывается под s.mu. Ошибки записи логируются и не доходят до вызывающего.
func (s *Store) save(ctx context.Context) {
	const op = "mockdb.save"
	raw, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error("failed to encode state", slog.String("op", op), sl.Err(err))
		return
	}
	if err := s.backend.Put(ctx, s.key, raw); err != nil {
		s.log.Error("failed to persist state", slog.String("op", op), sl.Err(err))
	}
}

func (s *Store) delay(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notify вызывается без s.mu. Паника хука логируется и не меняет результат операции.
func (s *Store) notify(ctx context.Context, c Change) {
	for _, h := range s.hooks {
		s.runHook(ctx, h, c)
	}
}

func (s *Store) runHook(ctx context.Context, h Hook, c Change) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("change hook panicked",
				slog.String("op", "mockdb.notify"),
				slog.String("table", c.Table),
				slog.String("change", string(c.Op)),
				slog.Any("panic", r))
		}
	}()
	h(ctx, c)
}

// guard превращает панику внутри операции в неуспешный результат.
func guard[T any](log *slog.Logger, op string, code result.Code, res *result.Result[T]) {
	if r := recover(); r != nil {
		log.Error("operation panicked", slog.String("op", op), slog.Any("panic", r))
		*res = result.Fail[T](code, fmt.Sprintf("%s failed", op))
	}
}

func (s *Store) indexOf(table, id string) int {
	return slices.IndexFunc(s.state[table], func(r models.Record) bool { return r.ID() == id })
}

// List возвращает копию всех записей таблицы в порядке вставки.
// Отсутствующая таблица даёт пустой срез.
func (s *Store) List(ctx context.Context, table string) (res result.Result[[]models.Record]) {
	defer s.observe(table, OpList, time.Now(), &res.Success)
	defer guard(s.log, "mockdb.list", result.CodeList, &res)

	if err := s.delay(ctx); err != nil {
		return result.Fail[[]models.Record](result.CodeList, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.state[table]
	out := make([]models.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Clone())
	}
	return result.OK(out)
}

// Create добавляет запись. Если id не задан, генерирует его,
// если нет времени создания, проставляет текущее.
func (s *Store) Create(ctx context.Context, table string, rec models.Record) (res result.Result[models.Record]) {
	defer s.observe(table, OpCreate, time.Now(), &res.Success)
	defer guard(s.log, "mockdb.create", result.CodeCreate, &res)

	if err := s.delay(ctx); err != nil {
		return result.Fail[models.Record](result.CodeCreate, err.Error())
	}

	out := s.insert(ctx, table, rec)
	s.notify(ctx, Change{Table: table, Op: OpCreate, ID: out.ID(), At: s.now(), Data: out.Clone()})
	return result.OK(out)
}

func (s *Store) insert(ctx context.Context, table string, rec models.Record) models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := rec.Clone()
	if stored == nil {
		stored = models.Record{}
	}
	if stored.ID() == "" {
		stored[models.FieldID] = s.uniqueID(table)
	}
	if stored.Str(models.FieldCreatedAt) == "" {
		stored[models.FieldCreatedAt] = s.now().UTC().Format(time.RFC3339Nano)
	}
	s.state[table] = append(s.state[table], stored)
	s.save(ctx)
	return stored.Clone()
}

// uniqueID вызывается под s.mu и повторяет генерацию при совпадении внутри таблицы.
func (s *Store) uniqueID(table string) string {
	for {
		id := s.newID(table)
		if s.indexOf(table, id) == -1 {
			return id
		}
	}
}

// Read возвращает запись или успешный результат с nil, если записи нет.
func (s *Store) Read(ctx context.Context, table, id string) (res result.Result[models.Record]) {
	defer s.observe(table, OpRead, time.Now(), &res.Success)
	defer guard(s.log, "mockdb.read", result.CodeGet, &res)

	if err := s.delay(ctx); err != nil {
		return result.Fail[models.Record](result.CodeGet, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(table, id)
	if idx == -1 {
		return result.OK[models.Record](nil)
	}
	return result.OK(s.state[table][idx].Clone())
}

// Update поверхностно накладывает patch на запись.
func (s *Store) Update(ctx context.Context, table, id string, patch models.Record) (res result.Result[models.Record]) {
	defer s.observe(table, OpUpdate, time.Now(), &res.Success)
	defer guard(s.log, "mockdb.update", result.CodeUpdate, &res)

	if err := s.delay(ctx); err != nil {
		return result.Fail[models.Record](result.CodeUpdate, err.Error())
	}

	out, ok := s.patch(ctx, table, id, patch)
	if !ok {
		return result.Fail[models.Record](result.CodeNotFound, msgNotFound)
	}
	s.notify(ctx, Change{Table: table, Op: OpUpdate, ID: id, At: s.now(), Data: out.Clone()})
	return result.OK(out)
}

func (s *Store) patch(ctx context.Context, table, id string, patch models.Record) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(table, id)
	if idx == -1 {
		return nil, false
	}
	merged := s.state[table][idx].Merge(patch)
	s.state[table][idx] = merged
	s.save(ctx)
	return merged.Clone(), true
}

// Delete удаляет запись и возвращает её.
func (s *Store) Delete(ctx context.Context, table, id string) (res result.Result[models.Record]) {
	defer s.observe(table, OpDelete, time.Now(), &res.Success)
	defer guard(s.log, "mockdb.delete", result.CodeDelete, &res)

	if err := s.delay(ctx); err != nil {
		return result.Fail[models.Record](result.CodeDelete, err.Error())
	}

	removed, ok := s.remove(ctx, table, id)
	if !ok {
		return result.Fail[models.Record](result.CodeNotFound, msgNotFound)
	}
	s.notify(ctx, Change{Table: table, Op: OpDelete, ID: id, At: s.now()})
	return result.OK(removed)
}

func (s *Store) remove(ctx context.Context, table, id string) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(table, id)
	if idx == -1 {
		return nil, false
	}
	removed := s.state[table][idx]
	s.state[table] = slices.Delete(s.state[table], idx, idx+1)
	s.save(ctx)
	return removed, true
}

// Snapshot возвращает копию текущего состояния.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(State, len(s.state))
	for table, recs := range s.state {
		cp := make([]models.Record, 0, len(recs))
		for _, r := range recs {
			cp = append(cp, r.Clone())
		}
		out[table] = cp
	}
	return out
}

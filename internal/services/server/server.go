// Package services содержит сервис данных серверов.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/services/crud"
)

const msgLinkedApps = "server is linked to apps, remove the apps first"

// ServerService управляет таблицей серверов и не даёт удалить сервер,
// на который ссылается хотя бы одно приложение.
type ServerService struct {
	*crud.Service[models.Server, models.ServerInput, models.ServerPatch]
	log  *slog.Logger
	msgs crud.Messages
}

// NewServerService создает новый экземпляр ServerService.
func NewServerService(store crud.Store, log *slog.Logger) *ServerService {
	msgs := crud.MessagesFor("server", "name is required")
	return &ServerService{
		Service: crud.New[models.Server, models.ServerInput, models.ServerPatch](store, models.TableServers, msgs, log),
		log:     log,
		msgs:    msgs,
	}
}

// Delete удаляет сервер, если ни одно приложение на него не ссылается.
func (s *ServerService) Delete(ctx context.Context, id string) (res result.Result[models.Server]) {
	const op = "servers.delete"
	defer crud.Guard(s.log, op, result.CodeDelete, s.msgs.Delete, &res)

	// неуспешный список приложений трактуется как пустой
	apps := s.Store().List(ctx, models.TableApps)
	if !apps.Success {
		s.log.Warn("failed to list apps for link check", slog.String("op", op), sl.Fail(apps.Error))
	}
	for _, app := range apps.Data {
		if app.Str(models.FieldServerID) == id {
			return result.Fail[models.Server](result.CodeFKViolation, msgLinkedApps)
		}
	}
	return s.Service.Delete(ctx, id)
}

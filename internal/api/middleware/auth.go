package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	identityClient "github.com/mentorweb/MW-SchedulingService/internal/integrations/identityservice"
)

// Заголовок с ID аутентифицированного пользователя
// Проставляется API-гейтвеем после проверки токена
const headerUserID = "X-User-ID"

type actorContextKey struct{}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*identityClient.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth строит ActorContext по заголовку X-User-ID
// Роль и статус учетной записи берутся из IdentityService, а не из
// запроса: клиент не может назначить себе роль
type Auth struct {
	identityClient IdentityServiceClient
	logger         Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(identityClient IdentityServiceClient, logger Logger) *Auth {
	return &Auth{
		identityClient: identityClient,
		logger:         logger,
	}
}

// Middleware проверяет актора и кладет ActorContext в контекст запроса
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			a.logger.Warn("auth: missing or invalid %s header", headerUserID)
			handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
			return
		}

		user, err := a.identityClient.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, identityClient.ErrUserNotFound) {
				a.logger.Warn("auth: user id=%d not found", userID)
				handlers.RespondError(w, http.StatusUnauthorized, "пользователь не найден")
				return
			}
			a.logger.Error("auth: failed to get user id=%d: %v", userID, err)
			handlers.RespondInternalError(w)
			return
		}

		actor := domain.ActorContext{
			UserID:        user.ID,
			Role:          domain.Role(user.Role),
			AccountStatus: domain.AccountStatus(user.AccountStatus),
		}

		if !domain.IsValidRole(actor.Role) {
			a.logger.Error("auth: user id=%d has unknown role %q", userID, user.Role)
			handlers.RespondInternalError(w)
			return
		}

		if actor.AccountStatus == domain.AccountInactive {
			a.logger.Warn("auth: user id=%d account is inactive", userID)
			handlers.RespondForbidden(w, "учетная запись деактивирована")
			return
		}

		ctx := context.WithValue(r.Context(), actorContextKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает ActorContext, положенный Auth middleware
func ActorFromContext(ctx context.Context) (domain.ActorContext, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.ActorContext)
	return actor, ok
}

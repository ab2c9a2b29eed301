package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/models"
)

type sessionSource interface {
	GetSession(ctx context.Context) (*models.Session, error)
}

// SessionService resolves who is behind the current request.
type SessionService struct {
	source sessionSource
	logger *zap.Logger
}

// NewSessionService constructs a session service.
func NewSessionService(source sessionSource, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{source: source, logger: logger}
}

// Resolve asks the auth provider for the session tied to the cookies on ctx.
// Failures are reported in Err and treated as signed out.
func (s *SessionService) Resolve(ctx context.Context) models.SessionState {
	session, err := s.source.GetSession(ctx)
	if err != nil {
		s.logger.Warn("session lookup failed", zap.Error(err))
		return models.SessionState{Err: err}
	}
	if session == nil || session.User.ID == "" {
		return models.SessionState{}
	}
	return models.SessionState{Data: session}
}

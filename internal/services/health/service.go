package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db Pinger
}

// NewService constructs a new health service. db may be nil when the app
// runs on in-memory repositories.
func NewService(db Pinger) *Service {
	return &Service{db: db}
}

// Status returns the health payload and whether every dependency is up.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	status := map[string]any{"ok": true}
	if s.db == nil {
		return status, true
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		status["ok"] = false
		status["database"] = "unreachable"
		return status, false
	}
	status["database"] = "ok"
	return status, true
}

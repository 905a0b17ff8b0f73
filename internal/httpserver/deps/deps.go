package deps

import (
	"context"
	"time"

	"github.com/example/monitor/internal/logger"
	"github.com/example/monitor/internal/ports/primary"
)

type Deps struct {
	Logger             logger.Logger
	StartTime          time.Time
	Version            string
	Commit             string
	BuildTime          string
	Service            primary.ServiceStatusService
	Ready              func(ctx context.Context) error // nil means always ready
	RequestTimeout     time.Duration                   // per-request deadline for /api routes
	StreamWriteTimeout time.Duration                   // per-frame websocket write deadline, zero uses the handler default
}

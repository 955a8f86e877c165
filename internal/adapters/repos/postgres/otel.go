package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("moktashef/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("moktashef/internal/adapters/repos/postgres")
)

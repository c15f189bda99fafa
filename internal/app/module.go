package app

import (
    "github.com/payvue/paydesk/internal/app/api/server"
    "github.com/payvue/paydesk/internal/app/service/payment"
    "github.com/payvue/paydesk/internal/platform/blob"
    "github.com/payvue/paydesk/internal/platform/db"
    "github.com/payvue/paydesk/internal/platform/store"
    "github.com/payvue/paydesk/pkg/config"
    "github.com/payvue/paydesk/pkg/logger"
	"time"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
    logger.Module,
    config.Module,
    db.Module,
    store.Module,
    blob.Module,
    payment.Module,
    server.Module,
)

package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/api/server"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/academic"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/account"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/directory"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/eventlog"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/notification"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/payment"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/statistics"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/platform/db"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/platform/gateway"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
	"github.com/Gyanranjan-Priyam/cms-sub002/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	gateway.Module,
	directory.Module,
	notification.Module,
	eventlog.Module,
	payment.Module,
	academic.Module,
	account.Module,
	statistics.Module,
)

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Gyanranjan-Priyam/cms-sub002/docs"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/api/handlers"
	mw "github.com/Gyanranjan-Priyam/cms-sub002/internal/app/api/middleware"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/academic"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/account"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/directory"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/notification"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/payment"
	"github.com/Gyanranjan-Priyam/cms-sub002/internal/app/service/statistics"
	cfgpkg "github.com/Gyanranjan-Priyam/cms-sub002/pkg/config"
	metrics "github.com/Gyanranjan-Priyam/cms-sub002/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	ledger payment.Ledger,
	agg academic.Aggregator,
	dir *directory.Service,
	acct *account.Service,
	notif *notification.Service,
	stats *statistics.Service,
) {
	// Prometheus metrics
	if cfg != nil && cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Gateway callbacks: unauthenticated, authenticated by signature inside the service
	hooks := r.Group("/api/v1")
	hooks.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterWebhookRoutes(hooks, ledger)

	// Everything else requires a valid token
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.AuthMiddleware(cfg.Auth.JWTSecret))

	handlers.RegisterAccountRoutes(apiV1, acct, notif)
	handlers.RegisterStudentRecordRoutes(apiV1, ledger, agg, dir)

	student := apiV1.Group("/")
	student.Use(mw.RequireRoles("student"))
	handlers.RegisterPaymentRoutes(student, ledger)

	faculty := apiV1.Group("/")
	faculty.Use(mw.RequireRoles("faculty", "head_admin", "student_management"))
	handlers.RegisterAcademicRoutes(faculty, agg)

	finance := apiV1.Group("/")
	finance.Use(mw.RequireRoles("finance", "head_admin"))
	handlers.RegisterFinanceRoutes(finance, ledger, stats)

	admin := apiV1.Group("/")
	admin.Use(mw.RequireRoles("student_management", "head_admin"))
	handlers.RegisterDirectoryRoutes(admin, dir)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)

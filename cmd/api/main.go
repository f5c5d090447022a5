package main

import (
	"context"
	"fmt"
	"log"

	common_api "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/api"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/config"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/database"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/audit"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/contract"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/permission"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/plan"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/reminder"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/features/user"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/logger"
	"github.com/anhnq-lab/cic-erp-contract-sub002/internal/middleware"
	"github.com/anhnq-lab/cic-erp-contract-sub002/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute tags a constructor so Fx adds its result to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			user.NewUserRepository,
			audit.NewAuditRepository,
			permission.NewOverrideRepository,
			contract.NewContractRepository,
			plan.NewPlanRepository,

			// Services
			user.NewUserService,
			audit.NewAuditService,
			permission.NewPermissionService,
			contract.NewContractService,
			plan.NewPlanService,
			reminder.NewReminderService,

			// Interface adapters to break circular dependencies and satisfy Fx
			func(s user.UserService) audit.UserFinder { return s },
			func(s user.UserService) permission.RoleLookup { return s },
			func(s permission.PermissionService) middleware.PermissionResolver { return s },

			// Controllers
			audit.NewAuditController,
			permission.NewPermissionController,
			contract.NewContractController,
			plan.NewPlanController,

			// API Routes
			AsRoute(audit.NewAuditApi),
			AsRoute(permission.NewPermissionApi),
			AsRoute(contract.NewContractApi),
			AsRoute(plan.NewPlanApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, reminderService reminder.ReminderService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return reminderService.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return reminderService.Stop()
					},
				})
			},
		),
	)

	app.Run()
}

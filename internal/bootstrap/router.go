package bootstrap

import (
	"database/sql"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	httpapi "github.com/saokim-lighting/skl-backend/internal/api/http"
	"github.com/saokim-lighting/skl-backend/internal/api/http/middleware"
	"github.com/saokim-lighting/skl-backend/internal/auth"
	"github.com/saokim-lighting/skl-backend/internal/banners"
	"github.com/saokim-lighting/skl-backend/internal/catalog"
	"github.com/saokim-lighting/skl-backend/internal/inventory"
	"github.com/saokim-lighting/skl-backend/internal/metrics"
	"github.com/saokim-lighting/skl-backend/internal/orders"
	projecthttp "github.com/saokim-lighting/skl-backend/internal/projects/http"
	"github.com/saokim-lighting/skl-backend/internal/projects/repository"
	"github.com/saokim-lighting/skl-backend/internal/projects/service"
	"github.com/saokim-lighting/skl-backend/internal/promotions"
	"github.com/saokim-lighting/skl-backend/internal/users"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *pgxpool.Pool
	SQLDB          *sql.DB
	Cache          *redis.Client
	AuthClient     *fbauth.Client
	Log            *zap.Logger
	RateLimitRPS   int
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(metrics.GinMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id", "X-User-Id", "X-User-Email", "X-User-Name"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: false,
	}))
	if dep.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(rate.Limit(dep.RateLimitRPS), dep.RateLimitBurst))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)
	metrics.Register(r)

	userRepo := users.NewRepo(dep.DB)
	catalogRepo := catalog.NewRepo(dep.DB)
	bannerRepo := banners.NewRepo(dep.DB)
	couponRepo := promotions.NewRepo(dep.DB)
	orderRepo := orders.NewRepo(dep.DB)
	inventoryRepo := inventory.NewRepo(dep.SQLDB)

	projectRepo := repository.NewProjectRepository(dep.DB)
	taskRepo := repository.NewTaskRepository(dep.DB)
	lineRepo := repository.NewProductLineRepository(dep.DB)
	expenseRepo := repository.NewExpenseRepository(dep.DB)
	reportCache := repository.NewReportCache(dep.Cache)

	projectSvc := service.NewProjectService(projectRepo)
	taskSvc := service.NewTaskService(taskRepo, dep.Log)
	reportSvc := service.NewReportService(projectRepo, taskRepo, lineRepo, expenseRepo, reportCache, dep.Log)

	api := r.Group("/api/v1")
	api.Use(auth.FirebaseAuth(dep.AuthClient))
	api.Use(auth.WithUser(userRepo))

	users.Register(api.Group("/users", auth.RequireRole()), userRepo)

	catalog.Register(api.Group("/products", auth.RequireRole(users.RoleManager, users.RoleStaff)), catalogRepo)
	banners.Register(api.Group("/banners", auth.RequireRole(users.RoleManager, users.RoleStaff)), bannerRepo)
	promotions.Register(api.Group("/promotions", auth.RequireRole(users.RoleManager)), couponRepo)
	orders.Register(api.Group("/orders", auth.RequireRole(users.RoleManager, users.RoleStaff)), orderRepo)
	orders.RegisterInvoices(api.Group("/invoices", auth.RequireRole(users.RoleManager, users.RoleStaff)), orderRepo)
	inventory.Register(api.Group("/inventory", auth.RequireRole(users.RoleWarehouse, users.RoleManager)), inventoryRepo)

	projectHandler := projecthttp.New(projectSvc, taskSvc, reportSvc, lineRepo, expenseRepo)
	projectHandler.Register(api.Group("/projects", auth.RequireRole(users.RoleManager, users.RolePM)))

	return r
}

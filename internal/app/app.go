package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"taskmate/internal/ai"
	"taskmate/internal/config"
	"taskmate/internal/db"
	"taskmate/internal/handlers"
	"taskmate/internal/middleware"
	"taskmate/internal/pdf"
	"taskmate/internal/repositories"
	"taskmate/internal/routes"
	"taskmate/internal/services"
	"taskmate/internal/workers"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "taskmate/docs"
)

const (
	shutdownTimeout = 30 * time.Second
	fontPath        = "assets/fonts/DejaVuSans.ttf"
)

// App is the wired server: router, storage and background workers.
type App struct {
	cfg     *config.Config
	db      *sql.DB
	router  *gin.Engine
	server  *http.Server
	workers []*workers.Periodic
}

type options struct {
	reports services.ReportGenerator
	emails  services.EmailService
	memory  *repositories.MemoryStore
}

type Option func(*options)

// WithReportGenerator replaces the Gemini client.
func WithReportGenerator(g services.ReportGenerator) Option {
	return func(o *options) { o.reports = g }
}

// WithEmailService replaces the SMTP sender.
func WithEmailService(e services.EmailService) Option {
	return func(o *options) { o.emails = e }
}

// WithMemoryStore forces the in-memory store even when a DSN is configured.
func WithMemoryStore(s *repositories.MemoryStore) Option {
	return func(o *options) { o.memory = s }
}

type stores struct {
	users         repositories.UserRepository
	tasks         repositories.TaskRepository
	notifications repositories.NotificationRepository
}

// New builds the application. Storage is Postgres when database.url is set,
// the in-memory store otherwise.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{cfg: cfg}

	// === Storage ===
	var st stores
	switch {
	case o.memory != nil:
		st = memoryStores(o.memory)
	case cfg.Database.DSN != "":
		conn, err := db.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, err
		}
		a.db = conn
		st = stores{
			users:         repositories.NewUserRepository(conn),
			tasks:         repositories.NewTaskRepository(conn),
			notifications: repositories.NewNotificationRepository(conn),
		}
	default:
		log.Printf("[app] database.url is empty, using in-memory store")
		st = memoryStores(repositories.NewMemoryStore())
	}

	// === Services ===
	tokens := services.NewTokenService(services.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})

	emails := o.emails
	if emails == nil && cfg.Email.SMTPHost != "" {
		emails = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	generator := o.reports
	if generator == nil {
		generator = ai.NewGemini(cfg.AI.APIKey, cfg.AI.Model)
	}

	authService := services.NewAuthService(st.users, tokens, emails)
	userService := services.NewUserService(st.users, authService)
	notificationService := services.NewNotificationService(st.notifications)
	taskService := services.NewTaskService(st.tasks, notificationService)
	reportService := services.NewReportService(taskService, generator, cfg.AI.Timeout)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, handlers.CookieConfig{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	aiHandler := handlers.NewAIHandler(reportService, pdf.NewReportGenerator(fontPath))

	// === Gin ===
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery(cfg.IsDevelopment()))
	router.Use(middleware.ErrorDetail(cfg.IsDevelopment()))
	router.Use(corsMiddleware(cfg.Server.ClientURL))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		middleware.AuthMiddleware(authService),
		authHandler,
		userHandler,
		taskHandler,
		notificationHandler,
		aiHandler,
	)
	a.router = router

	// === Workers ===
	a.workers = []*workers.Periodic{
		workers.NewPeriodic("sweeper", cfg.Workers.SweepInterval,
			workers.NotificationSweeper(notificationService, cfg.Workers.NotificationRetention)),
		workers.NewPeriodic("reminder", cfg.Workers.ReminderInterval,
			workers.DueDateReminder(st.tasks, notificationService, cfg.Workers.ReminderWindow, nil)),
	}

	return a, nil
}

func memoryStores(m *repositories.MemoryStore) stores {
	return stores{users: m.Users(), tasks: m.Tasks(), notifications: m.Notifications()}
}

func (a *App) Handler() http.Handler { return a.router }

// Start begins serving and launches the workers. Listen errors are fatal.
func (a *App) Start(ctx context.Context) {
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// PDF and AI reports can be slow
		WriteTimeout: a.cfg.AI.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		log.Printf("Сервер запущен на %s (env=%s)", a.server.Addr, a.cfg.Server.Env)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера: ", err)
		}
	}()

	for _, w := range a.workers {
		w.Start(ctx)
	}
}

// Stop drains HTTP first, then the workers, then closes the database.
func (a *App) Stop(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}
	for _, w := range a.workers {
		if err := w.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("db: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Run is the process entrypoint: load config, serve, wait for a signal.
func Run() {
	cfg := config.LoadConfig()
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a, err := New(ctx, cfg)
	if err != nil {
		log.Fatal("Ошибка инициализации: ", err)
	}
	a.Start(ctx)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"taskmate": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				cancel()
				return a.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// corsMiddleware allows the configured client origin with credentials so the
// session cookies travel cross-origin.
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		if reqOrigin := c.GetHeader("Origin"); reqOrigin != "" && reqOrigin == origin {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

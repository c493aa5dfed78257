package server

import (
	"context"
	"net/http"
	"time"

	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/auth"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/config"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/court"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/discipline"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/email"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/equipment"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/reservation"
	"github.com/LauraVGonzalez/WebLosRoblesBases/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

// userLookup adapts the user repository to what the reservation service needs
// for confirmation emails.
type userLookup struct {
	repo *user.Repository
}

func (l *userLookup) Email(ctx context.Context, userID int) (string, string, error) {
	u, err := l.repo.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.Email, u.FirstName + " " + u.LastName, nil
}

func New(database *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	userRepo := user.NewRepository(database)
	userHandler := user.NewHandler(database, cfg.JWTSecret)
	disciplineHandler := discipline.NewHandler(database)
	courtHandler := court.NewHandler(court.NewService(court.NewRepository(database)))
	reservationHandler := reservation.NewHandler(reservation.NewService(
		reservation.NewRepository(database),
		&userLookup{repo: userRepo},
		emailService,
	))
	equipmentHandler := equipment.NewHandler(equipment.NewService(equipment.NewRepository(database)))

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PATCH("/me", userHandler.UpdateMe)

		protected.GET("/disciplines", disciplineHandler.ListDisciplines)
		protected.GET("/courts", courtHandler.ListCourts)
		protected.GET("/courts/:courtID", courtHandler.GetCourt)

		protected.POST("/reservations", reservationHandler.Book)
		protected.GET("/reservations", reservationHandler.ListMyReservations)
		protected.PATCH("/reservations/:reservationID/cancel", reservationHandler.Cancel)

		protected.GET("/equipment", equipmentHandler.ListEquipment)
		protected.GET("/equipment/:equipmentID", equipmentHandler.GetEquipment)
		protected.POST("/loans", equipmentHandler.Borrow)
		protected.GET("/loans", equipmentHandler.ListMyLoans)
		protected.GET("/loans/:loanID", equipmentHandler.GetLoan)
		protected.POST("/loans/:loanID/return", equipmentHandler.Return)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/disciplines", disciplineHandler.CreateDiscipline)
		admin.POST("/courts", courtHandler.CreateCourt)
		admin.PATCH("/courts/:courtID", courtHandler.UpdateCourt)
		admin.GET("/reservations", reservationHandler.ListAllReservations)
		admin.POST("/reservations/third-party", reservationHandler.BookThirdParty)
		admin.POST("/equipment", equipmentHandler.CreateEquipment)
		admin.PATCH("/equipment/:equipmentID", equipmentHandler.UpdateEquipment)
		admin.GET("/loans", equipmentHandler.ListAllLoans)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     database,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

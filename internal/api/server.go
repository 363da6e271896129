package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/gabadev/furduncinho047-api/docs"
	v1 "github.com/gabadev/furduncinho047-api/internal/api/handler/v1"
	"github.com/gabadev/furduncinho047-api/internal/api/middleware"
	"github.com/gabadev/furduncinho047-api/internal/config"
	"github.com/gabadev/furduncinho047-api/internal/repository"
	"github.com/gabadev/furduncinho047-api/internal/repository/dao"
	"github.com/gabadev/furduncinho047-api/internal/service"
	"github.com/gabadev/furduncinho047-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, store storage.ObjectStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	ticketRepo := repository.NewTicketRepository(
		dao.NewTicketDAO(db),
		dao.NewPaymentDAO(db),
		dao.NewCheckinLogDAO(db),
		userRepo,
	)
	settingsRepo := repository.NewEventSettingsRepository(dao.NewEventSettingsDAO(db))
	adminRepo := repository.NewAdminRepository(dao.NewAdminDAO(db))

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, conf.API)
	eventSvc := service.NewEventService(settingsRepo)
	ticketSvc := service.NewTicketService(ticketRepo, settingsRepo, store, service.NewQRIssuer(store))
	adminSvc := service.NewAdminService(adminRepo, ticketRepo)

	authHandler := v1.NewAuthHandler(conf.API, authSvc, userSvc)
	ticketHandler := v1.NewTicketHandler(ticketSvc)
	paymentHandler := v1.NewPaymentHandler(ticketSvc)
	scannerHandler := v1.NewScannerHandler(ticketSvc)
	adminHandler := v1.NewAdminHandler(adminSvc)
	eventHandler := v1.NewEventHandler(eventSvc)

	s.MountHandlers(userSvc, authHandler, ticketHandler, paymentHandler, scannerHandler, adminHandler, eventHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc v1.UserService,
	authHandler *v1.AuthHandler,
	ticketHandler *v1.TicketHandler,
	paymentHandler *v1.PaymentHandler,
	scannerHandler *v1.ScannerHandler,
	adminHandler *v1.AdminHandler,
	eventHandler *v1.EventHandler,
) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", authHandler.HandleRegister)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/auth/logout", authHandler.HandleLogout)
		public.GET("/event", eventHandler.HandleGetEvent)
	}

	// /auth/me answers for anonymous callers too, it just answers null.
	me := s.Router.Group(basePath, authenticator.OptionalJWT())
	{
		me.GET("/auth/me", authHandler.HandleMe)
	}

	tickets := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		tickets.POST("/tickets", ticketHandler.HandleCreateTicket)
		tickets.GET("/tickets/mine", ticketHandler.HandleGetMyTickets)
		tickets.GET("/tickets/:ticketID", ticketHandler.HandleGetTicket)
		tickets.POST("/tickets/:ticketID/proof", ticketHandler.HandleSubmitProof)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireAdmin(userSvc))
	{
		admin.GET("/payments", paymentHandler.HandleListPending)
		admin.POST("/payments/:paymentID/approve", paymentHandler.HandleApprovePayment)
		admin.POST("/payments/:paymentID/reject", paymentHandler.HandleRejectPayment)
		admin.POST("/scanner/validate", scannerHandler.HandleValidateScan)
		admin.GET("/dashboard", adminHandler.HandleDashboard)
		admin.PUT("/event", eventHandler.HandleUpdateEvent)
		admin.POST("/reset", adminHandler.HandleResetEvent)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Furduncinho047 API"
	docs.SwaggerInfo.Description = "Ticket sales and door validation for Furduncinho047."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

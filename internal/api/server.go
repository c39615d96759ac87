package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/pyramide/event-api/docs"
	v1 "github.com/pyramide/event-api/internal/api/handler/v1"
	"github.com/pyramide/event-api/internal/api/middleware"
	"github.com/pyramide/event-api/internal/broadcast"
	"github.com/pyramide/event-api/internal/cache"
	"github.com/pyramide/event-api/internal/config"
	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/events"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/repository"
	"github.com/pyramide/event-api/internal/repository/dao"
	"github.com/pyramide/event-api/internal/service"
)

// Deps are the connections opened by the app before the server is built.
type Deps struct {
	DB      *gorm.DB
	Cache   cache.Cache
	Events  events.Emitter
	Queue   broadcast.Queue
	Sender  service.MessageSender
	Alerter service.Alerter
	Clock   clock.Clock
}

type Server struct {
	Config    *config.AppConfig
	Router    *gin.Engine
	Feed      *v1.FeedHandler
	Broadcast *service.BroadcastService
}

type stores struct {
	accounts    *repository.CachedAccountRepository
	invitations *repository.CachedInvitationRepository
	event       *repository.CachedEventRepository
	tickets     *repository.TicketRepository
	bar         *repository.BarRepository
	incidents   *repository.IncidentRepository
	messages    *repository.MessageRepository
	codes       *repository.LoginCodeRepository
}

type handlers struct {
	auth       *v1.AuthHandler
	me         *v1.MeHandler
	invitation *v1.InvitationHandler
	ticket     *v1.TicketHandler
	bar        *v1.BarHandler
	incident   *v1.IncidentHandler
	admin      *v1.AdminHandler
	health     *v1.HealthHandler
	feed       *v1.FeedHandler
}

func NewServer(conf *config.AppConfig, deps Deps) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		Feed:   v1.NewFeedHandler(conf.API.AllowedCORSDomains),
	}

	// Ledger events go to Kafka and to connected dashboards.
	deps.Events = events.Fanout{deps.Events, s.Feed}

	s.MountMiddlewares()

	st := s.initStores(deps)
	h := s.initHandlers(deps, st)
	s.MountHandlers(middleware.NewAuthenticator(conf.API.JWTSigningKey, st.accounts), h)

	return s
}

func (s *Server) initStores(deps Deps) stores {
	redisConf := s.Config.Redis

	return stores{
		accounts: repository.NewCachedAccountRepository(
			repository.NewAccountRepository(dao.NewAccountDAO(deps.DB)), deps.Cache, redisConf.TTL, redisConf.UserTTL,
		),
		invitations: repository.NewCachedInvitationRepository(
			repository.NewInvitationRepository(dao.NewInvitationDAO(deps.DB)), deps.Cache, redisConf.TTL,
		),
		event: repository.NewCachedEventRepository(
			repository.NewEventRepository(dao.NewEventDAO(deps.DB)), deps.Cache, redisConf.TTL,
		),
		tickets:   repository.NewTicketRepository(dao.NewTicketDAO(deps.DB)),
		bar:       repository.NewBarRepository(dao.NewBarDAO(deps.DB)),
		incidents: repository.NewIncidentRepository(dao.NewIncidentDAO(deps.DB)),
		messages:  repository.NewMessageRepository(dao.NewMessageDAO(deps.DB)),
		codes:     repository.NewLoginCodeRepository(dao.NewLoginCodeDAO(deps.DB)),
	}
}

func (s *Server) initHandlers(deps Deps, st stores) handlers {
	accountSvc := service.NewAccountService(st.accounts)
	eventSvc := service.NewEventService(st.event)
	invitationSvc := service.NewInvitationService(st.invitations, st.accounts, st.event, deps.Events, deps.Clock)
	capacitySvc := service.NewCapacityService(st.event, deps.Events, deps.Clock)
	barSvc := service.NewBarService(st.bar, st.invitations, st.accounts, deps.Events, deps.Clock)
	ticketSvc := service.NewTicketService(st.tickets, st.accounts, st.invitations, st.event, barSvc, deps.Events, deps.Clock)
	incidentSvc := service.NewIncidentService(st.incidents, deps.Clock)
	authSvc := service.NewAuthService(
		st.accounts, st.codes, invitationSvc, capacitySvc, deps.Sender, deps.Alerter, deps.Clock,
		service.AuthOptions{
			CodeTTL:     s.Config.OTP.TTL,
			CodeLength:  s.Config.OTP.Length,
			MaxAttempts: s.Config.OTP.MaxAttempts,
			SendTimeout: s.Config.OTP.SendTimeout,
			Production:  s.Config.API.IsProduction(),
			IsAdmin:     s.Config.API.IsAdminUsername,
		},
	)
	s.Broadcast = service.NewBroadcastService(
		st.messages, st.accounts, deps.Queue, deps.Sender, deps.Alerter, deps.Clock, s.Config.OTP.SendTimeout,
	)

	return handlers{
		auth:       v1.NewAuthHandler(s.Config.API, authSvc, deps.Clock),
		me:         v1.NewMeHandler(accountSvc, ticketSvc, eventSvc),
		invitation: v1.NewInvitationHandler(invitationSvc),
		ticket:     v1.NewTicketHandler(ticketSvc),
		bar:        v1.NewBarHandler(barSvc),
		incident:   v1.NewIncidentHandler(incidentSvc),
		admin:      v1.NewAdminHandler(accountSvc, eventSvc, s.Broadcast),
		health:     v1.NewHealthHandler(deps.Cache),
		feed:       s.Feed,
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authn *middleware.Authenticator, h handlers) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/request-code", h.auth.HandleRequestCode)
		public.POST("/auth/verify-code", h.auth.HandleVerifyCode)
	}

	authed := s.Router.Group(basePath, authn.VerifyJWT())
	{
		authed.GET("/auth/status", h.auth.HandleStatus)
		authed.POST("/auth/logout", h.auth.HandleLogout)

		authed.GET("/me", h.me.HandleGetMe)
		authed.POST("/me/attendance", h.me.HandleSetAttendance)
		authed.GET("/me/price", h.me.HandleGetPrice)
		authed.GET("/event", h.me.HandleGetEventInfo)

		authed.GET("/invitations", h.invitation.HandleGetMyInvitations)
		authed.POST("/invitations", h.invitation.HandleCreateInvitation)
		authed.DELETE("/invitations/:invitationID", h.invitation.HandleCancelInvitation)

		authed.POST("/tickets", h.ticket.HandleGenerateTicket)
		authed.GET("/tickets/mine", h.ticket.HandleGetMyTicket)
	}

	inspectors := s.Router.Group(basePath+"/tickets", authn.VerifyJWT())
	{
		inspectors.POST("/verify", middleware.RequireCapability(domain.CapVerifyTickets), h.ticket.HandleVerifyTicket)
		inspectors.POST("/confirm-payment", middleware.RequireCapability(domain.CapConfirmPayment), h.ticket.HandleConfirmPayment)
	}

	bar := s.Router.Group(basePath+"/bar", authn.VerifyJWT(), middleware.RequireCapability(domain.CapSellBar))
	{
		bar.GET("/items", h.bar.HandleGetItems)
		bar.GET("/customers/:userID/discount", h.bar.HandleGetCustomerDiscount)
		bar.POST("/sales", h.bar.HandleRecordSale)
		bar.GET("/balance", h.bar.HandleGetMyBalance)
	}

	incidents := s.Router.Group(basePath+"/incidents", authn.VerifyJWT(), middleware.RequireCapability(domain.CapHandleIncidents))
	{
		incidents.GET("", h.incident.HandleListIncidents)
		incidents.POST("", h.incident.HandleReportIncident)
		incidents.GET("/:incidentID", h.incident.HandleGetIncident)
		incidents.PUT("/:incidentID/people-needed", h.incident.HandleSetPeopleNeeded)
		incidents.POST("/:incidentID/resolve", h.incident.HandleResolveIncident)
		incidents.POST("/:incidentID/close", h.incident.HandleCloseIncident)

		assign := middleware.RequireCapability(domain.CapAssignIncidents)
		incidents.POST("/:incidentID/assign", assign, h.incident.HandleAssignIncident)
		incidents.POST("/:incidentID/unassign", assign, h.incident.HandleUnassignIncident)
	}

	admin := s.Router.Group(basePath+"/admin", authn.VerifyJWT(), middleware.RequireCapability(domain.CapAdmin))
	{
		admin.GET("/users", h.admin.HandleListUsers)
		admin.GET("/users/:userID", h.admin.HandleGetUser)
		admin.POST("/users/:userID/ban", h.admin.HandleSetBanned)
		admin.PUT("/users/:userID/role", h.admin.HandleSetRole)

		admin.GET("/event", h.admin.HandleGetEventConfig)
		admin.PUT("/event", h.admin.HandleUpdateEventConfig)

		admin.GET("/invitations", h.invitation.HandleListInvitations)
		admin.GET("/tickets", h.ticket.HandleListTickets)

		admin.GET("/bar/items", h.bar.HandleListAllItems)
		admin.POST("/bar/items", h.bar.HandleCreateItem)
		admin.PUT("/bar/items/:itemID", h.bar.HandleUpdateItem)
		admin.DELETE("/bar/items/:itemID", h.bar.HandleRemoveItem)
		admin.PUT("/bar/items/:itemID/inventory", h.bar.HandleSetInventory)
		admin.GET("/bar/transactions", h.bar.HandleListSales)
		admin.GET("/bar/balances", h.bar.HandleListBalances)
		admin.GET("/bar/payouts", h.bar.HandleListPayouts)
		admin.POST("/bar/payouts", h.bar.HandleRecordPayout)
		admin.GET("/bar/discounts", h.bar.HandleListInviteDiscounts)
		admin.POST("/bar/discounts", h.bar.HandleSaveInviteDiscount)
		admin.DELETE("/bar/discounts/:discountID", h.bar.HandleDeleteInviteDiscount)
		admin.GET("/bar/presets", h.bar.HandleListPresetDiscounts)
		admin.POST("/bar/presets", h.bar.HandleSetPresetDiscount)
		admin.DELETE("/bar/presets/:userID", h.bar.HandleDeletePresetDiscount)

		admin.POST("/broadcast", h.admin.HandleBroadcast)
		admin.GET("/messages", h.admin.HandleMessageHistory)
		admin.POST("/messages", h.admin.HandleDirectMessage)

		admin.GET("/feed", h.feed.HandleFeed)
	}

	s.Router.GET("/", h.health.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Pyramide event API"
	docs.SwaggerInfo.Description = "Invite-only event backend: invitations, tickets, bar and security."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

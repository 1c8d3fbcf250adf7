// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/accountdelivery"
	"github.com/go-petr/pet-finance/internal/accountrepo"
	"github.com/go-petr/pet-finance/internal/accountservice"
	"github.com/go-petr/pet-finance/internal/creditcarddelivery"
	"github.com/go-petr/pet-finance/internal/creditcardrepo"
	"github.com/go-petr/pet-finance/internal/creditcardservice"
	"github.com/go-petr/pet-finance/internal/incomedelivery"
	"github.com/go-petr/pet-finance/internal/incomerepo"
	"github.com/go-petr/pet-finance/internal/incomeservice"
	"github.com/go-petr/pet-finance/internal/installmentdelivery"
	"github.com/go-petr/pet-finance/internal/installmentrepo"
	"github.com/go-petr/pet-finance/internal/installmentservice"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/internal/monthlypaymentdelivery"
	"github.com/go-petr/pet-finance/internal/monthlypaymentrepo"
	"github.com/go-petr/pet-finance/internal/monthlypaymentservice"
	"github.com/go-petr/pet-finance/internal/notificationdelivery"
	"github.com/go-petr/pet-finance/internal/notificationrepo"
	"github.com/go-petr/pet-finance/internal/notificationservice"
	"github.com/go-petr/pet-finance/internal/ownership"
	"github.com/go-petr/pet-finance/internal/transactiondelivery"
	"github.com/go-petr/pet-finance/internal/transactionrepo"
	"github.com/go-petr/pet-finance/internal/transactionservice"
	"github.com/go-petr/pet-finance/internal/userdelivery"
	"github.com/go-petr/pet-finance/internal/userrepo"
	"github.com/go-petr/pet-finance/internal/userservice"
	"github.com/go-petr/pet-finance/pkg/configpkg"
	"github.com/go-petr/pet-finance/pkg/tokenpkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Start runs the server on the configured address.
func (s *Server) Start() error {
	return s.Engine.Run(s.Config.ServerAddress)
}

// crud is implemented by every handler of an account child resource.
type crud interface {
	Create(*gin.Context)
	List(*gin.Context)
	Get(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func registerCRUD(g *gin.RouterGroup, h crud) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}

	return c
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	tokenMaker, err := tokenpkg.New(config.TokenAlgorithm, config.TokenSecretKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	if err := web.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("cannot register validators: %w", err)
	}

	authorizer := ownership.NewChecker(conn)

	userService := userservice.New(userrepo.NewRepoPGS(conn), tokenMaker, config.AccessTokenDuration())
	accountService := accountservice.New(accountrepo.NewRepoPGS(conn))
	creditCardService := creditcardservice.New(creditcardrepo.NewRepoPGS(conn), authorizer)
	incomeService := incomeservice.New(incomerepo.NewRepoPGS(conn), authorizer)
	transactionService := transactionservice.New(transactionrepo.NewRepoPGS(conn), authorizer)
	monthlyPaymentService := monthlypaymentservice.New(monthlypaymentrepo.NewRepoPGS(conn), authorizer)
	installmentService := installmentservice.New(installmentrepo.NewRepoPGS(conn), authorizer)
	notificationService := notificationservice.New(notificationrepo.NewRepoPGS(conn))

	userHandler := userdelivery.NewHandler(userService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	notificationHandler := notificationdelivery.NewHandler(notificationService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsConfig(config.CORSAllowedOrigins)))

	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/v1")

	login := v1.Group("/login")
	login.POST("/register", userHandler.Register)
	login.POST("/token", userHandler.Token)

	auth := v1.Group("", middleware.AuthMiddleware(userService))

	accounts := auth.Group("/accounts")
	registerCRUD(accounts, accountHandler)
	accounts.POST("/:id/manage-credit-cards-balance", accountHandler.Reconcile)

	registerCRUD(auth.Group("/credit-cards"), creditcarddelivery.NewHandler(creditCardService))
	registerCRUD(auth.Group("/income"), incomedelivery.NewHandler(incomeService))
	registerCRUD(auth.Group("/monthly-payments"), monthlypaymentdelivery.NewHandler(monthlyPaymentService))
	registerCRUD(auth.Group("/installments"), installmentdelivery.NewHandler(installmentService))

	transactions := auth.Group("/transactions")
	transactions.GET("/summary", transactionHandler.Summary)
	registerCRUD(transactions, transactionHandler)

	notifications := auth.Group("/notifications")
	notifications.POST("", notificationHandler.Create)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/due", notificationHandler.ListDue)
	notifications.PUT("/:id", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/imaa0/Inventory-Management/docs"
	v1 "github.com/imaa0/Inventory-Management/internal/api/handler/v1"
	"github.com/imaa0/Inventory-Management/internal/api/middleware"
	"github.com/imaa0/Inventory-Management/internal/config"
	"github.com/imaa0/Inventory-Management/internal/repository"
	"github.com/imaa0/Inventory-Management/internal/repository/dao"
	"github.com/imaa0/Inventory-Management/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	inventoryHandler := s.initInventoryHandler(db)
	s.MountHandlers(authHandler, userHandler, inventoryHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initInventoryHandler(db *gorm.DB) *v1.InventoryHandler {
	itemDAO := dao.NewItemDAO(db)
	repo := repository.NewItemRepository(itemDAO)
	svc := service.NewInventoryService(repo)
	handler := v1.NewInventoryHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, inventoryHandler *v1.InventoryHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	items := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		items.GET("/items", inventoryHandler.HandleListItems)
		items.POST("/items", inventoryHandler.HandleCreateItem)
		items.POST("/items/bulk", inventoryHandler.HandleBulkCreateItems)
		items.POST("/items/bulk-add", inventoryHandler.HandleBulkAddStock)
		items.POST("/items/bulk-deduct", inventoryHandler.HandleBulkDeductStock)
		items.GET("/items/:itemID", inventoryHandler.HandleGetItem)
		items.PUT("/items/:itemID", inventoryHandler.HandleUpdateItem)
		items.DELETE("/items/:itemID", inventoryHandler.HandleDeleteItem)
		items.POST("/items/:itemID/add-stock", inventoryHandler.HandleAddStock)
		items.POST("/items/:itemID/deduct-stock", inventoryHandler.HandleDeductStock)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Inventory Management API"
	docs.SwaggerInfo.Description = "Stock tracking with an append-only transaction ledger."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

package app

import (
	"fmt"
	"time"

	"todolist/internal/auth"
	"todolist/internal/cache"
	"todolist/internal/config"
	"todolist/internal/handlers"
	"todolist/internal/repo"
	"todolist/internal/service"
	"todolist/internal/web"

	_ "todolist/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Deps are the stores the router is built on.
type Deps struct {
	Users repo.UserRepo
	Items repo.ItemRepo
	Redis *redis.Client
}

// NewRouter builds the engine with templates, middleware and all routes.
func NewRouter(cfg config.Config, deps Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))
	Setup(r, cfg, deps)
	return r, nil
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, deps Deps) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	signer := auth.NewSigner(cfg.Session.Secret)
	sessionStore := auth.NewStore(deps.Redis, cfg.Session.TTL.Duration())
	sessions := auth.NewSessions(sessionStore, signer, cfg.Session.SecureCookie)
	userSvc := service.NewUserService(deps.Users, auth.NewHasher(cfg.Auth.BcryptCost))

	itemCache := cache.NewItemCache(deps.Redis, cfg.Redis.DefaultTTL.Duration())
	itemSvc := service.NewItemService(deps.Items, itemCache)

	respond := handlers.NewResponder(signer, cfg.Session.SecureCookie)
	site := r.Group("", auth.Identify(sessions, userSvc.Load, respond.Fail))
	registerPageRoutes(site, respond, handlers.NewPageHandler(itemSvc))
	registerAuthRoutes(site, respond, handlers.NewAuthHandler(sessions, userSvc))

	api := r.Group("/api/v1", auth.Identify(sessions, userSvc.Load, nil), auth.RequireUser())
	registerAPIRoutes(api, handlers.NewItemAPI(itemSvc))
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerPageRoutes(g *gin.RouterGroup, respond *handlers.Responder, h *handlers.PageHandler) {
	g.GET("/", respond.Page(h.Home))
	g.GET("/home/", respond.Page(h.Home))
	g.GET("/create/", respond.Page(h.CreateForm))
	g.POST("/create/", respond.Page(h.Create))
	g.GET("/delete/:id", respond.Page(h.DeleteConfirm))
	g.POST("/delete/:id", respond.Page(h.Delete))
	g.GET("/about", respond.Page(h.About))
	g.GET("/profile/", respond.Page(h.Profile))
}

func registerAuthRoutes(g *gin.RouterGroup, respond *handlers.Responder, h *handlers.AuthHandler) {
	g.GET("/login/", respond.Page(h.LoginForm))
	g.POST("/login/", respond.Page(h.Login))
	g.GET("/signup", respond.Page(h.SignupForm))
	g.POST("/signup", respond.Page(h.Signup))
	g.GET("/logout", respond.Page(h.Logout))
}

func registerAPIRoutes(g *gin.RouterGroup, h *handlers.ItemAPI) {
	g.GET("/items", h.List)
	g.POST("/items", h.Create)
	g.GET("/items/:id", h.GetByID)
	g.DELETE("/items/:id", h.Delete)
	g.GET("/profile", h.Profile)
}

package server

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/scrazdxvf/baraholka-backend/internal/config"
	"github.com/scrazdxvf/baraholka-backend/internal/discovery"
	"github.com/scrazdxvf/baraholka-backend/internal/handler"
	appmw "github.com/scrazdxvf/baraholka-backend/internal/middleware"
	"github.com/scrazdxvf/baraholka-backend/internal/repository"
	"github.com/scrazdxvf/baraholka-backend/internal/service"
	"github.com/scrazdxvf/baraholka-backend/internal/storage"
	"github.com/scrazdxvf/baraholka-backend/internal/taxonomy"
	"gorm.io/gorm"
)

type Server struct {
	e           *echo.Echo
	listingRepo repository.ListingRepository
	msgRepo     repository.MessageRepository
	notifRepo   repository.NotificationRepository
	poller      *discovery.Poller
}

func New(db *gorm.DB, cfg *config.Config, imageStore *storage.ImageStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	listingRepo := repository.NewListingRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifSvc := service.NewNotificationService(notifRepo)
	listingSvc := service.NewListingService(listingRepo, notifSvc)
	chatSvc := service.NewChatService(msgRepo, listingRepo)

	poller := discovery.NewPoller(listingSvc.ActiveListings, time.Duration(cfg.DiscoveryRefreshSeconds)*time.Second)

	listingHandler := handler.NewListingHandler(listingSvc, poller)
	moderationHandler := handler.NewModerationHandler(listingSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	uploadHandler := handler.NewUploadHandler(imageStore)

	var requireAuth, requireAdmin echo.MiddlewareFunc
	authMw, err := appmw.NewAuthMiddleware(context.Background(), cfg.AdminUIDs)
	if err != nil {
		// Without a verifier there is no way to attribute requests to an
		// actor, so authenticated routes reject instead of opening up.
		log.Printf("firebase auth unavailable, rejecting authenticated routes: %v", err)
		requireAuth = appmw.DenyAll
		requireAdmin = appmw.DenyAll
	} else {
		requireAuth = authMw.RequireAuth
		requireAdmin = authMw.RequireAdmin
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")
	api.GET("/listings", listingHandler.List)
	api.GET("/listings/:id", listingHandler.Get)
	api.GET("/categories", func(c echo.Context) error {
		return c.JSON(http.StatusOK, taxonomy.Categories)
	})
	api.GET("/cities", func(c echo.Context) error {
		return c.JSON(http.StatusOK, taxonomy.Cities)
	})

	api.POST("/listings", listingHandler.Create, requireAuth)
	api.PUT("/listings/:id", listingHandler.Update, requireAuth)
	api.DELETE("/listings/:id", listingHandler.Delete, requireAuth)
	api.POST("/listings/:id/sold", listingHandler.MarkSold, requireAuth)
	api.POST("/uploads", uploadHandler.Upload, requireAuth)

	api.GET("/listings/:id/messages", chatHandler.Thread, requireAuth)
	api.POST("/listings/:id/messages", chatHandler.Send, requireAuth)
	api.POST("/listings/:id/read", chatHandler.MarkRead, requireAuth)

	me := e.Group("/me", requireAuth)
	me.GET("/listings", listingHandler.ListMine)
	me.GET("/chats", chatHandler.ListChats)
	me.GET("/unread", chatHandler.UnreadCount)
	me.GET("/notifications", notifHandler.List)
	me.POST("/notifications/read", notifHandler.MarkAllRead)

	admin := api.Group("/admin", requireAdmin)
	admin.GET("/listings", moderationHandler.Queue)
	admin.POST("/listings/:id/approve", moderationHandler.Approve)
	admin.POST("/listings/:id/reject", moderationHandler.Reject)

	return &Server{
		e:           e,
		listingRepo: listingRepo,
		msgRepo:     msgRepo,
		notifRepo:   notifRepo,
		poller:      poller,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Poller() *discovery.Poller {
	return s.poller
}

// SetDB late-binds the database so the server can accept traffic while the
// connection is still being established.
func (s *Server) SetDB(db *gorm.DB) {
	s.listingRepo.SetDB(db)
	s.msgRepo.SetDB(db)
	s.notifRepo.SetDB(db)
}

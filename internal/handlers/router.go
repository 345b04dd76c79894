package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/metrics"
	"github.com/political-canvas/canvass-api/internal/middleware"
	"github.com/political-canvas/canvass-api/internal/repository"
	"github.com/political-canvas/canvass-api/internal/services"
	"gorm.io/gorm"
)

// Services is the full set of application services behind the HTTP API.
type Services struct {
	Auth        *services.AuthService
	Tokens      *services.TokenService
	Voters      *services.VoterService
	Contacts    *services.ContactService
	Sync        *services.SyncService
	Territories *services.TerritoryService
	Walklists   *services.WalklistService
}

// NewServices wires repositories over db into services.
func NewServices(db *gorm.DB, tokens *services.TokenService, m *metrics.Metrics) Services {
	userRepo := repository.NewUserRepository(db)
	voterRepo := repository.NewVoterRepository(db)
	territoryRepo := repository.NewTerritoryRepository(db)
	contactRepo := repository.NewContactRepository(db)
	walklistRepo := repository.NewWalklistRepository(db)

	contacts := services.NewContactService(contactRepo, voterRepo, m)

	return Services{
		Auth:        services.NewAuthService(userRepo, tokens),
		Tokens:      tokens,
		Voters:      services.NewVoterService(voterRepo),
		Contacts:    contacts,
		Sync:        services.NewSyncService(contacts, m),
		Territories: services.NewTerritoryService(territoryRepo, voterRepo, userRepo, contacts),
		Walklists:   services.NewWalklistService(walklistRepo, territoryRepo, userRepo, contacts, m),
	}
}

// RegisterRoutes mounts the API under /api. Session middleware must already be
// installed on r.
func RegisterRoutes(r gin.IRouter, svc Services) {
	guard := authz.NewGuard(svc.Tokens)
	requireAuth := middleware.RequireAuth(guard)
	can := middleware.RequireCapability

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Auth)
	voterHandler := NewVoterHandler(svc.Voters, svc.Contacts)
	territoryHandler := NewTerritoryHandler(svc.Territories)
	walklistHandler := NewWalklistHandler(svc.Walklists)
	logHandler := NewLogHandler(svc.Contacts, svc.Sync)
	statsHandler := NewStatsHandler(svc.Voters)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/volunteers", can(authz.ListVolunteers), userHandler.ListVolunteers)
			users.POST("", can(authz.ManageUsers), userHandler.CreateUser)
			users.PUT("/:id/role", can(authz.ManageUsers), userHandler.UpdateRole)
		}

		voters := api.Group("/voters")
		voters.Use(requireAuth)
		{
			voters.GET("", can(authz.ViewRecords), voterHandler.ListVoters)
			voters.POST("", can(authz.WriteVoter), voterHandler.CreateVoter)
			voters.GET("/:id", can(authz.ViewRecords), voterHandler.GetVoter)
			voters.PUT("/:id", can(authz.WriteVoter), voterHandler.UpdateVoter)
			voters.DELETE("/:id", can(authz.DeleteVoter), voterHandler.DeleteVoter)
			voters.PUT("/:id/contact", can(authz.RecordContact), voterHandler.RecordContact)
			voters.GET("/:id/last-contact", can(authz.ViewRecords), voterHandler.LastContact)
		}

		territories := api.Group("/territories")
		territories.Use(requireAuth)
		{
			territories.GET("", can(authz.ViewRecords), territoryHandler.ListTerritories)
			territories.GET("/my", can(authz.ViewRecords), territoryHandler.ListMyTerritories)
			territories.GET("/:id", can(authz.ViewRecords), territoryHandler.GetTerritory)
			territories.POST("", can(authz.ManageTerritory), territoryHandler.CreateTerritory)
			territories.PUT("/:id", can(authz.ManageTerritory), territoryHandler.UpdateTerritory)
			territories.DELETE("/:id", can(authz.ManageTerritory), territoryHandler.DeleteTerritory)
			territories.POST("/:id/assign-voters", can(authz.ManageTerritory), territoryHandler.AssignVoters)
		}

		walklists := api.Group("/walklists")
		walklists.Use(requireAuth)
		{
			walklists.GET("", can(authz.ViewRecords), walklistHandler.ListWalklists)
			walklists.GET("/my", can(authz.ViewRecords), walklistHandler.ListMyWalklists)
			walklists.GET("/:id", can(authz.ViewRecords), walklistHandler.GetWalklist)
			walklists.POST("", can(authz.CreateWalklist), walklistHandler.CreateWalklist)
			walklists.PUT("/:id", can(authz.UpdateWalklistStatus), walklistHandler.UpdateStatus)
		}

		logs := api.Group("/logs")
		logs.Use(requireAuth)
		{
			logs.GET("", can(authz.ViewRecords), logHandler.ListLogs)
			logs.POST("", logHandler.CreateLog)
		}

		api.POST("/sync", requireAuth, logHandler.Sync)

		stats := api.Group("/stats")
		stats.Use(requireAuth, can(authz.ViewRecords))
		{
			stats.GET("/party-tally", statsHandler.PartyTally)
			stats.GET("/contact-status", statsHandler.ContactStatusTally)
		}
	}
}

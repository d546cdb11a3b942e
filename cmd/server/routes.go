package main

import (
	"panotour/internal/database"
	"panotour/internal/filestore"
	"panotour/internal/handlers"
	"panotour/internal/middleware"
	"panotour/internal/services"
	"panotour/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// routeDeps carries what the API routes are built from
type routeDeps struct {
	db          *database.DB
	store       *filestore.Store
	jwtAuth     *auth.LocalJWTAuth
	iconService *services.IconService
	rateLimits  *middleware.RateLimitConfig
}

// registerRoutes mounts /health, /static and the /api surface on app.
// Fixed paths such as batch-delete and reorder are registered before /:id.
func registerRoutes(app *fiber.App, deps routeDeps) {
	userService := services.NewUserService(deps.db, deps.jwtAuth)
	projectService := services.NewProjectService(deps.db)
	groupService := services.NewSceneGroupService(deps.db)
	sceneService := services.NewSceneService(deps.db)
	hotspotService := services.NewHotspotService(deps.db)

	healthHandler := handlers.NewHealthHandler(deps.db)
	authHandler := handlers.NewLocalAuthHandler(deps.jwtAuth, userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	groupHandler := handlers.NewSceneGroupHandler(groupService)
	sceneHandler := handlers.NewSceneHandler(sceneService, deps.store)
	hotspotHandler := handlers.NewHotspotHandler(hotspotService)
	iconHandler := handlers.NewIconHandler(deps.iconService, deps.store)
	uploadHandler := handlers.NewUploadHandler(deps.store)

	app.Get("/health", healthHandler.Handle)
	app.Static(filestore.URLPrefix, deps.store.Root())

	api := app.Group("/api")
	requireAuth := middleware.LocalAuthMiddleware(deps.jwtAuth, userService)
	authLimiter := middleware.AuthRateLimiter(deps.rateLimits)
	uploadLimiter := middleware.UploadRateLimiter(deps.rateLimits)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authLimiter, authHandler.Register)
	authRoutes.Post("/login", authLimiter, authHandler.Login)
	authRoutes.Get("/me", requireAuth, authHandler.Me)

	projects := api.Group("/projects", requireAuth)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Post("/batch-delete", projectHandler.BatchDelete)
	projects.Get("/:id", projectHandler.Get)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)

	groups := api.Group("/scene-groups", requireAuth)
	groups.Get("/", groupHandler.List)
	groups.Post("/", groupHandler.Create)
	groups.Put("/:id", groupHandler.Update)
	groups.Delete("/:id", groupHandler.Delete)

	scenes := api.Group("/scenes", requireAuth)
	scenes.Post("/", uploadLimiter, sceneHandler.Create)
	scenes.Post("/reorder", sceneHandler.Reorder)
	scenes.Get("/:id", sceneHandler.Get)
	scenes.Put("/:id", sceneHandler.Update)
	scenes.Delete("/:id", sceneHandler.Delete)

	hotspots := api.Group("/hotspots", requireAuth)
	hotspots.Get("/", hotspotHandler.List)
	hotspots.Post("/", hotspotHandler.Create)
	hotspots.Post("/batch-delete", hotspotHandler.BatchDelete)
	hotspots.Put("/:id", hotspotHandler.Update)
	hotspots.Delete("/:id", hotspotHandler.Delete)

	icons := api.Group("/icons", requireAuth)
	icons.Get("/", iconHandler.List)
	icons.Post("/", uploadLimiter, iconHandler.Upload)
	icons.Delete("/:id", iconHandler.Delete)

	upload := api.Group("/upload", requireAuth, uploadLimiter)
	upload.Post("/image", uploadHandler.Image)
	upload.Post("/base64", uploadHandler.Base64)
}

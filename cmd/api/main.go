package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-studio-ops/internal/handler"
	"go-studio-ops/internal/middleware"
	"go-studio-ops/internal/model"
	"go-studio-ops/internal/repository"
	"go-studio-ops/internal/service"
	"go-studio-ops/internal/ws"
	"go-studio-ops/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Permission{}, &model.Role{}, &model.User{},
		&model.Client{}, &model.Package{}, &model.PackageItem{},
		&model.Shoot{}, &model.ShootItem{}, &model.ShootItemAssignment{}, &model.Payment{},
	)

	// 3. Seed permission catalog, roles, and bootstrap admin
	seedPermissionsRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	permissionRepo := repository.NewPermissionRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)
	clientRepo := repository.NewClientRepo(db)
	packageRepo := repository.NewPackageRepo(db)
	shootRepo := repository.NewShootRepo(db)

	authService := service.NewAuthService(userRepo, roleRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo, permissionRepo)
	shootService := service.NewShootService(shootRepo, packageRepo, clientRepo, userRepo, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	clientHandler := handler.NewClientHandler(clientRepo)
	packageHandler := handler.NewPackageHandler(packageRepo)
	shootHandler := handler.NewShootHandler(shootService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Studio Ops v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/change-password", authHandler.ChangePassword)

	// ============ PROTECTED ROUTES ============
	// All routes below require a valid token; permission checks run per
	// route against the token's embedded snapshot.
	protected := api.Group("", middleware.RequireAuth())

	// Client Routes
	protected.Get("/clients", middleware.RequirePermissions("CLIENT_READ"), clientHandler.GetClients)
	protected.Get("/clients/:id", middleware.RequirePermissions("CLIENT_READ"), clientHandler.GetClient)
	protected.Post("/clients", middleware.RequirePermissions("CLIENT_CREATE"), clientHandler.CreateClient)

	// Package Routes
	protected.Get("/packages", middleware.RequirePermissions("PACKAGE_READ"), packageHandler.GetPackages)
	protected.Get("/packages/:id", middleware.RequirePermissions("PACKAGE_READ"), packageHandler.GetPackage)
	protected.Post("/packages", middleware.RequirePermissions("PACKAGE_CREATE"), packageHandler.CreatePackage)
	protected.Delete("/packages/:id", middleware.RequirePermissions("PACKAGE_DELETE"), packageHandler.DeletePackage)

	// Shoot Routes
	protected.Get("/shoots", middleware.RequirePermissions("SHOOT_READ"), shootHandler.GetShoots)
	protected.Get("/shoots/next-code/:category", middleware.RequirePermissions("SHOOT_READ"), shootHandler.NextCode)
	protected.Get("/shoots/:id", middleware.RequirePermissions("SHOOT_READ"), shootHandler.GetShoot)
	protected.Post("/shoots", middleware.RequirePermissions("SHOOT_CREATE"), shootHandler.CreateShoot)
	protected.Put("/shoots/:id/status", middleware.RequirePermissions("SHOOT_UPDATE"), shootHandler.UpdateStatus)
	protected.Delete("/shoots/:id", middleware.RequirePermissions("SHOOT_DELETE"), shootHandler.DeleteShoot)
	protected.Post("/shoots/:id/payments", middleware.RequirePermissions("PAYMENT_CREATE"), shootHandler.AddPayment)

	// Shoot Item Routes
	protected.Put("/shoot-items/:id", middleware.RequirePermissions("SHOOT_UPDATE"), shootHandler.UpdateItem)
	protected.Post("/shoot-items/:id/assignments", middleware.RequirePermissions("SHOOT_UPDATE"), shootHandler.AssignUser)
	protected.Delete("/shoot-items/:id/assignments/:userId", middleware.RequirePermissions("SHOOT_UPDATE"), shootHandler.UnassignUser)

	// User Management Routes
	protected.Get("/users", middleware.RequirePermissions("USER_READ"), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePermissions("USER_READ"), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePermissions("USER_CREATE"), userHandler.CreateUser)
	protected.Put("/users/:id/status", middleware.RequirePermissions("USER_UPDATE"), userHandler.SetActive)
	// Hard delete carries a second tier: USER_DELETE alone is not
	// enough, the caller's role must literally be SUPER_ADMIN.
	protected.Delete("/users/:id", middleware.RequirePermissions("USER_DELETE"), middleware.RequireSuperAdmin(), userHandler.DeleteUser)

	// Role Routes
	protected.Get("/roles", middleware.RequirePermissions("ROLE_READ"), roleHandler.GetRoles)
	protected.Post("/roles", middleware.RequirePermissions("ROLE_CREATE"), roleHandler.CreateRole)
	protected.Put("/roles/:id/permissions", middleware.RequirePermissions("ROLE_UPDATE"), roleHandler.ReplacePermissions)
	protected.Delete("/roles/:id", middleware.RequirePermissions("ROLE_DELETE"), roleHandler.DeleteRole)

	// Permissions Route (list the catalog)
	protected.Get("/permissions", func(c *fiber.Ctx) error {
		permissions, err := permissionRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch permissions"})
		}
		return c.JSON(permissions)
	})

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPermissionsRolesAndAdmin creates the permission catalog, default
// roles, and bootstrap super admin if they don't exist
func seedPermissionsRolesAndAdmin(db *gorm.DB) {
	permissionRepo := repository.NewPermissionRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	// 1. Seed permissions first
	if err := permissionRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed permissions: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign permissions to roles
	allPermissions, _ := permissionRepo.FindAll()

	// SUPER_ADMIN gets the full catalog. The role bypasses permission
	// checks anyway; this keeps its listing honest.
	superRole, err := roleRepo.FindByName(model.RoleSuperAdmin)
	if err == nil && len(superRole.Permissions) == 0 {
		roleRepo.ReplacePermissions(superRole, allPermissions)
		log.Println("SUPER_ADMIN role assigned all permissions")
	}

	// OWNER gets the operational subset (no client creation, no user
	// management beyond read).
	ownerRole, err := roleRepo.FindByName(model.RoleOwner)
	if err == nil && len(ownerRole.Permissions) == 0 {
		wanted := make(map[string]bool, len(model.OwnerDefaultPermissions))
		for _, slug := range model.OwnerDefaultPermissions {
			wanted[slug] = true
		}
		ownerPermissions := []model.Permission{}
		for _, p := range allPermissions {
			if wanted[p.Slug] {
				ownerPermissions = append(ownerPermissions, p)
			}
		}
		roleRepo.ReplacePermissions(ownerRole, ownerPermissions)
		log.Println("OWNER role assigned default permissions")
	}

	// 4. Create bootstrap super admin
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		superRole, err := roleRepo.FindByName(model.RoleSuperAdmin)
		if err != nil {
			log.Printf("Warning: SUPER_ADMIN role missing, skipping admin bootstrap: %v", err)
			return
		}

		admin := &model.User{
			Email:              "admin@example.com",
			FullName:           "Studio Administrator",
			RoleID:             &superRole.ID,
			IsActive:           true,
			MustChangePassword: true,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (SUPER_ADMIN)")
		}
	}
}

package apps

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin is one posting type (task requests, collab requests) with its own
// tables and routes.
type Plugin interface {
	// ID returns the unique plugin identifier used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the plugin's routes. requireSession must run
	// before any handler that needs the signed-in user.
	RegisterRoutes(router fiber.Router, db *gorm.DB, requireSession fiber.Handler)
}

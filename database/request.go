package database

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromCtx returns the DB handle for the current request. Handlers running
// under middlewares.RequestTx get the request transaction; anything else
// falls back to a fresh session on the shared handle.
func FromCtx(c *fiber.Ctx) *gorm.DB {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx
		}
	}
	return DB.Session(&gorm.Session{})
}

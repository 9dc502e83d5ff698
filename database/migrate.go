package database

import (
	"fmt"

	"github.com/WilLunaj/Ventas-web/models"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations for the ledger:
// - AutoMigrate (tables/columns/indexes)
// - Money column type NUMERIC(12,2)
// - CHECK constraints: cantidad > 0, precio_unitario > 0
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&models.Venta{}); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		if err := tx.Exec(`ALTER TABLE ventas ALTER COLUMN precio_unitario TYPE numeric(12,2)`).Error; err != nil {
			return fmt.Errorf("money type migration failed: %w", err)
		}

		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'ventas'::regclass
					  AND conname  = 'chk_ventas_cantidad_pos'
				) THEN
					ALTER TABLE ventas
					ADD CONSTRAINT chk_ventas_cantidad_pos
					CHECK (cantidad > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'ventas'::regclass
					  AND conname  = 'chk_ventas_precio_unitario_pos'
				) THEN
					ALTER TABLE ventas
					ADD CONSTRAINT chk_ventas_precio_unitario_pos
					CHECK (precio_unitario > 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}

package app

import (
	"gorm.io/gorm"

	"hubb-assist/internal/tenant"
	"hubb-assist/internal/user"
)

// migrate brings the schema up on boot. The outbox table is kept as raw DDL
// because its repository runs raw SQL against these exact columns.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&tenant.Tenant{}, &user.User{}); err != nil {
		return err
	}

	return db.Exec(`
		CREATE TABLE IF NOT EXISTS outbox_events (
			id UUID PRIMARY KEY,
			request_id VARCHAR(64),
			aggregate_type VARCHAR(50) NOT NULL,
			aggregate_id VARCHAR(100) NOT NULL,
			event_type VARCHAR(100) NOT NULL,
			topic VARCHAR(200) NOT NULL,
			payload JSONB NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			retry_count INT NOT NULL DEFAULT 0,
			error_message VARCHAR(500),
			next_retry_at TIMESTAMPTZ,
			processed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
			ON outbox_events (status, created_at);
	`).Error
}

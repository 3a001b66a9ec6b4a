package tenant

import "gorm.io/gorm"

// Scope filters a query to a single tenant's rows. Every tenant-owned table
// carries a tenant_id column and every query through a repository applies it.
func Scope(tenantID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

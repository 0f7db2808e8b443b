package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by one user. Every tenant-owned
// table carries a user_id column for exactly this reason.
func Scope(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

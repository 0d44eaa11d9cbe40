package dao

import "gorm.io/gorm"

// InitTables migrates the tables this app owns. The warehouse attendances
// table belongs to the ingestion pipeline and is deliberately not managed
// here.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&CachedToken{},
	)
}

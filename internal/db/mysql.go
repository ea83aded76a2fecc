package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL opens a gorm MySQL connection. TranslateError is enabled so
// duplicate-key violations surface as gorm.ErrDuplicatedKey, which the credit
// service relies on for webhook idempotency.
func NewMySQL(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

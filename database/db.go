// Package database manages the gorm/SQLite connection for the job board.
package database

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"

	"jobboard/config"
	"jobboard/database/model"
	"jobboard/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@jobboard.local"
	defaultAdminPassword = "admin"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.AuthToken{},
		&model.Category{},
		&model.Job{},
		&model.Application{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initAdmin creates the bootstrap admin account when the users table is
// empty. Self-registration as admin is forbidden, so this is the only
// way an admin comes into existence besides seeding.
func initAdmin() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	username := os.Getenv("JOBBOARD_ADMIN_USERNAME")
	if username == "" {
		username = defaultAdminUsername
	}
	email := os.Getenv("JOBBOARD_ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("JOBBOARD_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username:    username,
		Email:       email,
		Password:    hash,
		Role:        model.RoleAdmin,
		IsActive:    true,
		IsSuperuser: true,
	}
	return db.Create(admin).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initAdmin()
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports a unique-constraint violation. With
// TranslateError enabled the sqlite driver maps those to
// gorm.ErrDuplicatedKey, which keeps race-created duplicates detectable
// after the upfront existence checks.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

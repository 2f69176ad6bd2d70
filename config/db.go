package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio/global"
	"portfolio/models"
)

func initDB() error {
	dsn := AppConfig.Database.Dsn
	if dsn == "" {
		global.Logger.Info("database dsn empty, skipping mysql init")
		return nil
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("mysql pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(AppConfig.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	global.Db = db
	global.Logger.Info("mysql initialized")
	return nil
}

func closeDB() {
	if global.Db == nil {
		return
	}
	if sqlDB, err := global.Db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			global.Logger.Warn("close mysql", zap.Error(err))
		}
	}
	global.Db = nil
}

package database

import (
	"fmt"

	"studyhub/internal/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}

func InitDB(driver, dsn string, logger *zap.Logger) error {
	db, err := Open(driver, dsn)
	if err != nil {
		return err
	}

	logger.Info("migrating database", zap.String("driver", driver))
	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	DB = db
	return nil
}

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "000001_create_users",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.PendingUser{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.PendingUser{}, &models.User{})
			},
		},
		{
			ID: "000002_create_pdfs",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PDF{}, &models.PDFLike{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.PDFLike{}, &models.PDF{})
			},
		},
		{
			ID: "000003_create_courses",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Course{}, &models.CourseRequest{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.CourseRequest{}, &models.Course{})
			},
		},
		{
			ID: "000004_create_ads_and_marquee",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Ad{}, &models.MarqueeMessage{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.Ad{}, &models.MarqueeMessage{})
			},
		},
		{
			ID: "000005_create_website_orders",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.WebsiteTemplate{}, &models.WebsiteOrder{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.WebsiteOrder{}, &models.WebsiteTemplate{})
			},
		},
	})

	return m.Migrate()
}

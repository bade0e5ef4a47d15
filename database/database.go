package database

import (
	"log"

	"learnhub/config"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the SQLite store. The default DSN is an in-memory
// database, so all state lives for the process lifetime only.
func ConnectDb() {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBName), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open database %q: %v", config.AppConfig.DBName, err)
	}

	// A single connection keeps the shared in-memory database alive
	// for the whole process.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// RunMigrations migrates every model; exported so tests can build the
// same schema on their own in-memory databases.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Lesson{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.Enrollment{},
		&courseModels.UserProgress{},
		&courseModels.LessonCompletion{},
		&courseModels.QuizResult{},
	)
}

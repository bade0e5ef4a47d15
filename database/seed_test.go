package database

import (
	"testing"

	"learnhub/config"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	return db
}

func TestSeedIfEmptyLoadsBundledCatalog(t *testing.T) {
	config.AppConfig = &config.Config{CatalogFile: "../data/catalog.json"}
	db := seedTestDB(t)

	require.NoError(t, SeedIfEmpty(db))

	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"users":       &models.User{},
		"courses":     &courseModels.Course{},
		"lessons":     &courseModels.Lesson{},
		"quizzes":     &courseModels.Quiz{},
		"questions":   &courseModels.Question{},
		"enrollments": &courseModels.Enrollment{},
		"progresses":  &courseModels.UserProgress{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		counts[name] = n
	}

	assert.EqualValues(t, 2, counts["users"])
	assert.EqualValues(t, 3, counts["courses"])
	assert.EqualValues(t, 4, counts["lessons"])
	assert.EqualValues(t, 3, counts["quizzes"])
	assert.EqualValues(t, 4, counts["questions"])
	assert.EqualValues(t, 3, counts["enrollments"])
	// The enrollment without last_accessed gets no progress record
	assert.EqualValues(t, 2, counts["progresses"])

	// Seeding twice never duplicates the catalog
	require.NoError(t, SeedIfEmpty(db))
	var courses int64
	require.NoError(t, db.Model(&courseModels.Course{}).Count(&courses).Error)
	assert.EqualValues(t, 3, courses)
}

func TestSeedDemoProgress(t *testing.T) {
	config.AppConfig = &config.Config{CatalogFile: "../data/catalog.json"}
	db := seedTestDB(t)
	require.NoError(t, SeedIfEmpty(db))

	var user models.User
	require.NoError(t, db.Where("email = ?", "john@example.com").First(&user).Error)
	assert.NotEmpty(t, user.PublicID)

	var course courseModels.Course
	require.NoError(t, db.Order("id asc").First(&course).Error)

	// John completed one of the two lessons in the first course
	var progress courseModels.UserProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&progress).Error)
	assert.InDelta(t, 50, progress.CompletionPercentage, 0.001)

	var result courseModels.QuizResult
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&result).Error)
	assert.Equal(t, 90, result.Score)
	assert.True(t, result.Completed)
}

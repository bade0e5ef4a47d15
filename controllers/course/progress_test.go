package controllers

import (
	"fmt"
	"testing"

	"learnhub/database"
	courseModels "learnhub/models/course"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createCourse(t *testing.T, db *gorm.DB, title string, lessonCount int) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()

	course := courseModels.Course{Title: title, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]courseModels.Lesson, lessonCount)
	for i := range lessons {
		lessons[i] = courseModels.Lesson{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("%s lesson %d", title, i+1),
			OrderIndex: i,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return course, lessons
}

func TestEnrollTwiceCreatesOneRecordPair(t *testing.T) {
	db := setupTestDB(t)
	course, _ := createCourse(t, db, "Go Basics", 2)

	_, created, err := EnrollUser(db, 1, course.ID)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = EnrollUser(db, 1, course.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var enrollments, progresses int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ?", 1).Count(&enrollments)
	db.Model(&courseModels.UserProgress{}).Where("user_id = ?", 1).Count(&progresses)
	assert.EqualValues(t, 1, enrollments)
	assert.EqualValues(t, 1, progresses)

	var refreshed courseModels.Course
	require.NoError(t, db.First(&refreshed, course.ID).Error)
	assert.EqualValues(t, 1, refreshed.EnrolledCount)
}

func TestEnrollUnknownCourseLeavesStateUnchanged(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := EnrollUser(db, 1, 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)

	var enrollments, progresses int64
	db.Model(&courseModels.Enrollment{}).Count(&enrollments)
	db.Model(&courseModels.UserProgress{}).Count(&progresses)
	assert.Zero(t, enrollments)
	assert.Zero(t, progresses)
}

func TestLessonCompletionTracksPercentage(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := createCourse(t, db, "Web Dev", 2)

	_, _, err := EnrollUser(db, 1, course.ID)
	require.NoError(t, err)

	progress, err := RecordLessonCompletion(db, 1, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, progress.CompletionPercentage, 0.001)

	// Completing the same lesson again never grows the set
	progress, err = RecordLessonCompletion(db, 1, course.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, progress.CompletionPercentage, 0.001)

	var completions int64
	db.Model(&courseModels.LessonCompletion{}).Where("user_id = ?", 1).Count(&completions)
	assert.EqualValues(t, 1, completions)

	progress, err = RecordLessonCompletion(db, 1, course.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.InDelta(t, 100, progress.CompletionPercentage, 0.001)
}

func TestLessonCompletionRequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := createCourse(t, db, "Web Dev", 1)

	_, err := RecordLessonCompletion(db, 1, course.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	var progresses int64
	db.Model(&courseModels.UserProgress{}).Count(&progresses)
	assert.Zero(t, progresses)
}

func TestLessonCompletionUnknownLesson(t *testing.T) {
	db := setupTestDB(t)
	course, _ := createCourse(t, db, "Web Dev", 1)
	_, otherLessons := createCourse(t, db, "Other", 1)

	_, _, err := EnrollUser(db, 1, course.ID)
	require.NoError(t, err)

	// A lesson from another course is rejected
	_, err = RecordLessonCompletion(db, 1, course.ID, otherLessons[0].ID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestZeroLessonCoursePercentageIsZero(t *testing.T) {
	db := setupTestDB(t)
	course, _ := createCourse(t, db, "Empty Course", 0)

	_, _, err := EnrollUser(db, 1, course.ID)
	require.NoError(t, err)

	percentage, err := completionPercentage(db, 1, course.ID)
	require.NoError(t, err)
	assert.Zero(t, percentage)
}

func TestQuizResubmissionOverwrites(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := createCourse(t, db, "Web Dev", 2)
	quiz := courseModels.Quiz{CourseID: course.ID, LessonID: lessons[0].ID, Title: "Quiz"}
	require.NoError(t, db.Create(&quiz).Error)

	_, _, err := EnrollUser(db, 1, course.ID)
	require.NoError(t, err)

	first, _, err := RecordQuizResult(db, 1, course.ID, lessons[0].ID, quiz.ID, 40)
	require.NoError(t, err)

	second, progress, err := RecordQuizResult(db, 1, course.ID, lessons[0].ID, quiz.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 90, second.Score)
	assert.True(t, second.Completed)

	var results int64
	db.Model(&courseModels.QuizResult{}).Where("user_id = ? AND quiz_id = ?", 1, quiz.ID).Count(&results)
	assert.EqualValues(t, 1, results)

	// The surrounding lesson is completed exactly once
	var completions int64
	db.Model(&courseModels.LessonCompletion{}).Where("user_id = ?", 1).Count(&completions)
	assert.EqualValues(t, 1, completions)
	assert.InDelta(t, 50, progress.CompletionPercentage, 0.001)
}

func TestQuizResultCreatesProgressLazily(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := createCourse(t, db, "Web Dev", 1)
	quiz := courseModels.Quiz{CourseID: course.ID, LessonID: lessons[0].ID, Title: "Quiz"}
	require.NoError(t, db.Create(&quiz).Error)

	// Seeded enrollments may exist without a progress record
	enrollment := courseModels.Enrollment{UserID: 1, CourseID: course.ID, Status: courseModels.EnrollmentActive}
	require.NoError(t, db.Create(&enrollment).Error)

	_, progress, err := RecordQuizResult(db, 1, course.ID, lessons[0].ID, quiz.ID, 75)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.InDelta(t, 100, progress.CompletionPercentage, 0.001)

	var progresses int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ?", 1).Count(&progresses)
	assert.EqualValues(t, 1, progresses)
}

func TestListEnrolledCoursesCatalogOrder(t *testing.T) {
	db := setupTestDB(t)
	first, _ := createCourse(t, db, "A", 1)
	second, _ := createCourse(t, db, "B", 1)
	third, _ := createCourse(t, db, "C", 1)

	// Enroll out of catalog order
	for _, id := range []uint{third.ID, first.ID, second.ID} {
		_, _, err := EnrollUser(db, 1, id)
		require.NoError(t, err)
	}

	courses, err := ListEnrolledCourses(db, 1)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, []uint{first.ID, second.ID, third.ID}, []uint{courses[0].ID, courses[1].ID, courses[2].ID})
}

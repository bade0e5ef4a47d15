package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"learnhub/config"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seed file shapes, mirroring data/catalog.json. Index fields are
// 1-based positions within the seed arrays, resolved to row IDs during
// insertion.

type seedUser struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type seedQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type seedQuiz struct {
	Title     string         `json:"title"`
	Questions []seedQuestion `json:"questions"`
}

type seedLesson struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VideoID     string     `json:"video_id"`
	Duration    string     `json:"duration"`
	Quizzes     []seedQuiz `json:"quizzes"`
}

type seedCourse struct {
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Instructor   string       `json:"instructor"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Category     string       `json:"category"`
	Level        string       `json:"level"`
	Duration     string       `json:"duration"`
	Enrolled     int64        `json:"enrolled"`
	Rating       float64      `json:"rating"`
	Lessons      []seedLesson `json:"lessons"`
}

type seedQuizResult struct {
	LessonIndex int       `json:"lesson_index"`
	QuizIndex   int       `json:"quiz_index"`
	Score       int       `json:"score"`
	AttemptedAt time.Time `json:"attempted_at"`
}

type seedEnrollment struct {
	UserIndex              int              `json:"user_index"`
	CourseIndex            int              `json:"course_index"`
	EnrolledAt             time.Time        `json:"enrolled_at"`
	LastAccessed           *time.Time       `json:"last_accessed"`
	CompletedLessonIndexes []int            `json:"completed_lesson_indexes"`
	QuizResults            []seedQuizResult `json:"quiz_results"`
}

type seedCatalog struct {
	Users       []seedUser       `json:"users"`
	Courses     []seedCourse     `json:"courses"`
	Enrollments []seedEnrollment `json:"enrollments"`
}

// IsCatalogEmpty reports whether the course catalog has been seeded yet
func IsCatalogEmpty(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&courseModels.Course{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// SeedIfEmpty loads the seed catalog and inserts it when the database
// holds no courses. CATALOG_URL takes precedence over the local file.
func SeedIfEmpty(db *gorm.DB) error {
	empty, err := IsCatalogEmpty(db)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	raw, err := loadCatalog()
	if err != nil {
		return err
	}

	var cat seedCatalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return fmt.Errorf("parse seed catalog: %w", err)
	}

	if err := SeedCatalog(db, &cat); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d courses, %d enrollments", len(cat.Users), len(cat.Courses), len(cat.Enrollments))
	return nil
}

// loadCatalog fetches the seed catalog from CATALOG_URL if set,
// otherwise reads the bundled file.
func loadCatalog() ([]byte, error) {
	if url := config.AppConfig.CatalogURL; url != "" {
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog from %s: %w", url, err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("fetch catalog from %s: status %d", url, resp.StatusCode())
		}
		log.Printf("Loaded seed catalog from %s", url)
		return resp.Body(), nil
	}

	raw, err := os.ReadFile(config.AppConfig.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("read seed catalog: %w", err)
	}
	return raw, nil
}

// SeedCatalog inserts users, the course catalog, and the demo
// enrollment/progress records.
func SeedCatalog(db *gorm.DB, cat *seedCatalog) error {
	users := make([]models.User, len(cat.Users))
	for i, su := range cat.Users {
		users[i] = models.User{
			PublicID: uuid.NewString(),
			Name:     su.Name,
			Email:    su.Email,
			Avatar:   su.Avatar,
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", su.Email, err)
		}
	}

	// lessons[ci][li] and quizzes[ci][li][qi] keep the inserted rows so
	// enrollment seeds can refer to them by position.
	courses := make([]courseModels.Course, len(cat.Courses))
	lessons := make([][]courseModels.Lesson, len(cat.Courses))
	quizzes := make([][][]courseModels.Quiz, len(cat.Courses))

	for ci, sc := range cat.Courses {
		courses[ci] = courseModels.Course{
			Title:         sc.Title,
			Description:   sc.Description,
			Instructor:    sc.Instructor,
			ThumbnailURL:  sc.ThumbnailURL,
			Category:      sc.Category,
			Level:         sc.Level,
			Duration:      sc.Duration,
			EnrolledCount: sc.Enrolled,
			Rating:        sc.Rating,
			IsPublished:   true,
		}
		if err := db.Create(&courses[ci]).Error; err != nil {
			return fmt.Errorf("seed course %q: %w", sc.Title, err)
		}

		lessons[ci] = make([]courseModels.Lesson, len(sc.Lessons))
		quizzes[ci] = make([][]courseModels.Quiz, len(sc.Lessons))
		for li, sl := range sc.Lessons {
			lessons[ci][li] = courseModels.Lesson{
				CourseID:    courses[ci].ID,
				Title:       sl.Title,
				Description: sl.Description,
				VideoID:     sl.VideoID,
				Duration:    sl.Duration,
				OrderIndex:  li,
			}
			if err := db.Create(&lessons[ci][li]).Error; err != nil {
				return fmt.Errorf("seed lesson %q: %w", sl.Title, err)
			}

			quizzes[ci][li] = make([]courseModels.Quiz, len(sl.Quizzes))
			for qi, sq := range sl.Quizzes {
				quizzes[ci][li][qi] = courseModels.Quiz{
					CourseID:   courses[ci].ID,
					LessonID:   lessons[ci][li].ID,
					Title:      sq.Title,
					OrderIndex: qi,
				}
				if err := db.Create(&quizzes[ci][li][qi]).Error; err != nil {
					return fmt.Errorf("seed quiz %q: %w", sq.Title, err)
				}

				for oi, sqq := range sq.Questions {
					opts, err := json.Marshal(sqq.Options)
					if err != nil {
						return err
					}
					question := courseModels.Question{
						QuizID:        quizzes[ci][li][qi].ID,
						Text:          sqq.Text,
						Options:       opts,
						CorrectAnswer: sqq.CorrectAnswer,
						OrderIndex:    oi,
					}
					if err := db.Create(&question).Error; err != nil {
						return fmt.Errorf("seed question %q: %w", sqq.Text, err)
					}
				}
			}
		}
	}

	for _, se := range cat.Enrollments {
		if se.UserIndex < 1 || se.UserIndex > len(users) {
			return fmt.Errorf("seed enrollment: user index %d out of range", se.UserIndex)
		}
		if se.CourseIndex < 1 || se.CourseIndex > len(courses) {
			return fmt.Errorf("seed enrollment: course index %d out of range", se.CourseIndex)
		}
		user := users[se.UserIndex-1]
		crs := courses[se.CourseIndex-1]
		courseLessons := lessons[se.CourseIndex-1]

		enrollment := courseModels.Enrollment{
			UserID:     user.ID,
			CourseID:   crs.ID,
			EnrolledAt: se.EnrolledAt,
			Status:     courseModels.EnrollmentActive,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			return fmt.Errorf("seed enrollment user=%d course=%d: %w", user.ID, crs.ID, err)
		}

		// Enrollments without a last_accessed timestamp carry no progress
		// record; one is created lazily on the user's first action.
		if se.LastAccessed == nil {
			continue
		}

		percentage := float64(0)
		if len(courseLessons) > 0 {
			percentage = float64(len(se.CompletedLessonIndexes)) / float64(len(courseLessons)) * 100
		}
		progress := courseModels.UserProgress{
			UserID:               user.ID,
			CourseID:             crs.ID,
			LastAccessed:         *se.LastAccessed,
			CompletionPercentage: percentage,
		}
		if err := db.Create(&progress).Error; err != nil {
			return err
		}

		for _, lix := range se.CompletedLessonIndexes {
			if lix < 1 || lix > len(courseLessons) {
				return fmt.Errorf("seed enrollment: lesson index %d out of range", lix)
			}
			completion := courseModels.LessonCompletion{
				UserID:   user.ID,
				CourseID: crs.ID,
				LessonID: courseLessons[lix-1].ID,
			}
			if err := db.Create(&completion).Error; err != nil {
				return err
			}
		}

		for _, sr := range se.QuizResults {
			if sr.LessonIndex < 1 || sr.LessonIndex > len(courseLessons) {
				return fmt.Errorf("seed quiz result: lesson index %d out of range", sr.LessonIndex)
			}
			lessonQuizzes := quizzes[se.CourseIndex-1][sr.LessonIndex-1]
			if sr.QuizIndex < 1 || sr.QuizIndex > len(lessonQuizzes) {
				return fmt.Errorf("seed quiz result: quiz index %d out of range", sr.QuizIndex)
			}
			result := courseModels.QuizResult{
				UserID:      user.ID,
				CourseID:    crs.ID,
				LessonID:    courseLessons[sr.LessonIndex-1].ID,
				QuizID:      lessonQuizzes[sr.QuizIndex-1].ID,
				Score:       sr.Score,
				Completed:   true,
				AttemptedAt: sr.AttemptedAt,
			}
			if err := db.Create(&result).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

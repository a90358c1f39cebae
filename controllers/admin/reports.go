package admin

import (
	"net/http"
	"time"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
)

// Dashboard returns the headline counters: registered students and tutors,
// plus sessions starting in the current calendar month.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "ADMIN") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var totalStudents, totalTutors, sessionsThisMonth int64
	if err := config.DB.Model(&users.User{}).Where("role = ?", users.RoleStudent).
		Count(&totalStudents).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}
	if err := config.DB.Model(&users.User{}).Where("role = ?", users.RoleTutor).
		Count(&totalTutors).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	if err := config.DB.Model(&tutoring.Session{}).
		Where("start_at >= ? AND start_at < ?", monthStart, monthEnd).
		Count(&sessionsThisMonth).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading dashboard")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"totalStudents":     totalStudents,
		"totalTutors":       totalTutors,
		"sessionsThisMonth": sessionsThisMonth,
	})
}

type subjectReport struct {
	SubjectID   uint   `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	Sessions    int64  `json:"sessions"`
}

type tutorReport struct {
	TutorID   uint     `json:"tutorId"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Average   *float64 `json:"average"`
	Rated     int64    `json:"rated"`
}

// Reports returns the most requested subjects and every tutor's average
// rating over completed, rated sessions.
func Reports(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "ADMIN") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var topSubjects []subjectReport
	err := config.DB.Model(&tutoring.Session{}).
		Select("sessions.subject_id AS subject_id, subjects.name AS subject_name, COUNT(*) AS sessions").
		Joins("JOIN subjects ON subjects.id = sessions.subject_id").
		Group("sessions.subject_id, subjects.name").
		Order("sessions DESC").
		Limit(10).
		Scan(&topSubjects).Error
	if err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading reports")
		return
	}

	var tutorRatings []tutorReport
	err = config.DB.Model(&users.User{}).
		Select("users.id AS tutor_id, users.first_name, users.last_name, "+
			"AVG(sessions.rating) AS average, COUNT(sessions.rating) AS rated").
		Joins("LEFT JOIN sessions ON sessions.tutor_id = users.id AND sessions.rating IS NOT NULL").
		Where("users.role = ?", users.RoleTutor).
		Group("users.id, users.first_name, users.last_name").
		Order("average DESC NULLS LAST").
		Scan(&tutorRatings).Error
	if err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading reports")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"topSubjects":  topSubjects,
		"tutorRatings": tutorRatings,
	})
}

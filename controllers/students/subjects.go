package students

import (
	"net/http"
	"strconv"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/catalog"
	"tutoria-backend/models/users"
	"tutoria-backend/services"
)

func booking() *services.BookingService {
	return services.NewBookingService(config.DB, config.Logger)
}

// ListSubjects returns the searchable subject catalog with semester tags.
func ListSubjects(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "STUDENT") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := config.DB.Preload("Semesters").Order("name ASC")
	if search := r.URL.Query().Get("q"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var subjects []catalog.Subject
	if err := query.Find(&subjects).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading subjects")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})
}

type tutorForSubject struct {
	TutorSubjectID uint    `json:"tutorSubjectId"`
	TutorID        uint    `json:"tutorId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Career         string  `json:"career,omitempty"`
	ProfileImage   string  `json:"profileImage,omitempty"`
	HourlyRate     float64 `json:"hourlyRate"`
}

// TutorsForSubject lists the tutors offering one subject.
func TutorsForSubject(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "STUDENT") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	subjectID, err := strconv.ParseUint(r.URL.Query().Get("subjectId"), 10, 32)
	if err != nil || subjectID == 0 {
		helpers.Message(w, http.StatusBadRequest, "subjectId query parameter is required")
		return
	}

	var subject catalog.Subject
	if err := config.DB.Preload("Semesters").First(&subject, subjectID).Error; err != nil {
		helpers.Message(w, http.StatusNotFound, "Subject not found")
		return
	}

	var assignments []catalog.TutorSubject
	if err := config.DB.Where("subject_id = ?", subjectID).Find(&assignments).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading tutors")
		return
	}

	result := make([]tutorForSubject, 0, len(assignments))
	for _, a := range assignments {
		var user users.User
		if err := config.DB.First(&user, a.TutorID).Error; err != nil {
			continue
		}
		entry := tutorForSubject{
			TutorSubjectID: a.ID,
			TutorID:        a.TutorID,
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			ProfileImage:   user.ProfileImage,
			HourlyRate:     a.HourlyRate,
		}
		var profile users.TutorProfile
		if err := config.DB.Where("user_id = ?", a.TutorID).First(&profile).Error; err == nil {
			entry.Career = profile.Career
		}
		result = append(result, entry)
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"subject": subject,
		"tutors":  result,
	})
}

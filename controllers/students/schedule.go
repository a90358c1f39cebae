package students

import (
	"net/http"
	"strconv"
	"time"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/catalog"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
	"tutoria-backend/services"
)

type scheduleDetail struct {
	TutorSubjectID uint     `json:"tutorSubjectId"`
	SubjectID      uint     `json:"subjectId"`
	SubjectName    string   `json:"subjectName"`
	Semesters      []string `json:"semesters"`
	TutorID        uint     `json:"tutorId"`
	TutorFirstName string   `json:"tutorFirstName"`
	TutorLastName  string   `json:"tutorLastName"`
	TutorCareer    string   `json:"tutorCareer,omitempty"`
	TutorImage     string   `json:"tutorImage,omitempty"`
	HourlyRate     float64  `json:"hourlyRate"`
}

// Schedule returns everything the booking screen needs for one
// tutor-subject pair: the detail header, the tutor's raw weekly windows and
// the bookable slots for the next seven days. A tutor without windows yields
// empty slots, which the caller renders as "no availability".
func Schedule(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "STUDENT") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tutorSubjectID, err := strconv.ParseUint(r.URL.Query().Get("tutorSubjectId"), 10, 32)
	if err != nil || tutorSubjectID == 0 {
		helpers.Message(w, http.StatusBadRequest, "tutorSubjectId query parameter is required")
		return
	}

	var assignment catalog.TutorSubject
	if err := config.DB.Preload("Subject").Preload("Subject.Semesters").
		First(&assignment, tutorSubjectID).Error; err != nil {
		helpers.Message(w, http.StatusNotFound, "Tutor-subject assignment not found")
		return
	}

	var tutor users.User
	if err := config.DB.First(&tutor, assignment.TutorID).Error; err != nil {
		helpers.Message(w, http.StatusNotFound, "Tutor not found")
		return
	}

	detail := scheduleDetail{
		TutorSubjectID: assignment.ID,
		SubjectID:      assignment.SubjectID,
		TutorID:        assignment.TutorID,
		TutorFirstName: tutor.FirstName,
		TutorLastName:  tutor.LastName,
		TutorImage:     tutor.ProfileImage,
		HourlyRate:     assignment.HourlyRate,
		Semesters:      []string{},
	}
	if assignment.Subject != nil {
		detail.SubjectName = assignment.Subject.Name
		for _, s := range assignment.Subject.Semesters {
			detail.Semesters = append(detail.Semesters, s.Semester)
		}
	}
	var profile users.TutorProfile
	if err := config.DB.Where("user_id = ?", assignment.TutorID).First(&profile).Error; err == nil {
		detail.TutorCareer = profile.Career
	}

	var windows []tutoring.AvailabilityWindow
	if err := config.DB.Where("tutor_id = ?", assignment.TutorID).Find(&windows).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading availability")
		return
	}
	services.SortWindows(windows)

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"detail":       detail,
		"availability": windows,
		"slots":        services.GenerateSlots(windows, time.Now()),
	})
}

// Slots returns just the bookable slots for one tutor. An unknown tutor id
// simply has no windows and yields an empty result.
func Slots(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "STUDENT") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	tutorID, err := strconv.ParseUint(r.URL.Query().Get("tutorId"), 10, 32)
	if err != nil || tutorID == 0 {
		helpers.Message(w, http.StatusBadRequest, "tutorId query parameter is required")
		return
	}

	var windows []tutoring.AvailabilityWindow
	if err := config.DB.Where("tutor_id = ?", tutorID).Find(&windows).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading availability")
		return
	}
	services.SortWindows(windows)

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"slots": services.GenerateSlots(windows, time.Now()),
	})
}

package tutors

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/catalog"
)

type assignSubjectInput struct {
	SubjectID  uint    `json:"subjectId"`
	HourlyRate float64 `json:"hourlyRate"`
}

// Subjects manages which subjects the tutor offers and at what rate.
func Subjects(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var assignments []catalog.TutorSubject
		if err := config.DB.Preload("Subject").Preload("Subject.Semesters").
			Where("tutor_id = ?", claims.UserID).
			Find(&assignments).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading subjects")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"subjects": assignments})

	case http.MethodPost:
		var in assignSubjectInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.SubjectID == 0 {
			helpers.Message(w, http.StatusBadRequest, "subjectId is required")
			return
		}
		if in.HourlyRate < 0 {
			helpers.Message(w, http.StatusBadRequest, "hourlyRate cannot be negative")
			return
		}

		var subject catalog.Subject
		if err := config.DB.First(&subject, in.SubjectID).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Subject not found")
			return
		}

		var existing catalog.TutorSubject
		if err := config.DB.Where("tutor_id = ? AND subject_id = ?", claims.UserID, in.SubjectID).
			First(&existing).Error; err == nil {
			existing.HourlyRate = in.HourlyRate
			if err := config.DB.Save(&existing).Error; err != nil {
				helpers.Message(w, http.StatusInternalServerError, "Error updating assignment")
				return
			}
			helpers.JSON(w, http.StatusOK, map[string]interface{}{"assignment": existing})
			return
		}

		assignment := catalog.TutorSubject{
			TutorID:    claims.UserID,
			SubjectID:  in.SubjectID,
			HourlyRate: in.HourlyRate,
		}
		if err := config.DB.Create(&assignment).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error creating assignment")
			return
		}
		helpers.JSON(w, http.StatusCreated, map[string]interface{}{"assignment": assignment})

	case http.MethodDelete:
		id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
		if err != nil || id == 0 {
			helpers.Message(w, http.StatusBadRequest, "id query parameter is required")
			return
		}
		res := config.DB.Where("id = ? AND tutor_id = ?", id, claims.UserID).
			Delete(&catalog.TutorSubject{})
		if res.Error != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error deleting assignment")
			return
		}
		if res.RowsAffected == 0 {
			helpers.Message(w, http.StatusNotFound, "Assignment not found")
			return
		}
		helpers.Message(w, http.StatusOK, "Assignment deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

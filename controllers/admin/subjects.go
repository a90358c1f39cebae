package admin

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/catalog"
)

type subjectInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Semesters   []string `json:"semesters"`
}

// Subjects is the admin CRUD over the subject catalog. Semester tags are
// replaced wholesale on every update.
func Subjects(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "ADMIN") == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var subjects []catalog.Subject
		if err := config.DB.Preload("Semesters").Order("name ASC").Find(&subjects).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading subjects")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"subjects": subjects})

	case http.MethodPost:
		var in subjectInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
			helpers.Message(w, http.StatusBadRequest, "name is required")
			return
		}

		subject := catalog.Subject{Name: in.Name, Description: in.Description}
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&subject).Error; err != nil {
				return err
			}
			return replaceSemesters(tx, subject.ID, in.Semesters)
		})
		if err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error creating subject")
			return
		}
		config.DB.Preload("Semesters").First(&subject, subject.ID)
		helpers.JSON(w, http.StatusCreated, map[string]interface{}{"subject": subject})

	case http.MethodPut:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		var subject catalog.Subject
		if err := config.DB.First(&subject, id).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Subject not found")
			return
		}

		var in subjectInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.Name != "" {
			subject.Name = in.Name
		}
		subject.Description = in.Description

		err := config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&subject).Error; err != nil {
				return err
			}
			if in.Semesters != nil {
				return replaceSemesters(tx, subject.ID, in.Semesters)
			}
			return nil
		})
		if err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error updating subject")
			return
		}
		config.DB.Preload("Semesters").First(&subject, subject.ID)
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"subject": subject})

	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		res := config.DB.Delete(&catalog.Subject{}, id)
		if res.Error != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error deleting subject")
			return
		}
		if res.RowsAffected == 0 {
			helpers.Message(w, http.StatusNotFound, "Subject not found")
			return
		}
		config.DB.Where("subject_id = ?", id).Delete(&catalog.SubjectSemester{})
		config.DB.Where("subject_id = ?", id).Delete(&catalog.TutorSubject{})
		helpers.Message(w, http.StatusOK, "Subject deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func replaceSemesters(tx *gorm.DB, subjectID uint, semesters []string) error {
	if err := tx.Where("subject_id = ?", subjectID).Delete(&catalog.SubjectSemester{}).Error; err != nil {
		return err
	}
	for _, s := range semesters {
		if s == "" {
			continue
		}
		if err := tx.Create(&catalog.SubjectSemester{SubjectID: subjectID, Semester: s}).Error; err != nil {
			return err
		}
	}
	return nil
}

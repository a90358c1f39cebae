package admin

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/catalog"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
	"tutoria-backend/services"
)

type tutorInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Career    string `json:"career"`
	Bio       string `json:"bio"`
	ZoomLink  string `json:"zoomLink"`
}

// Tutors is the admin CRUD over tutor accounts.
func Tutors(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "ADMIN") == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var profiles []users.TutorProfile
		if err := config.DB.Preload("User").Find(&profiles).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading tutors")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"tutors": profiles})

	case http.MethodPost:
		var in tutorInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
			helpers.Message(w, http.StatusBadRequest, "firstName, lastName, email and password are required")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Internal error")
			return
		}

		user := users.User{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			PasswordHash: string(hash),
			Role:         users.RoleTutor,
			Provider:     "local",
		}
		profile := users.TutorProfile{
			Career:   in.Career,
			Bio:      in.Bio,
			ZoomLink: in.ZoomLink,
		}
		err = config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile.UserID = user.ID
			return tx.Create(&profile).Error
		})
		if err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error creating tutor")
			return
		}
		profile.User = &user
		helpers.JSON(w, http.StatusCreated, map[string]interface{}{"tutor": profile})

	case http.MethodPut:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		var profile users.TutorProfile
		if err := config.DB.Preload("User").First(&profile, id).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Tutor not found")
			return
		}

		var in tutorInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.Career != "" {
			profile.Career = in.Career
		}
		if in.Bio != "" {
			profile.Bio = in.Bio
		}
		if in.ZoomLink != "" {
			profile.ZoomLink = in.ZoomLink
		}
		if profile.User != nil {
			if in.FirstName != "" {
				profile.User.FirstName = in.FirstName
			}
			if in.LastName != "" {
				profile.User.LastName = in.LastName
			}
			if err := config.DB.Save(profile.User).Error; err != nil {
				helpers.Message(w, http.StatusInternalServerError, "Error updating tutor")
				return
			}
		}
		if err := config.DB.Save(&profile).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error updating tutor")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"tutor": profile})

	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		var profile users.TutorProfile
		if err := config.DB.First(&profile, id).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Tutor not found")
			return
		}
		// Windows and subject assignments do not hang off the user row, so
		// clean them up explicitly before the cascade removes the rest.
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("tutor_id = ?", profile.UserID).
				Delete(&tutoring.AvailabilityWindow{}).Error; err != nil {
				return err
			}
			if err := tx.Where("tutor_id = ?", profile.UserID).
				Delete(&catalog.TutorSubject{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&users.User{}, profile.UserID).Error; err != nil {
				return err
			}
			return tx.Delete(&profile).Error
		})
		if err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error deleting tutor")
			return
		}
		helpers.Message(w, http.StatusOK, "Tutor deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// TutorAvailability lets the admin inspect one tutor's weekly windows.
func TutorAvailability(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "ADMIN") == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var windows []tutoring.AvailabilityWindow
	if err := config.DB.Where("tutor_id = ?", id).Find(&windows).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading availability")
		return
	}
	services.SortWindows(windows)
	helpers.JSON(w, http.StatusOK, map[string]interface{}{"availability": windows})
}

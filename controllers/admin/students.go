package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/users"
)

type studentInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone"`
	Career     string `json:"career"`
	Cycle      string `json:"cycle"`
}

// Students is the admin CRUD over student accounts. Deleting the user row
// cascades to the profile and, through FKs, to the student's sessions and
// requests.
func Students(w http.ResponseWriter, r *http.Request) {
	if authentication.RequireRole(w, r, "ADMIN") == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var profiles []users.StudentProfile
		if err := config.DB.Preload("User").Find(&profiles).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading students")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"students": profiles})

	case http.MethodPost:
		var in studentInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.NationalID == "" {
			helpers.Message(w, http.StatusBadRequest, "firstName, lastName, email, password and nationalId are required")
			return
		}
		if !authentication.ValidNationalID(in.NationalID) {
			helpers.Message(w, http.StatusBadRequest, "Invalid national id")
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
			Role:         users.RoleStudent,
			Provider:     "local",
		}
		profile := users.StudentProfile{
			NationalID: in.NationalID,
			Phone:      in.Phone,
			Career:     in.Career,
			Cycle:      in.Cycle,
		}
		err = config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile.UserID = user.ID
			return tx.Create(&profile).Error
		})
		if err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error creating student")
			return
		}
		profile.User = &user
		helpers.JSON(w, http.StatusCreated, map[string]interface{}{"student": profile})

	case http.MethodPut:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		var profile users.StudentProfile
		if err := config.DB.Preload("User").First(&profile, id).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Student not found")
			return
		}

		var in studentInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if in.Phone != "" {
			profile.Phone = in.Phone
		}
		if in.Career != "" {
			profile.Career = in.Career
		}
		if in.Cycle != "" {
			profile.Cycle = in.Cycle
		}
		if profile.User != nil {
			if in.FirstName != "" {
				profile.User.FirstName = in.FirstName
			}
			if in.LastName != "" {
				profile.User.LastName = in.LastName
			}
			if err := config.DB.Save(profile.User).Error; err != nil {
				helpers.Message(w, http.StatusInternalServerError, "Error updating student")
				return
			}
		}
		if err := config.DB.Save(&profile).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error updating student")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"student": profile})

	case http.MethodDelete:
		id, ok := idParam(w, r)
		if !ok {
			return
		}
		var profile users.StudentProfile
		if err := config.DB.First(&profile, id).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Student not found")
			return
		}
		if err := config.DB.Delete(&users.User{}, profile.UserID).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error deleting student")
			return
		}
		config.DB.Delete(&profile)
		helpers.Message(w, http.StatusOK, "Student deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil || id == 0 {
		helpers.Message(w, http.StatusBadRequest, "id query parameter is required")
		return 0, false
	}
	return uint(id), true
}

package tutors

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/users"
)

type profileInput struct {
	Career   string `json:"career"`
	Bio      string `json:"bio"`
	ZoomLink string `json:"zoomLink"`
}

// Profile reads or edits the tutor's own profile. The profile row is created
// by the admin along with the tutor account, so GET should always find one.
func Profile(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var profile users.TutorProfile
		if err := config.DB.Preload("User").Where("user_id = ?", claims.UserID).
			First(&profile).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Profile not found")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"profile": profile})

	case http.MethodPut:
		var profile users.TutorProfile
		if err := config.DB.Where("user_id = ?", claims.UserID).First(&profile).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Profile not found")
			return
		}

		var in profileInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		profile.Career = in.Career
		profile.Bio = in.Bio
		profile.ZoomLink = in.ZoomLink
		if err := config.DB.Save(&profile).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error updating profile")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"profile": profile})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

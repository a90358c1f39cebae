package authentication

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/models/users"
)

// GetProfile returns the authenticated user plus their role profile.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	resp := map[string]interface{}{"user": user}
	switch user.Role {
	case users.RoleStudent:
		var profile users.StudentProfile
		if err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			resp["student"] = profile
		}
	case users.RoleTutor:
		var profile users.TutorProfile
		if err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			resp["tutor"] = profile
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type updateProfileInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
	Phone        string `json:"phone"`
	Career       string `json:"career"`
	Cycle        string `json:"cycle"`
}

// UpdateProfile edits the caller's own name, image and student fields.
// Email, role and national id are not editable here.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, err := ValidateToken(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user users.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	var in updateProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.ProfileImage != "" {
		user.ProfileImage = in.ProfileImage
	}
	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "Error updating profile", http.StatusInternalServerError)
		return
	}

	if user.Role == users.RoleStudent {
		var profile users.StudentProfile
		if err := config.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			if in.Phone != "" {
				profile.Phone = in.Phone
			}
			if in.Career != "" {
				profile.Career = in.Career
			}
			if in.Cycle != "" {
				profile.Cycle = in.Cycle
			}
			config.DB.Save(&profile)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"user": user})
}

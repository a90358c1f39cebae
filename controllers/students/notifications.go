package students

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/tutoring"
)

type markReadInput struct {
	NotificationID uint `json:"notificationId"`
	All            bool `json:"all"`
}

// Notifications lists the student's notifications (GET) or marks them read
// (PUT, one id or all).
func Notifications(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "STUDENT")
	if claims == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var notifications []tutoring.Notification
		if err := config.DB.Where("student_id = ?", claims.UserID).
			Order("created_at DESC").
			Find(&notifications).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading notifications")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})

	case http.MethodPut:
		var in markReadInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		query := config.DB.Model(&tutoring.Notification{}).Where("student_id = ?", claims.UserID)
		if !in.All {
			if in.NotificationID == 0 {
				helpers.Message(w, http.StatusBadRequest, "notificationId or all is required")
				return
			}
			query = query.Where("id = ?", in.NotificationID)
		}
		res := query.Update("is_read", true)
		if res.Error != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error updating notifications")
			return
		}
		if !in.All && res.RowsAffected == 0 {
			helpers.Message(w, http.StatusNotFound, "Notification not found")
			return
		}
		helpers.Message(w, http.StatusOK, "Notifications updated")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

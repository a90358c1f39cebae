package students

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/services"
)

// Requests submits a new tutoring request (POST) or lists the student's own
// requests (GET). The student id always comes from the token, never from the
// body.
func Requests(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "STUDENT")
	if claims == nil {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var in services.SubmitRequestInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		in.StudentID = claims.UserID

		res, err := booking().SubmitRequest(in)
		if err != nil {
			helpers.ServiceError(w, err)
			return
		}
		helpers.JSON(w, http.StatusCreated, map[string]interface{}{
			"message":   "Request submitted",
			"requestId": res.RequestID,
			"sessionId": res.SessionID,
			"reference": res.Reference,
		})

	case http.MethodGet:
		var requests []tutoring.Request
		if err := config.DB.Preload("Session").
			Where("student_id = ?", claims.UserID).
			Order("created_at DESC").
			Find(&requests).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading requests")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"requests": requests})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

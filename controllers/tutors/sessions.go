package tutors

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/tutoring"
)

// ListSessions splits the tutor's sessions into upcoming (pending/accepted)
// and history (completed/cancelled/rejected), ordered by start time.
func ListSessions(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sessions []tutoring.Session
	if err := config.DB.Where("tutor_id = ?", claims.UserID).
		Order("start_at ASC").
		Find(&sessions).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading sessions")
		return
	}

	upcoming := make([]tutoring.Session, 0)
	history := make([]tutoring.Session, 0)
	for _, s := range sessions {
		switch s.Status {
		case tutoring.StatusPending, tutoring.StatusAccepted:
			upcoming = append(upcoming, s)
		default:
			history = append(history, s)
		}
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"upcoming": upcoming,
		"history":  history,
	})
}

type completeInput struct {
	SessionID uint `json:"sessionId"`
}

// CompleteSession marks a session COMPLETED. The same-day restriction shown
// in the UI is policy only; any of the tutor's sessions can be completed
// here.
func CompleteSession(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in completeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.SessionID == 0 {
		helpers.Message(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	session, err := booking().MarkCompleted(in.SessionID, claims.UserID)
	if err != nil {
		helpers.ServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]interface{}{"session": session})
}

package students

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/catalog"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
)

type sessionView struct {
	tutoring.Session
	TutorFirstName string `json:"tutorFirstName"`
	TutorLastName  string `json:"tutorLastName"`
	TutorZoomLink  string `json:"tutorZoomLink,omitempty"`
	SubjectName    string `json:"subjectName"`
}

// ListSessions returns the student's sessions with tutor and subject detail,
// newest first.
func ListSessions(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "STUDENT")
	if claims == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sessions []tutoring.Session
	if err := config.DB.Where("student_id = ?", claims.UserID).
		Order("start_at DESC").
		Find(&sessions).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading sessions")
		return
	}

	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		view := sessionView{Session: s}
		var tutor users.User
		if err := config.DB.First(&tutor, s.TutorID).Error; err == nil {
			view.TutorFirstName = tutor.FirstName
			view.TutorLastName = tutor.LastName
		}
		var profile users.TutorProfile
		if err := config.DB.Where("user_id = ?", s.TutorID).First(&profile).Error; err == nil {
			view.TutorZoomLink = profile.ZoomLink
		}
		var subject catalog.Subject
		if err := config.DB.First(&subject, s.SubjectID).Error; err == nil {
			view.SubjectName = subject.Name
		}
		views = append(views, view)
	}

	helpers.JSON(w, http.StatusOK, map[string]interface{}{"sessions": views})
}

type rateInput struct {
	SessionID uint   `json:"sessionId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// RateSession records the one-time rating of a completed session.
func RateSession(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "STUDENT")
	if claims == nil {
		return
	}
	if r.Method != http.MethodPatch && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in rateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.SessionID == 0 {
		helpers.Message(w, http.StatusBadRequest, "sessionId and rating are required")
		return
	}

	if err := booking().RateSession(in.SessionID, claims.UserID, in.Rating, in.Comment); err != nil {
		helpers.ServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Rating saved")
}

type cancelInput struct {
	SessionID uint `json:"sessionId"`
}

// CancelSession lets the student withdraw a pending or accepted session.
func CancelSession(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "STUDENT")
	if claims == nil {
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in cancelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.SessionID == 0 {
		helpers.Message(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if err := booking().CancelSession(in.SessionID, claims.UserID); err != nil {
		helpers.ServiceError(w, err)
		return
	}
	helpers.Message(w, http.StatusOK, "Session cancelled")
}

package tutors

import (
	"encoding/json"
	"net/http"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/services"
)

func booking() *services.BookingService {
	return services.NewBookingService(config.DB, config.Logger)
}

// ListRequests returns the tutor's incoming requests, newest first.
func ListRequests(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var requests []tutoring.Request
	if err := config.DB.Where("tutor_id = ?", claims.UserID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		helpers.Message(w, http.StatusInternalServerError, "Error loading requests")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

type decisionInput struct {
	RequestID uint   `json:"requestId"`
	Decision  string `json:"decision"`
}

// ResolveRequest is the canonical decision endpoint: it updates the request
// and its session and notifies the student.
func ResolveRequest(w http.ResponseWriter, r *http.Request) {
	resolve(w, r, true)
}

// UpdateRequest applies the same decision without emitting a notification.
func UpdateRequest(w http.ResponseWriter, r *http.Request) {
	resolve(w, r, false)
}

func resolve(w http.ResponseWriter, r *http.Request, notify bool) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in decisionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.RequestID == 0 {
		helpers.Message(w, http.StatusBadRequest, "requestId and decision are required")
		return
	}

	var (
		request *tutoring.Request
		err     error
	)
	if notify {
		request, err = booking().ResolveRequest(in.RequestID, in.Decision, claims.UserID)
	} else {
		request, err = booking().UpdateRequestStatus(in.RequestID, in.Decision, claims.UserID)
	}
	if err != nil {
		helpers.ServiceError(w, err)
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]interface{}{"request": request})
}

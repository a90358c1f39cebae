package tutors

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"tutoria-backend/config"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/helpers"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/services"
)

var validate = validator.New()

type availabilityInput struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,oneof=MON TUE WED THU FRI SAT SUN"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

func (in *availabilityInput) check() string {
	if err := validate.Struct(in); err != nil {
		return "dayOfWeek, startTime and endTime are required"
	}
	start, err := services.ParseClock(in.StartTime)
	if err != nil {
		return "startTime must be HH:MM"
	}
	end, err := services.ParseClock(in.EndTime)
	if err != nil {
		return "endTime must be HH:MM"
	}
	if end <= start {
		return "endTime must be after startTime"
	}
	return ""
}

// Availability handles the tutor's own weekly windows. Overlapping windows
// are accepted; colliding bookings are arbitrated by hand.
func Availability(w http.ResponseWriter, r *http.Request) {
	claims := authentication.RequireRole(w, r, "TUTOR")
	if claims == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		var windows []tutoring.AvailabilityWindow
		if err := config.DB.Where("tutor_id = ?", claims.UserID).Find(&windows).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error loading availability")
			return
		}
		services.SortWindows(windows)
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"availability": windows})

	case http.MethodPost:
		var in availabilityInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if msg := in.check(); msg != "" {
			helpers.Message(w, http.StatusBadRequest, msg)
			return
		}

		window := tutoring.AvailabilityWindow{
			TutorID:   claims.UserID,
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		}
		if err := config.DB.Create(&window).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error creating availability window")
			return
		}
		helpers.JSON(w, http.StatusCreated, map[string]interface{}{"availability": window})

	case http.MethodPut:
		id, ok := windowID(w, r)
		if !ok {
			return
		}
		var window tutoring.AvailabilityWindow
		if err := config.DB.Where("id = ? AND tutor_id = ?", id, claims.UserID).First(&window).Error; err != nil {
			helpers.Message(w, http.StatusNotFound, "Availability window not found")
			return
		}

		var in availabilityInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			helpers.Message(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if msg := in.check(); msg != "" {
			helpers.Message(w, http.StatusBadRequest, msg)
			return
		}

		window.DayOfWeek = in.DayOfWeek
		window.StartTime = in.StartTime
		window.EndTime = in.EndTime
		if err := config.DB.Save(&window).Error; err != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error updating availability window")
			return
		}
		helpers.JSON(w, http.StatusOK, map[string]interface{}{"availability": window})

	case http.MethodDelete:
		id, ok := windowID(w, r)
		if !ok {
			return
		}
		res := config.DB.Where("id = ? AND tutor_id = ?", id, claims.UserID).
			Delete(&tutoring.AvailabilityWindow{})
		if res.Error != nil {
			helpers.Message(w, http.StatusInternalServerError, "Error deleting availability window")
			return
		}
		if res.RowsAffected == 0 {
			helpers.Message(w, http.StatusNotFound, "Availability window not found")
			return
		}
		helpers.Message(w, http.StatusOK, "Availability window deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func windowID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 32)
	if err != nil || id == 0 {
		helpers.Message(w, http.StatusBadRequest, "id query parameter is required")
		return 0, false
	}
	return uint(id), true
}

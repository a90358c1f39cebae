package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tutoria-backend/config"
	"tutoria-backend/controllers/admin"
	"tutoria-backend/controllers/authentication"
	"tutoria-backend/controllers/httpCors"
	"tutoria-backend/controllers/students"
	"tutoria-backend/controllers/tutors"
	"tutoria-backend/models/catalog"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config.InitStore()

	if err := config.InitLogger(); err != nil {
		panic(err)
	}
	defer config.Logger.Sync()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := config.InitDB(); err != nil {
		config.Logger.Fatal("database init failed", zap.Error(err))
	}

	err := config.DB.AutoMigrate(
		&users.User{},
		&users.StudentProfile{},
		&users.TutorProfile{},
		&catalog.Subject{},
		&catalog.SubjectSemester{},
		&catalog.TutorSubject{},
		&tutoring.AvailabilityWindow{},
		&tutoring.Session{},
		&tutoring.Request{},
		&tutoring.Notification{},
	)
	if err != nil {
		config.Logger.Fatal("database migration failed", zap.Error(err))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/register", authentication.Register)
	mux.HandleFunc("/auth/login", authentication.Login)
	mux.HandleFunc("/auth/profile", authentication.GetProfile)
	mux.HandleFunc("/auth/profile/update", authentication.UpdateProfile)
	mux.HandleFunc("/auth/logout", authentication.Logout)
	mux.HandleFunc("/login/google", authentication.HandleGoogleLogin)
	mux.HandleFunc("/callback/google", authentication.HandleGoogleCallback)

	mux.HandleFunc("/student/subjects", students.ListSubjects)
	mux.HandleFunc("/student/subjects/tutors", students.TutorsForSubject)
	mux.HandleFunc("/student/schedule", students.Schedule)
	mux.HandleFunc("/student/slots", students.Slots)
	mux.HandleFunc("/student/requests", students.Requests)
	mux.HandleFunc("/student/sessions", students.ListSessions)
	mux.HandleFunc("/student/sessions/rate", students.RateSession)
	mux.HandleFunc("/student/sessions/cancel", students.CancelSession)
	mux.HandleFunc("/student/notifications", students.Notifications)

	mux.HandleFunc("/tutor/availability", tutors.Availability)
	mux.HandleFunc("/tutor/subjects", tutors.Subjects)
	mux.HandleFunc("/tutor/requests", tutors.ListRequests)
	mux.HandleFunc("/tutor/requests/resolve", tutors.ResolveRequest)
	mux.HandleFunc("/tutor/requests/update", tutors.UpdateRequest)
	mux.HandleFunc("/tutor/sessions", tutors.ListSessions)
	mux.HandleFunc("/tutor/sessions/complete", tutors.CompleteSession)
	mux.HandleFunc("/tutor/profile", tutors.Profile)

	mux.HandleFunc("/admin/students", admin.Students)
	mux.HandleFunc("/admin/tutors", admin.Tutors)
	mux.HandleFunc("/admin/tutors/availability", admin.TutorAvailability)
	mux.HandleFunc("/admin/subjects", admin.Subjects)
	mux.HandleFunc("/admin/dashboard", admin.Dashboard)
	mux.HandleFunc("/admin/reports", admin.Reports)

	handler := httpCors.CorsSettings().Handler(mux)

	config.Logger.Info("server listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		config.Logger.Fatal("server stopped", zap.Error(err))
	}
}

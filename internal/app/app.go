package app

import (
	"fmt"
	"net/http"

	"medmate/internal/app/deps"
	"medmate/internal/app/services"
	"medmate/internal/http/handlers/auth"
	loginwithemail "medmate/internal/http/handlers/auth/log_in_with_email"
	logout "medmate/internal/http/handlers/auth/log_out"
	"medmate/internal/http/handlers/auth/me"
	signupwithemail "medmate/internal/http/handlers/auth/sign_up_with_email"
	"medmate/internal/http/handlers/events"
	createfamilymember "medmate/internal/http/handlers/family/create_family_member"
	deletefamilymember "medmate/internal/http/handlers/family/delete_family_member"
	listfamilymembers "medmate/internal/http/handlers/family/list_family_members"
	updatefamilymember "medmate/internal/http/handlers/family/update_family_member"
	createprescription "medmate/internal/http/handlers/prescriptions/create_prescription"
	deleteprescription "medmate/internal/http/handlers/prescriptions/delete_prescription"
	getprescription "medmate/internal/http/handlers/prescriptions/get_prescription"
	listprescriptions "medmate/internal/http/handlers/prescriptions/list_prescriptions"
	updateprescription "medmate/internal/http/handlers/prescriptions/update_prescription"
	acknowledgeoccurrence "medmate/internal/http/handlers/reminders/acknowledge_occurrence"
	createreminder "medmate/internal/http/handlers/reminders/create_reminder"
	deletereminder "medmate/internal/http/handlers/reminders/delete_reminder"
	editreminder "medmate/internal/http/handlers/reminders/edit_reminder"
	exportcalendar "medmate/internal/http/handlers/reminders/export_calendar"
	getreminder "medmate/internal/http/handlers/reminders/get_reminder"
	listoccurrences "medmate/internal/http/handlers/reminders/list_occurrences"
	listuserreminders "medmate/internal/http/handlers/reminders/list_user_reminders"
	setreminderactive "medmate/internal/http/handlers/reminders/set_reminder_active"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler: NewRouter(deps, s),
		Addr:    fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))

	familyRouter := chi.NewRouter()
	familyRouter.Use(auth.SetAuthTokenToContext)
	familyRouter.Method(http.MethodGet, "/", listfamilymembers.New(s.ListFamilyMembers))
	familyRouter.Method(http.MethodPost, "/", createfamilymember.New(s.CreateFamilyMember))
	familyRouter.Method(http.MethodPatch, "/{memberID:[0-9]+}", updatefamilymember.New(s.UpdateFamilyMember))
	familyRouter.Method(http.MethodDelete, "/{memberID:[0-9]+}", deletefamilymember.New(s.DeleteFamilyMember))

	prescriptionRouter := chi.NewRouter()
	prescriptionRouter.Use(auth.SetAuthTokenToContext)
	prescriptionRouter.Method(http.MethodGet, "/", listprescriptions.New(s.ListPrescriptions))
	prescriptionRouter.Method(http.MethodPost, "/", createprescription.New(s.CreatePrescription))
	prescriptionRouter.Method(http.MethodGet, "/{prescriptionID:[0-9]+}", getprescription.New(s.GetPrescription))
	prescriptionRouter.Method(http.MethodPatch, "/{prescriptionID:[0-9]+}", updateprescription.New(s.UpdatePrescription))
	prescriptionRouter.Method(http.MethodDelete, "/{prescriptionID:[0-9]+}", deleteprescription.New(s.DeletePrescription))

	reminderRouter := chi.NewRouter()
	reminderRouter.Use(auth.SetAuthTokenToContext)
	reminderRouter.Method(http.MethodGet, "/", listuserreminders.New(s.ListUserReminders))
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodGet, "/occurrences", listoccurrences.New(s.ListOccurrences))
	reminderRouter.Method(http.MethodGet, "/calendar.ics", exportcalendar.New(s.ExportCalendar))
	reminderRouter.Method(http.MethodGet, "/{reminderID:[0-9]+}", getreminder.New(s.GetReminder))
	reminderRouter.Method(http.MethodPatch, "/{reminderID:[0-9]+}", editreminder.New(s.EditReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID:[0-9]+}", deletereminder.New(s.DeleteReminder))
	reminderRouter.Method(
		http.MethodPut,
		"/{reminderID:[0-9]+}/active",
		setreminderactive.New(s.SetReminderActive),
	)
	reminderRouter.Method(
		http.MethodPost,
		"/{reminderID:[0-9]+}/acknowledge",
		acknowledgeoccurrence.New(s.AcknowledgeOccurrence),
	)

	eventsHandler := events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken)
	eventsRouter := chi.NewRouter()
	eventsRouter.Use(auth.SetAuthTokenToContext)
	eventsRouter.Method(http.MethodGet, "/", eventsHandler)
	eventsRouter.Method(http.MethodGet, "/{sessionToken}", eventsHandler)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Mount("/family", familyRouter)
	router.Mount("/prescriptions", prescriptionRouter)
	router.Mount("/reminders", reminderRouter)
	router.Mount("/events", eventsRouter)

	return router
}

package services

import (
	"medmate/internal/app/deps"
	drl "medmate/internal/core/domain/rate_limiter"
	"medmate/internal/core/services"
	acknowledgeoccurrence "medmate/internal/core/services/acknowledge_occurrence"
	"medmate/internal/core/services/auth"
	createfamilymember "medmate/internal/core/services/create_family_member"
	createprescription "medmate/internal/core/services/create_prescription"
	createreminder "medmate/internal/core/services/create_reminder"
	deletefamilymember "medmate/internal/core/services/delete_family_member"
	deleteprescription "medmate/internal/core/services/delete_prescription"
	deletereminder "medmate/internal/core/services/delete_reminder"
	dispatchdueoccurrences "medmate/internal/core/services/dispatch_due_occurrences"
	editreminder "medmate/internal/core/services/edit_reminder"
	exportcalendar "medmate/internal/core/services/export_calendar"
	getprescription "medmate/internal/core/services/get_prescription"
	getreminder "medmate/internal/core/services/get_reminder"
	getuserbysessiontoken "medmate/internal/core/services/get_user_by_session_token"
	listfamilymembers "medmate/internal/core/services/list_family_members"
	listoccurrences "medmate/internal/core/services/list_occurrences"
	listprescriptions "medmate/internal/core/services/list_prescriptions"
	listuserreminders "medmate/internal/core/services/list_user_reminders"
	loginwithemail "medmate/internal/core/services/log_in_with_email"
	logout "medmate/internal/core/services/log_out"
	notifyoccurrence "medmate/internal/core/services/notify_occurrence"
	ratelimiting "medmate/internal/core/services/rate_limiting"
	setreminderactive "medmate/internal/core/services/set_reminder_active"
	signupwithemail "medmate/internal/core/services/sign_up_with_email"
	updatefamilymember "medmate/internal/core/services/update_family_member"
	updateprescription "medmate/internal/core/services/update_prescription"
)

type Services struct {
	SignUpWithEmail       services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	CreateFamilyMember services.Service[createfamilymember.Input, createfamilymember.Result]
	ListFamilyMembers  services.Service[listfamilymembers.Input, listfamilymembers.Result]
	UpdateFamilyMember services.Service[updatefamilymember.Input, updatefamilymember.Result]
	DeleteFamilyMember services.Service[deletefamilymember.Input, deletefamilymember.Result]

	CreatePrescription services.Service[createprescription.Input, createprescription.Result]
	ListPrescriptions  services.Service[listprescriptions.Input, listprescriptions.Result]
	GetPrescription    services.Service[getprescription.Input, getprescription.Result]
	UpdatePrescription services.Service[updateprescription.Input, updateprescription.Result]
	DeletePrescription services.Service[deleteprescription.Input, deleteprescription.Result]

	CreateReminder        services.Service[createreminder.Input, createreminder.Result]
	GetReminder           services.Service[getreminder.Input, getreminder.Result]
	ListUserReminders     services.Service[listuserreminders.Input, listuserreminders.Result]
	EditReminder          services.Service[editreminder.Input, editreminder.Result]
	SetReminderActive     services.Service[setreminderactive.Input, setreminderactive.Result]
	AcknowledgeOccurrence services.Service[acknowledgeoccurrence.Input, acknowledgeoccurrence.Result]
	DeleteReminder        services.Service[deletereminder.Input, deletereminder.Result]
	ListOccurrences       services.Service[listoccurrences.Input, listoccurrences.Result]
	ExportCalendar        services.Service[exportcalendar.Input, exportcalendar.Result]

	DispatchDueOccurrences services.Service[dispatchdueoccurrences.Input, dispatchdueoccurrences.Result]
	NotifyOccurrence       services.Service[notifyoccurrence.Input, notifyoccurrence.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 5},
		signupwithemail.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.PasswordHasher,
			deps.Now,
		),
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.UserSessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(deps.Logger, deps.SessionRepository)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(deps.Logger),
	)

	s.CreateFamilyMember = auth.WithAuthentication(
		deps.SessionRepository,
		createfamilymember.New(deps.Logger, deps.FamilyRepository, deps.Now),
	)
	s.ListFamilyMembers = auth.WithAuthentication(
		deps.SessionRepository,
		listfamilymembers.New(deps.Logger, deps.FamilyRepository),
	)
	s.UpdateFamilyMember = auth.WithAuthentication(
		deps.SessionRepository,
		updatefamilymember.New(deps.Logger, deps.FamilyRepository, deps.Now),
	)
	s.DeleteFamilyMember = auth.WithAuthentication(
		deps.SessionRepository,
		deletefamilymember.New(deps.Logger, deps.UnitOfWork),
	)

	s.CreatePrescription = auth.WithAuthentication(
		deps.SessionRepository,
		createprescription.New(deps.Logger, deps.FamilyRepository, deps.PrescriptionRepository, deps.Now),
	)
	s.ListPrescriptions = auth.WithAuthentication(
		deps.SessionRepository,
		listprescriptions.New(deps.Logger, deps.PrescriptionRepository),
	)
	s.GetPrescription = auth.WithAuthentication(
		deps.SessionRepository,
		getprescription.New(deps.Logger, deps.PrescriptionRepository),
	)
	s.UpdatePrescription = auth.WithAuthentication(
		deps.SessionRepository,
		updateprescription.New(deps.Logger, deps.FamilyRepository, deps.PrescriptionRepository, deps.Now),
	)
	s.DeletePrescription = auth.WithAuthentication(
		deps.SessionRepository,
		deleteprescription.New(deps.Logger, deps.PrescriptionRepository),
	)

	s.CreateReminder = auth.WithAuthentication(
		deps.SessionRepository,
		createreminder.New(deps.Logger, deps.UnitOfWork, deps.Config.ActiveReminderLimit, deps.Now),
	)
	s.GetReminder = auth.WithAuthentication(
		deps.SessionRepository,
		getreminder.New(deps.Logger, deps.ReminderRepository),
	)
	s.ListUserReminders = auth.WithAuthentication(
		deps.SessionRepository,
		listuserreminders.New(deps.Logger, deps.ReminderRepository),
	)
	s.EditReminder = auth.WithAuthentication(
		deps.SessionRepository,
		editreminder.New(deps.Logger, deps.UnitOfWork, deps.Now),
	)
	s.SetReminderActive = auth.WithAuthentication(
		deps.SessionRepository,
		setreminderactive.New(deps.Logger, deps.UnitOfWork, deps.Config.ActiveReminderLimit, deps.Now),
	)
	s.AcknowledgeOccurrence = auth.WithAuthentication(
		deps.SessionRepository,
		acknowledgeoccurrence.New(deps.Logger, deps.UnitOfWork, deps.Now),
	)
	s.DeleteReminder = auth.WithAuthentication(
		deps.SessionRepository,
		deletereminder.New(deps.Logger, deps.UnitOfWork),
	)
	s.ListOccurrences = auth.WithAuthentication(
		deps.SessionRepository,
		listoccurrences.New(deps.Logger, deps.ReminderRepository, deps.AcknowledgmentRepository),
	)
	s.ExportCalendar = auth.WithAuthentication(
		deps.SessionRepository,
		exportcalendar.New(deps.Logger, deps.ReminderRepository, deps.CalendarExporter, deps.Now),
	)

	s.DispatchDueOccurrences = dispatchdueoccurrences.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.OccurrenceClaimer,
		deps.OccurrencePublisher,
		deps.Config.DispatchLookback,
		deps.Now,
	)
	s.NotifyOccurrence = notifyoccurrence.New(deps.Logger, deps.ReminderRepository, deps.OccurrenceNotifier)

	return s
}

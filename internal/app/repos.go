package app

import (
	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type Repos struct {
	Church        repos.ChurchRepo
	User          repos.UserRepo
	Member        repos.MemberRepo
	Attendance    repos.WeeklyAttendanceRepo
	Event         repos.EventRepo
	EventAttendee repos.EventAttendeeRepo
	MeetingMinute repos.MeetingMinuteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Church:        repos.NewChurchRepo(db, log),
		User:          repos.NewUserRepo(db, log),
		Member:        repos.NewMemberRepo(db, log),
		Attendance:    repos.NewWeeklyAttendanceRepo(db, log),
		Event:         repos.NewEventRepo(db, log),
		EventAttendee: repos.NewEventAttendeeRepo(db, log),
		MeetingMinute: repos.NewMeetingMinuteRepo(db, log),
	}
}

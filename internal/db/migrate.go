package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// Tenant
		&domain.Church{},
		&domain.User{},

		// Source collections feeding the stats aggregate
		&domain.Member{},
		&domain.WeeklyAttendance{},
		&domain.Event{},
		&domain.EventAttendee{},

		// Records outside the aggregate
		&domain.MeetingMinute{},
	); err != nil {
		return err
	}
	return addForeignKeys(db)
}

type fkSpec struct {
	name     string
	table    string
	column   string
	refTable string
	onDelete string
}

// DisableForeignKeyConstraintWhenMigrating is set on the GORM config, so the
// constraints the engine relies on are declared here explicitly.
var foreignKeys = []fkSpec{
	{"fk_app_user_church_id", "app_user", "church_id", "church", "CASCADE"},
	{"fk_member_church_id", "member", "church_id", "church", "CASCADE"},
	{"fk_weekly_attendance_church_id", "weekly_attendance", "church_id", "church", "CASCADE"},
	{"fk_event_church_id", "event", "church_id", "church", "CASCADE"},
	{"fk_meeting_minute_church_id", "meeting_minute", "church_id", "church", "CASCADE"},
	{"fk_event_attendee_event_id", "event_attendee", "event_id", "event", "CASCADE"},
	{"fk_event_attendee_member_id", "event_attendee", "member_id", "member", "CASCADE"},
	// A deleted member just vacates the service role.
	{"fk_event_director_member_id", "event", "director_member_id", "member", "SET NULL"},
	{"fk_event_preacher_member_id", "event", "preacher_member_id", "member", "SET NULL"},
	{"fk_event_reader_member_id", "event", "reader_member_id", "member", "SET NULL"},
}

func addForeignKeys(db *gorm.DB) error {
	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(`
			DO $$ BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint WHERE conname = '%s'
				) THEN
					ALTER TABLE %q
					ADD CONSTRAINT %q
					FOREIGN KEY (%q)
					REFERENCES %q("id")
					ON DELETE %s;
				END IF;
			END $$;`,
			fk.name, fk.table, fk.name, fk.column, fk.refTable, fk.onDelete,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

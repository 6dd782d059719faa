package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type AttendanceService interface {
	Create(ctx context.Context, in domainagg.CreateWeeklyAttendanceInput) (domainagg.MutationResult, error)
	Update(ctx context.Context, in domainagg.UpdateWeeklyAttendanceInput) (domainagg.MutationResult, error)
	Delete(ctx context.Context, in domainagg.DeleteWeeklyAttendanceInput) (domainagg.MutationResult, error)
	List(ctx context.Context, churchID uuid.UUID, limit int) ([]*domain.WeeklyAttendance, error)
}

type attendanceService struct {
	log        *logger.Logger
	agg        domainagg.ChurchStatsAggregate
	attendance repos.WeeklyAttendanceRepo
}

func NewAttendanceService(log *logger.Logger, agg domainagg.ChurchStatsAggregate, attendance repos.WeeklyAttendanceRepo) AttendanceService {
	return &attendanceService{
		log:        log.With("service", "AttendanceService"),
		agg:        agg,
		attendance: attendance,
	}
}

func (s *attendanceService) Create(ctx context.Context, in domainagg.CreateWeeklyAttendanceInput) (domainagg.MutationResult, error) {
	return s.agg.CreateWeeklyAttendance(ctx, in)
}

func (s *attendanceService) Update(ctx context.Context, in domainagg.UpdateWeeklyAttendanceInput) (domainagg.MutationResult, error) {
	return s.agg.UpdateWeeklyAttendance(ctx, in)
}

func (s *attendanceService) Delete(ctx context.Context, in domainagg.DeleteWeeklyAttendanceInput) (domainagg.MutationResult, error) {
	return s.agg.DeleteWeeklyAttendance(ctx, in)
}

func (s *attendanceService) List(ctx context.Context, churchID uuid.UUID, limit int) ([]*domain.WeeklyAttendance, error) {
	return s.attendance.ListByChurch(dbctx.Context{Ctx: ctx}, churchID, limit)
}

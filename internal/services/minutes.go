package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type CreateMinuteInput struct {
	MeetingDate time.Time `json:"meeting_date"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments"`
}

type UpdateMinuteInput struct {
	MeetingDate *time.Time `json:"meeting_date"`
	Title       *string    `json:"title"`
	Body        *string    `json:"body"`
	Attachments *[]string  `json:"attachments"`
}

// MinuteService manages meeting minutes. Minutes never feed the stats
// aggregate, so they bypass the coordinator entirely.
type MinuteService interface {
	Create(ctx context.Context, churchID uuid.UUID, in CreateMinuteInput) (*domain.MeetingMinute, error)
	Update(ctx context.Context, churchID, minuteID uuid.UUID, in UpdateMinuteInput) (*domain.MeetingMinute, error)
	Delete(ctx context.Context, churchID, minuteID uuid.UUID) error
	Get(ctx context.Context, churchID, minuteID uuid.UUID) (*domain.MeetingMinute, error)
	List(ctx context.Context, churchID uuid.UUID, limit int) ([]*domain.MeetingMinute, error)
}

type minuteService struct {
	log     *logger.Logger
	minutes repos.MeetingMinuteRepo
}

func NewMinuteService(log *logger.Logger, minutes repos.MeetingMinuteRepo) MinuteService {
	return &minuteService{
		log:     log.With("service", "MinuteService"),
		minutes: minutes,
	}
}

func (s *minuteService) Create(ctx context.Context, churchID uuid.UUID, in CreateMinuteInput) (*domain.MeetingMinute, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	if in.MeetingDate.IsZero() {
		return nil, fmt.Errorf("meeting_date is required")
	}
	attachments, err := marshalAttachments(in.Attachments)
	if err != nil {
		return nil, err
	}
	rows, err := s.minutes.Create(dbctx.Context{Ctx: ctx}, []*domain.MeetingMinute{{
		ChurchID:    churchID,
		MeetingDate: in.MeetingDate,
		Title:       strings.TrimSpace(in.Title),
		Body:        in.Body,
		Attachments: attachments,
	}})
	if err != nil {
		return nil, fmt.Errorf("create minute: %w", err)
	}
	return rows[0], nil
}

func (s *minuteService) Update(ctx context.Context, churchID, minuteID uuid.UUID, in UpdateMinuteInput) (*domain.MeetingMinute, error) {
	dbc := dbctx.Context{Ctx: ctx}
	m, err := s.getOwned(dbc, churchID, minuteID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.MeetingDate != nil {
		if in.MeetingDate.IsZero() {
			return nil, fmt.Errorf("meeting_date cannot be empty")
		}
		updates["meeting_date"] = *in.MeetingDate
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Body != nil {
		updates["body"] = *in.Body
	}
	if in.Attachments != nil {
		attachments, err := marshalAttachments(*in.Attachments)
		if err != nil {
			return nil, err
		}
		updates["attachments"] = attachments
	}
	if len(updates) > 0 {
		if err := s.minutes.UpdateFields(dbc, m.ID, updates); err != nil {
			return nil, fmt.Errorf("update minute: %w", err)
		}
	}
	return s.minutes.GetByID(dbc, m.ID)
}

func (s *minuteService) Delete(ctx context.Context, churchID, minuteID uuid.UUID) error {
	dbc := dbctx.Context{Ctx: ctx}
	m, err := s.getOwned(dbc, churchID, minuteID)
	if err != nil {
		return err
	}
	return s.minutes.Delete(dbc, m.ID)
}

func (s *minuteService) Get(ctx context.Context, churchID, minuteID uuid.UUID) (*domain.MeetingMinute, error) {
	return s.getOwned(dbctx.Context{Ctx: ctx}, churchID, minuteID)
}

func (s *minuteService) List(ctx context.Context, churchID uuid.UUID, limit int) ([]*domain.MeetingMinute, error) {
	return s.minutes.ListByChurch(dbctx.Context{Ctx: ctx}, churchID, limit)
}

func (s *minuteService) getOwned(dbc dbctx.Context, churchID, minuteID uuid.UUID) (*domain.MeetingMinute, error) {
	m, err := s.minutes.GetByID(dbc, minuteID)
	if err != nil {
		return nil, err
	}
	if m.ChurchID != churchID {
		return nil, ErrNotFound
	}
	return m, nil
}

func marshalAttachments(attachments []string) (datatypes.JSON, error) {
	if len(attachments) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("attachments not serializable: %w", err)
	}
	return datatypes.JSON(raw), nil
}

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

// MemberService fronts member reads and routes every mutation through the
// stats aggregate so the church snapshot stays consistent.
type MemberService interface {
	Create(ctx context.Context, in domainagg.CreateMemberInput) (domainagg.MutationResult, error)
	Update(ctx context.Context, in domainagg.UpdateMemberInput) (domainagg.MutationResult, error)
	Delete(ctx context.Context, in domainagg.DeleteMemberInput) (domainagg.MutationResult, error)
	Get(ctx context.Context, churchID, memberID uuid.UUID) (*domain.Member, error)
	List(ctx context.Context, churchID uuid.UUID, limit int) ([]*domain.Member, error)
}

type memberService struct {
	log     *logger.Logger
	agg     domainagg.ChurchStatsAggregate
	members repos.MemberRepo
}

func NewMemberService(log *logger.Logger, agg domainagg.ChurchStatsAggregate, members repos.MemberRepo) MemberService {
	return &memberService{
		log:     log.With("service", "MemberService"),
		agg:     agg,
		members: members,
	}
}

func (s *memberService) Create(ctx context.Context, in domainagg.CreateMemberInput) (domainagg.MutationResult, error) {
	return s.agg.CreateMember(ctx, in)
}

func (s *memberService) Update(ctx context.Context, in domainagg.UpdateMemberInput) (domainagg.MutationResult, error) {
	return s.agg.UpdateMember(ctx, in)
}

func (s *memberService) Delete(ctx context.Context, in domainagg.DeleteMemberInput) (domainagg.MutationResult, error) {
	return s.agg.DeleteMember(ctx, in)
}

func (s *memberService) Get(ctx context.Context, churchID, memberID uuid.UUID) (*domain.Member, error) {
	m, err := s.members.GetByID(dbctx.Context{Ctx: ctx}, memberID)
	if err != nil {
		return nil, err
	}
	if m.ChurchID != churchID {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *memberService) List(ctx context.Context, churchID uuid.UUID, limit int) ([]*domain.Member, error) {
	return s.members.ListByChurch(dbctx.Context{Ctx: ctx}, churchID, limit)
}

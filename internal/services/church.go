package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/clients/gcp"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
)

type ChurchProfilePatch struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	PastorName *string `json:"pastor_name"`
}

type ChurchService interface {
	Get(ctx context.Context, churchID uuid.UUID) (*domain.Church, error)
	GetStats(ctx context.Context, churchID uuid.UUID) (domainagg.StatsSnapshot, error)
	UpdateProfile(ctx context.Context, churchID uuid.UUID, patch ChurchProfilePatch) (*domain.Church, error)
	UploadLogo(ctx context.Context, churchID uuid.UUID, filename string, file io.Reader) (string, error)
}

type churchService struct {
	log      *logger.Logger
	agg      domainagg.ChurchStatsAggregate
	churches repos.ChurchRepo
	bucket   gcp.BucketService
}

// NewChurchService builds the tenant profile service. bucket may be nil when
// no GCS configuration is present; logo uploads then fail cleanly.
func NewChurchService(log *logger.Logger, agg domainagg.ChurchStatsAggregate, churches repos.ChurchRepo, bucket gcp.BucketService) ChurchService {
	return &churchService{
		log:      log.With("service", "ChurchService"),
		agg:      agg,
		churches: churches,
		bucket:   bucket,
	}
}

func (s *churchService) Get(ctx context.Context, churchID uuid.UUID) (*domain.Church, error) {
	return s.churches.GetByID(dbctx.Context{Ctx: ctx}, churchID)
}

func (s *churchService) GetStats(ctx context.Context, churchID uuid.UUID) (domainagg.StatsSnapshot, error) {
	return s.agg.GetStats(ctx, churchID)
}

// UpdateProfile touches only descriptive columns. Aggregate columns are off
// limits here; the stats aggregate is their sole writer.
func (s *churchService) UpdateProfile(ctx context.Context, churchID uuid.UUID, patch ChurchProfilePatch) (*domain.Church, error) {
	dbc := dbctx.Context{Ctx: ctx}
	updates := map[string]interface{}{}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.PastorName != nil {
		updates["pastor_name"] = *patch.PastorName
	}
	if len(updates) > 0 {
		if err := s.churches.UpdateFields(dbc, churchID, updates); err != nil {
			return nil, fmt.Errorf("update church profile: %w", err)
		}
	}
	return s.churches.GetByID(dbc, churchID)
}

func (s *churchService) UploadLogo(ctx context.Context, churchID uuid.UUID, filename string, file io.Reader) (string, error) {
	if s.bucket == nil {
		return "", fmt.Errorf("logo storage not configured")
	}
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".svg":
	default:
		return "", fmt.Errorf("unsupported logo format %q", ext)
	}

	key := fmt.Sprintf("churches/%s/logo%s", churchID, ext)
	if err := s.bucket.UploadFile(ctx, gcp.BucketCategoryLogo, key, file); err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}
	url := s.bucket.GetPublicURL(gcp.BucketCategoryLogo, key)

	if err := s.churches.UpdateFields(dbctx.Context{Ctx: ctx}, churchID, map[string]interface{}{
		"logo_bucket_key": key,
		"logo_url":        url,
	}); err != nil {
		return "", fmt.Errorf("persist logo reference: %w", err)
	}
	return url, nil
}

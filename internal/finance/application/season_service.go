package application

import (
	"context"
	"strings"

	"github.com/sebuszqo/SeasonLedger/internal/finance/domain"
)

type SeasonService struct {
	repo domain.SeasonRepository
}

func NewSeasonService(repo domain.SeasonRepository) *SeasonService {
	return &SeasonService{repo: repo}
}

func (s *SeasonService) ListSeasons(ctx context.Context) ([]domain.Season, error) {
	return s.repo.ListLive(ctx)
}

func (s *SeasonService) GetSeason(ctx context.Context, id string) (*domain.Season, error) {
	return s.repo.FindLive(ctx, id)
}

// CreateSeason stores a new season. A nil active means inactive. Creating an
// active season demotes the one that was active before.
func (s *SeasonService) CreateSeason(ctx context.Context, name string, active *bool) (*domain.Season, error) {
	season := &domain.Season{
		Name:   strings.TrimSpace(name),
		Active: active != nil && *active,
	}
	if err := s.repo.Create(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}

func (s *SeasonService) UpdateSeason(ctx context.Context, id string, patch domain.SeasonPatch) (*domain.Season, error) {
	rename := func(season *domain.Season) error {
		if patch.Name != nil {
			season.Name = strings.TrimSpace(*patch.Name)
		}
		return nil
	}

	if patch.Activates() {
		return s.repo.Activate(ctx, id, rename)
	}
	return s.repo.Update(ctx, id, func(season *domain.Season) error {
		if patch.Active != nil {
			season.Active = *patch.Active
		}
		return rename(season)
	})
}

func (s *SeasonService) ActivateSeason(ctx context.Context, id string) (*domain.Season, error) {
	return s.repo.Activate(ctx, id, nil)
}

func (s *SeasonService) DeleteSeason(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

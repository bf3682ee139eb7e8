package service

import (
	"errors"
	"sort"

	"quiz_backend/internal/model"
	"quiz_backend/internal/repository"
	"quiz_backend/internal/util"

	"gorm.io/gorm"
)

// GradeService validates grade-band partitions and resolves raw scores
// into grade labels.
type GradeService struct {
	Repo *repository.GradeRepository
}

func NewGradeService(repo *repository.GradeRepository) *GradeService {
	return &GradeService{Repo: repo}
}

type GradeBandInput struct {
	LowerBound float64 `json:"lowerBound"`
	UpperBound float64 `json:"upperBound"`
	Label      string  `json:"label"`
}

type GradeScaleRequest struct {
	MinValue float64          `json:"minValue"`
	MaxValue float64          `json:"maxValue"`
	Bands    []GradeBandInput `json:"bands"`
}

// BuildScale sorts the bands by lower bound and checks, in order: bounds
// containment within [MinValue, MaxValue], per-band inversion, and
// pairwise overlap of adjacent bands. It short-circuits on the first
// violation and never persists anything itself; the caller stores the
// returned scale inside the test-creation transaction.
func (s *GradeService) BuildScale(req GradeScaleRequest) (*model.GradeScale, error) {
	if len(req.Bands) == 0 {
		return nil, util.ErrNoBands
	}
	if req.MinValue > req.MaxValue {
		return nil, util.ErrInvertedBand
	}

	bands := make([]GradeBandInput, len(req.Bands))
	copy(bands, req.Bands)
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].LowerBound < bands[j].LowerBound
	})

	if bands[0].LowerBound < req.MinValue || bands[len(bands)-1].UpperBound > req.MaxValue {
		return nil, util.ErrBandOutOfRange
	}

	for _, b := range bands {
		if b.LowerBound > b.UpperBound {
			return nil, util.ErrInvertedBand
		}
	}

	// Bounds are inclusive, so a shared boundary is an overlap too.
	for i := 0; i < len(bands)-1; i++ {
		if bands[i].UpperBound >= bands[i+1].LowerBound {
			return nil, util.ErrOverlappingBands
		}
	}

	scale := &model.GradeScale{
		MinValue: req.MinValue,
		MaxValue: req.MaxValue,
		Bands:    make([]model.GradeBand, len(bands)),
	}
	for i, b := range bands {
		scale.Bands[i] = model.GradeBand{
			LowerBound: b.LowerBound,
			UpperBound: b.UpperBound,
			Label:      b.Label,
			Position:   i,
		}
	}
	return scale, nil
}

// Resolve maps a score to the unique band containing it. Bands do not
// overlap, so the first containment match wins.
func (s *GradeService) Resolve(scale *model.GradeScale, score float64) (string, error) {
	for i := range scale.Bands {
		if scale.Bands[i].Contains(score) {
			return scale.Bands[i].Label, nil
		}
	}
	return "", util.ErrNoMatchingBand
}

// ResolveForTest loads the test's scale and resolves score against it.
func (s *GradeService) ResolveForTest(testID uint, score float64) (string, error) {
	scale, err := s.Repo.FindScaleByTestID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrNoMatchingBand
		}
		return "", err
	}
	return s.Resolve(scale, score)
}

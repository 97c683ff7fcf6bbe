package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"

	"github.com/google/uuid"
)

const (
	batchDateLayout = "2006-01-02"
	maxSearchLen    = 100
)

var (
	ErrInvalidPage   = errors.New("invalid page: must be >= 1")
	ErrBatchNotFound = errors.New("batch not found")
	ErrInvalidBatch  = errors.New("invalid batch")
)

type BatchService struct {
	batchRepo repository.BatchRepo
	now       func() time.Time
}

func NewBatchService(batchRepo repository.BatchRepo) *BatchService {
	return &BatchService{batchRepo: batchRepo, now: time.Now}
}

// List returns page q.Page of the batches matching q.Search, BatchPageSize per page.
// Pages past the end are empty but still report the total count.
func (s *BatchService) List(ctx context.Context, q BatchQuery) (models.BatchPage, error) {
	if q.Page < 1 {
		return models.BatchPage{}, ErrInvalidPage
	}
	search := strings.TrimSpace(q.Search)
	if utf8.RuneCountInString(search) > maxSearchLen {
		search = string([]rune(search)[:maxSearchLen])
	}

	offset := (q.Page - 1) * models.BatchPageSize
	batches, total, err := s.batchRepo.Search(ctx, search, models.BatchPageSize, offset)
	if err != nil {
		return models.BatchPage{}, err
	}
	if batches == nil {
		batches = []models.Batch{}
	}
	return models.BatchPage{Batches: batches, TotalCount: total}, nil
}

// Get returns one batch with its images.
func (s *BatchService) Get(ctx context.Context, id string) (models.Batch, error) {
	b, err := s.batchRepo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Batch{}, ErrBatchNotFound
	}
	return b, err
}

// Ingest stores an ML pipeline upload. The batch damage count is the sum of
// its images' damage counts.
func (s *BatchService) Ingest(ctx context.Context, in BatchInput) (models.Batch, error) {
	b, err := s.buildBatch(in)
	if err != nil {
		return models.Batch{}, err
	}
	if err := s.batchRepo.Insert(ctx, b); err != nil {
		return models.Batch{}, err
	}
	return b, nil
}

func (s *BatchService) buildBatch(in BatchInput) (models.Batch, error) {
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().UTC().Format(batchDateLayout)
	}
	if _, err := time.Parse(batchDateLayout, date); err != nil {
		return models.Batch{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidBatch, in.Date)
	}
	if len(in.Images) == 0 {
		return models.Batch{}, fmt.Errorf("%w: at least one image is required", ErrInvalidBatch)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Batch " + date
	}

	b := models.Batch{
		ID:     uuid.NewString(),
		Name:   name,
		Date:   date,
		Images: make([]models.BatchImage, 0, len(in.Images)),
	}
	for i, img := range in.Images {
		url := strings.TrimSpace(img.URL)
		if url == "" {
			return models.Batch{}, fmt.Errorf("%w: image %d has no url", ErrInvalidBatch, i)
		}
		if img.DamageCount < 0 {
			return models.Batch{}, fmt.Errorf("%w: image %d has negative damage count", ErrInvalidBatch, i)
		}
		b.Images = append(b.Images, models.BatchImage{
			ID:          uuid.NewString(),
			URL:         url,
			DamageCount: img.DamageCount,
		})
		b.DamageCount += img.DamageCount
	}
	return b, nil
}

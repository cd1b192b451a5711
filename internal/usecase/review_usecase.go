package usecase

import (
	"context"
	"strings"
	"time"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	now         Clock
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

type CreateReviewInput struct {
	ProductID   string
	Rating      int
	Description string
}

func (uc *ReviewUseCase) ListForProduct(ctx context.Context, productID string) ([]*entity.Review, error) {
	if productID == "" {
		return nil, errors.BadRequest("Product ID is required", nil)
	}
	return uc.reviewRepo.ListByProduct(ctx, productID)
}

// Create posts a review as the session user. Reviews cannot be edited later.
func (uc *ReviewUseCase) Create(ctx context.Context, session *entity.Session, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, errors.BadRequest("Review description is required", nil)
	}

	// Confirms the product exists before the write.
	if _, err := uc.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID:     input.ProductID,
		ReviewerEmail: session.Email,
		ReviewerName:  session.Name,
		ReviewerImage: session.Photo,
		Rating:        input.Rating,
		Description:   description,
		CreatedAt:     uc.now().UTC(),
	}

	created, err := uc.reviewRepo.Create(ctx, review)
	if err != nil {
		logger.Error("Review on %s by %s failed: %v", input.ProductID, session.Email, err)
		return nil, err
	}
	return created, nil
}

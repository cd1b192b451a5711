package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// FreeTierProductLimit is how many products a non-premium user may submit.
const FreeTierProductLimit = 1

const upgradeMessage = "Free accounts can submit one product. Upgrade to premium to add more."

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	now         Clock
}

func NewProductUseCase(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

type CreateProductInput struct {
	Name         string
	Image        string
	Description  string
	Tags         []string
	ExternalLink string
}

// QuotaDecision is the advisory submission gate shown before the add-product
// form. The backend remains the authority.
type QuotaDecision struct {
	CanSubmit       bool `json:"canSubmit"`
	ProductCount    int  `json:"productCount"`
	IsPremium       bool `json:"isPremium"`
	UpgradeRequired bool `json:"upgradeRequired"`
}

func EvaluateQuota(isPremium bool, productCount int) QuotaDecision {
	canSubmit := isPremium || productCount < FreeTierProductLimit
	return QuotaDecision{
		CanSubmit:       canSubmit,
		ProductCount:    productCount,
		IsPremium:       isPremium,
		UpgradeRequired: !canSubmit,
	}
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, search string, page, pageSize int) ([]*entity.Product, int64, error) {
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}

	return uc.productRepo.List(ctx, repository.ProductFilter{
		Search: strings.TrimSpace(search),
		Status: entity.ProductAccepted,
		Sort:   "newest",
		Limit:  pageSize,
		Offset: offset,
	})
}

// Featured returns accepted, featured products, newest first.
func (uc *ProductUseCase) Featured(ctx context.Context, limit int) ([]*entity.Product, error) {
	featured := true
	products, _, err := uc.productRepo.List(ctx, repository.ProductFilter{
		Status:   entity.ProductAccepted,
		Featured: &featured,
		Sort:     "newest",
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return truncate(products, limit), nil
}

// Trending returns accepted products ordered by votes, highest first.
func (uc *ProductUseCase) Trending(ctx context.Context, limit int) ([]*entity.Product, error) {
	products, _, err := uc.productRepo.List(ctx, repository.ProductFilter{
		Status: entity.ProductAccepted,
		Sort:   "votes",
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Votes > products[j].Votes
	})
	return truncate(products, limit), nil
}

func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

// Upvote casts the session user's vote. The returned product carries the
// backend's vote total; nothing is counted locally.
func (uc *ProductUseCase) Upvote(ctx context.Context, session *entity.Session, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.OwnedBy(session.Email) {
		return nil, errors.BadRequest("You cannot upvote your own product", nil)
	}

	updated, err := uc.productRepo.Upvote(ctx, id, session.Email)
	if err != nil {
		logger.Error("Upvote of %s by %s failed: %v", id, session.Email, err)
		return nil, err
	}
	return updated, nil
}

func (uc *ProductUseCase) Report(ctx context.Context, session *entity.Session, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errors.BadRequest("A report reason is required", nil)
	}

	if err := uc.productRepo.Report(ctx, id, session.Email, reason); err != nil {
		logger.Error("Report of %s by %s failed: %v", id, session.Email, err)
		return err
	}
	return nil
}

func (uc *ProductUseCase) QuotaStatus(ctx context.Context, session *entity.Session) (QuotaDecision, error) {
	user, err := uc.userRepo.GetProfile(ctx, session.Email)
	if err != nil {
		return QuotaDecision{}, err
	}

	count, err := uc.productRepo.CountByOwner(ctx, session.Email)
	if err != nil {
		return QuotaDecision{}, err
	}

	return EvaluateQuota(user.IsPremium(), count), nil
}

// SubmitProduct creates a pending product owned by the session user. A
// failed quota check short-circuits before any write reaches the backend.
func (uc *ProductUseCase) SubmitProduct(ctx context.Context, session *entity.Session, input CreateProductInput) (*entity.Product, error) {
	quota, err := uc.QuotaStatus(ctx, session)
	if err != nil {
		return nil, err
	}
	if !quota.CanSubmit {
		return nil, errors.PaymentRequired(upgradeMessage)
	}

	product := &entity.Product{
		Name:         strings.TrimSpace(input.Name),
		Image:        input.Image,
		Description:  input.Description,
		Tags:         normalizeTags(input.Tags),
		ExternalLink: input.ExternalLink,
		Owner: entity.Owner{
			Name:  session.Name,
			Email: session.Email,
			Photo: session.Photo,
		},
		Status:    entity.ProductPending,
		CreatedAt: uc.now().UTC(),
	}

	result, err := uc.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	if result.UpgradeRequired {
		return nil, errors.PaymentRequired(upgradeMessage)
	}

	logger.Info("Product %q submitted by %s", result.Product.Name, session.Email)
	return result.Product, nil
}

func (uc *ProductUseCase) MyProducts(ctx context.Context, session *entity.Session) ([]*entity.Product, error) {
	return uc.productRepo.ListByOwner(ctx, session.Email)
}

func (uc *ProductUseCase) UpdateMyProduct(ctx context.Context, session *entity.Session, id string, input CreateProductInput) (*entity.Product, error) {
	product, err := uc.ownedProduct(ctx, session, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Image = input.Image
	product.Description = input.Description
	product.Tags = normalizeTags(input.Tags)
	product.ExternalLink = input.ExternalLink

	return uc.productRepo.Update(ctx, product)
}

func (uc *ProductUseCase) DeleteMyProduct(ctx context.Context, session *entity.Session, id string) error {
	if _, err := uc.ownedProduct(ctx, session, id); err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, id)
}

func (uc *ProductUseCase) ownedProduct(ctx context.Context, session *entity.Session, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.OwnedBy(session.Email) {
		return nil, errors.Forbidden("You don't have permission to modify this product", nil)
	}
	return product, nil
}

// normalizeTags trims, lowercases and de-duplicates tags, keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func truncate(products []*entity.Product, limit int) []*entity.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

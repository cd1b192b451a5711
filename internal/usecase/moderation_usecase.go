package usecase

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
	"stacksphere/pkg/logger"
)

// Board is a moderator's working view: products awaiting review, accepted
// products that can still be featured, and reported products.
type Board struct {
	Pending        []*entity.Product `json:"pending"`
	ReadyToFeature []*entity.Product `json:"readyToFeature"`
	Reported       []*entity.Product `json:"reported"`
}

func (b *Board) clone() *Board {
	cp := func(in []*entity.Product) []*entity.Product {
		out := make([]*entity.Product, len(in))
		for i, p := range in {
			c := *p
			out[i] = &c
		}
		return out
	}
	return &Board{
		Pending:        cp(b.Pending),
		ReadyToFeature: cp(b.ReadyToFeature),
		Reported:       cp(b.Reported),
	}
}

func find(list []*entity.Product, id string) *entity.Product {
	for _, p := range list {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func without(list []*entity.Product, id string) []*entity.Product {
	out := list[:0:0]
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// Reconcile applies a successful moderation action to the board lists.
func (b *Board) Reconcile(product entity.Product, action entity.ModerationAction) {
	switch action {
	case entity.ActionAccept:
		b.Pending = without(b.Pending, product.ID)
		accepted := product.Apply(entity.ActionAccept)
		if find(b.ReadyToFeature, product.ID) == nil {
			b.ReadyToFeature = append(b.ReadyToFeature, &accepted)
		}
	case entity.ActionReject:
		b.Pending = without(b.Pending, product.ID)
	case entity.ActionFeature:
		b.ReadyToFeature = without(b.ReadyToFeature, product.ID)
	}
}

// ModerationUseCase runs the product moderation workflow. Each moderator
// has one board; lists are only changed after the backend call succeeds.
type ModerationUseCase struct {
	productRepo repository.ProductRepository

	mu     sync.Mutex
	boards map[string]*Board
}

func NewModerationUseCase(productRepo repository.ProductRepository) *ModerationUseCase {
	return &ModerationUseCase{
		productRepo: productRepo,
		boards:      make(map[string]*Board),
	}
}

// LoadBoard re-reads all three lists from the backend.
func (uc *ModerationUseCase) LoadBoard(ctx context.Context, moderator string) (*Board, error) {
	var board Board
	notFeatured := false

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pending, err := uc.productRepo.ListPending(gctx)
		board.Pending = pending
		return err
	})
	g.Go(func() error {
		accepted, _, err := uc.productRepo.List(gctx, repository.ProductFilter{
			Status:   entity.ProductAccepted,
			Featured: &notFeatured,
		})
		board.ReadyToFeature = accepted
		return err
	})
	g.Go(func() error {
		reported, err := uc.productRepo.ListReported(gctx)
		board.Reported = reported
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Guard against backends that ignore the featured filter.
	ready := board.ReadyToFeature[:0:0]
	for _, p := range board.ReadyToFeature {
		if entity.CanTransition(p, entity.ActionFeature) {
			ready = append(ready, p)
		}
	}
	board.ReadyToFeature = ready

	uc.mu.Lock()
	uc.boards[moderator] = &board
	snapshot := board.clone()
	uc.mu.Unlock()

	return snapshot, nil
}

func (uc *ModerationUseCase) Accept(ctx context.Context, moderator, id string) (*Board, error) {
	return uc.transition(ctx, moderator, id, entity.ActionAccept)
}

func (uc *ModerationUseCase) Reject(ctx context.Context, moderator, id string) (*Board, error) {
	return uc.transition(ctx, moderator, id, entity.ActionReject)
}

func (uc *ModerationUseCase) Feature(ctx context.Context, moderator, id string) (*Board, error) {
	return uc.transition(ctx, moderator, id, entity.ActionFeature)
}

// DeleteReported removes a reported product from the catalogue.
func (uc *ModerationUseCase) DeleteReported(ctx context.Context, moderator, id string) (*Board, error) {
	if _, err := uc.board(ctx, moderator); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		logger.Error("Moderator %s failed to delete reported product %s: %v", moderator, id, err)
		return nil, err
	}

	return uc.mutate(moderator, func(b *Board) {
		b.Reported = without(b.Reported, id)
		b.Pending = without(b.Pending, id)
		b.ReadyToFeature = without(b.ReadyToFeature, id)
	}), nil
}

// DismissReport clears the report and keeps the product.
func (uc *ModerationUseCase) DismissReport(ctx context.Context, moderator, id string) (*Board, error) {
	if _, err := uc.board(ctx, moderator); err != nil {
		return nil, err
	}

	if err := uc.productRepo.DismissReport(ctx, id); err != nil {
		logger.Error("Moderator %s failed to dismiss report on %s: %v", moderator, id, err)
		return nil, err
	}

	return uc.mutate(moderator, func(b *Board) {
		b.Reported = without(b.Reported, id)
	}), nil
}

// Forget drops the cached board, e.g. on logout.
func (uc *ModerationUseCase) Forget(_ context.Context, moderator string) {
	uc.mu.Lock()
	delete(uc.boards, moderator)
	uc.mu.Unlock()
}

func (uc *ModerationUseCase) transition(ctx context.Context, moderator, id string, action entity.ModerationAction) (*Board, error) {
	board, err := uc.board(ctx, moderator)
	if err != nil {
		return nil, err
	}

	product := find(board.Pending, id)
	if action == entity.ActionFeature {
		product = find(board.ReadyToFeature, id)
	}
	if product == nil {
		// Not on the board; the board may be stale, so ask the backend.
		product, err = uc.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if !entity.CanTransition(product, action) {
		return nil, errors.Conflict("Product cannot be " + pastTense(action) + " in its current state")
	}

	switch action {
	case entity.ActionAccept:
		err = uc.productRepo.UpdateStatus(ctx, id, entity.ProductAccepted)
	case entity.ActionReject:
		err = uc.productRepo.UpdateStatus(ctx, id, entity.ProductRejected)
	case entity.ActionFeature:
		err = uc.productRepo.MarkFeatured(ctx, id)
	}
	if err != nil {
		logger.Error("Moderator %s failed to %s product %s: %v", moderator, action, id, err)
		return nil, err
	}

	logger.Info("Moderator %s %s product %s", moderator, pastTense(action), id)

	snapshot := *product
	return uc.mutate(moderator, func(b *Board) {
		b.Reconcile(snapshot, action)
	}), nil
}

// board returns the moderator's board, loading it on first use.
func (uc *ModerationUseCase) board(ctx context.Context, moderator string) (*Board, error) {
	uc.mu.Lock()
	b, ok := uc.boards[moderator]
	var snapshot *Board
	if ok {
		snapshot = b.clone()
	}
	uc.mu.Unlock()

	if ok {
		return snapshot, nil
	}
	return uc.LoadBoard(ctx, moderator)
}

func (uc *ModerationUseCase) mutate(moderator string, fn func(b *Board)) *Board {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	b, ok := uc.boards[moderator]
	if !ok {
		b = &Board{}
		uc.boards[moderator] = b
	}
	fn(b)
	return b.clone()
}

func pastTense(action entity.ModerationAction) string {
	switch action {
	case entity.ActionAccept:
		return "accepted"
	case entity.ActionReject:
		return "rejected"
	case entity.ActionFeature:
		return "featured"
	default:
		return string(action)
	}
}

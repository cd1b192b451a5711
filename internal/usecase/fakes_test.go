package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"stacksphere/internal/domain/entity"
	"stacksphere/internal/domain/repository"
	"stacksphere/pkg/errors"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	calls    []string
	failNext error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) record(call string) error {
	r.calls = append(r.calls, call)
	if err := r.failNext; err != nil {
		r.failNext = nil
		return err
	}
	return nil
}

func (r *fakeProductRepo) copyOf(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func (r *fakeProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		out = append(out, r.copyOf(p))
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return r.copyOf(p), nil
}

func (r *fakeProductRepo) ListByOwner(_ context.Context, email string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.Owner.Email == email {
			out = append(out, r.copyOf(p))
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByOwner(ctx context.Context, email string) (int, error) {
	owned, _ := r.ListByOwner(ctx, email)
	return len(owned), nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) (*repository.CreateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("create"); err != nil {
		return nil, err
	}
	c := *p
	c.ID = "new-" + c.Name
	r.products[c.ID] = &c
	return &repository.CreateResult{Product: r.copyOf(&c)}, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("update:" + p.ID); err != nil {
		return nil, err
	}
	r.products[p.ID] = r.copyOf(p)
	return r.copyOf(p), nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("delete:" + id); err != nil {
		return err
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Upvote(_ context.Context, id, _ string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("upvote:" + id); err != nil {
		return nil, err
	}
	p := r.products[id]
	p.Votes++
	return r.copyOf(p), nil
}

func (r *fakeProductRepo) Report(_ context.Context, id, email, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("report:" + id); err != nil {
		return err
	}
	if p, ok := r.products[id]; ok {
		p.ReportedBy = email
		p.ReportReason = reason
	}
	return nil
}

func (r *fakeProductRepo) ListPending(ctx context.Context) ([]*entity.Product, error) {
	out, _, err := r.List(ctx, repository.ProductFilter{Status: entity.ProductPending})
	return out, err
}

func (r *fakeProductRepo) ListReported(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsReported() {
			out = append(out, r.copyOf(p))
		}
	}
	return out, nil
}

func (r *fakeProductRepo) UpdateStatus(_ context.Context, id string, status entity.ProductStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("status:" + id + ":" + string(status)); err != nil {
		return err
	}
	r.products[id].Status = status
	return nil
}

func (r *fakeProductRepo) MarkFeatured(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("featured:" + id); err != nil {
		return err
	}
	r.products[id].Featured = true
	return nil
}

func (r *fakeProductRepo) DismissReport(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("dismiss:" + id); err != nil {
		return err
	}
	r.products[id].ReportedBy = ""
	r.products[id].ReportReason = ""
	return nil
}

func (r *fakeProductRepo) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type fakeUserRepo struct {
	mu          sync.Mutex
	users       map[string]*entity.User
	profileHits atomic.Int32
	delay       time.Duration
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) GetProfile(ctx context.Context, email string) (*entity.User, error) {
	r.profileHits.Add(1)
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, email string, role entity.Role) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	u.Role = role
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, email)
	return nil
}

type fakeRoleCache struct {
	mu    sync.Mutex
	roles map[string]entity.Role
}

func newFakeRoleCache() *fakeRoleCache {
	return &fakeRoleCache{roles: make(map[string]entity.Role)}
}

func (c *fakeRoleCache) Get(_ context.Context, email string) (entity.Role, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	role, ok := c.roles[email]
	return role, ok, nil
}

func (c *fakeRoleCache) Set(_ context.Context, email string, role entity.Role, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles[email] = role
	return nil
}

func (c *fakeRoleCache) Delete(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.roles, email)
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func pending(id, owner string) *entity.Product {
	return &entity.Product{ID: id, Name: id, Status: entity.ProductPending, Owner: entity.Owner{Email: owner}}
}

func accepted(id string, featured bool) *entity.Product {
	return &entity.Product{ID: id, Name: id, Status: entity.ProductAccepted, Featured: featured}
}

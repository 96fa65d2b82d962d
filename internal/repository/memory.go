package repository

import (
	"context"
	"sort"
	"sync"

	"stockroom/internal/domain"
)

// MemoryStore is the non-persistent fallback backend. It honors the same
// contract as the postgres store; InTx degrades to a single critical
// section, which is the equivalent atomicity guarantee for an in-process
// map store.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	// inTx marks a handle passed to an InTx callback; such handles skip
	// locking because the outer call already holds the mutex.
	inTx bool
}

type memData struct {
	users       map[int64]domain.User
	assets      map[int64]domain.Asset
	resources   map[int64]domain.Resource
	assignments map[int64]domain.Assignment
	activities  []domain.Activity

	userSeq       int64
	assetSeq      int64
	resourceSeq   int64
	assignmentSeq int64
	activitySeq   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		data: &memData{
			users:       make(map[int64]domain.User),
			assets:      make(map[int64]domain.Asset),
			resources:   make(map[int64]domain.Resource),
			assignments: make(map[int64]domain.Assignment),
		},
	}
}

func (s *MemoryStore) Users() UserStore             { return &memUsers{s} }
func (s *MemoryStore) Assets() AssetStore           { return &memAssets{s} }
func (s *MemoryStore) Resources() ResourceStore     { return &memResources{s} }
func (s *MemoryStore) Assignments() AssignmentStore { return &memAssignments{s} }
func (s *MemoryStore) Activities() ActivityStore    { return &memActivities{s} }

func (s *MemoryStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&MemoryStore{mu: s.mu, data: s.data, inTx: true})
}

func (s *MemoryStore) Persistent() bool {
	return false
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memUsers struct {
	s *MemoryStore
}

func (r *memUsers) List(ctx context.Context) ([]*domain.User, error) {
	defer r.s.lock()()
	users := make([]*domain.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		cp := u
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUsers) Get(ctx context.Context, id int64) (*domain.User, error) {
	defer r.s.lock()()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (r *memUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memUsers) Create(ctx context.Context, user *domain.User) error {
	defer r.s.lock()()
	for _, u := range r.s.data.users {
		if u.Username == user.Username {
			return ErrUserExists
		}
	}
	r.s.data.userSeq++
	user.ID = r.s.data.userSeq
	user.CreatedAt = nowUTC()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *memUsers) Update(ctx context.Context, user *domain.User) error {
	defer r.s.lock()()
	if _, ok := r.s.data.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	for id, u := range r.s.data.users {
		if id != user.ID && u.Username == user.Username {
			return ErrUserExists
		}
	}
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *memUsers) Delete(ctx context.Context, id int64) error {
	defer r.s.lock()()
	if _, ok := r.s.data.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.s.data.users, id)
	return nil
}

type memAssets struct {
	s *MemoryStore
}

func (r *memAssets) List(ctx context.Context) ([]*domain.Asset, error) {
	defer r.s.lock()()
	assets := make([]*domain.Asset, 0, len(r.s.data.assets))
	for _, a := range r.s.data.assets {
		cp := a
		assets = append(assets, &cp)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (r *memAssets) ListByStatus(ctx context.Context, status domain.AssetStatus) ([]*domain.Asset, error) {
	defer r.s.lock()()
	assets := []*domain.Asset{}
	for _, a := range r.s.data.assets {
		if a.Status == status {
			cp := a
			assets = append(assets, &cp)
		}
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (r *memAssets) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	defer r.s.lock()()
	a, ok := r.s.data.assets[id]
	if !ok {
		return nil, ErrAssetNotFound
	}
	cp := a
	return &cp, nil
}

// GetForUpdate is Get: the InTx critical section already serializes writers.
func (r *memAssets) GetForUpdate(ctx context.Context, id int64) (*domain.Asset, error) {
	return r.Get(ctx, id)
}

func (r *memAssets) GetByTag(ctx context.Context, tag string) (*domain.Asset, error) {
	defer r.s.lock()()
	for _, a := range r.s.data.assets {
		if a.AssetTag == tag {
			cp := a
			return &cp, nil
		}
	}
	return nil, ErrAssetNotFound
}

func (r *memAssets) Create(ctx context.Context, asset *domain.Asset) error {
	defer r.s.lock()()
	for _, a := range r.s.data.assets {
		if a.AssetTag == asset.AssetTag {
			return ErrAssetTagExists
		}
	}
	r.s.data.assetSeq++
	asset.ID = r.s.data.assetSeq
	asset.CreatedAt = nowUTC()
	asset.UpdatedAt = asset.CreatedAt
	r.s.data.assets[asset.ID] = *asset
	return nil
}

func (r *memAssets) Update(ctx context.Context, asset *domain.Asset) error {
	defer r.s.lock()()
	if _, ok := r.s.data.assets[asset.ID]; !ok {
		return ErrAssetNotFound
	}
	for id, a := range r.s.data.assets {
		if id != asset.ID && a.AssetTag == asset.AssetTag {
			return ErrAssetTagExists
		}
	}
	asset.UpdatedAt = nowUTC()
	r.s.data.assets[asset.ID] = *asset
	return nil
}

func (r *memAssets) Delete(ctx context.Context, id int64) error {
	defer r.s.lock()()
	if _, ok := r.s.data.assets[id]; !ok {
		return ErrAssetNotFound
	}
	delete(r.s.data.assets, id)
	return nil
}

type memResources struct {
	s *MemoryStore
}

func (r *memResources) List(ctx context.Context) ([]*domain.Resource, error) {
	defer r.s.lock()()
	resources := make([]*domain.Resource, 0, len(r.s.data.resources))
	for _, res := range r.s.data.resources {
		cp := res
		resources = append(resources, &cp)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].ID < resources[j].ID })
	return resources, nil
}

func (r *memResources) ListByKind(ctx context.Context, kind domain.ResourceKind) ([]*domain.Resource, error) {
	defer r.s.lock()()
	resources := []*domain.Resource{}
	for _, res := range r.s.data.resources {
		if res.Kind == kind {
			cp := res
			resources = append(resources, &cp)
		}
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].ID < resources[j].ID })
	return resources, nil
}

func (r *memResources) Get(ctx context.Context, id int64) (*domain.Resource, error) {
	defer r.s.lock()()
	res, ok := r.s.data.resources[id]
	if !ok {
		return nil, ErrResourceNotFound
	}
	cp := res
	return &cp, nil
}

func (r *memResources) GetForUpdate(ctx context.Context, id int64) (*domain.Resource, error) {
	return r.Get(ctx, id)
}

func (r *memResources) Create(ctx context.Context, resource *domain.Resource) error {
	defer r.s.lock()()
	r.s.data.resourceSeq++
	resource.ID = r.s.data.resourceSeq
	resource.CreatedAt = nowUTC()
	resource.UpdatedAt = resource.CreatedAt
	r.s.data.resources[resource.ID] = *resource
	return nil
}

func (r *memResources) Update(ctx context.Context, resource *domain.Resource) error {
	defer r.s.lock()()
	if _, ok := r.s.data.resources[resource.ID]; !ok {
		return ErrResourceNotFound
	}
	resource.UpdatedAt = nowUTC()
	r.s.data.resources[resource.ID] = *resource
	return nil
}

func (r *memResources) Delete(ctx context.Context, id int64) error {
	defer r.s.lock()()
	if _, ok := r.s.data.resources[id]; !ok {
		return ErrResourceNotFound
	}
	delete(r.s.data.resources, id)
	return nil
}

type memAssignments struct {
	s *MemoryStore
}

func (r *memAssignments) ListByResource(ctx context.Context, resourceID int64) ([]*domain.Assignment, error) {
	defer r.s.lock()()
	assignments := []*domain.Assignment{}
	for _, a := range r.s.data.assignments {
		if a.ResourceID == resourceID {
			cp := a
			assignments = append(assignments, &cp)
		}
	}
	sort.Slice(assignments, func(i, j int) bool {
		if !assignments[i].AssignedDate.Equal(assignments[j].AssignedDate) {
			return assignments[i].AssignedDate.After(assignments[j].AssignedDate)
		}
		return assignments[i].ID > assignments[j].ID
	})
	return assignments, nil
}

func (r *memAssignments) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	defer r.s.lock()()
	a, ok := r.s.data.assignments[id]
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	cp := a
	return &cp, nil
}

func (r *memAssignments) GetForUpdate(ctx context.Context, id int64) (*domain.Assignment, error) {
	return r.Get(ctx, id)
}

func (r *memAssignments) CountOpenByResource(ctx context.Context, resourceID int64) (int, error) {
	defer r.s.lock()()
	count := 0
	for _, a := range r.s.data.assignments {
		if a.ResourceID == resourceID && a.Status == domain.AssignmentStatusAssigned {
			count++
		}
	}
	return count, nil
}

func (r *memAssignments) Create(ctx context.Context, assignment *domain.Assignment) error {
	defer r.s.lock()()
	r.s.data.assignmentSeq++
	assignment.ID = r.s.data.assignmentSeq
	r.s.data.assignments[assignment.ID] = *assignment
	return nil
}

func (r *memAssignments) Update(ctx context.Context, assignment *domain.Assignment) error {
	defer r.s.lock()()
	if _, ok := r.s.data.assignments[assignment.ID]; !ok {
		return ErrAssignmentNotFound
	}
	r.s.data.assignments[assignment.ID] = *assignment
	return nil
}

type memActivities struct {
	s *MemoryStore
}

func (r *memActivities) List(ctx context.Context) ([]*domain.Activity, error) {
	defer r.s.lock()()
	activities := make([]*domain.Activity, 0, len(r.s.data.activities))
	for _, a := range r.s.data.activities {
		cp := a
		activities = append(activities, &cp)
	}
	return activities, nil
}

func (r *memActivities) ListByUser(ctx context.Context, userID int64) ([]*domain.Activity, error) {
	defer r.s.lock()()
	activities := []*domain.Activity{}
	for _, a := range r.s.data.activities {
		if a.UserID != nil && *a.UserID == userID {
			cp := a
			activities = append(activities, &cp)
		}
	}
	return activities, nil
}

func (r *memActivities) ListByItem(ctx context.Context, itemType domain.ItemType, itemID int64) ([]*domain.Activity, error) {
	defer r.s.lock()()
	activities := []*domain.Activity{}
	for _, a := range r.s.data.activities {
		if a.ItemType == itemType && a.ItemID == itemID {
			cp := a
			activities = append(activities, &cp)
		}
	}
	return activities, nil
}

func (r *memActivities) Append(ctx context.Context, activity *domain.Activity) error {
	defer r.s.lock()()
	r.s.data.activitySeq++
	activity.ID = r.s.data.activitySeq
	// activities are kept in insertion order, which matches chronological
	// order with id tie-breaking
	r.s.data.activities = append(r.s.data.activities, *activity)
	return nil
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"trackhub/internal/entities"
	apperrors "trackhub/pkg/errors"
	"trackhub/pkg/types"
)

// fakeTxManager runs the function directly. The fakes below are
// in-memory, so there is nothing to commit or roll back.
type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint64]entities.User)}
}

func (r *fakeUserRepo) add(user entities.User) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	user.ID = id
	r.users[id] = user
	return id
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeUserRepo) GetTechnicians(ctx context.Context) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.User, 0)
	for _, u := range r.users {
		if u.Role == entities.RoleTechnician {
			list = append(list, u)
		}
	}
	return list, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, tx pgx.Tx, user entities.User) (uint64, error) {
	return r.add(user), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, user entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	user.ID = id
	r.users[id] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, tx pgx.Tx, role entities.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeEquipmentRepo struct {
	mu         sync.Mutex
	nextID     uint64
	equipments map[uint64]entities.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{nextID: 1, equipments: make(map[uint64]entities.Equipment)}
}

func (r *fakeEquipmentRepo) add(e entities.Equipment) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	e.ID = id
	r.equipments[id] = e
	return id
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.Equipment, 0, len(r.equipments))
	for _, e := range r.equipments {
		list = append(list, e)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeEquipmentRepo) GetByStatus(ctx context.Context, statusID uint64) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.Equipment, 0)
	for _, e := range r.equipments {
		if e.StatusID == statusID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *fakeEquipmentRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error) {
	return r.add(e), nil
}

func (r *fakeEquipmentRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.equipments[id]; !ok {
		return apperrors.ErrNotFound
	}
	e.ID = id
	r.equipments[id] = e
	return nil
}

func (r *fakeEquipmentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uint64, statusID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.equipments[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.StatusID = statusID
	r.equipments[id] = e
	return nil
}

func (r *fakeEquipmentRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.equipments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipments, id)
	return nil
}

func (r *fakeEquipmentRepo) CountByStatus(ctx context.Context) (map[uint64]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uint64]uint64)
	for _, e := range r.equipments {
		counts[e.StatusID]++
	}
	return counts, nil
}

func (r *fakeEquipmentRepo) CountByType(ctx context.Context) (map[uint64]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uint64]uint64)
	for _, e := range r.equipments {
		counts[e.TypeID]++
	}
	return counts, nil
}

type fakeInterventionRepo struct {
	mu            sync.Mutex
	nextID        uint64
	interventions map[uint64]entities.Intervention
}

func newFakeInterventionRepo() *fakeInterventionRepo {
	return &fakeInterventionRepo{nextID: 1, interventions: make(map[uint64]entities.Intervention)}
}

func (r *fakeInterventionRepo) add(i entities.Intervention) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	i.ID = id
	r.interventions[id] = i
	return id
}

func (r *fakeInterventionRepo) GetInterventions(ctx context.Context, filter types.Filter) ([]entities.Intervention, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.Intervention, 0, len(r.interventions))
	for _, i := range r.interventions {
		list = append(list, i)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeInterventionRepo) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.Intervention, 0)
	for _, i := range r.interventions {
		if i.EquipmentID == equipmentID {
			list = append(list, i)
		}
	}
	return list, nil
}

func (r *fakeInterventionRepo) GetRecent(ctx context.Context, limit int) ([]entities.Intervention, error) {
	list, _, err := r.GetInterventions(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *fakeInterventionRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Intervention, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.interventions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &i, nil
}

func (r *fakeInterventionRepo) Create(ctx context.Context, tx pgx.Tx, i entities.Intervention) (uint64, error) {
	return r.add(i), nil
}

func (r *fakeInterventionRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, i entities.Intervention) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interventions[id]; !ok {
		return apperrors.ErrNotFound
	}
	i.ID = id
	r.interventions[id] = i
	return nil
}

func (r *fakeInterventionRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interventions[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.interventions, id)
	return nil
}

func (r *fakeInterventionRepo) DeleteByEquipment(ctx context.Context, tx pgx.Tx, equipmentID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, i := range r.interventions {
		if i.EquipmentID == equipmentID {
			delete(r.interventions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeInterventionRepo) Count(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.interventions)), nil
}

func (r *fakeInterventionRepo) CountByOutcome(ctx context.Context) (map[uint64]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uint64]uint64)
	for _, i := range r.interventions {
		if i.OutcomeID.Valid {
			counts[uint64(i.OutcomeID.Int64)]++
		}
	}
	return counts, nil
}

func (r *fakeInterventionRepo) CountByUser(ctx context.Context) (map[uint64]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[uint64]uint64)
	for _, i := range r.interventions {
		if i.UserID.Valid {
			counts[uint64(i.UserID.Int64)]++
		}
	}
	return counts, nil
}

type fakeDictRepo struct {
	entries []entities.Dictionary
}

func (r *fakeDictRepo) GetAll(ctx context.Context) ([]entities.Dictionary, error) {
	return r.entries, nil
}

func (r *fakeDictRepo) FindByID(ctx context.Context, id uint64) (*entities.Dictionary, error) {
	for _, entry := range r.entries {
		if entry.ID == id {
			e := entry
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.items[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := value.(string); ok {
		c.items[key] = s
	}
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.items, key)
	}
	return nil
}

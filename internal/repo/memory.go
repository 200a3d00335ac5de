package repo

import (
	"context"
	"sync"

	dom "todolist/internal/domain"
)

// MemoryStore keeps users and items in process memory with the same
// uniqueness rules as the Postgres schema. Safe for concurrent use.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[int64]dom.User
	items      map[int64]dom.Item
	nextUserID int64
	nextItemID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[int64]dom.User),
		items: make(map[int64]dom.Item),
	}
}

// Users returns a UserRepo view of the store.
func (s *MemoryStore) Users() UserRepo { return memUsers{s} }

// Items returns an ItemRepo view of the store.
func (s *MemoryStore) Items() ItemRepo { return memItems{s} }

type memUsers struct{ s *MemoryStore }

func (r memUsers) Create(_ context.Context, u dom.User) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return dom.User{}, &DuplicateError{Field: "email"}
		}
		if existing.Name == u.Name {
			return dom.User{}, &DuplicateError{Field: "name"}
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	r.s.users[u.ID] = u
	return u, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return dom.User{}, ErrNotFound
	}
	return u, nil
}

func (r memUsers) GetByName(_ context.Context, name string) (dom.User, error) {
	return r.find(func(u dom.User) bool { return u.Name == name })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (dom.User, error) {
	return r.find(func(u dom.User) bool { return u.Email == email })
}

func (r memUsers) find(match func(dom.User) bool) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return u, nil
		}
	}
	return dom.User{}, ErrNotFound
}

type memItems struct{ s *MemoryStore }

func (r memItems) Create(_ context.Context, it dom.Item) (dom.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.items {
		if existing.Title == it.Title {
			return dom.Item{}, &DuplicateError{Field: "title"}
		}
	}
	r.s.nextItemID++
	it.ID = r.s.nextItemID
	r.s.items[it.ID] = it
	return it, nil
}

func (r memItems) GetByID(_ context.Context, id int64) (dom.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return dom.Item{}, ErrNotFound
	}
	return it, nil
}

func (r memItems) ListByOwner(_ context.Context, ownerID int64) ([]dom.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]dom.Item, 0)
	// ids are assigned in increasing order, so walking them keeps creation order.
	for id := int64(1); id <= r.s.nextItemID; id++ {
		if it, ok := r.s.items[id]; ok && it.OwnerID == ownerID {
			list = append(list, it)
		}
	}
	return list, nil
}

func (r memItems) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

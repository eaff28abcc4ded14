package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) user.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) conflict(u user.User) error {
	for _, existing := range r.s.users {
		if existing.ID == u.ID {
			continue
		}
		if strings.EqualFold(existing.Username, u.Username) {
			return user.ErrUsernameExists
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrUserEmailExists
		}
	}
	return nil
}

func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	err := r.s.write(ctx, func() error {
		newUser.ID = 0
		if err := r.conflict(newUser); err != nil {
			return err
		}
		newUser.ID = r.s.nextID(usersCol)
		newUser.CreatedAt = r.s.stamp(newUser.CreatedAt)
		r.s.users[newUser.ID] = newUser
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return newUser, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var (
		u  user.User
		ok bool
	)
	r.s.read(ctx, func() { u, ok = r.s.users[id] })
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) find(ctx context.Context, match func(user.User) bool) (user.User, error) {
	var (
		found user.User
		ok    bool
	)
	r.s.read(ctx, func() {
		for _, u := range r.s.users {
			if match(u) {
				found, ok = u, true
				return
			}
		}
	})
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return found, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.find(ctx, func(u user.User) bool { return strings.EqualFold(u.Username, username) })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.find(ctx, func(u user.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepository) filter(ctx context.Context, keep func(user.User) bool) []user.User {
	var out []user.User
	r.s.read(ctx, func() {
		for _, u := range r.s.users {
			if keep(u) {
				out = append(out, u)
			}
		}
	})
	slices.SortFunc(out, func(a, b user.User) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r *userRepository) List(ctx context.Context) ([]user.User, error) {
	return r.filter(ctx, func(user.User) bool { return true }), nil
}

func (r *userRepository) ListByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	return r.filter(ctx, func(u user.User) bool { return slices.Contains(roles, u.Role) }), nil
}

func (r *userRepository) ListByManager(ctx context.Context, managerID int64) ([]user.User, error) {
	return r.filter(ctx, func(u user.User) bool { return u.ManagerID != nil && *u.ManagerID == managerID }), nil
}

func (r *userRepository) Update(ctx context.Context, u user.User) (user.User, error) {
	err := r.s.write(ctx, func() error {
		existing, ok := r.s.users[u.ID]
		if !ok {
			return user.ErrUserNotFound
		}
		if err := r.conflict(u); err != nil {
			return err
		}
		u.CreatedAt = existing.CreatedAt
		r.s.users[u.ID] = u
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepository) ReassignManager(ctx context.Context, fromID int64, toID *int64) (int64, error) {
	var moved int64
	err := r.s.write(ctx, func() error {
		for id, u := range r.s.users {
			if u.ManagerID != nil && *u.ManagerID == fromID {
				u.ManagerID = copyID(toID)
				// A report promoted to take over the team does not manage itself
				if toID != nil && *toID == id {
					u.ManagerID = nil
				}
				r.s.users[id] = u
				moved++
			}
		}
		return nil
	})
	return moved, err
}

// Delete mirrors the relational cascade: owned records go, references are nulled.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.users[id]; !ok {
			return user.ErrUserNotFound
		}
		delete(r.s.users, id)

		for uid, u := range r.s.users {
			if u.ManagerID != nil && *u.ManagerID == id {
				u.ManagerID = nil
				r.s.users[uid] = u
			}
		}
		for hid, h := range r.s.holidays {
			switch {
			case h.UserID == id:
				delete(r.s.holidays, hid)
			case h.ApprovedByID != nil && *h.ApprovedByID == id:
				h.ApprovedByID = nil
				r.s.holidays[hid] = h
			}
		}
		for pid, p := range r.s.progress {
			if p.UserID == id {
				delete(r.s.progress, pid)
			}
		}
		for aid, a := range r.s.activities {
			if a.UserID == id {
				delete(r.s.activities, aid)
			}
		}
		for nid, n := range r.s.notifications {
			if n.UserID == id {
				delete(r.s.notifications, nid)
			}
		}
		for did, d := range r.s.departments {
			if d.HeadID != nil && *d.HeadID == id {
				d.HeadID = nil
				r.s.departments[did] = d
			}
		}
		return nil
	})
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	r.s.read(ctx, func() { n = int64(len(r.s.users)) })
	return n, nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

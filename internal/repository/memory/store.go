package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type collection int

const (
	usersCol collection = iota
	holidaysCol
	policiesCol
	coursesCol
	modulesCol
	progressCol
	departmentsCol
	activitiesCol
	notificationsCol
	collectionCount
)

// Store keeps every record in process memory. IDs are assigned per collection
// from monotonic counters that are not reused after deletes. A rolled-back
// transaction restores the counters, so IDs it allocated are handed out again.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users         map[int64]user.User
	holidays      map[int64]holiday.Request
	policies      map[int64]policy.Policy
	courses       map[int64]learning.Course
	modules       map[int64]learning.Module
	progress      map[int64]learning.Progress
	departments   map[int64]organization.Department
	activities    map[int64]activity.Activity
	notifications map[int64]notification.Notification

	seq [collectionCount]int64
}

func NewStore() *Store {
	return &Store{
		now:           time.Now,
		users:         make(map[int64]user.User),
		holidays:      make(map[int64]holiday.Request),
		policies:      make(map[int64]policy.Policy),
		courses:       make(map[int64]learning.Course),
		modules:       make(map[int64]learning.Module),
		progress:      make(map[int64]learning.Progress),
		departments:   make(map[int64]organization.Department),
		activities:    make(map[int64]activity.Activity),
		notifications: make(map[int64]notification.Notification),
	}
}

// Close drops every record and resets the counters.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restore(snapshot{
		users:         make(map[int64]user.User),
		holidays:      make(map[int64]holiday.Request),
		policies:      make(map[int64]policy.Policy),
		courses:       make(map[int64]learning.Course),
		modules:       make(map[int64]learning.Module),
		progress:      make(map[int64]learning.Progress),
		departments:   make(map[int64]organization.Department),
		activities:    make(map[int64]activity.Activity),
		notifications: make(map[int64]notification.Notification),
	})
}

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

func (s *Store) read(ctx context.Context, fn func()) {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn()
}

func (s *Store) write(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

func (s *Store) nextID(c collection) int64 {
	s.seq[c]++
	return s.seq[c]
}

// WithTransaction holds the write lock for the duration of fn and restores
// every collection if fn fails or panics. Nested calls join the outer transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	users         map[int64]user.User
	holidays      map[int64]holiday.Request
	policies      map[int64]policy.Policy
	courses       map[int64]learning.Course
	modules       map[int64]learning.Module
	progress      map[int64]learning.Progress
	departments   map[int64]organization.Department
	activities    map[int64]activity.Activity
	notifications map[int64]notification.Notification
	seq           [collectionCount]int64
}

// Records are stored by value and replaced wholesale on update, so shallow map copies suffice.
func (s *Store) snapshot() snapshot {
	return snapshot{
		users:         maps.Clone(s.users),
		holidays:      maps.Clone(s.holidays),
		policies:      maps.Clone(s.policies),
		courses:       maps.Clone(s.courses),
		modules:       maps.Clone(s.modules),
		progress:      maps.Clone(s.progress),
		departments:   maps.Clone(s.departments),
		activities:    maps.Clone(s.activities),
		notifications: maps.Clone(s.notifications),
		seq:           s.seq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.holidays = snap.holidays
	s.policies = snap.policies
	s.courses = snap.courses
	s.modules = snap.modules
	s.progress = snap.progress
	s.departments = snap.departments
	s.activities = snap.activities
	s.notifications = snap.notifications
	s.seq = snap.seq
}

func (s *Store) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return s.now()
	}
	return t
}

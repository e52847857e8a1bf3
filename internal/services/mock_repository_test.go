package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/notes-service/internal/models"
	"github.com/SAP-F-2025/notes-service/internal/repositories"
)

// mockRepository is an in-memory Repository for service tests.
type mockRepository struct {
	mu        sync.Mutex
	users     map[string]*models.User
	notes     map[string]*models.Note
	order     []string
	noteOrder []string
	outbox    []*models.NotificationOutbox

	// outboxErr makes Outbox().Create fail, forcing a rollback.
	outboxErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users: make(map[string]*models.User),
		notes: make(map[string]*models.Note),
	}
}

func (m *mockRepository) User() repositories.UserRepository     { return (*mockUserRepo)(m) }
func (m *mockRepository) Note() repositories.NoteRepository     { return (*mockNoteRepo)(m) }
func (m *mockRepository) Outbox() repositories.OutboxRepository { return (*mockOutboxRepo)(m) }

// WithTransaction snapshots all state before running fn and restores it
// when fn fails, mirroring a database rollback.
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	m.mu.Lock()
	users := make(map[string]*models.User, len(m.users))
	for id, u := range m.users {
		cp := *u
		users[id] = &cp
	}
	notes := make(map[string]*models.Note, len(m.notes))
	for id, n := range m.notes {
		cp := *n
		notes[id] = &cp
	}
	order := append([]string(nil), m.order...)
	noteOrder := append([]string(nil), m.noteOrder...)
	outbox := append([]*models.NotificationOutbox(nil), m.outbox...)
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.users = users
		m.notes = notes
		m.order = order
		m.noteOrder = noteOrder
		m.outbox = outbox
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo mockRepository

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.users[user.ID] = &cp
	m.order = append(m.order, user.ID)
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListPendingByRole(ctx context.Context, role models.UserRole) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, id := range m.order {
		u := m.users[id]
		if u.Role == role && !u.Approved {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.User
	for _, id := range m.order {
		u := m.users[id]
		if filters.Query != "" {
			q := strings.ToLower(filters.Query)
			if !strings.Contains(strings.ToLower(u.FullName), q) && !strings.Contains(u.Email, q) {
				continue
			}
		}
		cp := *u
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) SetApproved(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Approved = true
	return nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

// ===== NOTES =====

type mockNoteRepo mockRepository

func (m *mockNoteRepo) Create(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *note
	if cp.Timestamp.IsZero() {
		cp.Timestamp = time.Now()
	}
	m.notes[note.ID] = &cp
	m.noteOrder = append(m.noteOrder, note.ID)
	return nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *mockNoteRepo) List(ctx context.Context, filters repositories.NoteFilters) ([]*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Note
	for _, id := range m.noteOrder {
		n, ok := m.notes[id]
		if !ok {
			continue
		}
		if filters.Department != "" && n.Department != filters.Department {
			continue
		}
		if filters.Year != "" && n.Year != filters.Year {
			continue
		}
		if filters.Subject != "" && n.Subject != filters.Subject {
			continue
		}
		if filters.Search != "" {
			q := strings.ToLower(filters.Search)
			if !strings.Contains(strings.ToLower(n.Title), q) &&
				!strings.Contains(strings.ToLower(n.Description), q) {
				continue
			}
		}
		cp := *n
		out = append(out, &cp)
	}
	switch filters.SortBy {
	case repositories.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	case repositories.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	case repositories.SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Timestamp.Equal(out[j].Timestamp) {
				return out[i].ID < out[j].ID
			}
			return out[i].Timestamp.Before(out[j].Timestamp)
		})
	}
	return out, nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note *models.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[note.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *note
	m.notes[note.ID] = &cp
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *mockNoteRepo) IncrementDownloads(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Downloads++
	return nil
}

func (m *mockNoteRepo) Metadata(ctx context.Context) (*models.Metadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deps := map[string]bool{}
	years := map[string]bool{}
	subjects := map[string]bool{}
	for _, n := range m.notes {
		deps[n.Department] = true
		years[n.Year] = true
		subjects[n.Subject] = true
	}
	return &models.Metadata{
		Departments: sortedKeys(deps),
		Years:       sortedKeys(years),
		Subjects:    sortedKeys(subjects),
	}, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ===== OUTBOX =====

type mockOutboxRepo mockRepository

func (m *mockOutboxRepo) Create(ctx context.Context, entry *models.NotificationOutbox) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outboxErr != nil {
		return m.outboxErr
	}
	cp := *entry
	m.outbox = append(m.outbox, &cp)
	return nil
}

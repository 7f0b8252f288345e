package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/config"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
)

// Repositorios en memoria para probar los servicios sin base de datos.
// Replican el comportamiento relevante de GORM: ErrRecordNotFound en
// las búsquedas vacías y ErrDuplicatedKey en los índices únicos.

// ── Reloj controlable ──

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// ── Usuarios ──

type mockUserRepo struct {
	mu      sync.Mutex
	seq     uint
	users   map[uint]*model.User
	offices *mockOfficeRepo
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

// hydrate imita el Preload("Office") del repositorio real
func (r *mockUserRepo) hydrate(u model.User) model.User {
	if u.OfficeID != nil && r.offices != nil {
		if o, err := r.offices.GetByID(context.Background(), *u.OfficeID); err == nil {
			u.Office = o
		}
	}
	return u
}

func (r *mockUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	user.ID = r.seq
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := r.hydrate(*u)
	return &cp, nil
}

func (r *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := r.hydrate(*u)
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if filters != nil {
			if filters.OfficeID != nil && (u.OfficeID == nil || *u.OfficeID != *filters.OfficeID) {
				continue
			}
			if !filters.IncludeInactive && !u.IsActive {
				continue
			}
			if filters.ExcludeAdmins && u.Role == model.RoleAdmin {
				continue
			}
		} else if !u.IsActive {
			continue
		}
		out = append(out, r.hydrate(*u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *mockUserRepo) ListActive(ctx context.Context) ([]model.User, error) {
	return r.List(ctx, &repository.UserListFilters{})
}

// ── Oficinas ──

type mockOfficeRepo struct {
	mu      sync.Mutex
	seq     uint
	offices map[uint]*model.Office
	users   *mockUserRepo
}

func newMockOfficeRepo(users *mockUserRepo) *mockOfficeRepo {
	return &mockOfficeRepo{offices: make(map[uint]*model.Office), users: users}
}

func (r *mockOfficeRepo) Create(_ context.Context, office *model.Office) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offices {
		if o.Name == office.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	office.ID = r.seq
	cp := *office
	r.offices[office.ID] = &cp
	return nil
}

func (r *mockOfficeRepo) GetByID(_ context.Context, id uint) (*model.Office, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *mockOfficeRepo) GetByName(_ context.Context, name string) (*model.Office, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.offices {
		if o.Name == name {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockOfficeRepo) List(_ context.Context) ([]model.Office, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Office
	for _, o := range r.offices {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *mockOfficeRepo) Update(_ context.Context, office *model.Office) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offices[office.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *office
	r.offices[office.ID] = &cp
	return nil
}

func (r *mockOfficeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.offices, id)
	return nil
}

func (r *mockOfficeRepo) CountUsers(_ context.Context, id uint) (int64, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	var count int64
	for _, u := range r.users.users {
		if u.OfficeID != nil && *u.OfficeID == id {
			count++
		}
	}
	return count, nil
}

// ── Semanas ──

type mockWeekRepo struct {
	mu    sync.Mutex
	seq   uint
	weeks map[uint]*model.Week
}

func newMockWeekRepo() *mockWeekRepo {
	return &mockWeekRepo{weeks: make(map[uint]*model.Week)}
}

func (r *mockWeekRepo) Create(_ context.Context, week *model.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.weeks {
		if w.Title == week.Title {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	week.ID = r.seq
	cp := *week
	r.weeks[week.ID] = &cp
	return nil
}

func (r *mockWeekRepo) GetByID(_ context.Context, id uint) (*model.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weeks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *mockWeekRepo) GetByTitle(_ context.Context, title string) (*model.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.weeks {
		if w.Title == title {
			cp := *w
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockWeekRepo) List(_ context.Context) ([]model.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Week
	for _, w := range r.weeks {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *mockWeekRepo) Update(_ context.Context, week *model.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.weeks[week.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *week
	r.weeks[week.ID] = &cp
	return nil
}

func (r *mockWeekRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.weeks, id)
	return nil
}

func (r *mockWeekRepo) GetCurrent(_ context.Context, now time.Time) (*model.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var current *model.Week
	for _, w := range r.weeks {
		if !w.IsOpen || !now.Before(w.EndDate) {
			continue
		}
		if current == nil || w.StartDate.After(current.StartDate) {
			current = w
		}
	}
	if current == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *current
	return &cp, nil
}

func (r *mockWeekRepo) ListOverdue(_ context.Context, now time.Time) ([]model.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Week
	for _, w := range r.weeks {
		if w.IsOpen && !now.Before(w.EndDate) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out, nil
}

// ── Menú ──

type mockMenuItemRepo struct {
	mu    sync.Mutex
	seq   uint
	items map[uint]*model.MenuItem
}

func newMockMenuItemRepo() *mockMenuItemRepo {
	return &mockMenuItemRepo{items: make(map[uint]*model.MenuItem)}
}

func (r *mockMenuItemRepo) Create(_ context.Context, item *model.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.WeekID == item.WeekID && it.Day == item.Day && it.Slot == item.Slot &&
			(it.OptionNumber == item.OptionNumber || it.Description == item.Description) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	item.ID = r.seq
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *mockMenuItemRepo) GetByID(_ context.Context, id uint) (*model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *it
	return &cp, nil
}

func (r *mockMenuItemRepo) GetByOption(_ context.Context, weekID uint, day, slot string, optionNumber int) (*model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.WeekID == weekID && it.Day == day && it.Slot == slot && it.OptionNumber == optionNumber {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockMenuItemRepo) GetByDescription(_ context.Context, weekID uint, day, slot, description string) (*model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.WeekID == weekID && it.Day == day && it.Slot == slot && it.Description == description {
			cp := *it
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockMenuItemRepo) ListByWeek(_ context.Context, weekID uint) ([]model.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MenuItem
	for _, it := range r.items {
		if it.WeekID == weekID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].OptionNumber < out[j].OptionNumber
	})
	return out, nil
}

func (r *mockMenuItemRepo) Update(_ context.Context, item *model.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *mockMenuItemRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *mockMenuItemRepo) DeleteByWeek(_ context.Context, weekID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, it := range r.items {
		if it.WeekID == weekID {
			delete(r.items, id)
		}
	}
	return nil
}

// ── Pedidos ──

type mockOrderRepo struct {
	mu     sync.Mutex
	seq    uint
	orders map[uint]*model.Order
	users  *mockUserRepo
}

func newMockOrderRepo(users *mockUserRepo) *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uint]*model.Order), users: users}
}

func (r *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.UserID == order.UserID && o.WeekID == order.WeekID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.seq++
	order.ID = r.seq
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *mockOrderRepo) GetByID(_ context.Context, id uint) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *mockOrderRepo) GetByUserAndWeek(_ context.Context, userID, weekID uint) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.UserID == userID && o.WeekID == weekID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockOrderRepo) Update(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *mockOrderRepo) ListByWeek(_ context.Context, weekID uint, officeID *uint) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Order
	for _, o := range r.orders {
		if o.WeekID != weekID {
			continue
		}
		cp := *o
		if r.users != nil {
			if u, ok := r.users.users[o.UserID]; ok {
				ucp := r.users.hydrate(*u)
				cp.User = &ucp
			}
		}
		if officeID != nil {
			if cp.User == nil || cp.User.OfficeID == nil || *cp.User.OfficeID != *officeID {
				continue
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *mockOrderRepo) BatchCreate(ctx context.Context, orders []model.Order) error {
	for i := range orders {
		if err := r.Create(ctx, &orders[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *mockOrderRepo) DeleteByWeek(_ context.Context, weekID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.orders {
		if o.WeekID == weekID {
			delete(r.orders, id)
		}
	}
	return nil
}

func (r *mockOrderRepo) CountByWeek(_ context.Context, weekID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, o := range r.orders {
		if o.WeekID == weekID {
			count++
		}
	}
	return count, nil
}

// ── Auditoría ──

type mockAuditLogRepo struct {
	mu      sync.Mutex
	entries []model.AuditLog
}

func (r *mockAuditLogRepo) Create(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *mockAuditLogRepo) List(_ context.Context, limit int) ([]model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AuditLog, len(r.entries))
	copy(out, r.entries)
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// ── Registro de exportaciones ──

type mockExportLogRepo struct {
	mu      sync.Mutex
	entries []model.ExportLog
}

func (r *mockExportLogRepo) Create(_ context.Context, entry *model.ExportLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *mockExportLogRepo) ListByWeek(_ context.Context, weekID uint) ([]model.ExportLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.ExportLog
	for _, e := range r.entries {
		if e.WeekID == weekID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *mockExportLogRepo) DeleteByWeek(_ context.Context, weekID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []model.ExportLog
	for _, e := range r.entries {
		if e.WeekID != weekID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// ── Entorno de prueba ──

type testEnv struct {
	repo    *repository.Repository
	clk     *fakeClock
	userR   *mockUserRepo
	weekR   *mockWeekRepo
	orderR  *mockOrderRepo
	exportR *mockExportLogRepo

	auth   *AuthService
	user   *UserService
	office *OfficeService
	week   *WeekService
	menu   *MenuService
	order  *OrderService
	export *ExportService
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	users := newMockUserRepo()
	offices := newMockOfficeRepo(users)
	users.offices = offices
	weeks := newMockWeekRepo()
	items := newMockMenuItemRepo()
	orders := newMockOrderRepo(users)
	audits := &mockAuditLogRepo{}
	exports := &mockExportLogRepo{}

	repo := &repository.Repository{
		User:      users,
		Office:    offices,
		Week:      weeks,
		MenuItem:  items,
		Order:     orders,
		AuditLog:  audits,
		ExportLog: exports,
	}

	clk := &fakeClock{t: now}
	logger := zap.NewNop()

	audit := NewAuditService(repo, logger)
	export := NewExportService(repo, &config.ExportConfig{Dir: t.TempDir()}, clk, logger)
	week := NewWeekService(repo, export, audit, clk, logger)

	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "secreto-de-prueba-123456",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	return &testEnv{
		repo:    repo,
		clk:     clk,
		userR:   users,
		weekR:   weeks,
		orderR:  orders,
		exportR: exports,
		auth:    NewAuthService(repo, jwtMgr, nil, audit, logger),
		user:    NewUserService(repo, audit, logger),
		office:  NewOfficeService(repo, audit, logger),
		week:    week,
		menu:    NewMenuService(repo, logger),
		order:   NewOrderService(repo, clk, logger),
		export:  export,
	}
}

// ── Helpers de datos ──

func (e *testEnv) mustCreateOffice(t *testing.T, name string) *model.Office {
	t.Helper()
	office := &model.Office{Name: name}
	if err := e.repo.Office.Create(context.Background(), office); err != nil {
		t.Fatalf("alta de oficina %q: %v", name, err)
	}
	return office
}

func (e *testEnv) mustCreateUser(t *testing.T, username, role string, officeID *uint) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		FullName:     "Usuario " + username,
		PasswordHash: "$2a$10$invalido.para.login.directo",
		Role:         role,
		IsActive:     true,
		OfficeID:     officeID,
	}
	if err := e.repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("alta de usuario %q: %v", username, err)
	}
	return user
}

func (e *testEnv) mustCreateWeek(t *testing.T, title string, endDate time.Time, closedDays ...string) *model.Week {
	t.Helper()
	week := &model.Week{
		Title:      title,
		StartDate:  endDate.AddDate(0, 0, -5),
		EndDate:    endDate,
		IsOpen:     true,
		ClosedDays: model.StringArray(closedDays),
	}
	if err := e.repo.Week.Create(context.Background(), week); err != nil {
		t.Fatalf("alta de semana %q: %v", title, err)
	}
	return week
}

func (e *testEnv) mustCreateMenuItem(t *testing.T, weekID uint, day, slot string, optionNumber int, description string) *model.MenuItem {
	t.Helper()
	item := &model.MenuItem{
		WeekID:       weekID,
		Day:          day,
		Slot:         slot,
		OptionNumber: optionNumber,
		Description:  description,
	}
	if err := e.repo.MenuItem.Create(context.Background(), item); err != nil {
		t.Fatalf("alta de opción de menú: %v", err)
	}
	return item
}

func uintPtr(v uint) *uint { return &v }

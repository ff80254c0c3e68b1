package service

import (
	"strings"
	"sync"

	"go-studio-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The shoot fake enforces code uniqueness
// the way the database unique index does, returning
// gorm.ErrDuplicatedKey, so the allocator retry contract is exercised
// for real.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string, mustChange bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	u.MustChangePassword = mustChange
	return nil
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

type fakeRoleRepo struct {
	roles      map[uint]*model.Role
	nextID     uint
	userCounts map[uint]int64
	deleted    []uint
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{
		roles:      make(map[uint]*model.Role),
		nextID:     1,
		userCounts: make(map[uint]int64),
	}
}

func (r *fakeRoleRepo) add(name string, slugs ...string) *model.Role {
	permissions := make([]model.Permission, len(slugs))
	for i, slug := range slugs {
		permissions[i] = model.Permission{ID: uint(i + 1), Slug: slug}
	}
	role := &model.Role{ID: r.nextID, Name: name, Permissions: permissions}
	r.roles[role.ID] = role
	r.nextID++
	return role
}

func (r *fakeRoleRepo) FindAll() ([]model.Role, error) {
	roles := make([]model.Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *fakeRoleRepo) FindByID(id uint) (*model.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *role
	return &copied, nil
}

func (r *fakeRoleRepo) FindByName(name string) (*model.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			copied := *role
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) Create(role *model.Role) error {
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	role.ID = r.nextID
	r.nextID++
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *fakeRoleRepo) Delete(id uint) error {
	delete(r.roles, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRoleRepo) CountUsers(roleID uint) (int64, error) {
	return r.userCounts[roleID], nil
}

func (r *fakeRoleRepo) ReplacePermissions(role *model.Role, permissions []model.Permission) error {
	stored, ok := r.roles[role.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Permissions = permissions
	return nil
}

func (r *fakeRoleRepo) SeedDefaults() error { return nil }

type fakePermissionRepo struct {
	permissions []model.Permission
}

func (r *fakePermissionRepo) FindBySlug(slug string) (*model.Permission, error) {
	for _, p := range r.permissions {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePermissionRepo) FindBySlugs(slugs []string) ([]model.Permission, error) {
	var found []model.Permission
	for _, p := range r.permissions {
		for _, slug := range slugs {
			if p.Slug == slug {
				found = append(found, p)
			}
		}
	}
	return found, nil
}

func (r *fakePermissionRepo) FindAll() ([]model.Permission, error) {
	return r.permissions, nil
}

func (r *fakePermissionRepo) Create(p *model.Permission) error {
	r.permissions = append(r.permissions, *p)
	return nil
}

func (r *fakePermissionRepo) SeedDefaults() error { return nil }

type fakeShootRepo struct {
	mu          sync.Mutex
	shoots      map[uuid.UUID]*model.Shoot
	items       map[uuid.UUID]*model.ShootItem
	assignments map[uuid.UUID]map[uuid.UUID]bool
	payments    []model.Payment
}

func newFakeShootRepo() *fakeShootRepo {
	return &fakeShootRepo{
		shoots:      make(map[uuid.UUID]*model.Shoot),
		items:       make(map[uuid.UUID]*model.ShootItem),
		assignments: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeShootRepo) CreateWithItems(shoot *model.Shoot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.shoots {
		if existing.ShootCode == shoot.ShootCode {
			return gorm.ErrDuplicatedKey
		}
	}
	if shoot.ID == uuid.Nil {
		shoot.ID = uuid.New()
	}
	for i := range shoot.Items {
		if shoot.Items[i].ID == uuid.Nil {
			shoot.Items[i].ID = uuid.New()
		}
		shoot.Items[i].ShootID = shoot.ID
		item := shoot.Items[i]
		r.items[item.ID] = &item
	}
	copied := *shoot
	r.shoots[shoot.ID] = &copied
	return nil
}

func (r *fakeShootRepo) FindAll() ([]model.Shoot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shoots := make([]model.Shoot, 0, len(r.shoots))
	for _, s := range r.shoots {
		if s.DeletedAt.Valid {
			continue
		}
		shoots = append(shoots, *s)
	}
	return shoots, nil
}

func (r *fakeShootRepo) FindByID(id uuid.UUID) (*model.Shoot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shoots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	copied.Payments = nil
	for _, p := range r.payments {
		if p.ShootID == id {
			copied.Payments = append(copied.Payments, p)
		}
	}
	return &copied, nil
}

func (r *fakeShootRepo) Update(shoot *model.Shoot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *shoot
	r.shoots[shoot.ID] = &copied
	return nil
}

func (r *fakeShootRepo) UpdateStatus(id uuid.UUID, status model.ShootStatus, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shoots[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	s.UpdatedBy = updatedBy
	return nil
}

func (r *fakeShootRepo) SoftDelete(id uuid.UUID, deletedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shoots[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.DeletedAt = gorm.DeletedAt{Valid: true}
	s.DeletedBy = deletedBy
	return nil
}

func (r *fakeShootRepo) LatestCodeForPrefix(prefix string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Length before string order, the way the real query sorts, so
	// "W-100" beats "W-99".
	latest := ""
	for _, s := range r.shoots {
		code := s.ShootCode
		if !strings.HasPrefix(code, prefix+"-") {
			continue
		}
		if len(code) > len(latest) || (len(code) == len(latest) && code > latest) {
			latest = code
		}
	}
	return latest, nil
}

func (r *fakeShootRepo) FindItemByID(id uuid.UUID) (*model.ShootItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeShootRepo) UpdateItem(item *model.ShootItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeShootRepo) CreateAssignment(assignment *model.ShootItemAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byItem := r.assignments[assignment.ShootItemID]
	if byItem == nil {
		byItem = make(map[uuid.UUID]bool)
		r.assignments[assignment.ShootItemID] = byItem
	}
	if byItem[assignment.UserID] {
		return gorm.ErrDuplicatedKey
	}
	byItem[assignment.UserID] = true
	return nil
}

func (r *fakeShootRepo) DeleteAssignment(shootItemID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if byItem := r.assignments[shootItemID]; byItem != nil {
		delete(byItem, userID)
	}
	return nil
}

func (r *fakeShootRepo) CreatePayment(payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments = append(r.payments, *payment)
	return nil
}

type fakePackageRepo struct {
	packages map[uuid.UUID]*model.Package
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{packages: make(map[uuid.UUID]*model.Package)}
}

func (r *fakePackageRepo) Create(pkg *model.Package) error {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	copied := *pkg
	r.packages[pkg.ID] = &copied
	return nil
}

func (r *fakePackageRepo) FindAll() ([]model.Package, error) {
	pkgs := make([]model.Package, 0, len(r.packages))
	for _, p := range r.packages {
		pkgs = append(pkgs, *p)
	}
	return pkgs, nil
}

func (r *fakePackageRepo) FindByID(id uuid.UUID) (*model.Package, error) {
	pkg, ok := r.packages[id]
	if !ok || pkg.DeletedAt.Valid {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *pkg
	return &copied, nil
}

func (r *fakePackageRepo) SoftDelete(id uuid.UUID, deletedBy string) error {
	pkg, ok := r.packages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pkg.DeletedAt = gorm.DeletedAt{Valid: true}
	pkg.DeletedBy = deletedBy
	return nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *fakeClientRepo) Create(client *model.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) FindAll() ([]model.Client, error) {
	clients := make([]model.Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, *c)
	}
	return clients, nil
}

func (r *fakeClientRepo) FindByID(id uuid.UUID) (*model.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *client
	return &copied, nil
}

func (r *fakeClientRepo) Update(client *model.Client) error {
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

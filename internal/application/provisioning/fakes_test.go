package provisioning_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
	"github.com/jhoicas/torneos-admin-api/internal/domain"
	"github.com/jhoicas/torneos-admin-api/internal/domain/entity"
	"github.com/jhoicas/torneos-admin-api/internal/domain/repository"
)

var errRemote = errors.New("remote unavailable")

// ──────────────────────────────────────────────────────────────────────────────
// Proveedor de identidad en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeIdentity struct {
	mu        sync.Mutex
	seq       int
	byID      map[string]entity.Identity
	failOn    map[string]error // clave: "create" o "delete:<id>"
	creates   int
	lookups   int
	deletions []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{byID: map[string]entity.Identity{}, failOn: map[string]error{}}
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _ string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if err := f.failOn["create"]; err != nil {
		return nil, err
	}
	for _, id := range f.byID {
		if id.Email == email {
			return nil, domain.ErrIdentityExists
		}
	}
	f.seq++
	id := entity.Identity{ID: fmt.Sprintf("user-%d", f.seq), Email: email}
	f.byID[id.ID] = id
	return &id, nil
}

func (f *fakeIdentity) GetUserByEmail(_ context.Context, email string) (*entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	for _, id := range f.byID {
		if id.Email == email {
			out := id
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletions = append(f.deletions, id)
	if err := f.failOn["delete:"+id]; err != nil {
		return err
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeIdentity) add(id, email string) {
	f.byID[id] = entity.Identity{ID: id, Email: email}
}

func (f *fakeIdentity) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byID[id]
	return ok
}

func (f *fakeIdentity) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates + f.lookups + len(f.deletions)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablas profiles y user_roles en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfiles struct {
	rows       map[string]entity.Profile
	failUpsert error
	failDelete error
	calls      int
	deletes    []string
}

var _ repository.ProfileRepository = (*fakeProfiles)(nil)

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{rows: map[string]entity.Profile{}} }

func (f *fakeProfiles) Upsert(_ context.Context, p *entity.Profile) error {
	f.calls++
	if f.failUpsert != nil {
		return f.failUpsert
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProfiles) List(_ context.Context, _, _, _ int) ([]*entity.Profile, int, error) {
	return nil, len(f.rows), nil
}

func (f *fakeProfiles) Delete(_ context.Context, id string) error {
	f.calls++
	f.deletes = append(f.deletes, id)
	if f.failDelete != nil {
		return f.failDelete
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeProfiles) DeleteMany(_ context.Context, ids []string) error {
	f.calls++
	f.deletes = append(f.deletes, ids...)
	if f.failDelete != nil {
		return f.failDelete
	}
	for _, id := range ids {
		delete(f.rows, id)
	}
	return nil
}

type fakeRoles struct {
	rows        []entity.RoleAssignment
	failReplace error
	failInsert  error
	failDelete  error
	failList    error
	calls       int
	deletes     int
}

var _ repository.RoleAssignmentRepository = (*fakeRoles)(nil)

func (f *fakeRoles) Replace(ctx context.Context, a entity.RoleAssignment) error {
	f.calls++
	if f.failReplace != nil {
		return f.failReplace
	}
	f.remove(a.UserID)
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeRoles) Insert(_ context.Context, a entity.RoleAssignment) error {
	f.calls++
	if f.failInsert != nil {
		return f.failInsert
	}
	f.rows = append(f.rows, a)
	return nil
}

func (f *fakeRoles) DeleteByUser(_ context.Context, userID string) error {
	f.calls++
	f.deletes++
	if f.failDelete != nil {
		return f.failDelete
	}
	f.remove(userID)
	return nil
}

func (f *fakeRoles) DeleteByUsers(_ context.Context, userIDs []string) error {
	f.calls++
	f.deletes++
	if f.failDelete != nil {
		return f.failDelete
	}
	for _, id := range userIDs {
		f.remove(id)
	}
	return nil
}

func (f *fakeRoles) ListByRoles(_ context.Context, roleIDs []int) ([]entity.RoleAssignment, error) {
	f.calls++
	if f.failList != nil {
		return nil, f.failList
	}
	want := map[int]bool{}
	for _, r := range roleIDs {
		want[r] = true
	}
	var out []entity.RoleAssignment
	for _, r := range f.rows {
		if want[r.RoleID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoles) RoleOf(_ context.Context, userID string) (int, error) {
	for _, r := range f.rows {
		if r.UserID == userID {
			return r.RoleID, nil
		}
	}
	return 0, nil
}

func (f *fakeRoles) remove(userID string) {
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
}

func (f *fakeRoles) of(userID string) []entity.RoleAssignment {
	var out []entity.RoleAssignment
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// fakeTx ejecuta fn sobre los mismos repos en memoria y restaura las filas si fn falla.
// err hace fallar el inicio de la tx; con failRuns > 0 solo las primeras failRuns ejecuciones.
type fakeTx struct {
	profiles *fakeProfiles
	roles    *fakeRoles
	err      error
	failRuns int
	runs     int
}

func (f *fakeTx) RunUsers(ctx context.Context, fn func(repository.ProfileRepository, repository.RoleAssignmentRepository) error) error {
	f.runs++
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.err != nil && (f.failRuns == 0 || f.runs <= f.failRuns) {
		return f.err
	}
	profiles := maps.Clone(f.profiles.rows)
	roles := slices.Clone(f.roles.rows)
	if err := fn(f.profiles, f.roles); err != nil {
		f.profiles.rows = profiles
		f.roles.rows = roles
		return err
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []provisioning.UserEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev provisioning.UserEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	identity *fakeIdentity
	profiles *fakeProfiles
	roles    *fakeRoles
	tx       *fakeTx
	events   *recordingPublisher
	svc      *provisioning.Service
}

func newFixture(workers int) *fixture {
	f := &fixture{
		identity: newFakeIdentity(),
		profiles: newFakeProfiles(),
		roles:    &fakeRoles{},
		events:   &recordingPublisher{},
	}
	f.tx = &fakeTx{profiles: f.profiles, roles: f.roles}
	f.svc = provisioning.NewService(f.identity, f.profiles, f.roles, f.tx, f.events, nil, provisioning.Config{
		BulkWorkers: workers,
	})
	return f
}

// seedUser crea identidad, perfil y asignación sin pasar por el servicio.
func (f *fixture) seedUser(id string, roleID int) {
	f.identity.add(id, id+"@x.com")
	f.profiles.rows[id] = entity.Profile{ID: id, FullName: id, Email: id + "@x.com", RoleID: roleID}
	f.roles.rows = append(f.roles.rows, entity.RoleAssignment{UserID: id, RoleID: roleID})
}

func (f *fixture) remoteCalls() int {
	return f.identity.calls() + f.profiles.calls + f.roles.calls + f.tx.runs
}

package provisioning_test

import (
	"context"
	"strings"

	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia.
//
// Reproducen la semántica de clave natural de los repos de Postgres
// (DO NOTHING / DO UPDATE) para poder probar idempotencia, locking y la
// política de warnings sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

func key(parts ...string) string { return strings.Join(parts, "|") }

// ── Schema ───────────────────────────────────────────────────────────────────

type fakeSchemaRepo struct {
	caps        entity.SchemaCapabilities
	ensureCalls int
	ensureErr   error
	capsErr     error
}

func (f *fakeSchemaRepo) EnsureTables(ctx context.Context, tenantID string) error {
	f.ensureCalls++
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.ensureErr
}

func (f *fakeSchemaRepo) Capabilities(ctx context.Context, tenantID string) (entity.SchemaCapabilities, error) {
	return f.caps, f.capsErr
}

// ── Lock de aprovisionamiento ────────────────────────────────────────────────

type fakeLockRepo struct {
	held       map[string]bool // clave → completado
	acquireErr error
}

func newFakeLockRepo() *fakeLockRepo {
	return &fakeLockRepo{held: make(map[string]bool)}
}

func (f *fakeLockRepo) Acquire(ctx context.Context, tenantID, companyID string) (bool, error) {
	if f.acquireErr != nil {
		return false, f.acquireErr
	}
	k := key(tenantID, companyID)
	if _, ok := f.held[k]; ok {
		return false, nil
	}
	f.held[k] = false
	return true, nil
}

func (f *fakeLockRepo) MarkCompleted(ctx context.Context, tenantID, companyID string) error {
	f.held[key(tenantID, companyID)] = true
	return nil
}

func (f *fakeLockRepo) Release(ctx context.Context, tenantID, companyID string) error {
	k := key(tenantID, companyID)
	if completed, ok := f.held[k]; ok && !completed {
		delete(f.held, k)
	}
	return nil
}

// ── Empresas ─────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company // (tenant, id)
	insertErr error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (f *fakeCompanyRepo) InsertIfAbsent(ctx context.Context, c *entity.Company) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	k := key(c.TenantID, c.ID)
	if _, ok := f.companies[k]; ok {
		return false, nil
	}
	clone := *c
	f.companies[k] = &clone
	return true, nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Company, error) {
	if c, ok := f.companies[key(tenantID, id)]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeCompanyRepo) Count(ctx context.Context, tenantID string) (int, error) {
	n := 0
	for _, c := range f.companies {
		if c.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCompanyRepo) CountActive(ctx context.Context, tenantID string) (int, error) {
	n := 0
	for _, c := range f.companies {
		if c.TenantID == tenantID && c.IsActive {
			n++
		}
	}
	return n, nil
}

// ── Jerarquía ────────────────────────────────────────────────────────────────

type fakeHierarchyRepo struct {
	categories    []*entity.Category
	subcategories []*entity.Subcategory
	actions       []*entity.Action

	categoryErr    error // fuerza el fallo de InsertCategory
	subcategoryErr error
	actionErr      error

	// Si no está vacío, el próximo InsertCategory pierde la carrera: la fila
	// queda escrita con este ID (el del escritor rival) y devuelve false.
	categoryInsertLostRaceID string
}

func (f *fakeHierarchyRepo) InsertCategory(ctx context.Context, caps entity.SchemaCapabilities, c *entity.Category) (bool, error) {
	if f.categoryErr != nil {
		return false, f.categoryErr
	}
	for _, e := range f.categories {
		if e.TenantID == c.TenantID && e.CompanyID == c.CompanyID && e.Name == c.Name {
			return false, nil
		}
	}
	clone := *c
	if f.categoryInsertLostRaceID != "" {
		clone.ID = f.categoryInsertLostRaceID
		f.categoryInsertLostRaceID = ""
		f.categories = append(f.categories, &clone)
		return false, nil
	}
	f.categories = append(f.categories, &clone)
	return true, nil
}

func (f *fakeHierarchyRepo) InsertSubcategory(ctx context.Context, caps entity.SchemaCapabilities, s *entity.Subcategory) (bool, error) {
	if f.subcategoryErr != nil {
		return false, f.subcategoryErr
	}
	for _, e := range f.subcategories {
		if e.TenantID == s.TenantID && e.CompanyID == s.CompanyID && e.CategoryID == s.CategoryID && e.Name == s.Name {
			return false, nil
		}
	}
	clone := *s
	f.subcategories = append(f.subcategories, &clone)
	return true, nil
}

func (f *fakeHierarchyRepo) InsertAction(ctx context.Context, caps entity.SchemaCapabilities, a *entity.Action) (bool, error) {
	if f.actionErr != nil {
		return false, f.actionErr
	}
	for _, e := range f.actions {
		if e.TenantID == a.TenantID && e.CompanyID == a.CompanyID && e.SubcategoryID == a.SubcategoryID && e.Name == a.Name {
			return false, nil
		}
	}
	clone := *a
	f.actions = append(f.actions, &clone)
	return true, nil
}

func (f *fakeHierarchyRepo) ListCategoriesByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, e := range f.categories {
		if e.TenantID == tenantID && e.CompanyID == companyID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeHierarchyRepo) ListSubcategoriesByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Subcategory, error) {
	var out []*entity.Subcategory
	for _, e := range f.subcategories {
		if e.TenantID == tenantID && e.CompanyID == companyID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeHierarchyRepo) ListActionsByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Action, error) {
	var out []*entity.Action
	for _, e := range f.actions {
		if e.TenantID == tenantID && e.CompanyID == companyID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeHierarchyRepo) GetCategoryByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, name string) (*entity.Category, error) {
	for _, e := range f.categories {
		if e.TenantID == tenantID && e.CompanyID == companyID && e.Name == name {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeHierarchyRepo) UpdateCategory(ctx context.Context, c *entity.Category) error {
	for i, e := range f.categories {
		if e.ID == c.ID {
			clone := *c
			f.categories[i] = &clone
		}
	}
	return nil
}

func (f *fakeHierarchyRepo) GetSubcategoryByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, categoryID, name string) (*entity.Subcategory, error) {
	for _, e := range f.subcategories {
		if e.TenantID == tenantID && e.CompanyID == companyID && e.CategoryID == categoryID && e.Name == name {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeHierarchyRepo) UpdateSubcategory(ctx context.Context, s *entity.Subcategory) error {
	for i, e := range f.subcategories {
		if e.ID == s.ID {
			clone := *s
			f.subcategories[i] = &clone
		}
	}
	return nil
}

func (f *fakeHierarchyRepo) GetActionByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, subcategoryID, name string) (*entity.Action, error) {
	for _, e := range f.actions {
		if e.TenantID == tenantID && e.CompanyID == companyID && e.SubcategoryID == subcategoryID && e.Name == name {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeHierarchyRepo) UpdateAction(ctx context.Context, a *entity.Action) error {
	for i, e := range f.actions {
		if e.ID == a.ID {
			clone := *a
			f.actions[i] = &clone
		}
	}
	return nil
}

func (f *fakeHierarchyRepo) CountCategories(ctx context.Context, tenantID string) (int, error) {
	n := 0
	for _, e := range f.categories {
		if e.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ── Opciones de campo ────────────────────────────────────────────────────────

type fakeFieldOptionRepo struct {
	options   map[string]*entity.FieldOption // clave natural
	upsertErr error
}

func newFakeFieldOptionRepo() *fakeFieldOptionRepo {
	return &fakeFieldOptionRepo{options: make(map[string]*entity.FieldOption)}
}

func (f *fakeFieldOptionRepo) naturalKey(o *entity.FieldOption) string {
	return key(o.TenantID, o.CompanyID, o.FieldName, o.Value)
}

func (f *fakeFieldOptionRepo) Upsert(ctx context.Context, o *entity.FieldOption) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	clone := *o
	if existing, ok := f.options[f.naturalKey(o)]; ok {
		clone.ID = existing.ID // el DO UPDATE conserva el ID original
	}
	f.options[f.naturalKey(o)] = &clone
	return nil
}

func (f *fakeFieldOptionRepo) InsertIfAbsent(ctx context.Context, o *entity.FieldOption) (bool, error) {
	k := f.naturalKey(o)
	if _, ok := f.options[k]; ok {
		return false, nil
	}
	clone := *o
	f.options[k] = &clone
	return true, nil
}

func (f *fakeFieldOptionRepo) ListByCompany(ctx context.Context, tenantID, companyID string) ([]*entity.FieldOption, error) {
	var out []*entity.FieldOption
	for _, o := range f.options {
		if o.TenantID == tenantID && o.CompanyID == companyID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeFieldOptionRepo) CountByCompany(ctx context.Context, tenantID, companyID string) (int, error) {
	out, _ := f.ListByCompany(ctx, tenantID, companyID)
	return len(out), nil
}

func (f *fakeFieldOptionRepo) Count(ctx context.Context, tenantID string) (int, error) {
	n := 0
	for _, o := range f.options {
		if o.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta el callback contra los mismos fakes (sin transacción
// real; la atomicidad la prueba la implementación de Postgres).
type fakeTxRunner struct {
	hier    *fakeHierarchyRepo
	options *fakeFieldOptionRepo
	runErr  error
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.HierarchyRepository, repository.FieldOptionRepository) error) error {
	if f.runErr != nil {
		return f.runErr
	}
	return fn(f.hier, f.options)
}

// Verificación estática de los puertos.
var (
	_ repository.SchemaRepository           = (*fakeSchemaRepo)(nil)
	_ repository.ProvisioningLockRepository = (*fakeLockRepo)(nil)
	_ repository.CompanyRepository          = (*fakeCompanyRepo)(nil)
	_ repository.HierarchyRepository        = (*fakeHierarchyRepo)(nil)
	_ repository.FieldOptionRepository      = (*fakeFieldOptionRepo)(nil)
)

package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
)

// psql construye SQL con placeholders $n de PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Asegura que HierarchyRepo implementa repository.HierarchyRepository.
var _ repository.HierarchyRepository = (*HierarchyRepo)(nil)

// HierarchyRepo persiste la jerarquía Categoría → Subcategoría → Acción en el
// schema del tenant. Las queries se arman con squirrel porque la columna
// opcional company_id entra o sale según las SchemaCapabilities del tenant.
type HierarchyRepo struct {
	db dbtx
}

// NewHierarchyRepository construye el adaptador.
func NewHierarchyRepository(db dbtx) *HierarchyRepo {
	return &HierarchyRepo{db: db}
}

// ── Inserts idempotentes ─────────────────────────────────────────────────────

// InsertCategory inserta con ON CONFLICT DO NOTHING (sin target explícito:
// en schemas derivados la constraint natural puede no incluir company_id).
func (r *HierarchyRepo) InsertCategory(ctx context.Context, caps entity.SchemaCapabilities, c *entity.Category) (bool, error) {
	schema, err := schemaName(c.TenantID)
	if err != nil {
		return false, err
	}
	cols := []string{"id", "tenant_id", "name", "description", "color", "icon", "active", "sort_order", "created_at", "updated_at"}
	vals := []any{c.ID, c.TenantID, c.Name, c.Description, c.Color, c.Icon, c.Active, c.SortOrder, c.CreatedAt, c.UpdatedAt}
	if caps.CategoriesHaveCompanyID {
		cols = append(cols, "company_id")
		vals = append(vals, c.CompanyID)
	}
	return r.insert(ctx, schema+".ticket_categories", cols, vals, caps.CategoriesHaveCompanyID)
}

// InsertSubcategory inserta con la FK category_id ya resuelta por el caller.
func (r *HierarchyRepo) InsertSubcategory(ctx context.Context, caps entity.SchemaCapabilities, s *entity.Subcategory) (bool, error) {
	schema, err := schemaName(s.TenantID)
	if err != nil {
		return false, err
	}
	cols := []string{"id", "tenant_id", "category_id", "name", "description", "color", "icon", "active", "sort_order", "created_at", "updated_at"}
	vals := []any{s.ID, s.TenantID, s.CategoryID, s.Name, s.Description, s.Color, s.Icon, s.Active, s.SortOrder, s.CreatedAt, s.UpdatedAt}
	if caps.SubcategoriesHaveCompanyID {
		cols = append(cols, "company_id")
		vals = append(vals, s.CompanyID)
	}
	return r.insert(ctx, schema+".ticket_subcategories", cols, vals, caps.SubcategoriesHaveCompanyID)
}

// InsertAction inserta con la FK subcategory_id ya resuelta por el caller.
func (r *HierarchyRepo) InsertAction(ctx context.Context, caps entity.SchemaCapabilities, a *entity.Action) (bool, error) {
	schema, err := schemaName(a.TenantID)
	if err != nil {
		return false, err
	}
	cols := []string{"id", "tenant_id", "subcategory_id", "name", "description", "estimated_time_minutes", "color", "icon", "active", "sort_order", "action_type", "created_at", "updated_at"}
	vals := []any{a.ID, a.TenantID, a.SubcategoryID, a.Name, a.Description, a.EstimatedTimeMinutes, a.Color, a.Icon, a.Active, a.SortOrder, a.ActionType, a.CreatedAt, a.UpdatedAt}
	if caps.ActionsHaveCompanyID {
		cols = append(cols, "company_id")
		vals = append(vals, a.CompanyID)
	}
	return r.insert(ctx, schema+".ticket_actions", cols, vals, caps.ActionsHaveCompanyID)
}

// insert arma y ejecuta el INSERT. Si la columna company_id resultó no existir
// pese a las capabilities (deriva entre la introspección y el insert), se
// reintenta una vez sin ella, scoped solo por tenant_id.
func (r *HierarchyRepo) insert(ctx context.Context, table string, cols []string, vals []any, withCompany bool) (bool, error) {
	query, args, err := psql.Insert(table).Columns(cols...).Values(vals...).
		Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return false, fmt.Errorf("armar insert %s: %w", table, err)
	}
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if withCompany && isUndefinedColumn(err) {
			return r.insert(ctx, table, cols[:len(cols)-1], vals[:len(vals)-1], false)
		}
		return false, fmt.Errorf("insert %s: %w", table, err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ── Lecturas por empresa (clonado) ───────────────────────────────────────────

func (r *HierarchyRepo) ListCategoriesByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Category, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	b := psql.Select("id", "tenant_id", "name", "description", "color", "icon", "active", "sort_order", "created_at", "updated_at").
		From(schema + ".ticket_categories").
		Where(sq.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("sort_order", "name")
	if caps.CategoriesHaveCompanyID {
		b = b.Column("company_id").Where(sq.Eq{"company_id": companyID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar select categorías: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categorías: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		dest := []any{&c.ID, &c.TenantID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.Active, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt}
		if caps.CategoriesHaveCompanyID {
			dest = append(dest, &c.CompanyID)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan categoría: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *HierarchyRepo) ListSubcategoriesByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Subcategory, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	b := psql.Select("id", "tenant_id", "category_id", "name", "description", "color", "icon", "active", "sort_order", "created_at", "updated_at").
		From(schema + ".ticket_subcategories").
		Where(sq.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("sort_order", "name")
	if caps.SubcategoriesHaveCompanyID {
		b = b.Column("company_id").Where(sq.Eq{"company_id": companyID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar select subcategorías: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategorías: %w", err)
	}
	defer rows.Close()

	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		dest := []any{&s.ID, &s.TenantID, &s.CategoryID, &s.Name, &s.Description, &s.Color, &s.Icon, &s.Active, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt}
		if caps.SubcategoriesHaveCompanyID {
			dest = append(dest, &s.CompanyID)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan subcategoría: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListActionsByCompany lee las acciones de la empresa origen. Si el schema no
// tiene company_id en acciones, el scope cae al join por subcategorías vía
// tenant (todas las del tenant).
func (r *HierarchyRepo) ListActionsByCompany(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID string) ([]*entity.Action, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	b := psql.Select("id", "tenant_id", "subcategory_id", "name", "description", "estimated_time_minutes", "color", "icon", "active", "sort_order", "action_type", "created_at", "updated_at").
		From(schema + ".ticket_actions").
		Where(sq.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("sort_order", "name")
	if caps.ActionsHaveCompanyID {
		b = b.Column("company_id").Where(sq.Eq{"company_id": companyID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar select acciones: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list acciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Action
	for rows.Next() {
		var a entity.Action
		dest := []any{&a.ID, &a.TenantID, &a.SubcategoryID, &a.Name, &a.Description, &a.EstimatedTimeMinutes, &a.Color, &a.Icon, &a.Active, &a.SortOrder, &a.ActionType, &a.CreatedAt, &a.UpdatedAt}
		if caps.ActionsHaveCompanyID {
			dest = append(dest, &a.CompanyID)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan acción: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ── Búsquedas por clave natural + updates (clonado destino) ─────────────────

func (r *HierarchyRepo) GetCategoryByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, name string) (*entity.Category, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	b := psql.Select("id", "tenant_id", "name", "description", "color", "icon", "active", "sort_order", "created_at", "updated_at").
		From(schema + ".ticket_categories").
		Where(sq.Eq{"tenant_id": tenantID, "name": name})
	if caps.CategoriesHaveCompanyID {
		b = b.Column("company_id").Where(sq.Eq{"company_id": companyID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar get categoría: %w", err)
	}
	var c entity.Category
	dest := []any{&c.ID, &c.TenantID, &c.Name, &c.Description, &c.Color, &c.Icon, &c.Active, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt}
	if caps.CategoriesHaveCompanyID {
		dest = append(dest, &c.CompanyID)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoría por nombre: %w", err)
	}
	return &c, nil
}

func (r *HierarchyRepo) UpdateCategory(ctx context.Context, c *entity.Category) error {
	schema, err := schemaName(c.TenantID)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s.ticket_categories
		SET description = $2, color = $3, icon = $4, active = $5, sort_order = $6, updated_at = $7
		WHERE id = $1`, schema)
	if _, err := r.db.Exec(ctx, query, c.ID, c.Description, c.Color, c.Icon, c.Active, c.SortOrder, c.UpdatedAt); err != nil {
		return fmt.Errorf("update categoría: %w", err)
	}
	return nil
}

func (r *HierarchyRepo) GetSubcategoryByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, categoryID, name string) (*entity.Subcategory, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	b := psql.Select("id", "tenant_id", "category_id", "name", "description", "color", "icon", "active", "sort_order", "created_at", "updated_at").
		From(schema + ".ticket_subcategories").
		Where(sq.Eq{"tenant_id": tenantID, "category_id": categoryID, "name": name})
	if caps.SubcategoriesHaveCompanyID {
		b = b.Column("company_id").Where(sq.Eq{"company_id": companyID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar get subcategoría: %w", err)
	}
	var s entity.Subcategory
	dest := []any{&s.ID, &s.TenantID, &s.CategoryID, &s.Name, &s.Description, &s.Color, &s.Icon, &s.Active, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt}
	if caps.SubcategoriesHaveCompanyID {
		dest = append(dest, &s.CompanyID)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategoría por nombre: %w", err)
	}
	return &s, nil
}

func (r *HierarchyRepo) UpdateSubcategory(ctx context.Context, s *entity.Subcategory) error {
	schema, err := schemaName(s.TenantID)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s.ticket_subcategories
		SET description = $2, color = $3, icon = $4, active = $5, sort_order = $6, updated_at = $7
		WHERE id = $1`, schema)
	if _, err := r.db.Exec(ctx, query, s.ID, s.Description, s.Color, s.Icon, s.Active, s.SortOrder, s.UpdatedAt); err != nil {
		return fmt.Errorf("update subcategoría: %w", err)
	}
	return nil
}

func (r *HierarchyRepo) GetActionByName(ctx context.Context, caps entity.SchemaCapabilities, tenantID, companyID, subcategoryID, name string) (*entity.Action, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return nil, err
	}
	b := psql.Select("id", "tenant_id", "subcategory_id", "name", "description", "estimated_time_minutes", "color", "icon", "active", "sort_order", "action_type", "created_at", "updated_at").
		From(schema + ".ticket_actions").
		Where(sq.Eq{"tenant_id": tenantID, "subcategory_id": subcategoryID, "name": name})
	if caps.ActionsHaveCompanyID {
		b = b.Column("company_id").Where(sq.Eq{"company_id": companyID})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("armar get acción: %w", err)
	}
	var a entity.Action
	dest := []any{&a.ID, &a.TenantID, &a.SubcategoryID, &a.Name, &a.Description, &a.EstimatedTimeMinutes, &a.Color, &a.Icon, &a.Active, &a.SortOrder, &a.ActionType, &a.CreatedAt, &a.UpdatedAt}
	if caps.ActionsHaveCompanyID {
		dest = append(dest, &a.CompanyID)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get acción por nombre: %w", err)
	}
	return &a, nil
}

func (r *HierarchyRepo) UpdateAction(ctx context.Context, a *entity.Action) error {
	schema, err := schemaName(a.TenantID)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s.ticket_actions
		SET description = $2, estimated_time_minutes = $3, color = $4, icon = $5,
		    active = $6, sort_order = $7, action_type = $8, updated_at = $9
		WHERE id = $1`, schema)
	if _, err := r.db.Exec(ctx, query, a.ID, a.Description, a.EstimatedTimeMinutes, a.Color, a.Icon, a.Active, a.SortOrder, a.ActionType, a.UpdatedAt); err != nil {
		return fmt.Errorf("update acción: %w", err)
	}
	return nil
}

// CountCategories cuenta categorías del tenant (heurística IsTemplateApplied).
func (r *HierarchyRepo) CountCategories(ctx context.Context, tenantID string) (int, error) {
	schema, err := schemaName(tenantID)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`SELECT count(*) FROM %s.ticket_categories WHERE tenant_id = $1`, schema)
	var n int
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		// Tenant sin schema todavía: cero categorías, no un fallo.
		if isMissingRelation(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("count categorías: %w", err)
	}
	return n, nil
}

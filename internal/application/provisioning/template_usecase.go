package provisioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/helpdesk-pro/internal/domain"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/entity"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/repository"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/template"
	"github.com/tu-usuario/helpdesk-pro/pkg/logger"
	"github.com/tu-usuario/helpdesk-pro/pkg/metrics"
)

// TemplateUseCase aprovisiona tenants nuevos: asegura el schema, crea la
// empresa por defecto y aplica la jerarquía y las opciones de campo de la
// plantilla.
//
// Política de propagación: solo el fallo al crear la empresa es fatal. Los
// fallos posteriores (jerarquía, opciones) se registran como warnings y la
// operación reporta éxito degradado, para no bloquear el alta del tenant por
// un problema secundario. IsTemplateApplied permite detectar y reparar después
// un aprovisionamiento incompleto.
type TemplateUseCase struct {
	schemaRepo  repository.SchemaRepository
	lockRepo    repository.ProvisioningLockRepository
	companyRepo repository.CompanyRepository
	hierRepo    repository.HierarchyRepository
	optionRepo  repository.FieldOptionRepository
	base        *template.Definition
	timeout     time.Duration
	log         *logger.Logger
}

// TemplateOverrides campos de identidad de la empresa que
// ApplyCustomizedTemplate sobreescribe antes de aplicar la jerarquía.
type TemplateOverrides struct {
	CompanyName      string
	CompanyEmail     string
	Industry         string
	CustomCategories []template.CategoryTemplate // opcional: reemplaza las categorías de la plantilla
}

// NewTemplateUseCase construye el caso de uso. La plantilla base se inyecta
// explícitamente (se construye una vez al arrancar el proceso).
func NewTemplateUseCase(
	schemaRepo repository.SchemaRepository,
	lockRepo repository.ProvisioningLockRepository,
	companyRepo repository.CompanyRepository,
	hierRepo repository.HierarchyRepository,
	optionRepo repository.FieldOptionRepository,
	base *template.Definition,
	timeout time.Duration,
	log *logger.Logger,
) *TemplateUseCase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &TemplateUseCase{
		schemaRepo:  schemaRepo,
		lockRepo:    lockRepo,
		companyRepo: companyRepo,
		hierRepo:    hierRepo,
		optionRepo:  optionRepo,
		base:        base,
		timeout:     timeout,
		log:         log,
	}
}

// ApplyDefaultTemplate aprovisiona el tenant con la plantilla base y la
// empresa por defecto (entity.DefaultCompanyID). Se usa en el alta del tenant.
func (uc *TemplateUseCase) ApplyDefaultTemplate(ctx context.Context, tenantID, actingUserID string) (*entity.ProvisioningResult, error) {
	return uc.apply(ctx, tenantID, entity.DefaultCompanyID, actingUserID, uc.base)
}

// ApplyCustomizedTemplate es ApplyDefaultTemplate con la identidad de la
// empresa (y opcionalmente las categorías) sobreescrita.
func (uc *TemplateUseCase) ApplyCustomizedTemplate(ctx context.Context, tenantID, actingUserID string, ov TemplateOverrides) (*entity.ProvisioningResult, error) {
	def := uc.base.Clone()
	if ov.CompanyName != "" {
		def.Company.Name = ov.CompanyName
		def.Company.DisplayName = ov.CompanyName
	}
	if ov.CompanyEmail != "" {
		def.Company.Email = ov.CompanyEmail
	}
	if ov.Industry != "" {
		def.Company.Industry = ov.Industry
	}
	if len(ov.CustomCategories) > 0 {
		// Las subcategorías que referencien categorías ya no presentes se
		// saltan con warning (misma política que cualquier padre ausente).
		def.Categories = ov.CustomCategories
	}
	return uc.apply(ctx, tenantID, entity.DefaultCompanyID, actingUserID, def)
}

// ApplyTemplateIfFirstCompany aplica la plantilla para companyID solo cuando
// es la única empresa activa del tenant. Devuelve false (sin escribir nada)
// en cualquier otro caso.
func (uc *TemplateUseCase) ApplyTemplateIfFirstCompany(ctx context.Context, tenantID, companyID string) (bool, error) {
	if err := validateTenantID(tenantID); err != nil {
		return false, err
	}
	active, err := uc.companyRepo.CountActive(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("contar empresas activas: %w", err)
	}
	if active != 1 {
		return false, nil
	}
	if _, err := uc.apply(ctx, tenantID, companyID, "", uc.base); err != nil {
		return false, err
	}
	return true, nil
}

// IsTemplateApplied responde si el tenant ya fue aprovisionado: al menos una
// empresa, una opción de campo y una categoría. Heurística barata a propósito;
// no verifica la completitud referencial de la jerarquía.
func (uc *TemplateUseCase) IsTemplateApplied(ctx context.Context, tenantID string) (bool, error) {
	if err := validateTenantID(tenantID); err != nil {
		return false, err
	}
	companies, err := uc.companyRepo.Count(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("contar empresas: %w", err)
	}
	if companies == 0 {
		return false, nil
	}
	options, err := uc.optionRepo.Count(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("contar opciones: %w", err)
	}
	if options == 0 {
		return false, nil
	}
	categories, err := uc.hierRepo.CountCategories(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("contar categorías: %w", err)
	}
	return categories > 0, nil
}

// apply es el camino común: schema → lock → empresa → jerarquía → opciones.
func (uc *TemplateUseCase) apply(ctx context.Context, tenantID, companyID, actingUserID string, def *template.Definition) (*entity.ProvisioningResult, error) {
	if err := validateTenantID(tenantID); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	started := time.Now()

	result := &entity.ProvisioningResult{TenantID: tenantID, CompanyID: companyID}

	if err := uc.schemaRepo.EnsureTables(ctx, tenantID); err != nil {
		return nil, uc.asTimeout(ctx, fmt.Errorf("asegurar tablas del tenant: %w", err))
	}
	caps, err := uc.schemaRepo.Capabilities(ctx, tenantID)
	if err != nil {
		return nil, uc.asTimeout(ctx, fmt.Errorf("detectar capacidades del schema: %w", err))
	}

	// Sección crítica por (tenant, empresa): dos aprovisionamientos
	// concurrentes generarían UUIDs distintos para la misma categoría lógica.
	acquired, err := uc.lockRepo.Acquire(ctx, tenantID, companyID)
	if err != nil {
		return nil, uc.asTimeout(ctx, fmt.Errorf("adquirir lock de aprovisionamiento: %w", err))
	}
	if !acquired {
		uc.log.Info().Str("tenant_id", tenantID).Str("company_id", companyID).
			Msg("aprovisionamiento ya en curso o completado; no-op")
		result.Warnings = append(result.Warnings, "aprovisionamiento ya en curso o completado para esta empresa")
		return result, nil
	}

	now := time.Now()
	company := &entity.Company{
		ID:               companyID,
		TenantID:         tenantID,
		Name:             def.Company.Name,
		DisplayName:      def.Company.DisplayName,
		Description:      def.Company.Description,
		Industry:         def.Company.Industry,
		Size:             def.Company.Size,
		Email:            def.Company.Email,
		Phone:            def.Company.Phone,
		Website:          def.Company.Website,
		SubscriptionTier: def.Company.SubscriptionTier,
		Status:           "active",
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := uc.companyRepo.InsertIfAbsent(ctx, company); err != nil {
		// Sin empresa nada aguas abajo tiene sentido: fatal. Se libera el
		// lock para permitir el reintento.
		_ = uc.lockRepo.Release(context.WithoutCancel(ctx), tenantID, companyID)
		return nil, uc.asTimeout(ctx, fmt.Errorf("%w: %v", domain.ErrCompanyCreation, err))
	}

	resolved := template.Resolve(def, tenantID, companyID, uuid.NewString, now)
	for _, sk := range resolved.Skipped {
		uc.warn(result, fmt.Sprintf("%s %q saltada: padre %q no existe en la plantilla", sk.Kind, sk.Name, sk.ParentName))
	}

	if err := uc.applyHierarchy(ctx, caps, resolved, result); err != nil {
		_ = uc.lockRepo.Release(context.WithoutCancel(ctx), tenantID, companyID)
		return nil, err
	}
	if err := uc.applyFieldOptions(ctx, tenantID, companyID, def.FieldOptions, result); err != nil {
		_ = uc.lockRepo.Release(context.WithoutCancel(ctx), tenantID, companyID)
		return nil, err
	}

	if err := uc.lockRepo.MarkCompleted(ctx, tenantID, companyID); err != nil {
		uc.warn(result, fmt.Sprintf("marcar aprovisionamiento completado: %v", err))
	}

	metrics.ProvisioningDuration.Observe(time.Since(started).Seconds())
	metrics.ProvisionedEntities.WithLabelValues("category").Add(float64(result.Counts.Categories))
	metrics.ProvisionedEntities.WithLabelValues("subcategory").Add(float64(result.Counts.Subcategories))
	metrics.ProvisionedEntities.WithLabelValues("action").Add(float64(result.Counts.Actions))
	metrics.ProvisionedEntities.WithLabelValues("field_option").Add(float64(result.FieldOptions))

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("company_id", companyID).
		Str("acting_user", actingUserID).
		Int("categories", result.Counts.Categories).
		Int("subcategories", result.Counts.Subcategories).
		Int("actions", result.Counts.Actions).
		Int("field_options", result.FieldOptions).
		Int("warnings", len(result.Warnings)).
		Msg("plantilla aplicada")
	return result, nil
}

// applyHierarchy inserta el plan resuelto nivel por nivel. El orden es de
// carga: las categorías completas antes que cualquier subcategoría, y estas
// antes que las acciones. Errores por fila se degradan a warning (la empresa
// ya existe); solo el vencimiento del contexto aborta.
func (uc *TemplateUseCase) applyHierarchy(ctx context.Context, caps entity.SchemaCapabilities, resolved *template.ResolvedHierarchy, result *entity.ProvisioningResult) error {
	for _, c := range resolved.Categories {
		inserted, err := uc.hierRepo.InsertCategory(ctx, caps, c)
		if err != nil {
			if ctxErr := uc.ctxError(ctx); ctxErr != nil {
				return ctxErr
			}
			uc.warn(result, fmt.Sprintf("insertar categoría %q: %v", c.Name, err))
			continue
		}
		if inserted {
			result.Counts.Categories++
		}
	}
	for _, s := range resolved.Subcategories {
		inserted, err := uc.hierRepo.InsertSubcategory(ctx, caps, s)
		if err != nil {
			if ctxErr := uc.ctxError(ctx); ctxErr != nil {
				return ctxErr
			}
			uc.warn(result, fmt.Sprintf("insertar subcategoría %q: %v", s.Name, err))
			continue
		}
		if inserted {
			result.Counts.Subcategories++
		}
	}
	for _, a := range resolved.Actions {
		inserted, err := uc.hierRepo.InsertAction(ctx, caps, a)
		if err != nil {
			if ctxErr := uc.ctxError(ctx); ctxErr != nil {
				return ctxErr
			}
			uc.warn(result, fmt.Sprintf("insertar acción %q: %v", a.Name, err))
			continue
		}
		if inserted {
			result.Counts.Actions++
		}
	}
	return nil
}

// applyFieldOptions upserta las opciones de la plantilla (ganan en
// reaplicación) y después escribe SIEMPRE el set de respaldo con DO NOTHING:
// la empresa nunca queda sin un valor seleccionable por campo, aunque la
// plantilla venga vacía o falle a medias.
func (uc *TemplateUseCase) applyFieldOptions(ctx context.Context, tenantID, companyID string, opts []template.FieldOptionTemplate, result *entity.ProvisioningResult) error {
	now := time.Now()
	for _, o := range template.FieldOptionEntities(opts, tenantID, companyID, uuid.NewString, now) {
		if err := uc.optionRepo.Upsert(ctx, o); err != nil {
			if ctxErr := uc.ctxError(ctx); ctxErr != nil {
				return ctxErr
			}
			uc.warn(result, fmt.Sprintf("upsert opción %s=%s: %v", o.FieldName, o.Value, err))
			continue
		}
		result.FieldOptions++
	}
	for _, o := range template.FieldOptionEntities(template.Fallback(), tenantID, companyID, uuid.NewString, now) {
		inserted, err := uc.optionRepo.InsertIfAbsent(ctx, o)
		if err != nil {
			if ctxErr := uc.ctxError(ctx); ctxErr != nil {
				return ctxErr
			}
			uc.warn(result, fmt.Sprintf("opción de respaldo %s=%s: %v", o.FieldName, o.Value, err))
			continue
		}
		if inserted {
			result.FieldOptions++
		}
	}
	return nil
}

func (uc *TemplateUseCase) warn(result *entity.ProvisioningResult, msg string) {
	result.Warnings = append(result.Warnings, msg)
	uc.log.Warn().Str("tenant_id", result.TenantID).Str("company_id", result.CompanyID).Msg(msg)
}

// ctxError traduce el vencimiento del contexto al error tipado del dominio.
func (uc *TemplateUseCase) ctxError(ctx context.Context) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return domain.ErrProvisioningTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return nil
	}
}

func (uc *TemplateUseCase) asTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrProvisioningTimeout
	}
	return err
}

func validateTenantID(tenantID string) error {
	if _, err := uuid.Parse(tenantID); err != nil {
		return domain.ErrInvalidTenantID
	}
	return nil
}

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

// CloneUseCase copia la jerarquía completa de una empresa (categorías,
// subcategorías, acciones y opciones de campo) a otra empresa del MISMO
// tenant.
//
// A diferencia del aplicador de plantillas, aquí el origen es la base de
// datos: los padres se re-resuelven con mapas id-origen → id-destino
// construidos pasada a pasada, no por nombre, porque el join al leer ya ata
// cada hijo a su padre. Las cuatro pasadas corren dentro de UNA transacción:
// un fallo fatal en cualquiera revierte el clonado entero. El salto con
// warning por padre no resoluble sigue aplicando fila a fila dentro de esa
// transacción.
type CloneUseCase struct {
	schemaRepo repository.SchemaRepository
	txRunner   TxRunner
	timeout    time.Duration
	log        *logger.Logger
}

// NewCloneUseCase construye el caso de uso de clonado.
func NewCloneUseCase(schemaRepo repository.SchemaRepository, txRunner TxRunner, timeout time.Duration, log *logger.Logger) *CloneUseCase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &CloneUseCase{schemaRepo: schemaRepo, txRunner: txRunner, timeout: timeout, log: log}
}

// CopyHierarchy clona la jerarquía de sourceCompanyID a targetCompanyID.
// Las filas que ya existen en destino (por clave natural) se ACTUALIZAN en sus
// campos mutables; las que no, se insertan con ID nuevo.
func (uc *CloneUseCase) CopyHierarchy(ctx context.Context, tenantID, sourceCompanyID, targetCompanyID string) (*entity.CloneResult, error) {
	if err := validateTenantID(tenantID); err != nil {
		return nil, err
	}
	if sourceCompanyID == "" || targetCompanyID == "" || sourceCompanyID == targetCompanyID {
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	started := time.Now()

	caps, err := uc.schemaRepo.Capabilities(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("detectar capacidades del schema: %w", err)
	}

	result := &entity.CloneResult{}
	err = uc.txRunner.Run(ctx, func(hierRepo repository.HierarchyRepository, optionRepo repository.FieldOptionRepository) error {
		categoryIDMap, err := uc.cloneCategories(ctx, hierRepo, caps, tenantID, sourceCompanyID, targetCompanyID, result)
		if err != nil {
			return err
		}
		subcategoryIDMap, err := uc.cloneSubcategories(ctx, hierRepo, caps, tenantID, sourceCompanyID, targetCompanyID, categoryIDMap, result)
		if err != nil {
			return err
		}
		if err := uc.cloneActions(ctx, hierRepo, caps, tenantID, sourceCompanyID, targetCompanyID, subcategoryIDMap, result); err != nil {
			return err
		}
		return uc.cloneFieldOptions(ctx, optionRepo, tenantID, sourceCompanyID, targetCompanyID, result)
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.ErrProvisioningTimeout
		}
		return nil, err
	}

	metrics.CloneDuration.Observe(time.Since(started).Seconds())
	metrics.CloneOperations.Inc()

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("source_company", sourceCompanyID).
		Str("target_company", targetCompanyID).
		Str("summary", result.Summary()).
		Msg("jerarquía clonada")
	return result, nil
}

// cloneCategories pasada 1: update-or-insert por clave natural. El mapa
// id-origen → id-destino se construye en AMBAS ramas; las pasadas siguientes
// dependen de él.
func (uc *CloneUseCase) cloneCategories(ctx context.Context, hierRepo repository.HierarchyRepository, caps entity.SchemaCapabilities, tenantID, sourceCompanyID, targetCompanyID string, result *entity.CloneResult) (map[string]string, error) {
	source, err := hierRepo.ListCategoriesByCompany(ctx, caps, tenantID, sourceCompanyID)
	if err != nil {
		return nil, fmt.Errorf("leer categorías origen: %w", err)
	}
	idMap := make(map[string]string, len(source))
	now := time.Now()
	for _, src := range source {
		existing, err := hierRepo.GetCategoryByName(ctx, caps, tenantID, targetCompanyID, src.Name)
		if err != nil {
			return nil, fmt.Errorf("buscar categoría %q en destino: %w", src.Name, err)
		}
		if existing != nil {
			existing.Description = src.Description
			existing.Color = src.Color
			existing.Icon = src.Icon
			existing.Active = src.Active
			existing.SortOrder = src.SortOrder
			existing.UpdatedAt = now
			if err := hierRepo.UpdateCategory(ctx, existing); err != nil {
				return nil, fmt.Errorf("actualizar categoría %q: %w", src.Name, err)
			}
			idMap[src.ID] = existing.ID
		} else {
			clone := *src
			clone.ID = uuid.NewString()
			clone.CompanyID = targetCompanyID
			clone.CreatedAt = now
			clone.UpdatedAt = now
			inserted, err := hierRepo.InsertCategory(ctx, caps, &clone)
			if err != nil {
				return nil, fmt.Errorf("insertar categoría %q: %w", src.Name, err)
			}
			if !inserted {
				// DO NOTHING se tragó el insert: un escritor concurrente ganó
				// la fila. El mapa debe apuntar al ID que existe de verdad.
				winner, err := hierRepo.GetCategoryByName(ctx, caps, tenantID, targetCompanyID, src.Name)
				if err != nil {
					return nil, fmt.Errorf("releer categoría %q en destino: %w", src.Name, err)
				}
				if winner == nil {
					return nil, fmt.Errorf("categoría %q: insert omitido y sin fila en destino", src.Name)
				}
				clone.ID = winner.ID
			}
			idMap[src.ID] = clone.ID
		}
		result.Categories++
	}
	return idMap, nil
}

// cloneSubcategories pasada 2: re-parenta por id-origen vía el mapa de la
// pasada 1; padre no resoluble ⇒ salto con warning.
func (uc *CloneUseCase) cloneSubcategories(ctx context.Context, hierRepo repository.HierarchyRepository, caps entity.SchemaCapabilities, tenantID, sourceCompanyID, targetCompanyID string, categoryIDMap map[string]string, result *entity.CloneResult) (map[string]string, error) {
	source, err := hierRepo.ListSubcategoriesByCompany(ctx, caps, tenantID, sourceCompanyID)
	if err != nil {
		return nil, fmt.Errorf("leer subcategorías origen: %w", err)
	}
	idMap := make(map[string]string, len(source))
	now := time.Now()
	for _, src := range source {
		targetCategoryID, ok := categoryIDMap[src.CategoryID]
		if !ok {
			uc.warnClone(result, tenantID, fmt.Sprintf("subcategoría %q saltada: categoría origen %s sin equivalente en destino", src.Name, src.CategoryID))
			continue
		}
		existing, err := hierRepo.GetSubcategoryByName(ctx, caps, tenantID, targetCompanyID, targetCategoryID, src.Name)
		if err != nil {
			return nil, fmt.Errorf("buscar subcategoría %q en destino: %w", src.Name, err)
		}
		if existing != nil {
			existing.Description = src.Description
			existing.Color = src.Color
			existing.Icon = src.Icon
			existing.Active = src.Active
			existing.SortOrder = src.SortOrder
			existing.UpdatedAt = now
			if err := hierRepo.UpdateSubcategory(ctx, existing); err != nil {
				return nil, fmt.Errorf("actualizar subcategoría %q: %w", src.Name, err)
			}
			idMap[src.ID] = existing.ID
		} else {
			clone := *src
			clone.ID = uuid.NewString()
			clone.CompanyID = targetCompanyID
			clone.CategoryID = targetCategoryID
			clone.CreatedAt = now
			clone.UpdatedAt = now
			inserted, err := hierRepo.InsertSubcategory(ctx, caps, &clone)
			if err != nil {
				return nil, fmt.Errorf("insertar subcategoría %q: %w", src.Name, err)
			}
			if !inserted {
				winner, err := hierRepo.GetSubcategoryByName(ctx, caps, tenantID, targetCompanyID, targetCategoryID, src.Name)
				if err != nil {
					return nil, fmt.Errorf("releer subcategoría %q en destino: %w", src.Name, err)
				}
				if winner == nil {
					return nil, fmt.Errorf("subcategoría %q: insert omitido y sin fila en destino", src.Name)
				}
				clone.ID = winner.ID
			}
			idMap[src.ID] = clone.ID
		}
		result.Subcategories++
	}
	return idMap, nil
}

// cloneActions pasada 3: igual que la 2 pero colgando del mapa de subcategorías.
func (uc *CloneUseCase) cloneActions(ctx context.Context, hierRepo repository.HierarchyRepository, caps entity.SchemaCapabilities, tenantID, sourceCompanyID, targetCompanyID string, subcategoryIDMap map[string]string, result *entity.CloneResult) error {
	source, err := hierRepo.ListActionsByCompany(ctx, caps, tenantID, sourceCompanyID)
	if err != nil {
		return fmt.Errorf("leer acciones origen: %w", err)
	}
	now := time.Now()
	for _, src := range source {
		targetSubcategoryID, ok := subcategoryIDMap[src.SubcategoryID]
		if !ok {
			uc.warnClone(result, tenantID, fmt.Sprintf("acción %q saltada: subcategoría origen %s sin equivalente en destino", src.Name, src.SubcategoryID))
			continue
		}
		existing, err := hierRepo.GetActionByName(ctx, caps, tenantID, targetCompanyID, targetSubcategoryID, src.Name)
		if err != nil {
			return fmt.Errorf("buscar acción %q en destino: %w", src.Name, err)
		}
		if existing != nil {
			existing.Description = src.Description
			existing.EstimatedTimeMinutes = src.EstimatedTimeMinutes
			existing.Color = src.Color
			existing.Icon = src.Icon
			existing.Active = src.Active
			existing.SortOrder = src.SortOrder
			existing.ActionType = src.ActionType
			existing.UpdatedAt = now
			if err := hierRepo.UpdateAction(ctx, existing); err != nil {
				return fmt.Errorf("actualizar acción %q: %w", src.Name, err)
			}
		} else {
			clone := *src
			clone.ID = uuid.NewString()
			clone.CompanyID = targetCompanyID
			clone.SubcategoryID = targetSubcategoryID
			clone.CreatedAt = now
			clone.UpdatedAt = now
			inserted, err := hierRepo.InsertAction(ctx, caps, &clone)
			if err != nil {
				return fmt.Errorf("insertar acción %q: %w", src.Name, err)
			}
			if !inserted {
				winner, err := hierRepo.GetActionByName(ctx, caps, tenantID, targetCompanyID, targetSubcategoryID, src.Name)
				if err != nil {
					return fmt.Errorf("releer acción %q en destino: %w", src.Name, err)
				}
				if winner == nil {
					return fmt.Errorf("acción %q: insert omitido y sin fila en destino", src.Name)
				}
			}
		}
		result.Actions++
	}
	return nil
}

// cloneFieldOptions pasada 4. Si el origen tiene CERO opciones (empresa recién
// plantillada que nunca terminó su aprovisionamiento) se sintetiza el set de
// respaldo directamente para el destino: clonar no debe propagar ese hueco.
func (uc *CloneUseCase) cloneFieldOptions(ctx context.Context, optionRepo repository.FieldOptionRepository, tenantID, sourceCompanyID, targetCompanyID string, result *entity.CloneResult) error {
	source, err := optionRepo.ListByCompany(ctx, tenantID, sourceCompanyID)
	if err != nil {
		return fmt.Errorf("leer opciones origen: %w", err)
	}
	now := time.Now()
	if len(source) == 0 {
		uc.warnClone(result, tenantID, "empresa origen sin opciones de campo; se escribe el set de respaldo en destino")
		for _, o := range template.FieldOptionEntities(template.Fallback(), tenantID, targetCompanyID, uuid.NewString, now) {
			inserted, err := optionRepo.InsertIfAbsent(ctx, o)
			if err != nil {
				return fmt.Errorf("opción de respaldo %s=%s: %w", o.FieldName, o.Value, err)
			}
			if inserted {
				result.FieldOptions++
			}
		}
		return nil
	}
	for _, src := range source {
		clone := *src
		clone.ID = uuid.NewString()
		clone.CompanyID = targetCompanyID
		clone.CreatedAt = now
		clone.UpdatedAt = now
		if err := optionRepo.Upsert(ctx, &clone); err != nil {
			return fmt.Errorf("upsert opción %s=%s: %w", src.FieldName, src.Value, err)
		}
		result.FieldOptions++
	}
	return nil
}

func (uc *CloneUseCase) warnClone(result *entity.CloneResult, tenantID, msg string) {
	result.Warnings = append(result.Warnings, msg)
	uc.log.Warn().Str("tenant_id", tenantID).Msg(msg)
}

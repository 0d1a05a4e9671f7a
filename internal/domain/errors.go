package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidTenantID     = errors.New("tenant id inválido (se espera UUID)")
	ErrCompanyCreation     = errors.New("no se pudo crear la empresa")
	ErrProvisioningTimeout = errors.New("aprovisionamiento excedió el tiempo límite")
)

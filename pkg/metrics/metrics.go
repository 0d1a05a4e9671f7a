package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas del motor de aprovisionamiento, registradas en el registry por
// defecto (el endpoint /metrics las expone con promhttp).
var (
	// ProvisionedEntities cuenta filas realmente escritas por tipo de entidad
	// (category, subcategory, action, field_option).
	ProvisionedEntities = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helpdesk",
			Name:      "provisioned_entities_total",
			Help:      "Filas escritas por el motor de plantillas, por tipo de entidad",
		},
		[]string{"kind"},
	)

	// ProvisioningDuration mide el aprovisionamiento completo de un tenant.
	ProvisioningDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "helpdesk",
		Name:      "provisioning_duration_seconds",
		Help:      "Duración de aplicar una plantilla a un tenant",
		Buckets:   prometheus.DefBuckets,
	})

	// CloneOperations cuenta clonados de jerarquía completados.
	CloneOperations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "helpdesk",
		Name:      "hierarchy_clones_total",
		Help:      "Clonados de jerarquía entre empresas completados",
	})

	// CloneDuration mide el clonado completo (las cuatro pasadas).
	CloneDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "helpdesk",
		Name:      "hierarchy_clone_duration_seconds",
		Help:      "Duración del clonado de jerarquía entre empresas",
		Buckets:   prometheus.DefBuckets,
	})
)

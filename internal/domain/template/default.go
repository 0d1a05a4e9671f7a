package template

import "github.com/tu-usuario/helpdesk-pro/internal/domain/entity"

// Default devuelve la plantilla embarcada v1: 5 categorías, 20 subcategorías
// (4 por categoría) y 30 acciones, más los sets de opciones de campo.
//
// Devuelve una copia nueva en cada llamada para que los tests (y los overrides
// de ApplyCustomizedTemplate) puedan mutar su ejemplar sin afectar a otros.
func Default() *Definition {
	return &Definition{
		Version: "1.0",
		Company: CompanyTemplate{
			Name:             "default",
			DisplayName:      "Empresa por defecto",
			Description:      "Empresa creada automáticamente al aprovisionar el tenant",
			Industry:         "technology",
			Size:             "small",
			Email:            "soporte@example.com",
			Phone:            "",
			Website:          "",
			SubscriptionTier: "basic",
		},
		Categories:    defaultCategories(),
		Subcategories: defaultSubcategories(),
		Actions:       defaultActions(),
		FieldOptions:  defaultFieldOptions(),
	}
}

func defaultCategories() []CategoryTemplate {
	return []CategoryTemplate{
		{Name: "Hardware", Description: "Equipos físicos y componentes", Color: "#E53935", Icon: "computer", SortOrder: 1},
		{Name: "Software", Description: "Aplicaciones y licencias", Color: "#1E88E5", Icon: "apps", SortOrder: 2},
		{Name: "Redes", Description: "Conectividad y comunicaciones", Color: "#43A047", Icon: "wifi", SortOrder: 3},
		{Name: "Accesos y Seguridad", Description: "Cuentas, permisos y protección", Color: "#FB8C00", Icon: "lock", SortOrder: 4},
		{Name: "Soporte General", Description: "Consultas y solicitudes varias", Color: "#8E24AA", Icon: "help", SortOrder: 5},
	}
}

func defaultSubcategories() []SubcategoryTemplate {
	return []SubcategoryTemplate{
		// Hardware
		{CategoryName: "Hardware", Name: "Equipos de cómputo", Description: "PCs de escritorio y portátiles", Icon: "laptop", SortOrder: 1},
		{CategoryName: "Hardware", Name: "Impresoras y escáneres", Description: "Dispositivos de impresión y digitalización", Icon: "print", SortOrder: 2},
		{CategoryName: "Hardware", Name: "Periféricos", Description: "Teclados, monitores, y otros periféricos", Icon: "mouse", SortOrder: 3},
		{CategoryName: "Hardware", Name: "Servidores", Description: "Infraestructura de servidores locales", Icon: "dns", SortOrder: 4},
		// Software
		{CategoryName: "Software", Name: "Ofimática", Description: "Suite de oficina y herramientas de productividad", Icon: "description", SortOrder: 1},
		{CategoryName: "Software", Name: "Correo electrónico", Description: "Buzones y clientes de correo", Icon: "mail", SortOrder: 2},
		{CategoryName: "Software", Name: "Aplicaciones internas", Description: "Sistemas desarrollados internamente", Icon: "widgets", SortOrder: 3},
		{CategoryName: "Software", Name: "Sistema operativo", Description: "Instalación y mantenimiento de SO", Icon: "settings", SortOrder: 4},
		// Redes
		{CategoryName: "Redes", Name: "Conectividad LAN", Description: "Cableado y puntos de red", Icon: "lan", SortOrder: 1},
		{CategoryName: "Redes", Name: "WiFi", Description: "Red inalámbrica corporativa", Icon: "wifi", SortOrder: 2},
		{CategoryName: "Redes", Name: "VPN", Description: "Acceso remoto seguro", Icon: "vpn_key", SortOrder: 3},
		{CategoryName: "Redes", Name: "Telefonía IP", Description: "Extensiones y centralita VoIP", Icon: "call", SortOrder: 4},
		// Accesos y Seguridad
		{CategoryName: "Accesos y Seguridad", Name: "Cuentas de usuario", Description: "Altas, bajas y modificaciones de cuentas", Icon: "person", SortOrder: 1},
		{CategoryName: "Accesos y Seguridad", Name: "Permisos y roles", Description: "Autorizaciones sobre sistemas y carpetas", Icon: "badge", SortOrder: 2},
		{CategoryName: "Accesos y Seguridad", Name: "Antivirus", Description: "Protección contra malware", Icon: "security", SortOrder: 3},
		{CategoryName: "Accesos y Seguridad", Name: "Contraseñas", Description: "Restablecimientos y políticas de contraseña", Icon: "password", SortOrder: 4},
		// Soporte General
		{CategoryName: "Soporte General", Name: "Consultas", Description: "Preguntas de uso y funcionamiento", Icon: "quiz", SortOrder: 1},
		{CategoryName: "Soporte General", Name: "Solicitudes de equipo", Description: "Peticiones de hardware o software nuevo", Icon: "add_shopping_cart", SortOrder: 2},
		{CategoryName: "Soporte General", Name: "Capacitación", Description: "Formación a usuarios finales", Icon: "school", SortOrder: 3},
		{CategoryName: "Soporte General", Name: "Otros", Description: "Todo lo que no encaja en otra subcategoría", Icon: "more_horiz", SortOrder: 4},
	}
}

func defaultActions() []ActionTemplate {
	return []ActionTemplate{
		// Hardware
		{SubcategoryName: "Equipos de cómputo", Name: "Diagnóstico de equipo", Description: "Revisión física y lógica del equipo", EstimatedTimeMinutes: 45, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "Equipos de cómputo", Name: "Reemplazo de componente", Description: "Cambio de disco, memoria u otro componente", EstimatedTimeMinutes: 90, ActionType: "presencial", SortOrder: 2},
		{SubcategoryName: "Impresoras y escáneres", Name: "Cambio de tóner", Description: "Sustitución de consumibles", EstimatedTimeMinutes: 15, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "Impresoras y escáneres", Name: "Configurar impresora en red", Description: "Alta de la impresora en el servidor de impresión", EstimatedTimeMinutes: 30, ActionType: "remota", SortOrder: 2},
		{SubcategoryName: "Periféricos", Name: "Reemplazo de periférico", Description: "Entrega e instalación de periférico nuevo", EstimatedTimeMinutes: 20, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "Servidores", Name: "Revisión de servidor", Description: "Inspección de estado y logs del servidor", EstimatedTimeMinutes: 60, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "Servidores", Name: "Reinicio controlado", Description: "Reinicio planificado con aviso a usuarios", EstimatedTimeMinutes: 30, ActionType: "remota", SortOrder: 2},
		// Software
		{SubcategoryName: "Ofimática", Name: "Instalación de paquete ofimático", Description: "Instalación y configuración inicial", EstimatedTimeMinutes: 40, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Ofimática", Name: "Activación de licencia", Description: "Registro de licencia corporativa", EstimatedTimeMinutes: 20, ActionType: "remota", SortOrder: 2},
		{SubcategoryName: "Correo electrónico", Name: "Creación de buzón", Description: "Alta de buzón y alias corporativos", EstimatedTimeMinutes: 25, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Correo electrónico", Name: "Recuperación de correos", Description: "Restauración desde copia de seguridad", EstimatedTimeMinutes: 45, ActionType: "remota", SortOrder: 2},
		{SubcategoryName: "Aplicaciones internas", Name: "Despliegue de actualización", Description: "Publicación de nueva versión en el entorno", EstimatedTimeMinutes: 60, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Aplicaciones internas", Name: "Reporte de error a desarrollo", Description: "Documentar el fallo y escalarlo al equipo de desarrollo", EstimatedTimeMinutes: 30, ActionType: "documental", SortOrder: 2},
		{SubcategoryName: "Sistema operativo", Name: "Reinstalación de SO", Description: "Formateo y reinstalación con respaldo previo", EstimatedTimeMinutes: 120, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "Sistema operativo", Name: "Aplicación de parches", Description: "Actualizaciones de seguridad del sistema", EstimatedTimeMinutes: 45, ActionType: "remota", SortOrder: 2},
		// Redes
		{SubcategoryName: "Conectividad LAN", Name: "Revisión de punto de red", Description: "Verificación de cableado y switch", EstimatedTimeMinutes: 40, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "WiFi", Name: "Alta de dispositivo en WiFi", Description: "Registro del dispositivo en la red inalámbrica", EstimatedTimeMinutes: 15, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "WiFi", Name: "Ajuste de cobertura", Description: "Reubicación o configuración de puntos de acceso", EstimatedTimeMinutes: 60, ActionType: "presencial", SortOrder: 2},
		{SubcategoryName: "VPN", Name: "Creación de perfil VPN", Description: "Alta de credenciales y perfil de conexión", EstimatedTimeMinutes: 30, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "VPN", Name: "Solución de fallas VPN", Description: "Diagnóstico de conexión remota", EstimatedTimeMinutes: 45, ActionType: "remota", SortOrder: 2},
		{SubcategoryName: "Telefonía IP", Name: "Alta de extensión", Description: "Creación de extensión en la centralita", EstimatedTimeMinutes: 25, ActionType: "remota", SortOrder: 1},
		// Accesos y Seguridad
		{SubcategoryName: "Cuentas de usuario", Name: "Alta de usuario", Description: "Creación de cuenta y accesos base", EstimatedTimeMinutes: 20, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Cuentas de usuario", Name: "Baja de usuario", Description: "Desactivación de cuenta y revocación de accesos", EstimatedTimeMinutes: 15, ActionType: "remota", SortOrder: 2},
		{SubcategoryName: "Permisos y roles", Name: "Ajuste de permisos", Description: "Modificación de autorizaciones sobre recursos", EstimatedTimeMinutes: 20, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Antivirus", Name: "Análisis y limpieza", Description: "Escaneo completo y eliminación de amenazas", EstimatedTimeMinutes: 50, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Contraseñas", Name: "Restablecimiento de contraseña", Description: "Reset y entrega segura de credencial temporal", EstimatedTimeMinutes: 10, ActionType: "remota", SortOrder: 1},
		// Soporte General
		{SubcategoryName: "Consultas", Name: "Atención de consulta", Description: "Respuesta a dudas de uso", EstimatedTimeMinutes: 15, ActionType: "remota", SortOrder: 1},
		{SubcategoryName: "Solicitudes de equipo", Name: "Gestión de solicitud", Description: "Registro y tramitación de la petición", EstimatedTimeMinutes: 30, ActionType: "documental", SortOrder: 1},
		{SubcategoryName: "Capacitación", Name: "Sesión de capacitación", Description: "Formación presencial o virtual al usuario", EstimatedTimeMinutes: 60, ActionType: "presencial", SortOrder: 1},
		{SubcategoryName: "Otros", Name: "Atención general", Description: "Primer nivel para casos no clasificados", EstimatedTimeMinutes: 30, ActionType: "remota", SortOrder: 1},
	}
}

func defaultFieldOptions() []FieldOptionTemplate {
	return []FieldOptionTemplate{
		// status
		{FieldName: entity.FieldStatus, Value: "open", Label: "Abierto", Color: "#2196F3", SortOrder: 1, IsDefault: true, StatusType: entity.StatusTypeOpen},
		{FieldName: entity.FieldStatus, Value: "in_progress", Label: "En progreso", Color: "#FF9800", SortOrder: 2, StatusType: entity.StatusTypeOpen},
		{FieldName: entity.FieldStatus, Value: "pending", Label: "En espera", Color: "#9E9E9E", SortOrder: 3, StatusType: entity.StatusTypeOpen},
		{FieldName: entity.FieldStatus, Value: "resolved", Label: "Resuelto", Color: "#4CAF50", SortOrder: 4, StatusType: entity.StatusTypeResolved},
		{FieldName: entity.FieldStatus, Value: "closed", Label: "Cerrado", Color: "#607D8B", SortOrder: 5, StatusType: entity.StatusTypeClosed},
		// priority
		{FieldName: entity.FieldPriority, Value: "low", Label: "Baja", Color: "#8BC34A", SortOrder: 1},
		{FieldName: entity.FieldPriority, Value: "medium", Label: "Media", Color: "#FFC107", SortOrder: 2, IsDefault: true},
		{FieldName: entity.FieldPriority, Value: "high", Label: "Alta", Color: "#FF5722", SortOrder: 3},
		{FieldName: entity.FieldPriority, Value: "critical", Label: "Crítica", Color: "#F44336", SortOrder: 4},
		// impact
		{FieldName: entity.FieldImpact, Value: "low", Label: "Bajo", Color: "#8BC34A", SortOrder: 1},
		{FieldName: entity.FieldImpact, Value: "medium", Label: "Medio", Color: "#FFC107", SortOrder: 2, IsDefault: true},
		{FieldName: entity.FieldImpact, Value: "high", Label: "Alto", Color: "#F44336", SortOrder: 3},
		// urgency
		{FieldName: entity.FieldUrgency, Value: "low", Label: "Baja", Color: "#8BC34A", SortOrder: 1},
		{FieldName: entity.FieldUrgency, Value: "medium", Label: "Media", Color: "#FFC107", SortOrder: 2, IsDefault: true},
		{FieldName: entity.FieldUrgency, Value: "high", Label: "Alta", Color: "#F44336", SortOrder: 3},
	}
}

// Fallback devuelve el set fijo mínimo de opciones de campo: al menos un valor
// por defecto para status, priority, impact y urgency. Se escribe SIEMPRE tras
// la plantilla (con DO NOTHING, nunca pisa lo existente) para garantizar que
// ninguna empresa quede sin valores seleccionables.
func Fallback() []FieldOptionTemplate {
	return []FieldOptionTemplate{
		{FieldName: entity.FieldStatus, Value: "open", Label: "Abierto", Color: "#2196F3", SortOrder: 1, IsDefault: true, StatusType: entity.StatusTypeOpen},
		{FieldName: entity.FieldStatus, Value: "resolved", Label: "Resuelto", Color: "#4CAF50", SortOrder: 2, StatusType: entity.StatusTypeResolved},
		{FieldName: entity.FieldStatus, Value: "closed", Label: "Cerrado", Color: "#607D8B", SortOrder: 3, StatusType: entity.StatusTypeClosed},
		{FieldName: entity.FieldPriority, Value: "medium", Label: "Media", Color: "#FFC107", SortOrder: 1, IsDefault: true},
		{FieldName: entity.FieldImpact, Value: "medium", Label: "Medio", Color: "#FFC107", SortOrder: 1, IsDefault: true},
		{FieldName: entity.FieldUrgency, Value: "medium", Label: "Media", Color: "#FFC107", SortOrder: 1, IsDefault: true},
	}
}

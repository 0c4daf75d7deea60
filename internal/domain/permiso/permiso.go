// Package permiso evalúa permisos por sección y acción.
// Un permiso es una clave "SECCION:ACCION"; la clave comodín TODAS
// concede acceso completo (rol Administrador).
package permiso

import "github.com/dparedes/sial-api/internal/domain/entity"

// Secciones de la aplicación.
const (
	SeccionDespachosAbastecimiento  = "DESPACHOS_ABASTECIMIENTO"
	SeccionDespachosArmamento       = "DESPACHOS_ARMAMENTO"
	SeccionInventarioAbastecimiento = "INVENTARIO_ABASTECIMIENTO"
	SeccionInventarioArmamento      = "INVENTARIO_ARMAMENTO"
	SeccionUsuarios                 = "USUARIOS"
	SeccionAuditoria                = "AUDITORIA"
)

// Acciones sobre una sección. RECUPERAR existe solo como etiqueta de
// auditoría; la recuperación se autoriza con ELIMINAR.
const (
	AccionCrear      = "CREAR"
	AccionActualizar = "ACTUALIZAR"
	AccionEliminar   = "ELIMINAR"
	AccionRecuperar  = "RECUPERAR"
)

// Todas es la clave comodín que concede todos los permisos.
const Todas = "TODAS"

// Validar responde si el set de permisos concede la acción sobre la sección.
func Validar(permisos []string, seccion, accion string) bool {
	clave := seccion + ":" + accion
	for _, p := range permisos {
		if p == Todas || p == clave {
			return true
		}
	}
	return false
}

// SeccionDespachos devuelve la sección de despachos correspondiente al servicio.
func SeccionDespachos(servicio string) string {
	if servicio == entity.ServicioArmamento {
		return SeccionDespachosArmamento
	}
	return SeccionDespachosAbastecimiento
}

// SeccionInventario devuelve la sección de inventario correspondiente al servicio.
func SeccionInventario(servicio string) string {
	if servicio == entity.ServicioArmamento {
		return SeccionInventarioArmamento
	}
	return SeccionInventarioAbastecimiento
}

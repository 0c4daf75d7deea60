// Package cache guarda en memoria el listado proyectado de despachos por
// servicio. Hay un solo proceso escribiendo, así que no hace falta un
// almacén externo; las mutaciones invalidan la entrada del servicio afectado.
package cache

import (
	"sync"

	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/application/dto"
)

var _ despacho.ListadoCache = (*ListadoDespachos)(nil)

// ListadoDespachos es una caché en memoria segura para uso concurrente.
type ListadoDespachos struct {
	mu       sync.RWMutex
	listados map[string][]dto.DespachoDetalleResponse
}

// NewListadoDespachos construye la caché vacía.
func NewListadoDespachos() *ListadoDespachos {
	return &ListadoDespachos{listados: make(map[string][]dto.DespachoDetalleResponse)}
}

// Obtener devuelve el listado cacheado del servicio, si existe.
func (c *ListadoDespachos) Obtener(servicio string) ([]dto.DespachoDetalleResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.listados[servicio]
	return l, ok
}

// Guardar reemplaza el listado cacheado del servicio.
func (c *ListadoDespachos) Guardar(servicio string, despachos []dto.DespachoDetalleResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listados[servicio] = despachos
}

// Invalidar descarta el listado cacheado del servicio.
func (c *ListadoDespachos) Invalidar(servicio string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listados, servicio)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

var _ repository.SerialRepository = (*SerialRepo)(nil)

// SerialRepo implementación de SerialRepository sobre PostgreSQL (usable con pool o tx).
type SerialRepo struct {
	q Querier
}

// NewSerialRepository construye el adaptador de seriales. Pasar pool o tx (Querier).
func NewSerialRepository(q Querier) *SerialRepo {
	return &SerialRepo{q: q}
}

const columnasSerial = `id, serial, id_renglon, estado, peso_actual, condicion, id_despacho_renglon`

func (r *SerialRepo) listar(query string, args ...any) ([]entity.Serial, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query seriales: %w", err)
	}
	defer rows.Close()

	var out []entity.Serial
	for rows.Next() {
		var s entity.Serial
		if err := rows.Scan(&s.ID, &s.Serial, &s.IDRenglon, &s.Estado,
			&s.PesoActual, &s.Condicion, &s.IDDespachoRenglon); err != nil {
			return nil, fmt.Errorf("scan serial: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListarPorRenglonYEstados devuelve hasta limite seriales del renglón en alguno
// de los estados dados; limite <= 0 lista todos. Lectura sin bloqueo.
func (r *SerialRepo) ListarPorRenglonYEstados(idRenglon int, estados []string, limite int) ([]entity.Serial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM seriales
		WHERE id_renglon = $1 AND estado = ANY($2)
		ORDER BY id`, columnasSerial)
	if limite > 0 {
		return r.listar(query+" LIMIT $3", idRenglon, estados, limite)
	}
	return r.listar(query, idRenglon, estados)
}

// SeleccionarParaDespacho elige seriales bloqueando las filas (SELECT FOR UPDATE)
// para que despachos concurrentes no reclamen las mismas unidades. Solo tiene
// sentido dentro de una transacción.
func (r *SerialRepo) SeleccionarParaDespacho(idRenglon int, estados []string, limite int) ([]entity.Serial, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM seriales
		WHERE id_renglon = $1 AND estado = ANY($2)
		ORDER BY id
		LIMIT $3
		FOR UPDATE`, columnasSerial)
	return r.listar(query, idRenglon, estados, limite)
}

// BuscarPorSeriales resuelve seriales por su cadena identificadora dentro de un renglón.
func (r *SerialRepo) BuscarPorSeriales(idRenglon int, seriales []string) ([]entity.Serial, error) {
	if len(seriales) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT %s FROM seriales
		WHERE id_renglon = $1 AND serial = ANY($2)
		ORDER BY id`, columnasSerial)
	return r.listar(query, idRenglon, seriales)
}

// ActualizarEstado cambia el estado de un lote de seriales.
func (r *SerialRepo) ActualizarEstado(ids []int, estado string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE seriales SET estado = $2 WHERE id = ANY($1)`, ids, estado)
	if err != nil {
		return fmt.Errorf("actualizar estado de seriales: %w", err)
	}
	return nil
}

// AtarADespachoRenglon fija el FK de retención para despachos discretos.
func (r *SerialRepo) AtarADespachoRenglon(ids []int, idDespachoRenglon int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`UPDATE seriales SET id_despacho_renglon = $2 WHERE id = ANY($1)`, ids, idDespachoRenglon)
	if err != nil {
		return fmt.Errorf("atar seriales al despacho: %w", err)
	}
	return nil
}

// DescontarPeso resta peso despachado del peso actual de un serial líquido.
func (r *SerialRepo) DescontarPeso(id int, peso decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE seriales SET peso_actual = peso_actual - $2 WHERE id = $1`, id, peso)
	if err != nil {
		return fmt.Errorf("descontar peso del serial %d: %w", id, err)
	}
	return nil
}

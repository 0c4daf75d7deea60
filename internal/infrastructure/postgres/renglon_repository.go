package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

var _ repository.RenglonRepository = (*RenglonRepo)(nil)

// RenglonRepo implementación de RenglonRepository sobre PostgreSQL (usable con pool o tx).
type RenglonRepo struct {
	q Querier
}

// NewRenglonRepository construye el adaptador de renglones. Pasar pool o tx (Querier).
func NewRenglonRepository(q Querier) *RenglonRepo {
	return &RenglonRepo{q: q}
}

const columnasRenglon = `id, nombre, descripcion, stock_actual, stock_minimo,
	tipo_medida_unidad, id_unidad_empaque, id_clasificacion, id_subsistema,
	fecha_creacion, ultima_actualizacion`

// Crear persiste un renglón nuevo con stock en cero.
func (r *RenglonRepo) Crear(ren *entity.Renglon) (int, error) {
	query := `
		INSERT INTO renglones (nombre, descripcion, stock_actual, stock_minimo,
			tipo_medida_unidad, id_unidad_empaque, id_clasificacion, id_subsistema,
			fecha_creacion, ultima_actualizacion)
		VALUES ($1, $2, 0, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	var id int
	err := r.q.QueryRow(context.Background(), query,
		ren.Nombre, ren.Descripcion, ren.StockMinimo, ren.TipoMedidaUnidad,
		ren.IDUnidadEmpaque, ren.IDClasificacion, ren.IDSubsistema,
		ren.FechaCreacion, ren.UltimaActualizacion,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert renglón: %w", err)
	}
	return id, nil
}

// Actualizar modifica la ficha del renglón sin tocar el stock.
func (r *RenglonRepo) Actualizar(ren *entity.Renglon) error {
	query := `
		UPDATE renglones SET
			nombre = $2, descripcion = $3, stock_minimo = $4,
			tipo_medida_unidad = $5, id_unidad_empaque = $6,
			id_clasificacion = $7, id_subsistema = $8,
			ultima_actualizacion = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ren.ID, ren.Nombre, ren.Descripcion, ren.StockMinimo,
		ren.TipoMedidaUnidad, ren.IDUnidadEmpaque, ren.IDClasificacion,
		ren.IDSubsistema, ren.UltimaActualizacion)
	if err != nil {
		return fmt.Errorf("update renglón: %w", err)
	}
	return nil
}

// Eliminar borra la ficha del renglón.
func (r *RenglonRepo) Eliminar(id int) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM renglones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar renglón: %w", err)
	}
	return nil
}

// ObtenerPorID devuelve el renglón, o nil si no existe.
func (r *RenglonRepo) ObtenerPorID(id int) (*entity.Renglon, error) {
	query := fmt.Sprintf(`SELECT %s FROM renglones WHERE id = $1`, columnasRenglon)
	var ren entity.Renglon
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ren.ID, &ren.Nombre, &ren.Descripcion, &ren.StockActual, &ren.StockMinimo,
		&ren.TipoMedidaUnidad, &ren.IDUnidadEmpaque, &ren.IDClasificacion,
		&ren.IDSubsistema, &ren.FechaCreacion, &ren.UltimaActualizacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get renglón: %w", err)
	}
	return &ren, nil
}

// Listar devuelve todos los renglones ordenados por nombre.
func (r *RenglonRepo) Listar() ([]entity.Renglon, error) {
	query := fmt.Sprintf(`SELECT %s FROM renglones ORDER BY nombre`, columnasRenglon)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar renglones: %w", err)
	}
	defer rows.Close()

	var out []entity.Renglon
	for rows.Next() {
		var ren entity.Renglon
		if err := rows.Scan(
			&ren.ID, &ren.Nombre, &ren.Descripcion, &ren.StockActual, &ren.StockMinimo,
			&ren.TipoMedidaUnidad, &ren.IDUnidadEmpaque, &ren.IDClasificacion,
			&ren.IDSubsistema, &ren.FechaCreacion, &ren.UltimaActualizacion); err != nil {
			return nil, fmt.Errorf("scan renglón: %w", err)
		}
		out = append(out, ren)
	}
	return out, rows.Err()
}

// DescontarStock baja el contador derivado stock_actual.
func (r *RenglonRepo) DescontarStock(id, cantidad int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE renglones SET stock_actual = stock_actual - $2, ultima_actualizacion = now() WHERE id = $1`,
		id, cantidad)
	if err != nil {
		return fmt.Errorf("descontar stock del renglón %d: %w", id, err)
	}
	return nil
}

// IncrementarStock sube el contador derivado stock_actual.
func (r *RenglonRepo) IncrementarStock(id, cantidad int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE renglones SET stock_actual = stock_actual + $2, ultima_actualizacion = now() WHERE id = $1`,
		id, cantidad)
	if err != nil {
		return fmt.Errorf("incrementar stock del renglón %d: %w", id, err)
	}
	return nil
}

// ObtenerUnidadEmpaque devuelve la unidad de empaque, o nil si no existe.
func (r *RenglonRepo) ObtenerUnidadEmpaque(id int) (*entity.UnidadEmpaque, error) {
	var ue entity.UnidadEmpaque
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, abreviacion, tipo_medida FROM unidades_empaque WHERE id = $1`, id).
		Scan(&ue.ID, &ue.Nombre, &ue.Abreviacion, &ue.TipoMedida)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unidad de empaque: %w", err)
	}
	return &ue, nil
}

// ListarClasificaciones devuelve el catálogo completo de clasificaciones.
func (r *RenglonRepo) ListarClasificaciones() ([]entity.Clasificacion, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, descripcion FROM clasificaciones ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("listar clasificaciones: %w", err)
	}
	defer rows.Close()
	var out []entity.Clasificacion
	for rows.Next() {
		var c entity.Clasificacion
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion); err != nil {
			return nil, fmt.Errorf("scan clasificación: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CrearClasificacion agrega una clasificación y devuelve su id.
func (r *RenglonRepo) CrearClasificacion(c *entity.Clasificacion) (int, error) {
	var id int
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO clasificaciones (nombre, descripcion) VALUES ($1, $2) RETURNING id`,
		c.Nombre, c.Descripcion).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert clasificación: %w", err)
	}
	return id, nil
}

// ListarSubsistemas devuelve el catálogo completo de subsistemas.
func (r *RenglonRepo) ListarSubsistemas() ([]entity.Subsistema, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, descripcion FROM subsistemas ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("listar subsistemas: %w", err)
	}
	defer rows.Close()
	var out []entity.Subsistema
	for rows.Next() {
		var s entity.Subsistema
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Descripcion); err != nil {
			return nil, fmt.Errorf("scan subsistema: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CrearSubsistema agrega un subsistema y devuelve su id.
func (r *RenglonRepo) CrearSubsistema(s *entity.Subsistema) (int, error) {
	var id int
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO subsistemas (nombre, descripcion) VALUES ($1, $2) RETURNING id`,
		s.Nombre, s.Descripcion).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert subsistema: %w", err)
	}
	return id, nil
}

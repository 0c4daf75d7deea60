package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/repository"
)

var _ repository.DespachoRepository = (*DespachoRepo)(nil)

// DespachoRepo implementación de DespachoRepository sobre PostgreSQL (usable con pool o tx).
// Las relaciones del detalle se componen con consultas explícitas, no con un ORM.
type DespachoRepo struct {
	q Querier
}

// NewDespachoRepository construye el adaptador de despachos. Pasar pool o tx (Querier).
func NewDespachoRepository(q Querier) *DespachoRepo {
	return &DespachoRepo{q: q}
}

// Crear inserta la cabecera y devuelve el id asignado.
func (r *DespachoRepo) Crear(d *entity.Despacho) (int, error) {
	query := `
		INSERT INTO despachos (servicio, cedula_destinatario, cedula_abastecedor,
			cedula_supervisor, cedula_autorizador, motivo, motivo_fecha,
			fecha_despacho, fecha_creacion, ultima_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	var id int
	err := r.q.QueryRow(context.Background(), query,
		d.Servicio, d.CedulaDestinatario, d.CedulaAbastecedor,
		d.CedulaSupervisor, d.CedulaAutorizador, d.Motivo, d.MotivoFecha,
		d.FechaDespacho, d.FechaCreacion, d.UltimaActualizacion,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert despacho: %w", err)
	}
	return id, nil
}

// CrearRenglon inserta una línea del despacho y devuelve su id.
func (r *DespachoRepo) CrearRenglon(l *entity.DespachoRenglon) (int, error) {
	query := `
		INSERT INTO despachos_renglones (id_despacho, id_renglon, cantidad,
			manual_selection, es_despacho_liquidos, observacion)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int
	err := r.q.QueryRow(context.Background(), query,
		l.IDDespacho, l.IDRenglon, l.Cantidad,
		l.ManualSelection, l.EsDespachoLiquidos, l.Observacion,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert despacho_renglon: %w", err)
	}
	return id, nil
}

// CrearDespachoSerial inserta una fila de peso para despachos líquidos.
func (r *DespachoRepo) CrearDespachoSerial(ds *entity.DespachoSerial) error {
	query := `
		INSERT INTO despachos_seriales (id_despacho_renglon, id_serial, peso_despachado)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query,
		ds.IDDespachoRenglon, ds.IDSerial, ds.PesoDespachado)
	if err != nil {
		return fmt.Errorf("insert despacho_serial: %w", err)
	}
	return nil
}

// ActualizarCabecera persiste solo los campos de cabecera.
func (r *DespachoRepo) ActualizarCabecera(d *entity.Despacho) error {
	query := `
		UPDATE despachos SET
			cedula_destinatario = $2, cedula_abastecedor = $3,
			cedula_supervisor = $4, cedula_autorizador = $5,
			motivo = $6, motivo_fecha = $7, fecha_despacho = $8,
			ultima_actualizacion = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.CedulaDestinatario, d.CedulaAbastecedor,
		d.CedulaSupervisor, d.CedulaAutorizador,
		d.Motivo, d.MotivoFecha, d.FechaDespacho, d.UltimaActualizacion)
	if err != nil {
		return fmt.Errorf("update despacho: %w", err)
	}
	return nil
}

// Eliminar marca la cabecera con la fecha de eliminación (eliminación suave).
func (r *DespachoRepo) Eliminar(id int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE despachos SET fecha_eliminacion = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("eliminar despacho: %w", err)
	}
	return nil
}

// EliminarVarios borra definitivamente un lote de despachos; las líneas y filas
// de peso caen por FK en cascada y los seriales quedan sueltos por SET NULL.
func (r *DespachoRepo) EliminarVarios(ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM despachos WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("eliminar despachos: %w", err)
	}
	return nil
}

// LimpiarFechaEliminacion revierte la eliminación suave de la cabecera.
func (r *DespachoRepo) LimpiarFechaEliminacion(id int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE despachos SET fecha_eliminacion = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("limpiar fecha de eliminación: %w", err)
	}
	return nil
}

const columnasDespacho = `id, servicio, cedula_destinatario, cedula_abastecedor,
	cedula_supervisor, cedula_autorizador, motivo, motivo_fecha,
	fecha_despacho, fecha_creacion, ultima_actualizacion, fecha_eliminacion`

func scanDespacho(row pgx.Row) (*entity.Despacho, error) {
	var d entity.Despacho
	err := row.Scan(&d.ID, &d.Servicio, &d.CedulaDestinatario, &d.CedulaAbastecedor,
		&d.CedulaSupervisor, &d.CedulaAutorizador, &d.Motivo, &d.MotivoFecha,
		&d.FechaDespacho, &d.FechaCreacion, &d.UltimaActualizacion, &d.FechaEliminacion)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ObtenerPorID devuelve la cabecera, o nil si no existe.
func (r *DespachoRepo) ObtenerPorID(id int) (*entity.Despacho, error) {
	query := fmt.Sprintf(`SELECT %s FROM despachos WHERE id = $1`, columnasDespacho)
	d, err := scanDespacho(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get despacho: %w", err)
	}
	return d, nil
}

// ObtenerDetalle devuelve el despacho con destinatario, personal y renglones
// cargados, o nil si no existe.
func (r *DespachoRepo) ObtenerDetalle(id int) (*entity.DespachoDetalle, error) {
	cabecera, err := r.ObtenerPorID(id)
	if err != nil || cabecera == nil {
		return nil, err
	}
	return r.armarDetalle(cabecera)
}

// ListarPorServicio devuelve los despachos del servicio con sus relaciones,
// ordenados por última actualización descendente.
func (r *DespachoRepo) ListarPorServicio(servicio string) ([]entity.DespachoDetalle, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM despachos
		WHERE servicio = $1
		ORDER BY ultima_actualizacion DESC`, columnasDespacho)
	rows, err := r.q.Query(context.Background(), query, servicio)
	if err != nil {
		return nil, fmt.Errorf("listar despachos: %w", err)
	}
	defer rows.Close()

	var cabeceras []*entity.Despacho
	for rows.Next() {
		d, err := scanDespacho(rows)
		if err != nil {
			return nil, fmt.Errorf("scan despacho: %w", err)
		}
		cabeceras = append(cabeceras, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]entity.DespachoDetalle, 0, len(cabeceras))
	for _, c := range cabeceras {
		detalle, err := r.armarDetalle(c)
		if err != nil {
			return nil, err
		}
		out = append(out, *detalle)
	}
	return out, nil
}

func (r *DespachoRepo) armarDetalle(cabecera *entity.Despacho) (*entity.DespachoDetalle, error) {
	detalle := &entity.DespachoDetalle{Despacho: *cabecera}

	var err error
	if detalle.Destinatario, err = r.obtenerDestinatario(cabecera.CedulaDestinatario); err != nil {
		return nil, err
	}
	if detalle.Abastecedor, err = r.obtenerProfesional(cabecera.CedulaAbastecedor); err != nil {
		return nil, err
	}
	if cabecera.CedulaSupervisor != nil {
		if detalle.Supervisor, err = r.obtenerProfesional(*cabecera.CedulaSupervisor); err != nil {
			return nil, err
		}
	}
	if cabecera.CedulaAutorizador != nil {
		if detalle.Autorizador, err = r.obtenerProfesional(*cabecera.CedulaAutorizador); err != nil {
			return nil, err
		}
	}
	if detalle.Renglones, err = r.obtenerRenglones(cabecera.ID); err != nil {
		return nil, err
	}
	return detalle, nil
}

// obtenerDestinatario carga el destinatario con grado, categoría, componente y
// unidad resueltos por nombre desde los catálogos.
func (r *DespachoRepo) obtenerDestinatario(cedula string) (*entity.Destinatario, error) {
	query := `
		SELECT d.cedula, d.tipo_cedula, d.nombres, d.apellidos,
			d.cargo_profesional, d.telefono,
			g.nombre, c.nombre, co.nombre, u.nombre
		FROM destinatarios d
		LEFT JOIN grados g ON g.id = d.id_grado
		LEFT JOIN categorias c ON c.id = d.id_categoria
		LEFT JOIN componentes co ON co.id = d.id_componente
		LEFT JOIN unidades u ON u.id = d.id_unidad
		WHERE d.cedula = $1`
	var dest entity.Destinatario
	err := r.q.QueryRow(context.Background(), query, cedula).Scan(
		&dest.Cedula, &dest.TipoCedula, &dest.Nombres, &dest.Apellidos,
		&dest.CargoProfesional, &dest.Telefono,
		&dest.Grado, &dest.Categoria, &dest.Componente, &dest.Unidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get destinatario: %w", err)
	}
	return &dest, nil
}

func (r *DespachoRepo) obtenerProfesional(cedula string) (*entity.Profesional, error) {
	query := `
		SELECT p.cedula, p.tipo_cedula, p.nombres, p.apellidos,
			g.nombre, c.nombre, co.nombre, u.nombre
		FROM profesionales p
		LEFT JOIN grados g ON g.id = p.id_grado
		LEFT JOIN categorias c ON c.id = p.id_categoria
		LEFT JOIN componentes co ON co.id = p.id_componente
		LEFT JOIN unidades u ON u.id = p.id_unidad
		WHERE p.cedula = $1`
	var prof entity.Profesional
	err := r.q.QueryRow(context.Background(), query, cedula).Scan(
		&prof.Cedula, &prof.TipoCedula, &prof.Nombres, &prof.Apellidos,
		&prof.Grado, &prof.Categoria, &prof.Componente, &prof.Unidad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profesional: %w", err)
	}
	return &prof, nil
}

func (r *DespachoRepo) obtenerRenglones(idDespacho int) ([]entity.RenglonDespachado, error) {
	query := `
		SELECT dr.id, dr.id_despacho, dr.id_renglon, dr.cantidad,
			dr.manual_selection, dr.es_despacho_liquidos, dr.observacion,
			r.id, r.nombre, r.descripcion, r.stock_actual, r.stock_minimo,
			r.tipo_medida_unidad, r.id_unidad_empaque, r.id_clasificacion,
			r.id_subsistema, r.fecha_creacion, r.ultima_actualizacion,
			ue.id, ue.nombre, ue.abreviacion, ue.tipo_medida
		FROM despachos_renglones dr
		JOIN renglones r ON r.id = dr.id_renglon
		LEFT JOIN unidades_empaque ue ON ue.id = r.id_unidad_empaque
		WHERE dr.id_despacho = $1
		ORDER BY dr.id`
	rows, err := r.q.Query(context.Background(), query, idDespacho)
	if err != nil {
		return nil, fmt.Errorf("listar renglones del despacho: %w", err)
	}
	defer rows.Close()

	var renglones []entity.RenglonDespachado
	for rows.Next() {
		var rd entity.RenglonDespachado
		var ren entity.Renglon
		var ueID *int
		var ueNombre, ueAbrev, ueTipo *string
		if err := rows.Scan(
			&rd.ID, &rd.IDDespacho, &rd.IDRenglon, &rd.Cantidad,
			&rd.ManualSelection, &rd.EsDespachoLiquidos, &rd.Observacion,
			&ren.ID, &ren.Nombre, &ren.Descripcion, &ren.StockActual, &ren.StockMinimo,
			&ren.TipoMedidaUnidad, &ren.IDUnidadEmpaque, &ren.IDClasificacion,
			&ren.IDSubsistema, &ren.FechaCreacion, &ren.UltimaActualizacion,
			&ueID, &ueNombre, &ueAbrev, &ueTipo,
		); err != nil {
			return nil, fmt.Errorf("scan renglón del despacho: %w", err)
		}
		rd.Renglon = &ren
		if ueID != nil {
			rd.UnidadEmpaque = &entity.UnidadEmpaque{
				ID: *ueID, Nombre: *ueNombre, Abreviacion: *ueAbrev, TipoMedida: *ueTipo,
			}
		}
		renglones = append(renglones, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range renglones {
		if err := r.cargarSeriales(&renglones[i]); err != nil {
			return nil, err
		}
	}
	return renglones, nil
}

// cargarSeriales adjunta a la línea los seriales discretos retenidos y, para
// despachos líquidos, las filas de peso de la tabla intermedia.
func (r *DespachoRepo) cargarSeriales(rd *entity.RenglonDespachado) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, serial, id_renglon, estado, peso_actual, condicion, id_despacho_renglon
		FROM seriales WHERE id_despacho_renglon = $1 ORDER BY id`, rd.ID)
	if err != nil {
		return fmt.Errorf("listar seriales de la línea: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.Serial
		if err := rows.Scan(&s.ID, &s.Serial, &s.IDRenglon, &s.Estado,
			&s.PesoActual, &s.Condicion, &s.IDDespachoRenglon); err != nil {
			return fmt.Errorf("scan serial de la línea: %w", err)
		}
		rd.Seriales = append(rd.Seriales, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !rd.EsDespachoLiquidos {
		return nil
	}
	liq, err := r.q.Query(context.Background(), `
		SELECT ds.id_serial, s.serial, ds.peso_despachado, s.peso_actual
		FROM despachos_seriales ds
		JOIN seriales s ON s.id = ds.id_serial
		WHERE ds.id_despacho_renglon = $1
		ORDER BY ds.id_serial`, rd.ID)
	if err != nil {
		return fmt.Errorf("listar pesos de la línea: %w", err)
	}
	defer liq.Close()
	for liq.Next() {
		var d entity.DespachoSerialDetalle
		if err := liq.Scan(&d.IDSerial, &d.Serial, &d.PesoDespachado, &d.PesoActual); err != nil {
			return fmt.Errorf("scan peso de la línea: %w", err)
		}
		rd.SerialesLiquidos = append(rd.SerialesLiquidos, d)
	}
	return liq.Err()
}

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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const columnasUsuario = `u.cedula, u.tipo_cedula, u.nombre, u.email, u.contrasena,
	u.id_rol, r.rol, u.estado, u.fecha_creacion`

// Crear persiste un usuario nuevo. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (r *UsuarioRepo) Crear(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (cedula, tipo_cedula, nombre, email, contrasena, id_rol, estado, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		u.Cedula, u.TipoCedula, u.Nombre, u.Email, u.Contrasena,
		u.IDRol, u.Estado, u.FechaCreacion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) buscarUno(where string, arg any) (*entity.Usuario, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM usuarios u
		JOIN roles r ON r.id = u.id_rol
		WHERE %s`, columnasUsuario, where)
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.Cedula, &u.TipoCedula, &u.Nombre, &u.Email, &u.Contrasena,
		&u.IDRol, &u.Rol, &u.Estado, &u.FechaCreacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// BuscarPorEmail devuelve el usuario, o nil si no existe.
func (r *UsuarioRepo) BuscarPorEmail(email string) (*entity.Usuario, error) {
	return r.buscarUno("u.email = $1", email)
}

// ObtenerPorCedula devuelve el usuario, o nil si no existe.
func (r *UsuarioRepo) ObtenerPorCedula(cedula string) (*entity.Usuario, error) {
	return r.buscarUno("u.cedula = $1", cedula)
}

// ObtenerSesion resuelve usuario + rol + set de permisos en una sola vista.
// Devuelve nil si la cédula no corresponde a un usuario.
func (r *UsuarioRepo) ObtenerSesion(cedula string) (*entity.Sesion, error) {
	u, err := r.ObtenerPorCedula(cedula)
	if err != nil || u == nil {
		return nil, err
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT p.permiso_key
		FROM permisos p
		JOIN roles_permisos rp ON rp.id_permiso = p.id
		WHERE rp.id_rol = $1
		ORDER BY p.permiso_key`, u.IDRol)
	if err != nil {
		return nil, fmt.Errorf("listar permisos del rol: %w", err)
	}
	defer rows.Close()

	sesion := &entity.Sesion{Cedula: u.Cedula, Nombre: u.Nombre, Email: u.Email, Rol: u.Rol}
	for rows.Next() {
		var clave string
		if err := rows.Scan(&clave); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		sesion.Permisos = append(sesion.Permisos, clave)
	}
	return sesion, rows.Err()
}

// Listar devuelve todos los usuarios con su rol.
func (r *UsuarioRepo) Listar() ([]entity.Usuario, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM usuarios u
		JOIN roles r ON r.id = u.id_rol
		ORDER BY u.fecha_creacion DESC`, columnasUsuario)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	defer rows.Close()
	var out []entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.Cedula, &u.TipoCedula, &u.Nombre, &u.Email, &u.Contrasena,
			&u.IDRol, &u.Rol, &u.Estado, &u.FechaCreacion); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ObtenerRolPorNombre devuelve el rol, o nil si no existe.
func (r *UsuarioRepo) ObtenerRolPorNombre(rol string) (*entity.Rol, error) {
	var res entity.Rol
	err := r.q.QueryRow(context.Background(),
		`SELECT id, rol, descripcion FROM roles WHERE rol = $1`, rol).
		Scan(&res.ID, &res.Rol, &res.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &res, nil
}

// CrearRol persiste un rol y devuelve su id.
func (r *UsuarioRepo) CrearRol(rol *entity.Rol) (int, error) {
	var id int
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO roles (rol, descripcion) VALUES ($1, $2) RETURNING id`,
		rol.Rol, rol.Descripcion).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert rol: %w", err)
	}
	return id, nil
}

// PasswordAdminActiva devuelve la contraseña de administrador vigente, o cadena
// vacía si no hay ninguna activa.
func (r *UsuarioRepo) PasswordAdminActiva() (string, error) {
	var password string
	err := r.q.QueryRow(context.Background(),
		`SELECT password FROM admins WHERE state = 'Activa' LIMIT 1`).Scan(&password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get password de administrador: %w", err)
	}
	return password, nil
}

package auth

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dparedes/sial-api/internal/application/dto"
	"github.com/dparedes/sial-api/internal/domain"
	"github.com/dparedes/sial-api/internal/domain/entity"
	"github.com/dparedes/sial-api/internal/domain/repository"
	"github.com/dparedes/sial-api/pkg/jwt"
)

// RolPorDefecto se asigna a todo usuario registrado; se crea si no existe.
const RolPorDefecto = "Administrador"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Registro crea un usuario. El registro está protegido por la contraseña de
// administrador vigente; se compara antes de revisar si el email ya existe.
func (uc *UseCase) Registro(in *dto.RegistroRequest) (*dto.UsuarioResponse, error) {
	if in.Cedula == "" || in.Nombre == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	adminPass, err := uc.usuarioRepo.PasswordAdminActiva()
	if err != nil {
		return nil, err
	}
	if adminPass == "" || in.AdminPassword != adminPass {
		return nil, domain.ErrAdminPasswordIncorrect
	}

	existente, err := uc.usuarioRepo.BuscarPorEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rol, err := uc.usuarioRepo.ObtenerRolPorNombre(RolPorDefecto)
	if err != nil {
		return nil, err
	}
	idRol := 0
	if rol != nil {
		idRol = rol.ID
	} else {
		idRol, err = uc.usuarioRepo.CrearRol(&entity.Rol{
			Rol:         RolPorDefecto,
			Descripcion: "Allows access to all features",
		})
		if err != nil {
			return nil, err
		}
	}

	tipoCedula := in.TipoCedula
	if tipoCedula == "" {
		tipoCedula = "V"
	}
	usuario := &entity.Usuario{
		Cedula:        in.Cedula,
		TipoCedula:    tipoCedula,
		Nombre:        in.Nombre,
		Email:         in.Email,
		Contrasena:    string(hash),
		IDRol:         idRol,
		Rol:           RolPorDefecto,
		Estado:        "Activo",
		FechaCreacion: time.Now(),
	}
	if err := uc.usuarioRepo.Crear(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login verifica email/contraseña, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(in *dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.BuscarPorEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Contrasena), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "Activo" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.Cedula, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(usuario),
	}, nil
}

// Sesion resuelve la sesión (usuario + permisos) de una cédula autenticada.
func (uc *UseCase) Sesion(cedula string) (*entity.Sesion, error) {
	return uc.usuarioRepo.ObtenerSesion(cedula)
}

// ListarUsuarios devuelve todos los usuarios registrados. Solo exige sesión.
func (uc *UseCase) ListarUsuarios(sesion *entity.Sesion) ([]dto.UsuarioResponse, error) {
	if sesion == nil {
		return nil, domain.ErrUnauthorized
	}
	usuarios, err := uc.usuarioRepo.Listar()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, *toUsuarioResponse(&usuarios[i]))
	}
	return out, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		Cedula:        u.Cedula,
		TipoCedula:    u.TipoCedula,
		Nombre:        u.Nombre,
		Email:         u.Email,
		Rol:           u.Rol,
		Estado:        u.Estado,
		FechaCreacion: u.FechaCreacion,
	}
}

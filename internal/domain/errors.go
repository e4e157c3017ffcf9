package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Taxonomía del flujo de alta/baja de usuarios.
var (
	// ErrValidation entrada ausente o mal formada; no se hizo ninguna llamada remota.
	ErrValidation = ErrInvalidInput
	// ErrDuplicateEmail la identidad ya existe (solo en el registro público).
	ErrDuplicateEmail = ErrEmailAlreadyExists
	// ErrWeakCredential la contraseña no cumple la política mínima.
	ErrWeakCredential = errors.New("la contraseña no cumple la política mínima")
	// ErrUnknownRole id_rol sin fila en roles (FK de profiles/user_roles).
	ErrUnknownRole = errors.New("el rol no existe")
	// ErrProvisioning fallo de una llamada remota no clasificado de otra forma.
	ErrProvisioning = errors.New("error aprovisionando el usuario")
)

// Errores que devuelven los adaptadores del proveedor de identidad.
var (
	ErrIdentityExists   = errors.New("identidad ya registrada")
	ErrIdentityNotFound = errors.New("identidad no encontrada")
)

// StepError envuelve el fallo de un paso remoto. errors.Is lo reconoce como
// ErrProvisioning y también como la causa original.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return "paso " + e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() []error {
	return []error{ErrProvisioning, e.Err}
}

// FailedStep devuelve el nombre del paso fallido si err contiene un StepError.
func FailedStep(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrSchema          = errors.New("esquema de datos inválido")
	ErrDeserialization = errors.New("registro de decisiones ilegible")
	ErrPersistence     = errors.New("no se pudo persistir la decisión")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
)

package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers los traducen a códigos HTTP.
var (
	ErrValidation = errors.New("faltan campos requeridos")
	ErrConflict   = errors.New("ya existe un producto con ese nombre")
	ErrInternal   = errors.New("error interno")
)

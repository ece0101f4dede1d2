package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrQuoteConflict: el número de cotización chocó incluso después del
	// sufijo de desambiguación. Reintentable a nivel de corrida, nunca
	// debe descartar la fila en silencio.
	ErrQuoteConflict = errors.New("conflicto de número de cotización")

	// ErrStoreNotEmpty: full_reload exige una base recién inicializada.
	ErrStoreNotEmpty = errors.New("la base de datos ya contiene trabajos")
)

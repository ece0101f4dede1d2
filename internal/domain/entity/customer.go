package entity

import "time"

// Customer representa un cliente del negocio.
//
// Identidad dentro del libro: el teléfono (cuando existe y no es el
// placeholder "0") es la clave fuerte; si no hay teléfono, el nombre con
// comparación exacta sin distinguir mayúsculas.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
}

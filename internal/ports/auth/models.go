package auth

import "time"

// Claims es lo que la API necesita saber del usuario autenticado.
// El token lo emite el servicio de login; acá solo se lee.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

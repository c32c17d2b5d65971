package auth

// Claims representa la información extraída del token.
type Claims struct {
	Subject string
	Method  string // "bearer" o "debug"
}

package auth

// Claims representa la información extraída del token.
// Username es el código de la etiqueta; DeviceID ata el token al
// dispositivo que inició la sesión.
type Claims struct {
	Username string
	DeviceID string
}

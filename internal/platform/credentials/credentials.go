package credentials

import (
	"strings"

	"github.com/alexedwards/argon2id"
)

// Hasher guarda y compara el PIN de la etiqueta, que también es la
// contraseña de la cuenta: una sola credencial, un solo hash.
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(secret, hash string) bool
}

type Argon2 struct {
	params *argon2id.Params
}

func NewArgon2(params *argon2id.Params) *Argon2 {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Argon2{params: params}
}

// LightParams para tests y desarrollo local.
var LightParams = &argon2id.Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash recorta espacios antes de hashear: el PIN impreso y el escrito a
// mano deben coincidir aunque el usuario agregue un espacio.
func (a *Argon2) Hash(secret string) (string, error) {
	return argon2id.CreateHash(strings.TrimSpace(secret), a.params)
}

// Compare es igualdad exacta (sensible a mayúsculas) tras recortar.
func (a *Argon2) Compare(secret, hash string) bool {
	if strings.TrimSpace(hash) == "" {
		return false
	}
	ok, err := argon2id.ComparePasswordAndHash(strings.TrimSpace(secret), hash)
	if err != nil {
		return false
	}
	return ok
}

package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const codePrefix = "email_code:"

// consumeScript borra la clave solo si el valor coincide: un código se usa
// una vez aunque lleguen dos intentos a la par.
var consumeScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type CodeStore struct {
	client *goredis.Client
}

func NewCodeStore(client *goredis.Client) *CodeStore {
	return &CodeStore{client: client}
}

func (s *CodeStore) SaveCode(ctx context.Context, username, code string, ttl time.Duration) error {
	return s.client.Set(ctx, codePrefix+username, code, ttl).Err()
}

func (s *CodeStore) ConsumeCode(ctx context.Context, username, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{codePrefix + username}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

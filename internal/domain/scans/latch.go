package scans

import "sync"

// Latch evita trabajo duplicado por toques repetidos: mientras una clave
// está tomada, los demás intentos fallan sin esperar.
type Latch struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLatch() *Latch {
	return &Latch{held: map[string]struct{}{}}
}

// TryAcquire devuelve release y true si la clave estaba libre.
func (l *Latch) TryAcquire(key string) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, false
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true
}

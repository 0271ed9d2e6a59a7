// Package ratelimit implementa un limitador de ventana deslizante en memoria
// con barrido periódico de entradas vencidas, para inyectarse como capacidad
// (Allow(key) bool) en los casos de uso que lo necesiten.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter es la capacidad que consumen los casos de uso.
type Limiter interface {
	Allow(key string) bool
}

// SlidingWindow cuenta eventos por clave dentro de una ventana de tiempo.
// El mapa no crece sin límite: un sweeper elimina claves sin eventos vigentes.
type SlidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	stop   chan struct{}
	now    func() time.Time // inyectable en tests
}

var _ Limiter = (*SlidingWindow)(nil)

// NewSlidingWindow construye el limitador: max eventos por ventana window.
func NewSlidingWindow(max int, window time.Duration) *SlidingWindow {
	l := &SlidingWindow{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		stop:   make(chan struct{}),
		now:    time.Now,
	}
	go l.sweep()
	return l
}

// Allow registra un evento para key y devuelve false si la clave ya agotó
// su cupo dentro de la ventana.
func (l *SlidingWindow) Allow(key string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	valid := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) >= l.max {
		l.hits[key] = valid
		return false
	}
	l.hits[key] = append(valid, now)
	return true
}

// Close detiene el sweeper.
func (l *SlidingWindow) Close() {
	close(l.stop)
}

// sweep elimina periódicamente las claves cuyos eventos ya salieron de la ventana.
func (l *SlidingWindow) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := l.now().Add(-l.window)
			l.mu.Lock()
			for key, times := range l.hits {
				alive := false
				for _, t := range times {
					if t.After(cutoff) {
						alive = true
						break
					}
				}
				if !alive {
					delete(l.hits, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

package lock

import (
	"fmt"
	"sync"
)

// RoundKey monta a chave lógica de uma rodada
func RoundKey(gameID string, roundNumber int) string {
	return fmt.Sprintf("%s:%d", gameID, roundNumber)
}

// Keyed serializa operações por chave lógica (ex.: "gameId:roundNumber").
// Liquidação e restore da mesma rodada nunca rodam em paralelo no processo.
type Keyed struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{m: make(map[string]*sync.Mutex)}
}

// Get retorna o mutex da chave, criando se não existir
func (k *Keyed) Get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if l, ok := k.m[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	k.m[key] = l
	return l
}

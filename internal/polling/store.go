package polling

import (
	"sync"

	"controle_frete/internal/models"
)

// Store is the client-side in-memory collection. Mutations are applied
// optimistically and rolled back when the server rejects them.
type Store struct {
	mu     sync.Mutex
	fretes []models.Frete
}

func NewStore() *Store {
	return &Store{}
}

// Substituir swaps in a freshly fetched collection.
func (s *Store) Substituir(fretes []models.Frete) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fretes = append([]models.Frete(nil), fretes...)
}

// Todos returns a copy of the collection.
func (s *Store) Todos() []models.Frete {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Frete(nil), s.fretes...)
}

func (s *Store) Buscar(id string) (models.Frete, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fretes {
		if s.fretes[i].ID == id {
			return s.fretes[i], true
		}
	}
	return models.Frete{}, false
}

// Remover takes a record out and returns it so a failed delete can restore it.
func (s *Store) Remover(id string) (models.Frete, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fretes {
		if s.fretes[i].ID == id {
			removido := s.fretes[i]
			s.fretes = append(s.fretes[:i], s.fretes[i+1:]...)
			return removido, true
		}
	}
	return models.Frete{}, false
}

// Restaurar puts a removed record back.
func (s *Store) Restaurar(frete models.Frete) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fretes = append(s.fretes, frete)
}

// Atualizar replaces the record with the same id; inserts when absent.
func (s *Store) Atualizar(frete models.Frete) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fretes {
		if s.fretes[i].ID == frete.ID {
			s.fretes[i] = frete
			return
		}
	}
	s.fretes = append(s.fretes, frete)
}

func (s *Store) Tamanho() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fretes)
}

// Mutacao is an optimistic mutation: Apply updates the local collection
// immediately, Confirm runs the network call, Rollback undoes Apply when
// Confirm fails.
type Mutacao struct {
	Apply    func()
	Confirm  func() error
	Rollback func()
}

func (m Mutacao) Run() error {
	if m.Apply != nil {
		m.Apply()
	}
	if m.Confirm != nil {
		if err := m.Confirm(); err != nil {
			if m.Rollback != nil {
				m.Rollback()
			}
			return err
		}
	}
	return nil
}

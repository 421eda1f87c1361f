package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"controle_frete/internal/models"

	"gorm.io/gorm"
)

func strPtr(s string) *string {
	return &s
}

// fakeFreteRepo is an in-memory FreteRepository.
type fakeFreteRepo struct {
	fretes map[string]*models.Frete
	ordem  []string
	err    error
}

func newFakeFreteRepo() *fakeFreteRepo {
	return &fakeFreteRepo{fretes: make(map[string]*models.Frete)}
}

func (r *fakeFreteRepo) Create(frete *models.Frete) error {
	if r.err != nil {
		return r.err
	}
	copia := *frete
	r.fretes[frete.ID] = &copia
	r.ordem = append(r.ordem, frete.ID)
	return nil
}

func (r *fakeFreteRepo) GetByID(id string) (*models.Frete, error) {
	if r.err != nil {
		return nil, r.err
	}
	frete, ok := r.fretes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *frete
	return &copia, nil
}

func (r *fakeFreteRepo) GetAll() ([]models.Frete, error) {
	if r.err != nil {
		return nil, r.err
	}
	var fretes []models.Frete
	for _, id := range r.ordem {
		fretes = append(fretes, *r.fretes[id])
	}
	return fretes, nil
}

func (r *fakeFreteRepo) Update(frete *models.Frete) error {
	if r.err != nil {
		return r.err
	}
	copia := *frete
	r.fretes[frete.ID] = &copia
	return nil
}

func (r *fakeFreteRepo) UpdateStatus(id string, status *string, dataEntrega *string) error {
	if r.err != nil {
		return r.err
	}
	frete, ok := r.fretes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	frete.Status = status
	frete.DataEntrega = dataEntrega
	return nil
}

func (r *fakeFreteRepo) Delete(id string) error {
	if r.err != nil {
		return r.err
	}
	delete(r.fretes, id)
	for i, v := range r.ordem {
		if v == id {
			r.ordem = append(r.ordem[:i], r.ordem[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeFreteRepo) Count() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.fretes)), nil
}

var hojeFixo = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func relogioFixo() time.Time {
	return hojeFixo
}

func TestDeriveStatusOnCreate(t *testing.T) {
	casos := []struct {
		tipo   string
		status *string
	}{
		{"ENVIO", strPtr("EM_TRANSITO")},
		{"", strPtr("EM_TRANSITO")},
		{"SIMPLES_REMESSA", strPtr("EM_TRANSITO")},
		{"REMESSA_AMOSTRA", strPtr("EM_TRANSITO")},
		{"CANCELADA", nil},
		{"DEVOLUCAO", nil},
		{"TIPO_DESCONHECIDO", nil},
	}

	for _, caso := range casos {
		got := DeriveStatusOnCreate(caso.tipo)
		if caso.status == nil {
			if got != nil {
				t.Fatalf("tipo %q: expected nil status, got %q", caso.tipo, *got)
			}
			continue
		}
		if got == nil || *got != *caso.status {
			t.Fatalf("tipo %q: expected %q, got %v", caso.tipo, *caso.status, got)
		}
	}
}

func TestDeriveStatusOnUpdate(t *testing.T) {
	t.Run("non status-bearing ignores data_entrega", func(t *testing.T) {
		if got := DeriveStatusOnUpdate("CANCELADA", strPtr("2025-01-10")); got != nil {
			t.Fatalf("expected nil, got %q", *got)
		}
		if got := DeriveStatusOnUpdate("QUALQUER_COISA", strPtr("2025-01-10")); got != nil {
			t.Fatalf("expected nil, got %q", *got)
		}
	})

	t.Run("data_entrega present means ENTREGUE", func(t *testing.T) {
		got := DeriveStatusOnUpdate("ENVIO", strPtr("2025-01-10"))
		if got == nil || *got != "ENTREGUE" {
			t.Fatalf("expected ENTREGUE, got %v", got)
		}
	})

	t.Run("absent or empty data_entrega means EM_TRANSITO", func(t *testing.T) {
		if got := DeriveStatusOnUpdate("ENVIO", nil); got == nil || *got != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO, got %v", got)
		}
		if got := DeriveStatusOnUpdate("SIMPLES_REMESSA", strPtr("")); got == nil || *got != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO, got %v", got)
		}
	})
}

func TestToggleStatus(t *testing.T) {
	t.Run("delivered reverts and clears data_entrega", func(t *testing.T) {
		status, data := ToggleStatus(strPtr("ENTREGUE"), strPtr("2025-01-10"), hojeFixo)
		if status == nil || *status != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO, got %v", status)
		}
		if data != nil {
			t.Fatalf("expected cleared data_entrega, got %q", *data)
		}
	})

	t.Run("in transit without data_entrega gets today", func(t *testing.T) {
		status, data := ToggleStatus(strPtr("EM_TRANSITO"), nil, hojeFixo)
		if status == nil || *status != "ENTREGUE" {
			t.Fatalf("expected ENTREGUE, got %v", status)
		}
		if data == nil || *data != "2025-01-15" {
			t.Fatalf("expected 2025-01-15, got %v", data)
		}
	})

	t.Run("in transit keeps an existing data_entrega", func(t *testing.T) {
		_, data := ToggleStatus(strPtr("EM_TRANSITO"), strPtr("2025-01-02"), hojeFixo)
		if data == nil || *data != "2025-01-02" {
			t.Fatalf("expected 2025-01-02, got %v", data)
		}
	})
}

func novoFreteValido() *models.Frete {
	return &models.Frete{
		NumeroNF:   "1234",
		NomeOrgao:  "PREFEITURA DE TESTE",
		DataColeta: "2025-01-10",
	}
}

func TestCreateFrete(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		svc := NewFreteService(newFakeFreteRepo(), relogioFixo)
		_, err := svc.CreateFrete(&models.Frete{NumeroNF: "1"})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if !strings.Contains(err.Error(), "nome_orgao") || !strings.Contains(err.Error(), "data_coleta") {
			t.Fatalf("expected missing fields in message, got %q", err.Error())
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		svc := NewFreteService(newFakeFreteRepo(), relogioFixo)
		criado, err := svc.CreateFrete(novoFreteValido())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if criado.ID == "" {
			t.Fatal("expected server-assigned id")
		}
		if criado.TipoNF != "ENVIO" {
			t.Fatalf("expected tipo ENVIO, got %q", criado.TipoNF)
		}
		if criado.DataEmissao != "2025-01-15" {
			t.Fatalf("expected data_emissao defaulted to today, got %q", criado.DataEmissao)
		}
		if criado.Documento != models.NaoInformado || criado.Vendedor != models.NaoInformado {
			t.Fatalf("expected sentinel defaults, got %q / %q", criado.Documento, criado.Vendedor)
		}
		if criado.Observacoes == nil || len(criado.Observacoes) != 0 {
			t.Fatalf("expected empty observacoes, got %v", criado.Observacoes)
		}
		if criado.Status == nil || *criado.Status != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO, got %v", criado.Status)
		}
	})

	t.Run("creation never starts as delivered", func(t *testing.T) {
		svc := NewFreteService(newFakeFreteRepo(), relogioFixo)
		frete := novoFreteValido()
		frete.DataEntrega = strPtr("2025-01-12")
		criado, err := svc.CreateFrete(frete)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if criado.Status == nil || *criado.Status != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO on create, got %v", criado.Status)
		}
	})

	t.Run("special tipo has no status", func(t *testing.T) {
		svc := NewFreteService(newFakeFreteRepo(), relogioFixo)
		frete := novoFreteValido()
		frete.TipoNF = "CANCELADA"
		criado, err := svc.CreateFrete(frete)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if criado.Status != nil {
			t.Fatalf("expected nil status, got %q", *criado.Status)
		}
	})
}

func TestUpdateFrete(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		svc := NewFreteService(newFakeFreteRepo(), relogioFixo)
		_, err := svc.UpdateFrete("nao-existe", novoFreteValido())
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("setting data_entrega delivers", func(t *testing.T) {
		repo := newFakeFreteRepo()
		svc := NewFreteService(repo, relogioFixo)
		criado, err := svc.CreateFrete(novoFreteValido())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		alterado := novoFreteValido()
		alterado.DataEntrega = strPtr("2025-01-10")
		atualizado, err := svc.UpdateFrete(criado.ID, alterado)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if atualizado.Status == nil || *atualizado.Status != "ENTREGUE" {
			t.Fatalf("expected ENTREGUE, got %v", atualizado.Status)
		}

		// Clearing reverts to EM_TRANSITO.
		alterado = novoFreteValido()
		atualizado, err = svc.UpdateFrete(criado.ID, alterado)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if atualizado.Status == nil || *atualizado.Status != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO, got %v", atualizado.Status)
		}
	})

	t.Run("special tipo stays without status through updates", func(t *testing.T) {
		repo := newFakeFreteRepo()
		svc := NewFreteService(repo, relogioFixo)
		frete := novoFreteValido()
		frete.TipoNF = "CANCELADA"
		criado, err := svc.CreateFrete(frete)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		alterado := novoFreteValido()
		alterado.TipoNF = "CANCELADA"
		alterado.DataEntrega = strPtr("2025-01-10")
		atualizado, err := svc.UpdateFrete(criado.ID, alterado)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if atualizado.Status != nil {
			t.Fatalf("expected nil status, got %q", *atualizado.Status)
		}
	})
}

func TestToggleFreteStatus(t *testing.T) {
	t.Run("full cycle", func(t *testing.T) {
		repo := newFakeFreteRepo()
		svc := NewFreteService(repo, relogioFixo)
		criado, err := svc.CreateFrete(novoFreteValido())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entregue, err := svc.ToggleFreteStatus(criado.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entregue.Status == nil || *entregue.Status != "ENTREGUE" {
			t.Fatalf("expected ENTREGUE, got %v", entregue.Status)
		}
		if entregue.DataEntrega == nil || *entregue.DataEntrega != "2025-01-15" {
			t.Fatalf("expected data_entrega today, got %v", entregue.DataEntrega)
		}

		revertido, err := svc.ToggleFreteStatus(criado.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revertido.Status == nil || *revertido.Status != "EM_TRANSITO" {
			t.Fatalf("expected EM_TRANSITO, got %v", revertido.Status)
		}
		if revertido.DataEntrega != nil {
			t.Fatalf("expected cleared data_entrega, got %q", *revertido.DataEntrega)
		}
	})

	t.Run("rejected for special tipo", func(t *testing.T) {
		repo := newFakeFreteRepo()
		svc := NewFreteService(repo, relogioFixo)
		frete := novoFreteValido()
		frete.TipoNF = "DEVOLUCAO"
		criado, err := svc.CreateFrete(frete)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = svc.ToggleFreteStatus(criado.ID)
		if !errors.Is(err, ErrTipoSemStatus) {
			t.Fatalf("expected ErrTipoSemStatus, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewFreteService(newFakeFreteRepo(), relogioFixo)
		_, err := svc.ToggleFreteStatus("nao-existe")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

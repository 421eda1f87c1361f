package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"controle_frete/internal/models"
	"controle_frete/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation    = errors.New("campos obrigatórios faltando")
	ErrNotFound      = errors.New("registro não encontrado")
	ErrTipoSemStatus = errors.New("tipo de NF não possui status")
)

// DeriveStatusOnCreate computes the initial delivery status from tipo_nf
// alone. A record is never created as already-delivered; data_entrega only
// influences the status on update.
func DeriveStatusOnCreate(tipoNF string) *string {
	if !models.TipoComStatus(tipoNF) {
		return nil
	}
	status := string(models.StatusEmTransito)
	return &status
}

// DeriveStatusOnUpdate recomputes the delivery status from tipo_nf and the
// presence of data_entrega. Unrecognized tipo_nf values carry no status.
func DeriveStatusOnUpdate(tipoNF string, dataEntrega *string) *string {
	if !models.TipoComStatus(tipoNF) {
		return nil
	}
	status := string(models.StatusEmTransito)
	if dataEntrega != nil && *dataEntrega != "" {
		status = string(models.StatusEntregue)
	}
	return &status
}

// ToggleStatus flips the delivery status. Reverting to EM_TRANSITO clears
// data_entrega; marking ENTREGUE keeps an existing data_entrega or fills in
// today's calendar date.
func ToggleStatus(atual *string, dataEntrega *string, hoje time.Time) (*string, *string) {
	if atual != nil && *atual == string(models.StatusEntregue) {
		status := string(models.StatusEmTransito)
		return &status, nil
	}
	status := string(models.StatusEntregue)
	if dataEntrega == nil || *dataEntrega == "" {
		data := models.FormatData(hoje)
		return &status, &data
	}
	return &status, dataEntrega
}

type FreteService interface {
	ListFretes() ([]models.Frete, error)
	GetFrete(id string) (*models.Frete, error)
	CreateFrete(frete *models.Frete) (*models.Frete, error)
	UpdateFrete(id string, frete *models.Frete) (*models.Frete, error)
	ToggleFreteStatus(id string) (*models.Frete, error)
	DeleteFrete(id string) error
	CountFretes() (int64, error)
}

type freteService struct {
	repo  repository.FreteRepository
	agora func() time.Time
}

func NewFreteService(repo repository.FreteRepository, agora func() time.Time) FreteService {
	if agora == nil {
		agora = time.Now
	}
	return &freteService{repo: repo, agora: agora}
}

func (s *freteService) ListFretes() ([]models.Frete, error) {
	return s.repo.GetAll()
}

func (s *freteService) GetFrete(id string) (*models.Frete, error) {
	frete, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return frete, nil
}

func (s *freteService) CreateFrete(frete *models.Frete) (*models.Frete, error) {
	var faltando []string
	if strings.TrimSpace(frete.NumeroNF) == "" {
		faltando = append(faltando, "numero_nf")
	}
	if strings.TrimSpace(frete.NomeOrgao) == "" {
		faltando = append(faltando, "nome_orgao")
	}
	if strings.TrimSpace(frete.DataColeta) == "" {
		faltando = append(faltando, "data_coleta")
	}
	if len(faltando) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(faltando, ", "))
	}

	frete.ID = uuid.NewString()
	frete.TipoNF = models.TipoNFOuPadrao(frete.TipoNF)
	if frete.DataEmissao == "" {
		frete.DataEmissao = models.FormatData(s.agora())
	}
	aplicarPadroes(frete)
	frete.Status = DeriveStatusOnCreate(frete.TipoNF)

	if err := s.repo.Create(frete); err != nil {
		return nil, err
	}
	return frete, nil
}

func (s *freteService) UpdateFrete(id string, frete *models.Frete) (*models.Frete, error) {
	existente, err := s.GetFrete(id)
	if err != nil {
		return nil, err
	}

	frete.ID = existente.ID
	frete.CreatedAt = existente.CreatedAt
	frete.TipoNF = models.TipoNFOuPadrao(frete.TipoNF)
	aplicarPadroes(frete)
	frete.Status = DeriveStatusOnUpdate(frete.TipoNF, frete.DataEntrega)

	if err := s.repo.Update(frete); err != nil {
		return nil, err
	}
	return frete, nil
}

// ToggleFreteStatus flips the record between ENTREGUE and EM_TRANSITO. Only
// valid for status-bearing tipos; the UI hides the control for the rest.
func (s *freteService) ToggleFreteStatus(id string) (*models.Frete, error) {
	frete, err := s.GetFrete(id)
	if err != nil {
		return nil, err
	}
	if !models.TipoComStatus(frete.TipoNF) {
		return nil, ErrTipoSemStatus
	}

	status, dataEntrega := ToggleStatus(frete.Status, frete.DataEntrega, s.agora())
	if err := s.repo.UpdateStatus(id, status, dataEntrega); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	frete.Status = status
	frete.DataEntrega = dataEntrega
	return frete, nil
}

func (s *freteService) DeleteFrete(id string) error {
	return s.repo.Delete(id)
}

func (s *freteService) CountFretes() (int64, error) {
	return s.repo.Count()
}

// aplicarPadroes fills the form defaults: sentinel text, empty note list and
// nil instead of empty date strings.
func aplicarPadroes(frete *models.Frete) {
	if strings.TrimSpace(frete.Documento) == "" {
		frete.Documento = models.NaoInformado
	}
	if strings.TrimSpace(frete.ContatoOrgao) == "" {
		frete.ContatoOrgao = models.NaoInformado
	}
	if strings.TrimSpace(frete.Vendedor) == "" {
		frete.Vendedor = models.NaoInformado
	}
	if strings.TrimSpace(frete.Transportadora) == "" {
		frete.Transportadora = models.NaoInformado
	}
	if strings.TrimSpace(frete.CidadeDestino) == "" {
		frete.CidadeDestino = models.NaoInformado
	}
	if frete.PrevisaoEntrega != nil && *frete.PrevisaoEntrega == "" {
		frete.PrevisaoEntrega = nil
	}
	if frete.DataEntrega != nil && *frete.DataEntrega == "" {
		frete.DataEntrega = nil
	}
	if frete.Observacoes == nil {
		frete.Observacoes = models.Observacoes{}
	}
}

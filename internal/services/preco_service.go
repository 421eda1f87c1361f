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

const (
	precoLimitePadrao = 50
	precoLimiteMaximo = 200
)

// PrecoPage is one page of the price listing.
type PrecoPage struct {
	Data       []models.Preco `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
}

type PrecoService interface {
	ListPrecos(filter repository.PrecoFilter) (*PrecoPage, error)
	GetPreco(id string) (*models.Preco, error)
	CreatePreco(preco *models.Preco) (*models.Preco, error)
	UpdatePreco(id string, preco *models.Preco) (*models.Preco, error)
	DeletePreco(id string) error
	Marcas() ([]string, error)
}

type precoService struct {
	repo  repository.PrecoRepository
	agora func() time.Time
}

func NewPrecoService(repo repository.PrecoRepository, agora func() time.Time) PrecoService {
	if agora == nil {
		agora = time.Now
	}
	return &precoService{repo: repo, agora: agora}
}

func (s *precoService) ListPrecos(filter repository.PrecoFilter) (*PrecoPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = precoLimitePadrao
	}
	if filter.Limit > precoLimiteMaximo {
		filter.Limit = precoLimiteMaximo
	}

	precos, total, err := s.repo.List(filter)
	if err != nil {
		return nil, err
	}
	if precos == nil {
		precos = []models.Preco{}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &PrecoPage{
		Data:       precos,
		Total:      total,
		Page:       filter.Page,
		TotalPages: totalPages,
	}, nil
}

func (s *precoService) GetPreco(id string) (*models.Preco, error) {
	preco, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return preco, nil
}

func (s *precoService) CreatePreco(preco *models.Preco) (*models.Preco, error) {
	if err := validarPreco(preco); err != nil {
		return nil, err
	}

	preco.ID = uuid.NewString()
	preco.Descricao = strings.ToUpper(strings.TrimSpace(preco.Descricao))
	preco.Timestamp = s.agora()

	if err := s.repo.Create(preco); err != nil {
		return nil, err
	}
	return preco, nil
}

func (s *precoService) UpdatePreco(id string, preco *models.Preco) (*models.Preco, error) {
	existente, err := s.GetPreco(id)
	if err != nil {
		return nil, err
	}
	if err := validarPreco(preco); err != nil {
		return nil, err
	}

	preco.ID = existente.ID
	preco.Descricao = strings.ToUpper(strings.TrimSpace(preco.Descricao))
	preco.Timestamp = s.agora()

	if err := s.repo.Update(preco); err != nil {
		return nil, err
	}
	return preco, nil
}

func (s *precoService) DeletePreco(id string) error {
	return s.repo.Delete(id)
}

func (s *precoService) Marcas() ([]string, error) {
	marcas, err := s.repo.Marcas()
	if err != nil {
		return nil, err
	}
	if marcas == nil {
		marcas = []string{}
	}
	return marcas, nil
}

func validarPreco(preco *models.Preco) error {
	var faltando []string
	if strings.TrimSpace(preco.Marca) == "" {
		faltando = append(faltando, "marca")
	}
	if strings.TrimSpace(preco.Codigo) == "" {
		faltando = append(faltando, "codigo")
	}
	if strings.TrimSpace(preco.Descricao) == "" {
		faltando = append(faltando, "descricao")
	}
	if len(faltando) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(faltando, ", "))
	}
	if preco.Preco < 0 {
		return fmt.Errorf("%w: preco deve ser não-negativo", ErrValidation)
	}
	return nil
}

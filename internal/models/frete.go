package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Frete struct {
	ID              string      `json:"id" gorm:"type:uuid;primaryKey"`
	NumeroNF        string      `json:"numero_nf" gorm:"column:numero_nf;not null"`
	DataEmissao     string      `json:"data_emissao" gorm:"column:data_emissao;type:date;not null"`
	Documento       string      `json:"documento" gorm:"column:documento"`
	ValorNF         float64     `json:"valor_nf" gorm:"column:valor_nf;default:0"`
	TipoNF          string      `json:"tipo_nf" gorm:"column:tipo_nf;default:'ENVIO'"`
	NomeOrgao       string      `json:"nome_orgao" gorm:"column:nome_orgao;not null"`
	ContatoOrgao    string      `json:"contato_orgao" gorm:"column:contato_orgao"`
	Vendedor        string      `json:"vendedor" gorm:"column:vendedor"`
	Transportadora  string      `json:"transportadora" gorm:"column:transportadora"`
	ValorFrete      float64     `json:"valor_frete" gorm:"column:valor_frete;default:0"`
	DataColeta      string      `json:"data_coleta" gorm:"column:data_coleta;type:date;not null"`
	CidadeDestino   string      `json:"cidade_destino" gorm:"column:cidade_destino"`
	PrevisaoEntrega *string     `json:"previsao_entrega" gorm:"column:previsao_entrega;type:date"`
	DataEntrega     *string     `json:"data_entrega" gorm:"column:data_entrega;type:date"`
	Status          *string     `json:"status" gorm:"column:status"`
	Observacoes     Observacoes `json:"observacoes" gorm:"column:observacoes;type:text"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func (Frete) TableName() string {
	return "controle_frete"
}

type TipoNF string

const (
	TipoEnvio          TipoNF = "ENVIO"
	TipoCancelada      TipoNF = "CANCELADA"
	TipoRemessaAmostra TipoNF = "REMESSA_AMOSTRA"
	TipoSimplesRemessa TipoNF = "SIMPLES_REMESSA"
	TipoDevolucao      TipoNF = "DEVOLUCAO"
)

type FreteStatus string

const (
	StatusEmTransito FreteStatus = "EM_TRANSITO"
	StatusEntregue   FreteStatus = "ENTREGUE"
)

// NaoInformado is the sentinel stored in free-text fields left blank on the form.
const NaoInformado = "NÃO INFORMADO"

// TipoComStatus reports whether a tipo_nf tracks a delivery status. An empty
// value counts as ENVIO; values outside the known set do not track status.
func TipoComStatus(tipo string) bool {
	if tipo == "" {
		tipo = string(TipoEnvio)
	}
	switch TipoNF(tipo) {
	case TipoEnvio, TipoSimplesRemessa, TipoRemessaAmostra:
		return true
	}
	return false
}

// TipoNFOuPadrao normalizes an absent tipo_nf to ENVIO.
func TipoNFOuPadrao(tipo string) string {
	if tipo == "" {
		return string(TipoEnvio)
	}
	return tipo
}

// ParseData parses a calendar date in the YYYY-MM-DD wire format.
func ParseData(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatData renders a calendar date in the YYYY-MM-DD wire format.
func FormatData(t time.Time) string {
	return t.Format("2006-01-02")
}

// Observacao is a single note on a freight record.
type Observacao struct {
	Texto     string    `json:"texto"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username,omitempty"`
}

// Observacoes is the chronological note list, stored in a single text column.
type Observacoes []Observacao

func (o Observacoes) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]Observacao(o))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal observacoes: %w", err)
	}
	return string(data), nil
}

func (o *Observacoes) Scan(value interface{}) error {
	if value == nil {
		*o = Observacoes{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported observacoes column type %T", value)
	}
	if len(data) == 0 {
		*o = Observacoes{}
		return nil
	}
	var list []Observacao
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("failed to unmarshal observacoes: %w", err)
	}
	*o = list
	return nil
}

// UnmarshalJSON accepts either a JSON array or the legacy form where the
// client sends the array pre-serialized as a string.
func (o *Observacoes) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*o = Observacoes{}
			return nil
		}
		data = []byte(raw)
	}
	var list []Observacao
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*o = list
	return nil
}

// Adicionar appends a note, keeping insertion order chronological.
func (o *Observacoes) Adicionar(texto, username string, quando time.Time) {
	*o = append(*o, Observacao{Texto: texto, Timestamp: quando, Username: username})
}

// Remover removes the note at the given position index.
func (o *Observacoes) Remover(index int) error {
	if index < 0 || index >= len(*o) {
		return fmt.Errorf("observacao index %d out of range", index)
	}
	*o = append((*o)[:index], (*o)[index+1:]...)
	return nil
}

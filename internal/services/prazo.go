package services

import (
	"sort"
	"strings"
	"time"

	"controle_frete/internal/models"
)

// ForaDoPrazo reports whether a freight record is past its expected delivery
// date, at day granularity. Delivered records and records without a forecast
// are never late; equal dates are still on time.
func ForaDoPrazo(frete *models.Frete, hoje time.Time) bool {
	if !models.TipoComStatus(frete.TipoNF) {
		return false
	}
	if frete.Status != nil && *frete.Status == string(models.StatusEntregue) {
		return false
	}
	if frete.PrevisaoEntrega == nil || *frete.PrevisaoEntrega == "" {
		return false
	}
	previsao, err := models.ParseData(*frete.PrevisaoEntrega)
	if err != nil {
		return false
	}
	dia, _ := models.ParseData(models.FormatData(hoje))
	return previsao.Before(dia)
}

// ContarForaDoPrazo counts late records across all time periods.
func ContarForaDoPrazo(fretes []models.Frete, hoje time.Time) int {
	total := 0
	for i := range fretes {
		if ForaDoPrazo(&fretes[i], hoje) {
			total++
		}
	}
	return total
}

// ListarForaDoPrazo returns the late records ordered by previsao_entrega
// ascending. Ties keep their original relative order.
func ListarForaDoPrazo(fretes []models.Frete, hoje time.Time) []models.Frete {
	var atrasados []models.Frete
	for i := range fretes {
		if ForaDoPrazo(&fretes[i], hoje) {
			atrasados = append(atrasados, fretes[i])
		}
	}
	sort.SliceStable(atrasados, func(i, j int) bool {
		return *atrasados[i].PrevisaoEntrega < *atrasados[j].PrevisaoEntrega
	})
	return atrasados
}

// ResumoMensal holds the dashboard counters for one month. ForaDoPrazo is
// counted across all time, the other figures are scoped to the month.
type ResumoMensal struct {
	Entregues   int     `json:"entregues"`
	EmTransito  int     `json:"em_transito"`
	ForaDoPrazo int     `json:"fora_do_prazo"`
	ValorTotal  float64 `json:"valor_total"`
	FreteTotal  float64 `json:"frete_total"`
}

// ResumirMes computes the dashboard figures for the month containing mes.
// Delivered/in-transit counts cover status-bearing records issued in that
// month; monetary totals cover ENVIO records only.
func ResumirMes(fretes []models.Frete, mes time.Time, hoje time.Time) ResumoMensal {
	var resumo ResumoMensal
	for i := range fretes {
		f := &fretes[i]
		if ForaDoPrazo(f, hoje) {
			resumo.ForaDoPrazo++
		}

		emissao, err := models.ParseData(f.DataEmissao)
		if err != nil || emissao.Year() != mes.Year() || emissao.Month() != mes.Month() {
			continue
		}
		if models.TipoComStatus(f.TipoNF) && f.Status != nil {
			switch *f.Status {
			case string(models.StatusEntregue):
				resumo.Entregues++
			case string(models.StatusEmTransito):
				resumo.EmTransito++
			}
		}
		if models.TipoNFOuPadrao(f.TipoNF) == string(models.TipoEnvio) {
			resumo.ValorTotal += f.ValorNF
			resumo.FreteTotal += f.ValorFrete
		}
	}
	return resumo
}

// TotaisMensais are the per-month valor_nf/valor_frete sums of one year,
// indexed by month (0 = January), over ENVIO records only.
type TotaisMensais struct {
	ValorNF    [12]float64
	ValorFrete [12]float64
}

func TotaisPorMes(fretes []models.Frete, ano int) TotaisMensais {
	var totais TotaisMensais
	for i := range fretes {
		f := &fretes[i]
		if models.TipoNFOuPadrao(f.TipoNF) != string(models.TipoEnvio) {
			continue
		}
		emissao, err := models.ParseData(f.DataEmissao)
		if err != nil || emissao.Year() != ano {
			continue
		}
		m := int(emissao.Month()) - 1
		totais.ValorNF[m] += f.ValorNF
		totais.ValorFrete[m] += f.ValorFrete
	}
	return totais
}

// FiltroStatusForaDoPrazo is the synthetic filter value that swaps the
// status-equality filter for the late predicate.
const FiltroStatusForaDoPrazo = "FORA_DO_PRAZO"

// FiltroFretes narrows the freight listing the way the table view does.
type FiltroFretes struct {
	Mes            time.Time
	Transportadora string
	Vendedor       string
	Status         string
	Busca          string
}

// FiltrarFretes applies the month scope, facet filters, status (or late
// predicate) and free-text search, then orders by numeric NF number.
func FiltrarFretes(fretes []models.Frete, filtro FiltroFretes, hoje time.Time) []models.Frete {
	var filtrados []models.Frete
	busca := strings.ToLower(strings.TrimSpace(filtro.Busca))

	for i := range fretes {
		f := &fretes[i]

		emissao, err := models.ParseData(f.DataEmissao)
		if err != nil || emissao.Year() != filtro.Mes.Year() || emissao.Month() != filtro.Mes.Month() {
			continue
		}
		if filtro.Transportadora != "" && f.Transportadora != filtro.Transportadora {
			continue
		}
		if filtro.Vendedor != "" && f.Vendedor != filtro.Vendedor {
			continue
		}
		if filtro.Status != "" {
			if filtro.Status == FiltroStatusForaDoPrazo {
				if !ForaDoPrazo(f, hoje) {
					continue
				}
			} else if f.Status == nil || *f.Status != filtro.Status {
				continue
			}
		}
		if busca != "" && !correspondeBusca(f, busca) {
			continue
		}

		filtrados = append(filtrados, *f)
	}

	sort.SliceStable(filtrados, func(i, j int) bool {
		return numeroNF(filtrados[i].NumeroNF) < numeroNF(filtrados[j].NumeroNF)
	})
	return filtrados
}

func correspondeBusca(f *models.Frete, busca string) bool {
	campos := []string{
		f.NumeroNF,
		f.Transportadora,
		f.NomeOrgao,
		f.CidadeDestino,
		f.Vendedor,
		f.Documento,
		f.ContatoOrgao,
	}
	for _, campo := range campos {
		if campo != "" && strings.Contains(strings.ToLower(campo), busca) {
			return true
		}
	}
	return false
}

// numeroNF extracts the leading digits of an NF number for ordering.
func numeroNF(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

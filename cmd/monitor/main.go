package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"controle_frete/internal/config"
	"controle_frete/internal/models"
	"controle_frete/internal/polling"
	"controle_frete/internal/services"
	"controle_frete/pkg/freteclient"
)

// monitor is a headless stand-in for the browser client: it polls the API,
// keeps a local collection in sync and prints the dashboard figures and
// late-delivery alerts.
func main() {
	cfg := config.Load()

	token := os.Getenv("SESSION_TOKEN")
	if token == "" {
		log.Fatal("SESSION_TOKEN não configurado")
	}

	client := freteclient.New(cfg.APIURL, token, cfg.RequestTimeout)
	store := polling.NewStore()

	poller := polling.NewPoller(client, polling.Options{
		HeartbeatInterval: cfg.HeartbeatInterval,
		RefreshInterval:   cfg.RefreshInterval,
		RequestTimeout:    cfg.RequestTimeout,
		OnStateChange: func(state polling.State) {
			log.Printf("Servidor %s", state)
		},
		OnSessionExpired: func() {
			log.Println("Sua sessão expirou. Faça login novamente no portal.")
		},
		OnFretes: func(fretes []models.Frete, changed bool) {
			store.Substituir(fretes)
			if !changed {
				return
			}
			imprimirResumo(fretes)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Monitorando %s", cfg.APIURL)
	poller.Run(ctx)
}

func imprimirResumo(fretes []models.Frete) {
	agora := time.Now()
	resumo := services.ResumirMes(fretes, agora, agora)

	log.Printf("%d fretes carregados", len(fretes))
	log.Printf("Mês atual: %d entregues, %d em trânsito | Valor R$ %.2f, Frete R$ %.2f",
		resumo.Entregues, resumo.EmTransito, resumo.ValorTotal, resumo.FreteTotal)

	atrasados := services.ListarForaDoPrazo(fretes, agora)
	if len(atrasados) == 0 {
		return
	}
	log.Printf("%d notas fora do prazo:", len(atrasados))
	for i := range atrasados {
		f := &atrasados[i]
		log.Printf("  NF %s - %s - previsão %s", f.NumeroNF, f.NomeOrgao, *f.PrevisaoEntrega)
	}
}

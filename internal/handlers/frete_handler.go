package handlers

import (
	"errors"
	"log"
	"net/http"

	"controle_frete/internal/models"
	"controle_frete/internal/services"

	"github.com/gin-gonic/gin"
)

type FreteHandler struct {
	freteService services.FreteService
}

func NewFreteHandler(freteService services.FreteService) *FreteHandler {
	return &FreteHandler{freteService: freteService}
}

func (h *FreteHandler) List(c *gin.Context) {
	fretes, err := h.freteService.ListFretes()
	if err != nil {
		log.Printf("Erro ao buscar fretes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao buscar fretes",
			"details": err.Error(),
		})
		return
	}
	if fretes == nil {
		fretes = []models.Frete{}
	}
	c.JSON(http.StatusOK, fretes)
}

func (h *FreteHandler) Get(c *gin.Context) {
	frete, err := h.freteService.GetFrete(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
			return
		}
		log.Printf("Erro ao buscar frete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao buscar frete",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, frete)
}

func (h *FreteHandler) Create(c *gin.Context) {
	var frete models.Frete
	if err := c.ShouldBindJSON(&frete); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	criado, err := h.freteService.CreateFrete(&frete)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Erro ao criar frete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao criar frete",
			"details": err.Error(),
		})
		return
	}

	log.Printf("Frete criado: %s", criado.ID)
	c.JSON(http.StatusCreated, criado)
}

func (h *FreteHandler) Update(c *gin.Context) {
	var frete models.Frete
	if err := c.ShouldBindJSON(&frete); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	atualizado, err := h.freteService.UpdateFrete(c.Param("id"), &frete)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
			return
		}
		log.Printf("Erro ao atualizar frete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao atualizar frete",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, atualizado)
}

// ToggleStatus flips status/data_entrega as a pair. The new values are
// computed server-side from the current record, not taken from the body.
func (h *FreteHandler) ToggleStatus(c *gin.Context) {
	frete, err := h.freteService.ToggleFreteStatus(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
		case errors.Is(err, services.ErrTipoSemStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de NF não possui status"})
		default:
			log.Printf("Erro ao atualizar status: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Erro ao atualizar status",
				"details": err.Error(),
			})
		}
		return
	}
	c.JSON(http.StatusOK, frete)
}

func (h *FreteHandler) Delete(c *gin.Context) {
	if err := h.freteService.DeleteFrete(c.Param("id")); err != nil {
		log.Printf("Erro ao excluir frete: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao excluir frete",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Frete excluído com sucesso"})
}

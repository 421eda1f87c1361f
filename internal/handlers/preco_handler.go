package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"controle_frete/internal/models"
	"controle_frete/internal/repository"
	"controle_frete/internal/services"

	"github.com/gin-gonic/gin"
)

type PrecoHandler struct {
	precoService services.PrecoService
}

func NewPrecoHandler(precoService services.PrecoService) *PrecoHandler {
	return &PrecoHandler{precoService: precoService}
}

func (h *PrecoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	filter := repository.PrecoFilter{
		Marca:  c.Query("marca"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}

	resultado, err := h.precoService.ListPrecos(filter)
	if err != nil {
		log.Printf("Erro ao buscar preços: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao buscar preços",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, resultado)
}

func (h *PrecoHandler) Marcas(c *gin.Context) {
	marcas, err := h.precoService.Marcas()
	if err != nil {
		log.Printf("Erro ao buscar marcas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao buscar marcas",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, marcas)
}

func (h *PrecoHandler) Create(c *gin.Context) {
	var preco models.Preco
	if err := c.ShouldBindJSON(&preco); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	criado, err := h.precoService.CreatePreco(&preco)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Erro ao criar preço: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao criar preço",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, criado)
}

func (h *PrecoHandler) Update(c *gin.Context) {
	var preco models.Preco
	if err := c.ShouldBindJSON(&preco); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	atualizado, err := h.precoService.UpdatePreco(c.Param("id"), &preco)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Preço não encontrado"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Erro ao atualizar preço: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Erro ao atualizar preço",
				"details": err.Error(),
			})
		}
		return
	}
	c.JSON(http.StatusOK, atualizado)
}

func (h *PrecoHandler) Delete(c *gin.Context) {
	if err := h.precoService.DeletePreco(c.Param("id")); err != nil {
		log.Printf("Erro ao excluir preço: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Erro ao excluir preço",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Preço excluído com sucesso"})
}

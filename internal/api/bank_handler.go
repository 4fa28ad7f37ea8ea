package api

import (
	"net/http"

	"piggybank/internal/middleware"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

type BankHandler struct {
	bankService *service.BankService
}

func NewBankHandler(bankService *service.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

func (h *BankHandler) ListBanks(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	banks, aerr := h.bankService.List(requester, c.Param("groupName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	views := make([]gin.H, 0, len(banks))
	for i := range banks {
		views = append(views, bankView(&banks[i]))
	}
	c.JSON(http.StatusOK, gin.H{"banks": views})
}

func (h *BankHandler) GetBank(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	bank, aerr := h.bankService.Get(requester, c.Param("groupName"), c.Param("bankName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	c.JSON(http.StatusOK, bankView(bank))
}

func (h *BankHandler) CreateBank(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bank, aerr := h.bankService.Create(requester, c.Param("groupName"), req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "piggy bank created",
		"bank":       bankView(bank),
	})
}

func (h *BankHandler) UpdateBank(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	bank, aerr := h.bankService.Update(requester, c.Param("groupName"), c.Param("bankName"), req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "piggy bank updated",
		"bank":       bankView(bank),
	})
}

func (h *BankHandler) DeleteBank(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	if aerr := h.bankService.Delete(requester, c.Param("groupName"), c.Param("bankName")); aerr != nil {
		respondError(c, aerr)
		return
	}
	respondMessage(c, "piggy bank deleted")
}

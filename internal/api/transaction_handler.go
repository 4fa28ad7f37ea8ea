package api

import (
	"net/http"

	"piggybank/internal/middleware"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes create and read only; there are no update or
// delete routes because transactions are immutable.
type TransactionHandler struct {
	txService *service.TransactionService
}

func NewTransactionHandler(txService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txService: txService}
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	txs, aerr := h.txService.List(requester, c.Param("groupName"), c.Param("bankName"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	views := make([]gin.H, 0, len(txs))
	for i := range txs {
		views = append(views, transactionView(&txs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"transactions": views})
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	tx, aerr := h.txService.Get(requester, c.Param("groupName"), c.Param("bankName"), c.Param("txID"))
	if aerr != nil {
		respondError(c, aerr)
		return
	}
	c.JSON(http.StatusOK, transactionView(tx))
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	requester := middleware.CurrentUser(c)

	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tx, aerr := h.txService.Create(requester, c.Param("groupName"), c.Param("bankName"), req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode":  http.StatusOK,
		"message":     "transaction recorded",
		"transaction": transactionView(tx),
	})
}

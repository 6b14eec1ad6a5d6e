package handler

import (
	"context"
	"errors"
	"finance-tracker/common"
	"finance-tracker/logger"
	"finance-tracker/model"
	"finance-tracker/service"
	"math"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

const msgTransactionNotFound = "Transaction not found"

// TransactionService is the set of transaction use cases the handlers need.
type TransactionService interface {
	Create(ctx context.Context, name string, amount float64) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	Get(ctx context.Context, id int) (*model.Transaction, error)
	Update(ctx context.Context, id int, name *string, amount *float64) (*model.Transaction, error)
	Delete(ctx context.Context, id int) error
}

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	service TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// pathID parses the {id} path segment. Anything that is not a non-negative
// integer within the SERIAL column's range cannot name a transaction and is
// reported as not found.
func pathID(r *http.Request) (int, *common.AppError) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 || id > math.MaxInt32 || raw[0] == '+' {
		return 0, common.NotFound(msgTransactionNotFound)
	}
	return id, nil
}

func requestLog(r *http.Request) *logrus.Entry {
	username, _ := UsernameFromContext(r.Context())
	return logger.Log.WithFields(logrus.Fields{
		"user":   username,
		"method": r.Method,
		"path":   r.URL.Path,
	})
}

// CreateTransaction godoc
// @Summary      Add a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transaction body model.CreateTransactionRequest true "Name and amount"
// @Success      201  {object}  model.MessageResponse
// @Failure      400  {object}  common.AppError "Missing or invalid fields"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateTransactionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	requestLog(r).WithField("name", *req.Name).Info("Create transaction request received")

	if _, err := h.service.Create(r.Context(), *req.Name, *req.Amount); err != nil {
		return common.Internal("Could not create transaction", err)
	}

	common.WriteJSON(w, http.StatusCreated, model.MessageResponse{Message: "Transaction added successfully!"})
	return nil
}

// ListTransactions godoc
// @Summary      List all transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {array}   model.Transaction
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) *common.AppError {
	transactions, err := h.service.List(r.Context())
	if err != nil {
		return common.Internal("Could not retrieve transactions", err)
	}

	common.WriteJSON(w, http.StatusOK, transactions)
	return nil
}

// GetTransaction godoc
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  model.Transaction
// @Failure      404  {object}  common.AppError "Transaction not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	transaction, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return common.NotFound(msgTransactionNotFound)
		}
		return common.Internal("Could not retrieve transaction", err)
	}

	common.WriteJSON(w, http.StatusOK, transaction)
	return nil
}

// UpdateTransaction godoc
// @Summary      Update a transaction
// @Description  Fields omitted from the body keep their current value. The date never changes.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Transaction ID"
// @Param        transaction body model.UpdateTransactionRequest true "Fields to change"
// @Success      200  {object}  model.MessageResponse
// @Failure      400  {object}  common.AppError "Invalid fields"
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      404  {object}  common.AppError "Transaction not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	var req model.UpdateTransactionRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	requestLog(r).WithField("transaction_id", id).Info("Update transaction request received")

	if _, err := h.service.Update(r.Context(), id, req.Name, req.Amount); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return common.NotFound(msgTransactionNotFound)
		}
		return common.Internal("Could not update transaction", err)
	}

	common.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Transaction updated successfully!"})
	return nil
}

// DeleteTransaction godoc
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Transaction ID"
// @Success      200  {object}  model.MessageResponse
// @Failure      401  {object}  common.AppError "Unauthorized: Invalid or missing token"
// @Failure      404  {object}  common.AppError "Transaction not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, appErr := pathID(r)
	if appErr != nil {
		return appErr
	}

	requestLog(r).WithField("transaction_id", id).Info("Delete transaction request received")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return common.NotFound(msgTransactionNotFound)
		}
		return common.Internal("Could not delete transaction", err)
	}

	common.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Transaction deleted successfully!"})
	return nil
}

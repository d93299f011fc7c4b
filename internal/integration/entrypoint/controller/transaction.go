// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/application/usecase/transaction"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
	"github.com/budgy/backend/internal/integration/entrypoint/dto"
)

const dateLayout = "2006-01-02"

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase               *transaction.ListTransactionsUseCase
	getUseCase                *transaction.GetTransactionUseCase
	createUseCase             *transaction.CreateTransactionUseCase
	updateUseCase             *transaction.UpdateTransactionUseCase
	deleteUseCase             *transaction.DeleteTransactionUseCase
	exportUseCase             *transaction.ExportTransactionsUseCase
	uploadAttachmentUseCase   *transaction.UploadAttachmentUseCase
	downloadAttachmentUseCase *transaction.DownloadAttachmentUseCase
	removeAttachmentUseCase   *transaction.RemoveAttachmentUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	exportUseCase *transaction.ExportTransactionsUseCase,
	uploadAttachmentUseCase *transaction.UploadAttachmentUseCase,
	downloadAttachmentUseCase *transaction.DownloadAttachmentUseCase,
	removeAttachmentUseCase *transaction.RemoveAttachmentUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:               listUseCase,
		getUseCase:                getUseCase,
		createUseCase:             createUseCase,
		updateUseCase:             updateUseCase,
		deleteUseCase:             deleteUseCase,
		exportUseCase:             exportUseCase,
		uploadAttachmentUseCase:   uploadAttachmentUseCase,
		downloadAttachmentUseCase: downloadAttachmentUseCase,
		removeAttachmentUseCase:   removeAttachmentUseCase,
	}
}

// List handles GET /transactions requests.
// Query params: month (YYYY-MM), type, category_id, page, limit.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Month:  ctx.Query("month"),
		Page:   queryInt(ctx, "page"),
		Limit:  queryInt(ctx, "limit"),
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		t := entity.TransactionType(typeStr)
		input.Type = &t
	}
	if categoryStr := ctx.Query("category_id"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category_id",
				Code:  string(domainerror.ErrCodeTxnCategoryNotFound),
			})
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathUUID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingTransactionFields), err)
		return
	}

	// Binding already validated both formats
	date, _ := time.Parse(dateLayout, req.Date)
	categoryID, _ := uuid.Parse(req.CategoryID)

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:     userID,
		CategoryID: categoryID,
		Date:       date,
		Amount:     req.Amount,
		Details:    req.Details,
		Lat:        req.Lat,
		Lng:        req.Lng,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathUUID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingTransactionFields), err)
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        req.Amount,
		Details:       req.Details,
		Lat:           req.Lat,
		Lng:           req.Lng,
		ClearLocation: req.ClearLocation,
	}
	if req.Date != nil {
		date, _ := time.Parse(dateLayout, *req.Date)
		input.Date = &date
	}
	if req.CategoryID != nil {
		categoryID, _ := uuid.Parse(*req.CategoryID)
		input.CategoryID = &categoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathUUID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	}); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Export handles GET /transactions/export requests.
// Query params: format (csv or xlsx, default csv), month (YYYY-MM).
func (c *TransactionController) Export(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), transaction.ExportTransactionsInput{
		UserID: userID,
		Format: adapter.ExportFormat(ctx.Query("format")),
		Month:  ctx.Query("month"),
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// UploadAttachment handles PUT /transactions/:id/attachment requests.
// The file is read from the multipart field "file".
func (c *TransactionController) UploadAttachment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathUUID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "A multipart file field named 'file' is required",
			Code:  string(domainerror.ErrCodeMissingAttachment),
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		internalError(ctx)
		return
	}
	defer file.Close()

	output, err := c.uploadAttachmentUseCase.Execute(ctx.Request.Context(), transaction.UploadAttachmentInput{
		UserID:        userID,
		TransactionID: transactionID,
		FileName:      header.Filename,
		Size:          header.Size,
		Content:       file,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output))
}

// DownloadAttachment handles GET /transactions/:id/attachment requests.
func (c *TransactionController) DownloadAttachment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathUUID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	output, err := c.downloadAttachmentUseCase.Execute(ctx.Request.Context(), transaction.DownloadAttachmentInput{
		UserID:        userID,
		TransactionID: transactionID,
	})
	if err != nil {
		handleTransactionError(ctx, err)
		return
	}
	defer output.Content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(output.FileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx.Header("Content-Type", contentType)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, output.Content); err != nil {
		slog.WarnContext(ctx.Request.Context(), "attachment stream interrupted",
			"transaction_id", transactionID.String(),
			"error", err,
		)
	}
}

// RemoveAttachment handles DELETE /transactions/:id/attachment requests.
func (c *TransactionController) RemoveAttachment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathUUID(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	if err := c.removeAttachmentUseCase.Execute(ctx.Request.Context(), transaction.RemoveAttachmentInput{
		UserID:        userID,
		TransactionID: transactionID,
	}); err != nil {
		handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}
	if userGone(ctx, err) {
		return
	}

	internalError(ctx)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeAttachmentNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeAttachmentTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeDetailsTooLong,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeTxnCategoryDeleted,
		domainerror.ErrCodeInvalidGeoLocation,
		domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeMissingAttachment,
		domainerror.ErrCodeInvalidExportFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

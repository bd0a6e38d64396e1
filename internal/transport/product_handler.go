package transport

import (
	"errors"
	"net/http"
	"strconv"

	"stockroom/internal/domain"
	"stockroom/internal/middleware"
	"stockroom/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	MessageCreated          = "Product added successfully"
	MessageUpdated          = "Product updated successfully"
	MessageDeleted          = "Product deleted successfully"
	MessageNotFound         = "Product not found"
	MessageMissingParameter = "Missing parameter"
	MessageInvalidBody      = "Invalid request body"
)

// ProductResponse is the success form of the response envelope
type ProductResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product *domain.Product `json:"product,omitempty"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	products service.ProductService
	query    service.ProductQuery
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products service.ProductService, query service.ProductQuery, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		query:    query,
		logger:   logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListByStock)
		r.Get("/products/{type:(?:in-stock|out-stock)}", h.ListByStock)
		r.Get("/products-more-than-five", h.ListMoreThanFive)

		r.Post("/product", h.Create)
		r.Get("/product/{id}", h.Get)
		r.Patch("/product/{id}", h.Update)
		r.Delete("/product/{id}", h.Delete)
	})
}

// ListByStock handles listing products by stock type; in-stock when omitted
func (h *ProductHandler) ListByStock(w http.ResponseWriter, r *http.Request) {
	stockType := domain.StockIn
	if raw := chi.URLParam(r, "type"); raw != "" {
		parsed, err := domain.ParseStockType(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusNotFound, "Route not found")
			return
		}
		stockType = parsed
	}

	products, err := h.query.ListByStock(r.Context(), stockType)
	if err != nil {
		h.respondFailure(w, err, "List products by stock failed")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ListMoreThanFive handles listing products with more than five units
func (h *ProductHandler) ListMoreThanFive(w http.ResponseWriter, r *http.Request) {
	products, err := h.query.ListAboveAmount(r.Context(), service.MoreThanFiveThreshold)
	if err != nil {
		h.respondFailure(w, err, "List products above amount failed")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get handles fetching a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.query.Get(r.Context(), id)
	if err != nil {
		h.respondFailure(w, err, "Get product failed")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, violations, err := decodeProductFields(r)
	if err != nil {
		h.logger.Debug("Create product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, MessageInvalidBody)
		return
	}
	if len(violations) > 0 {
		middleware.RespondWithValidationErrors(w, violations)
		return
	}

	product, err := h.products.Create(r.Context(), service.CreateInput{
		Name:   fields.Name,
		Amount: fields.Amount,
	})
	if err != nil {
		h.respondFailure(w, err, "Create product failed")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Message: MessageCreated,
		Product: product,
	})
}

// Update handles partial product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	fields, violations, err := decodeProductFields(r)
	if err != nil {
		h.logger.Debug("Update product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, MessageInvalidBody)
		return
	}
	if len(violations) > 0 {
		middleware.RespondWithValidationErrors(w, violations)
		return
	}

	product, err := h.products.Update(r.Context(), id, service.UpdateInput{
		Name:   fields.Name,
		Amount: fields.Amount,
	})
	if err != nil {
		h.respondFailure(w, err, "Update product failed", zap.Int64("product_id", id))
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Message: MessageUpdated,
		Product: product,
	})
}

// Delete handles product removal
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.respondFailure(w, err, "Delete product failed", zap.Int64("product_id", id))
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Message: MessageDeleted,
	})
}

// productID parses the {id} path value. Ids that cannot exist are reported as not found.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusNotFound, MessageNotFound)
		return 0, false
	}
	return id, true
}

// respondFailure maps a service error onto the envelope. Store details are logged, never returned.
func (h *ProductHandler) respondFailure(w http.ResponseWriter, err error, logMsg string, fields ...zap.Field) {
	outcome := service.OutcomeOf(err)

	switch outcome {
	case service.OutcomeValidationFailed:
		var validationErr *service.ValidationError
		errors.As(err, &validationErr)
		h.logger.Debug(logMsg, append(fields, zap.Error(err))...)
		middleware.RespondWithValidationErrors(w, validationErr.Violations)
	case service.OutcomeActionFailed:
		h.logger.Error(logMsg, append(fields, zap.Error(err))...)
		middleware.RespondWithError(w, statusFor(outcome), middleware.MessageInternalError)
	default:
		h.logger.Debug(logMsg, append(fields, zap.Stringer("outcome", outcome))...)
		middleware.RespondWithError(w, statusFor(outcome), messageFor(outcome))
	}
}

func statusFor(outcome service.Outcome) int {
	switch outcome {
	case service.OutcomeSuccess:
		return http.StatusOK
	case service.OutcomeValidationFailed, service.OutcomeMissingParameter:
		return http.StatusBadRequest
	case service.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(outcome service.Outcome) string {
	switch outcome {
	case service.OutcomeValidationFailed:
		return middleware.MessageValidationFailed
	case service.OutcomeMissingParameter:
		return MessageMissingParameter
	case service.OutcomeNotFound:
		return MessageNotFound
	default:
		return middleware.MessageInternalError
	}
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/checkout-service/internal/domain"
	"github.com/example/checkout-service/internal/usecase"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	Router   *mux.Router
	Logger   *zap.SugaredLogger
	UCCreate usecase.CreateGatewayOrder
	UCSave   usecase.SaveOrder
	KeyID    string
}

func NewServer(ucCreate usecase.CreateGatewayOrder, ucSave usecase.SaveOrder, keyID string, allowedOrigins []string, logger *zap.SugaredLogger) *Server {
	s := &Server{
		Router:   mux.NewRouter(),
		Logger:   logger,
		UCCreate: ucCreate,
		UCSave:   ucSave,
		KeyID:    keyID,
	}
	s.Router.HandleFunc("/create-order", s.handleCreateOrder).Methods(http.MethodPost)
	s.Router.HandleFunc("/get-razorpay-key", s.handleGetKey).Methods(http.MethodGet)
	s.Router.HandleFunc("/save-order", s.handleSaveOrder).Methods(http.MethodPost)
	s.Router.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)

	if len(allowedOrigins) > 0 {
		s.Router.Use(handlers.CORS(
			handlers.AllowedOrigins(allowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		))
	}
	return s
}

type createOrderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	order, err := s.UCCreate.Execute(r.Context(), req.Amount, req.Currency)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, "Amount must be a positive number", "")
			return
		}
		s.Logger.Errorw("gateway order creation failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Failed to create payment order", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(order)
}

func (s *Server) handleGetKey(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"key": s.KeyID})
}

type saveOrderRequest struct {
	OrderData struct {
		Customer domain.Customer `json:"customer"`
		Items    json.RawMessage `json:"items"`
		Subtotal float64         `json:"subtotal"`
		Shipping float64         `json:"shipping"`
		Total    float64         `json:"total"`
	} `json:"orderData"`
	Payment *domain.PaymentDetails `json:"payment"`
}

func (s *Server) handleSaveOrder(w http.ResponseWriter, r *http.Request) {
	var req saveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	orderID, err := s.UCSave.Execute(r.Context(), usecase.SaveOrderInput{
		Customer: req.OrderData.Customer,
		Items:    req.OrderData.Items,
		Subtotal: req.OrderData.Subtotal,
		Shipping: req.OrderData.Shipping,
		Total:    req.OrderData.Total,
		Payment:  req.Payment,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSignatureMismatch) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid payment signature"})
			return
		}
		s.Logger.Errorw("order save failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save order", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"orderId": orderID,
		"message": "Order saved successfully",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg, details string) {
	body := map[string]string{"error": msg}
	if details != "" {
		body["details"] = details
	}
	writeJSON(w, code, body)
}

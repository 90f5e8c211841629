package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/checkout-service/internal/domain"
	"github.com/example/checkout-service/internal/usecase"
	"go.uber.org/zap"
)

type stubGateway struct {
	resp json.RawMessage
	err  error
}

func (g stubGateway) CreateOrder(_ context.Context, _ float64, _ string) (json.RawMessage, error) {
	return g.resp, g.err
}

type memRepo struct {
	inserted map[string][]byte
}

func (r *memRepo) Insert(_ context.Context, id string, raw []byte) error {
	if r.inserted == nil {
		r.inserted = make(map[string][]byte)
	}
	r.inserted[id] = raw
	return nil
}

func newTestServer(gw domain.PaymentGateway, repo domain.OrderRepository) *Server {
	logger := zap.NewNop().Sugar()
	return NewServer(
		usecase.CreateGatewayOrder{Gateway: gw},
		usecase.SaveOrder{Repo: repo, KeySecret: "s3cr3t", Logger: logger},
		"rzp_test_key",
		nil,
		logger,
	)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, r)
	return w
}

func TestHandleCreateOrder(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		gw       stubGateway
		wantCode int
		wantBody string
	}{
		{
			name:     "gateway body returned verbatim",
			body:     `{"amount": 499.5}`,
			gw:       stubGateway{resp: json.RawMessage(`{"id":"order_1","status":"created"}`)},
			wantCode: http.StatusOK,
			wantBody: `"id":"order_1"`,
		},
		{
			name:     "non-positive amount",
			body:     `{"amount": 0}`,
			wantCode: http.StatusBadRequest,
			wantBody: "positive",
		},
		{
			name:     "gateway failure",
			body:     `{"amount": 100}`,
			gw:       stubGateway{err: fmt.Errorf("razorpay status 401: auth failed")},
			wantCode: http.StatusBadGateway,
			wantBody: "auth failed",
		},
		{
			name:     "malformed body",
			body:     `{`,
			wantCode: http.StatusBadRequest,
			wantBody: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.gw, &memRepo{})
			w := doJSON(t, s, http.MethodPost, "/create-order", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body %q missing %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleGetKey(t *testing.T) {
	s := newTestServer(stubGateway{}, &memRepo{})
	w := doJSON(t, s, http.MethodGet, "/get-razorpay-key", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["key"] != "rzp_test_key" {
		t.Errorf("key = %q, want rzp_test_key", resp["key"])
	}
}

func TestHandleSaveOrderCOD(t *testing.T) {
	repo := &memRepo{}
	s := newTestServer(stubGateway{}, repo)

	body := `{"orderData":{"customer":{"name":"Asha","city":"Pune"},"items":[{"name":"Mug","quantity":1,"price":150}],"subtotal":150,"shipping":50,"total":200}}`
	w := doJSON(t, s, http.MethodPost, "/save-order", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || !strings.HasPrefix(resp.OrderID, "ORD") {
		t.Errorf("unexpected response: %+v", resp)
	}

	var stored domain.Order
	if err := json.Unmarshal(repo.inserted[resp.OrderID], &stored); err != nil {
		t.Fatalf("stored payload: %v", err)
	}
	if stored.PaymentMethod != domain.PaymentMethodCOD || stored.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("classification = %s/%s, want cod/pending", stored.PaymentMethod, stored.PaymentStatus)
	}
}

func TestHandleSaveOrderOnline(t *testing.T) {
	repo := &memRepo{}
	s := newTestServer(stubGateway{}, repo)

	sig := domain.ExpectedSignature("order_abc", "pay_xyz", "s3cr3t")
	body := fmt.Sprintf(`{"orderData":{"customer":{"name":"Asha"},"items":[],"subtotal":100,"shipping":0,"total":100},"payment":{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_xyz","razorpay_signature":"%s"}}`, sig)
	w := doJSON(t, s, http.MethodPost, "/save-order", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("inserted %d orders, want 1", len(repo.inserted))
	}
	for _, raw := range repo.inserted {
		var stored domain.Order
		if err := json.Unmarshal(raw, &stored); err != nil {
			t.Fatalf("stored payload: %v", err)
		}
		if stored.PaymentMethod != domain.PaymentMethodOnline || stored.PaymentStatus != domain.PaymentStatusPaid {
			t.Errorf("classification = %s/%s, want online/paid", stored.PaymentMethod, stored.PaymentStatus)
		}
	}
}

func TestHandleSaveOrderInvalidSignature(t *testing.T) {
	repo := &memRepo{}
	s := newTestServer(stubGateway{}, repo)

	body := `{"orderData":{"customer":{"name":"Asha"},"items":[],"subtotal":100,"shipping":0,"total":100},"payment":{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_xyz","razorpay_signature":"bad"}}`
	w := doJSON(t, s, http.MethodPost, "/save-order", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid payment signature") {
		t.Errorf("body = %s", w.Body.String())
	}
	if len(repo.inserted) != 0 {
		t.Error("order persisted despite signature mismatch")
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(stubGateway{}, &memRepo{})
	w := doJSON(t, s, http.MethodGet, "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" || resp["timestamp"] == "" {
		t.Errorf("unexpected health body: %v", resp)
	}
}

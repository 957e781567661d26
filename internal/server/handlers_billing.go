package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/catalog"
	"github.com/jonathan/resume-builder/internal/server/middleware"
)

// handleCreateOrder creates a provider order for a tier upgrade and
// returns the approval link.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if s.billing == nil {
		writeError(w, http.StatusServiceUnavailable, "billing is not configured")
		return
	}

	if _, err := middleware.GetUserID(r); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	order, err := s.billing.CreateOrder(r.Context(), catalog.Tier(req.Tier))
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, OrderResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		ApproveURL: order.ApproveURL,
		Tier:       req.Tier,
	})
}

// handleCaptureOrder captures an approved order, upgrades the user's
// tier, and records the payment.
func (s *Server) handleCaptureOrder(w http.ResponseWriter, r *http.Request) {
	if s.billing == nil {
		writeError(w, http.StatusServiceUnavailable, "billing is not configured")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orderID := r.PathValue("id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	order, err := s.billing.CaptureOrder(r.Context(), orderID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if !strings.EqualFold(order.Status, "COMPLETED") {
		writeError(w, http.StatusConflict, "order not completed: "+order.Status)
		return
	}

	// The captured order decides the upgrade, never the request body. The
	// order tier comes from the purchase unit the order was priced with.
	tier := catalog.Tier(order.Tier)
	amount, ok := catalog.TierPrice(tier)
	if !ok {
		writeError(w, http.StatusConflict, "order tier is not purchasable: "+order.Tier)
		return
	}
	if !strings.EqualFold(req.Tier, order.Tier) {
		writeError(w, http.StatusConflict, "order tier mismatch: order is for "+order.Tier)
		return
	}
	if order.Amount != "" {
		amount = order.Amount
	}

	now := time.Now()
	if err := s.db.SetUserTier(r.Context(), userID, string(tier), now, now.AddDate(0, 1, 0)); err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	if _, err := s.db.RecordPayment(r.Context(), userID, order.ID, string(tier), amount, "USD", order.Status); err != nil {
		// The tier change already landed; log and keep going.
		s.logger.Error("failed to record payment", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, OrderResponse{OrderID: order.ID, Status: order.Status, Tier: string(tier)})
}

// handleListPayments returns the user's payment history, newest first.
func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payments, err := s.db.ListPayments(r.Context(), userID)
	if err != nil {
		writeError(w, HTTPStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

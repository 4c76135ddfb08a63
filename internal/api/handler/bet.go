// internal/api/handler/bet.go
package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bettracker/internal/domain"
	"bettracker/internal/parse"
	"bettracker/internal/service"
	"bettracker/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 30 * time.Second

// eventDateLayout is the wire format for event dates (day granularity).
const eventDateLayout = "2006-01-02"

// BetHandler handles HTTP requests for the bet journal.
type BetHandler struct {
	service service.BetService
	logger  *slog.Logger
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(svc service.BetService, logger *slog.Logger) *BetHandler {
	return &BetHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *BetHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *BetHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrEmptyWagerText),
		util.IsError(err, util.ErrNonPositiveAmount),
		util.IsError(err, util.ErrNegativeCashout),
		util.IsError(err, util.ErrParse):
		statusCode = http.StatusBadRequest
		message = err.Error() // Surface the human-readable reason to the caller
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrBetNotFound):
		statusCode = http.StatusNotFound
		message = "Bet not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// betID parses the {betID} URL parameter.
func betID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "betID"))
	if err != nil {
		return uuid.Nil, util.ErrInvalidInput
	}
	return id, nil
}

// CreateBetRequest represents the request body for creating a bet.
// Stake and payout may be given either as explicit decimals or as a compact
// Entry string like "5/9.32".
type CreateBetRequest struct {
	Sport     string          `json:"sport"`
	WagerText string          `json:"wager_text"`
	Stake     decimal.Decimal `json:"stake"`
	Payout    decimal.Decimal `json:"payout"`
	Entry     string          `json:"entry"`
	EventDate string          `json:"event_date"` // "2006-01-02", defaults to today
}

// CreateBet handles the create bet request.
// POST /bets
func (h *BetHandler) CreateBet(w http.ResponseWriter, r *http.Request) {
	var req CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	stake, payout := req.Stake, req.Payout
	if req.Entry != "" {
		var err error
		stake, payout, err = parse.ParseStakePayout(req.Entry)
		if err != nil {
			h.respondWithError(w, err)
			return
		}
	}

	eventDate := time.Now().UTC()
	if req.EventDate != "" {
		parsed, err := time.Parse(eventDateLayout, req.EventDate)
		if err != nil {
			h.respondWithError(w, util.ErrInvalidInput)
			return
		}
		eventDate = parsed
	}

	bet, err := h.service.CreateBet(r.Context(), service.CreateBetInput{
		Sport:     req.Sport,
		WagerText: req.WagerText,
		Stake:     stake,
		Payout:    payout,
		EventDate: eventDate,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, bet)
}

// QuickBetRequest represents the request body for free-text entry.
type QuickBetRequest struct {
	Sport string `json:"sport"`
	Text  string `json:"text"`
}

// CreateQuickBet handles free-text entry like "BOS ML bet 5 to win 9.32".
// POST /bets/quick
func (h *BetHandler) CreateQuickBet(w http.ResponseWriter, r *http.Request) {
	var req QuickBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	bet, err := h.service.CreateQuickBet(r.Context(), req.Sport, req.Text)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, bet)
}

// SettleWin marks a bet as won.
// POST /bets/{betID}/win
func (h *BetHandler) SettleWin(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.SettleWin)
}

// SettleLoss marks a bet as lost.
// POST /bets/{betID}/loss
func (h *BetHandler) SettleLoss(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.SettleLoss)
}

// SettlePush marks a bet as pushed.
// POST /bets/{betID}/push
func (h *BetHandler) SettlePush(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.SettlePush)
}

// ResetBet reverts a bet to pending.
// POST /bets/{betID}/reset
func (h *BetHandler) ResetBet(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.service.ResetBet)
}

// settle is shared by the win/loss/push/reset endpoints.
func (h *BetHandler) settle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (*domain.Bet, error)) {
	id, err := betID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	bet, err := op(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, bet)
}

// CashOutRequest represents the request body for a cash-out settlement.
type CashOutRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CashOut settles a bet early for the received amount.
// POST /bets/{betID}/cashout
func (h *BetHandler) CashOut(w http.ResponseWriter, r *http.Request) {
	id, err := betID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	var req CashOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	bet, err := h.service.CashOut(r.Context(), id, req.Amount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, bet)
}

// DeleteBet removes a bet.
// DELETE /bets/{betID}
func (h *BetHandler) DeleteBet(w http.ResponseWriter, r *http.Request) {
	id, err := betID(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.service.DeleteBet(r.Context(), id); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Bet deleted"})
}

// ListToday returns today's bets bucketed by result.
// GET /bets/today?sport=NHL
func (h *BetHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.ListToday(r.Context(), time.Now().UTC(), r.URL.Query().Get("sport"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, buckets)
}

// ListUpcoming returns pending bets with future event dates.
// GET /bets/upcoming?sport=NHL
func (h *BetHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	bets, err := h.service.ListUpcoming(r.Context(), time.Now().UTC(), r.URL.Query().Get("sport"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": bets})
}

// ListSettled returns settled bets, most recently settled first.
// GET /bets/settled?sport=NHL&days_back=30
func (h *BetHandler) ListSettled(w http.ResponseWriter, r *http.Request) {
	daysBack, err := strconv.Atoi(r.URL.Query().Get("days_back"))
	if err != nil || daysBack < 0 {
		daysBack = 0 // Unbounded
	}

	bets, err := h.service.ListSettled(r.Context(), time.Now().UTC(), r.URL.Query().Get("sport"), daysBack)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": bets, "days_back": daysBack})
}

// Summary returns aggregate statistics for the requested scope.
// GET /bets/summary?scope=today&sport=NHL
func (h *BetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	scope := service.Scope(r.URL.Query().Get("scope"))
	if scope != service.ScopeToday && scope != service.ScopeAllTime {
		scope = service.ScopeAllTime
	}

	report, err := h.service.Summary(r.Context(), scope, time.Now().UTC(), r.URL.Query().Get("sport"))
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	h.respondWithJSON(w, http.StatusOK, report)
}

// ExportSettledCSV streams the settled bets as CSV.
// GET /bets/settled/export?sport=NHL&days_back=90
func (h *BetHandler) ExportSettledCSV(w http.ResponseWriter, r *http.Request) {
	daysBack, err := strconv.Atoi(r.URL.Query().Get("days_back"))
	if err != nil || daysBack < 0 {
		daysBack = 0
	}

	bets, err := h.service.ListSettled(r.Context(), time.Now().UTC(), r.URL.Query().Get("sport"), daysBack)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="settled_bets.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"settled_at", "event_date", "sport", "wager", "bet_amount", "payout_amount", "net"})
	for _, b := range bets {
		settledAt := ""
		if b.SettledAt != nil {
			settledAt = b.SettledAt.Format(time.RFC3339)
		}
		net := ""
		if b.Net != nil {
			net = b.Net.StringFixed(2)
		}
		_ = cw.Write([]string{
			settledAt,
			b.EventDate.Format(eventDateLayout),
			b.Sport,
			b.WagerText,
			b.BetAmount.StringFixed(2),
			b.PayoutAmount.StringFixed(2),
			net,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("Failed to write CSV export", "error", err)
	}
}

// LastStake returns the remembered stake for a sport.
// GET /sports/{sport}/last-stake
func (h *BetHandler) LastStake(w http.ResponseWriter, r *http.Request) {
	sport := chi.URLParam(r, "sport")

	amount, ok, err := h.service.LastStake(r.Context(), sport)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	resp := map[string]interface{}{"sport": sport, "found": ok}
	if ok {
		resp["amount"] = amount
	}
	h.respondWithJSON(w, http.StatusOK, resp)
}

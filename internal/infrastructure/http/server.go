package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tcmbrates/internal/application"
	"tcmbrates/internal/domain"
	"tcmbrates/internal/infrastructure/logx"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RatesService is the part of application.RatesService the API serves.
type RatesService interface {
	GetRates(ctx context.Context, date time.Time, all bool) (domain.Rates, error)
	GetCurrency(ctx context.Context, date time.Time, code string) (domain.CurrencyQuote, error)
	Today() time.Time
	Location() *time.Location
}

var _ RatesService = (*application.RatesService)(nil)

type Server struct {
	svc     RatesService
	timeout time.Duration
}

func NewServer(svc RatesService, requestTimeout time.Duration) *Server {
	return &Server{svc: svc, timeout: requestTimeout}
}

type quoteResponse struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Unit int    `json:"unit"`
	Buy  string `json:"buy"`
	Sell string `json:"sell"`
	Mid  string `json:"mid,omitempty"`
}

type ratesResponse struct {
	Date          string          `json:"date"`
	PublishedDate string          `json:"published_date,omitempty"`
	Quotes        []quoteResponse `json:"quotes"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetRates serves GET /rates?date=YYYY-MM-DD&all=true.
func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	date, err := s.dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	all := false
	if v := r.URL.Query().Get("all"); v != "" {
		if all, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "all must be a boolean")
			return
		}
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()
	rates, err := s.svc.GetRates(ctx, date, all)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRatesResponse(rates))
}

// GetCurrency serves GET /rates/{code}?date=YYYY-MM-DD.
func (s *Server) GetCurrency(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !domain.ValidateCode(code) {
		writeError(w, http.StatusBadRequest, "code must be three letters")
		return
	}
	date, err := s.dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.withTimeout(r.Context())
	defer cancel()
	q, err := s.svc.GetCurrency(ctx, date, code)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponse(q))
}

func (s *Server) dateParam(r *http.Request) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get("date"))
	if v == "" {
		return s.svc.Today(), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, v, s.svc.Location())
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD")
	}
	return d, nil
}

func (s *Server) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logx.WithFields(r.Context()).Warn("rates_request_failed", zap.Int("status", status), zap.Error(err))
	}
	writeError(w, status, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCurrencyCode):
		return http.StatusBadRequest, "invalid currency code"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "currency not found"
	case errors.Is(err, application.ErrNoData):
		return http.StatusNotFound, "no rates published in the lookback window"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timeout"
	case errors.Is(err, application.ErrTransport):
		return http.StatusBadGateway, "rates publisher unavailable"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func toRatesResponse(r domain.Rates) ratesResponse {
	out := ratesResponse{
		Date:   r.Date.Format(time.DateOnly),
		Quotes: make([]quoteResponse, 0, len(r.Quotes)),
	}
	if !r.PublishedDate.IsZero() {
		out.PublishedDate = r.PublishedDate.Format(time.DateOnly)
	}
	for _, q := range r.Quotes {
		out.Quotes = append(out.Quotes, toQuoteResponse(q))
	}
	return out
}

func toQuoteResponse(q domain.CurrencyQuote) quoteResponse {
	out := quoteResponse{Code: q.Code, Name: q.Name, Unit: q.Unit, Buy: q.Buy, Sell: q.Sell}
	if mid, ok := q.Mid(); ok {
		out.Mid = mid.String()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}

// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"umrah_quotes/internal/app"
	"umrah_quotes/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	C *app.QuoteService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Post("/v1/hotels", h.saveHotel)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Delete("/v1/hotels/{id}", h.deleteHotel)

	s.mux.Get("/v1/settings", h.getSettings)
	s.mux.Post("/v1/settings", h.saveSetting)
	s.mux.Delete("/v1/settings/{id}", h.deleteSetting)

	s.mux.Get("/v1/quotes", h.listQuotes)
	s.mux.Post("/v1/quotes", h.createQuote)
	s.mux.Post("/v1/quotes/price", h.priceQuote)
	s.mux.Get("/v1/quotes/{id}", h.getQuote)
	s.mux.Put("/v1/quotes/{id}", h.updateQuote)
	s.mux.Put("/v1/quotes/{id}/dates", h.editDates)
	s.mux.Delete("/v1/quotes/{id}", h.deleteQuote)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrCheckOutNotAfterCheckIn):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Dates", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		log.Error().Err(err).Msg("handler failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers with ETag/304 semantics for read endpoints.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ---- hotels ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]hotelDTO, 0, len(hotels))
	for _, ht := range hotels {
		out = append(out, toHotelDTO(ht))
	}
	writeCached(w, r, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	ht, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeCached(w, r, toHotelDTO(ht))
}

func (h *Handlers) saveHotel(w http.ResponseWriter, r *http.Request) {
	var d hotelDTO
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if d.Name == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "name is required")
		return
	}
	ht := fromHotelDTO(d)
	id, err := h.C.SaveHotel(r.Context(), ht)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	ht.ID = id
	writeJSON(w, http.StatusOK, toHotelDTO(ht))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if err := h.C.DeleteHotel(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- settings ----

func (h *Handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	g, err := h.Q.GetSettings(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeCached(w, r, toSettingsDTO(g))
}

func (h *Handlers) saveSetting(w http.ResponseWriter, r *http.Request) {
	var d settingDTO
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if d.Category == "" || d.Label == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "category and label are required")
		return
	}
	st := fromSettingDTO(d)
	id, err := h.C.SaveSetting(r.Context(), st)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	st.ID = id
	writeJSON(w, http.StatusOK, toSettingDTO(st))
}

func (h *Handlers) deleteSetting(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if err := h.C.DeleteSetting(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- quotes ----

func (h *Handlers) listQuotes(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	offset := 0
	if os := r.URL.Query().Get("offset"); os != "" {
		o, err := strconv.Atoi(os)
		if err != nil || o < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
			return
		}
		offset = o
	}

	quotes, err := h.Q.ListQuotes(r.Context(), domain.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]quoteDTO, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteDTO(q))
	}
	writeCached(w, r, out)
}

func (h *Handlers) getQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	q, err := h.Q.GetQuote(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeCached(w, r, toQuoteDTO(q))
}

func (h *Handlers) createQuote(w http.ResponseWriter, r *http.Request) {
	var d quoteDTO
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	q, err := h.C.CreateQuote(r.Context(), fromQuoteDTO(d))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuoteDTO(q))
}

func (h *Handlers) updateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	var d quoteDTO
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	q := fromQuoteDTO(d)
	q.ID = id
	updated, err := h.C.UpdateQuote(r.Context(), q)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(updated))
}

func (h *Handlers) priceQuote(w http.ResponseWriter, r *http.Request) {
	var d quoteDTO
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	res, err := h.C.Price(r.Context(), fromQuoteDTO(d))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, priceResultDTO{
		Quote:         toQuoteDTO(res.Draft),
		Changed:       res.Changed,
		MarginPercent: res.MarginPercent,
	})
}

func (h *Handlers) editDates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	var d dateEditDTO
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	city := domain.City(d.City)
	valid := false
	for _, c := range domain.Cities {
		if c == city {
			valid = true
		}
	}
	if !valid {
		writeProblem(w, http.StatusBadRequest, "Invalid City", "city must be one of Makkah, Medina, Jeddah")
		return
	}
	if (d.CheckIn == "") == (d.CheckOut == "") {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "exactly one of checkIn or checkOut must be set")
		return
	}

	var (
		q   domain.Quote
		err error
	)
	if d.CheckIn != "" {
		q, err = h.C.EditCheckIn(r.Context(), id, city, d.CheckIn)
	} else {
		q, err = h.C.EditCheckOut(r.Context(), id, city, d.CheckOut)
	}
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(q))
}

func (h *Handlers) deleteQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return
	}
	if err := h.C.DeleteQuote(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

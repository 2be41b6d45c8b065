package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "umrah_quotes/internal/adapters/http_server"
	"umrah_quotes/internal/app"
	"umrah_quotes/internal/domain"
)

// ---------- in-memory fakes ----------

type memQuotes struct {
	byID   map[int64]domain.Quote
	nextID int64
}

func (m *memQuotes) InsertQuote(_ context.Context, q domain.Quote) (int64, error) {
	m.nextID++
	q.ID = m.nextID
	m.byID[q.ID] = q
	return q.ID, nil
}
func (m *memQuotes) UpdateQuote(_ context.Context, q domain.Quote) error {
	if _, ok := m.byID[q.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[q.ID] = q
	return nil
}
func (m *memQuotes) DeleteQuote(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
func (m *memQuotes) GetQuote(_ context.Context, id int64) (domain.Quote, error) {
	q, ok := m.byID[id]
	if !ok {
		return domain.Quote{}, domain.ErrNotFound
	}
	return q, nil
}
func (m *memQuotes) ListQuotes(_ context.Context, _ domain.PageQuery) ([]domain.Quote, error) {
	out := make([]domain.Quote, 0, len(m.byID))
	for _, q := range m.byID {
		out = append(out, q)
	}
	return out, nil
}

type memCatalog struct {
	hotels   map[int64]domain.Hotel
	settings map[int64]domain.Setting
	nextID   int64
}

func (m *memCatalog) UpsertHotel(_ context.Context, h domain.Hotel) (int64, error) {
	if h.ID == 0 {
		m.nextID++
		h.ID = m.nextID
	}
	m.hotels[h.ID] = h
	return h.ID, nil
}
func (m *memCatalog) UpsertSetting(_ context.Context, s domain.Setting) (int64, error) {
	if s.ID == 0 {
		m.nextID++
		s.ID = m.nextID
	}
	m.settings[s.ID] = s
	return s.ID, nil
}
func (m *memCatalog) DeleteHotel(_ context.Context, id int64) error {
	if _, ok := m.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.hotels, id)
	return nil
}
func (m *memCatalog) DeleteSetting(_ context.Context, id int64) error {
	if _, ok := m.settings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.settings, id)
	return nil
}
func (m *memCatalog) GetHotel(_ context.Context, id int64) (domain.Hotel, error) {
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}
func (m *memCatalog) ListHotels(_ context.Context) ([]domain.Hotel, error) {
	out := make([]domain.Hotel, 0, len(m.hotels))
	for _, h := range m.hotels {
		out = append(out, h)
	}
	return out, nil
}
func (m *memCatalog) ListSettings(_ context.Context) ([]domain.Setting, error) {
	out := make([]domain.Setting, 0, len(m.settings))
	for _, s := range m.settings {
		out = append(out, s)
	}
	return out, nil
}

type noCache struct{}

func (noCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (noCache) Set(context.Context, string, any, int) error    { return nil }
func (noCache) Del(context.Context, string) error              { return nil }

// ---------- fixture ----------

func newTestServer(t *testing.T) (*httptest.Server, *memQuotes) {
	t.Helper()
	quotes := &memQuotes{byID: map[int64]domain.Quote{}}
	catalog := &memCatalog{hotels: map[int64]domain.Hotel{}, settings: map[int64]domain.Setting{}}
	catalog.UpsertHotel(context.Background(), domain.Hotel{
		Name: "Dar Al Salam", City: domain.CityMakkah,
		BasePrices: domain.RoomPrices{domain.RoomDouble: "1000"},
	})
	catalog.UpsertSetting(context.Background(), domain.Setting{
		Category: domain.SettingMeal, Label: "Demi-pension", Price: "1200", Active: true,
	})

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Q: app.NewQueryService(quotes, catalog, noCache{}, time.Minute),
		C: app.NewQuoteService(quotes, catalog, noCache{}),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts, quotes
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return res
}

const draftBody = `{
	"clientName": "Benali",
	"legs": {"makkah": {"hotel": "Dar Al Salam", "checkIn": "01/01/2025", "checkOut": "04/01/2025"}},
	"quantities": {"double": "1"},
	"flightPrice": "5000",
	"advanceAmount": "2000"
}`

// ---------- the tests ----------

func TestCreateAndGetQuote(t *testing.T) {
	ts, _ := newTestServer(t)

	res := postJSON(t, ts.URL+"/v1/quotes", draftBody)
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	var created map[string]any
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["total"] != "8000" || created["remainingAmount"] != "6000" {
		t.Fatalf("totals: %v / %v", created["total"], created["remainingAmount"])
	}
	if !strings.HasPrefix(created["reference"].(string), "QT-") {
		t.Fatalf("reference: %v", created["reference"])
	}

	get, err := http.Get(ts.URL + "/v1/quotes/1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", get.StatusCode)
	}
	etag := get.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	// conditional re-read short-circuits
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/v1/quotes/1", nil)
	req.Header.Set("If-None-Match", etag)
	cond, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	defer cond.Body.Close()
	if cond.StatusCode != http.StatusNotModified {
		t.Fatalf("conditional status %d", cond.StatusCode)
	}
}

func TestPricePreview(t *testing.T) {
	ts, quotes := newTestServer(t)

	res := postJSON(t, ts.URL+"/v1/quotes/price", draftBody)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var out struct {
		Quote   map[string]any `json:"quote"`
		Changed bool           `json:"changed"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Quote["total"] != "8000" || !out.Changed {
		t.Fatalf("preview: %+v", out)
	}
	if len(quotes.byID) != 0 {
		t.Fatal("preview persisted a quote")
	}
}

func TestEditDates_RejectsBadCheckOut(t *testing.T) {
	ts, quotes := newTestServer(t)

	res := postJSON(t, ts.URL+"/v1/quotes", draftBody)
	res.Body.Close()
	stored := quotes.byID[1]

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/quotes/1/dates",
		bytes.NewReader([]byte(`{"city": "Makkah", "checkOut": "01/01/2025"}`)))
	req.Header.Set("Content-Type", "application/json")
	rej, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer rej.Body.Close()
	if rej.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", rej.StatusCode)
	}
	if ct := rej.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q", ct)
	}
	if got := quotes.byID[1]; got.Legs.Makkah.CheckOut != stored.Legs.Makkah.CheckOut {
		t.Fatal("rejected edit mutated the stored quote")
	}
}

func TestEditDates_ShiftsCheckOut(t *testing.T) {
	ts, _ := newTestServer(t)

	res := postJSON(t, ts.URL+"/v1/quotes", draftBody)
	res.Body.Close()

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/quotes/1/dates",
		bytes.NewReader([]byte(`{"city": "Makkah", "checkIn": "10/01/2025"}`)))
	req.Header.Set("Content-Type", "application/json")
	ok, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer ok.Body.Close()
	if ok.StatusCode != http.StatusOK {
		t.Fatalf("status %d", ok.StatusCode)
	}
	var out struct {
		Legs struct {
			Makkah struct {
				CheckOut string `json:"checkOut"`
				Nights   string `json:"nights"`
			} `json:"makkah"`
		} `json:"legs"`
	}
	if err := json.NewDecoder(ok.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Legs.Makkah.CheckOut != "13/01/2025" || out.Legs.Makkah.Nights != "3" {
		t.Fatalf("leg after shift: %+v", out.Legs.Makkah)
	}
}

func TestGetSettings_Grouped(t *testing.T) {
	ts, _ := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/settings")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var out map[string][]map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out["meal"]) != 1 || out["meal"][0]["label"] != "Demi-pension" {
		t.Fatalf("meal group: %+v", out["meal"])
	}
}

func TestQuoteNotFound(t *testing.T) {
	ts, _ := newTestServer(t)
	res, err := http.Get(ts.URL + "/v1/quotes/99")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", res.StatusCode)
	}
}

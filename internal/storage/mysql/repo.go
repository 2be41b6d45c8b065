package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"umrah_quotes/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- Catalog ----

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	base, _ := json.Marshal(domain.CloneRoomPrices(h.BasePrices))
	seasonal, _ := json.Marshal(h.SeasonalPrices)
	res, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.Name,
		string(h.City),
		valStr(h.Distance),
		valInt(h.Stars),
		string(base),
		string(seasonal),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpsertSetting(ctx context.Context, s domain.Setting) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertSettingSQL,
		s.Category, s.Label, s.Price, s.Active,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM hotels WHERE id = ?`, id)
}

func (r *Repo) DeleteSetting(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM settings WHERE id = ?`, id)
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	return scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx, listSettingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.ID, &s.Category, &s.Label, &s.Price, &s.Active); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ---- Quotes ----

func (r *Repo) InsertQuote(ctx context.Context, q domain.Quote) (int64, error) {
	args, err := quoteArgs(q)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertQuoteSQL, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateQuote(ctx context.Context, q domain.Quote) error {
	args, err := quoteArgs(q)
	if err != nil {
		return err
	}
	// update statement carries no created_at; swap the trailing arg for the id
	args[len(args)-1] = q.ID
	res, err := r.db.ExecContext(ctx, updateQuoteSQL, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		// RowsAffected is 0 both for missing rows and no-op updates; only
		// report not-found when the row truly is not there.
		var one int
		if scanErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM quotes WHERE id = ?`, q.ID).Scan(&one); scanErr == sql.ErrNoRows {
			return domain.ErrNotFound
		}
	}
	return err
}

func (r *Repo) DeleteQuote(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM quotes WHERE id = ?`, id)
}

func (r *Repo) GetQuote(ctx context.Context, id int64) (domain.Quote, error) {
	return scanQuote(r.db.QueryRowContext(ctx, getQuoteSQL, id))
}

func (r *Repo) ListQuotes(ctx context.Context, pg domain.PageQuery) ([]domain.Quote, error) {
	limit := pg.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listQuotesSQL, limit, pg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// ---- Internals ----

func (r *Repo) deleteByID(ctx context.Context, stmt string, id int64) error {
	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// quoteArgs marshals q into the shared column order of insertQuoteSQL and
// updateQuoteSQL (the last slot is created_at for insert, id for update).
func quoteArgs(q domain.Quote) ([]any, error) {
	legs, err := json.Marshal(q.Legs)
	if err != nil {
		return nil, err
	}
	meals, _ := json.Marshal(q.Meals)
	quantities, _ := json.Marshal(domain.CloneRoomPrices(q.Quantities))
	prices, _ := json.Marshal(domain.CloneRoomPrices(q.Prices))

	return []any{
		q.Reference, q.ClientName, q.ClientPhone, q.CreatedBy, q.PassportImage,
		q.Destination, q.Period, string(legs), q.Transport, q.TransportIntercity, string(meals),
		q.NumberOfAdults, q.NumberOfChildren,
		q.FlightPrice, q.FlightPriceChild, q.TransportPrice, q.TransportPriceChild,
		q.VisaPrice, q.VisaPriceChild,
		string(quantities), q.ExtraCosts, q.Margin, q.Advance,
		string(prices), q.HotelTotal, q.Expenses, q.Total, q.Remaining,
		q.Status, q.Processing, q.Notes, valTime(q.CreatedAt),
	}, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var distance sql.NullString
	var stars sql.NullInt64
	var baseJSON, seasonalJSON []byte

	if err := row.Scan(&h.ID, &h.Name, &h.City, &distance, &stars, &baseJSON, &seasonalJSON); err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	if distance.Valid {
		d := distance.String
		h.Distance = &d
	}
	if stars.Valid {
		s := int(stars.Int64)
		h.Stars = &s
	}
	_ = json.Unmarshal(baseJSON, &h.BasePrices)
	_ = json.Unmarshal(seasonalJSON, &h.SeasonalPrices)
	h.BasePrices = domain.CloneRoomPrices(h.BasePrices)
	return h, nil
}

func scanQuote(row rowScanner) (domain.Quote, error) {
	var q domain.Quote
	var legsJSON, mealsJSON, quantitiesJSON, pricesJSON []byte
	var createdAt sql.NullTime

	if err := row.Scan(
		&q.ID, &q.Reference, &q.ClientName, &q.ClientPhone, &q.CreatedBy, &q.PassportImage,
		&q.Destination, &q.Period, &legsJSON, &q.Transport, &q.TransportIntercity, &mealsJSON,
		&q.NumberOfAdults, &q.NumberOfChildren,
		&q.FlightPrice, &q.FlightPriceChild, &q.TransportPrice, &q.TransportPriceChild,
		&q.VisaPrice, &q.VisaPriceChild,
		&quantitiesJSON, &q.ExtraCosts, &q.Margin, &q.Advance,
		&pricesJSON, &q.HotelTotal, &q.Expenses, &q.Total, &q.Remaining,
		&q.Status, &q.Processing, &q.Notes, &createdAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Quote{}, domain.ErrNotFound
		}
		return domain.Quote{}, err
	}
	_ = json.Unmarshal(legsJSON, &q.Legs)
	_ = json.Unmarshal(mealsJSON, &q.Meals)
	_ = json.Unmarshal(quantitiesJSON, &q.Quantities)
	_ = json.Unmarshal(pricesJSON, &q.Prices)
	q.Quantities = domain.CloneRoomPrices(q.Quantities)
	q.Prices = domain.CloneRoomPrices(q.Prices)
	if createdAt.Valid {
		q.CreatedAt = createdAt.Time
	}
	return q, nil
}

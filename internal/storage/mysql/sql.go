package mysql

// Hotels are keyed by name: quotes reference their hotels by name, and the
// importer re-runs against the same catalog. LAST_INSERT_ID(id) makes the
// upsert return the surviving row id on both insert and update.
const upsertHotelSQL = `
INSERT INTO hotels
  (name, city, distance, stars, base_prices, seasonal_prices)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  id              = LAST_INSERT_ID(id),
  city            = VALUES(city),
  distance        = VALUES(distance),
  stars           = VALUES(stars),
  base_prices     = VALUES(base_prices),
  seasonal_prices = VALUES(seasonal_prices),
  updated_at      = CURRENT_TIMESTAMP
`

const upsertSettingSQL = `
INSERT INTO settings
  (category, label, price, active)
VALUES
  (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  id     = LAST_INSERT_ID(id),
  price  = VALUES(price),
  active = VALUES(active)
`

const insertQuoteSQL = `
INSERT INTO quotes
  (reference, client_name, client_phone, created_by, passport_image,
   destination, period, legs, transport, transport_intercity, meals,
   number_of_adults, number_of_children,
   flight_price, flight_price_child, transport_price, transport_price_child,
   visa_price, visa_price_child,
   quantities, extra_costs, margin, advance,
   prices, hotel_total, expenses, total, remaining,
   status, processing, notes, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
`

const updateQuoteSQL = `
UPDATE quotes SET
  reference             = ?,
  client_name           = ?,
  client_phone          = ?,
  created_by            = ?,
  passport_image        = ?,
  destination           = ?,
  period                = ?,
  legs                  = ?,
  transport             = ?,
  transport_intercity   = ?,
  meals                 = ?,
  number_of_adults      = ?,
  number_of_children    = ?,
  flight_price          = ?,
  flight_price_child    = ?,
  transport_price       = ?,
  transport_price_child = ?,
  visa_price            = ?,
  visa_price_child      = ?,
  quantities            = ?,
  extra_costs           = ?,
  margin                = ?,
  advance               = ?,
  prices                = ?,
  hotel_total           = ?,
  expenses              = ?,
  total                 = ?,
  remaining             = ?,
  status                = ?,
  processing            = ?,
  notes                 = ?
WHERE id = ?
`

const quoteColumns = `
  id, reference, client_name, client_phone, created_by, passport_image,
  destination, period, legs, transport, transport_intercity, meals,
  number_of_adults, number_of_children,
  flight_price, flight_price_child, transport_price, transport_price_child,
  visa_price, visa_price_child,
  quantities, extra_costs, margin, advance,
  prices, hotel_total, expenses, total, remaining,
  status, processing, notes, created_at`

const getQuoteSQL = `SELECT` + quoteColumns + `
FROM quotes
WHERE id = ?
`

const listQuotesSQL = `SELECT` + quoteColumns + `
FROM quotes
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

const hotelColumns = `id, name, city, distance, stars, base_prices, seasonal_prices`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`

const listHotelsSQL = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY city, name`

const listSettingsSQL = `
SELECT id, category, label, price, active
FROM settings
ORDER BY category, label
`

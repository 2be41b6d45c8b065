package domain

// RoomType is one of the six fixed occupancy categories a hotel sells.
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
	RoomQuad   RoomType = "quad"
	RoomPenta  RoomType = "penta"
	RoomSuite  RoomType = "suite"
)

// RoomTypes lists every room type in display order. Price/quantity maps
// always carry the full set; missing values read as "0".
var RoomTypes = []RoomType{RoomSingle, RoomDouble, RoomTriple, RoomQuad, RoomPenta, RoomSuite}

// City is a destination leg of a package.
type City string

const (
	CityMakkah City = "Makkah"
	CityMedina City = "Medina"
	CityJeddah City = "Jeddah"
)

var Cities = []City{CityMakkah, CityMedina, CityJeddah}

// RoomPrices maps room type to a decimal-string amount. Amounts stay
// strings end to end to match the legacy store's wire convention.
type RoomPrices map[RoomType]string

// SeasonalRate overrides base prices for one named period.
type SeasonalRate struct {
	PeriodName string
	Prices     RoomPrices
}

type Hotel struct {
	ID       int64
	Name     string // quotes reference hotels by name
	City     City
	Distance *string
	Stars    *int
	// Base prices apply when no seasonal entry matches the active period
	// or the seasonal value for a room type is unset.
	BasePrices     RoomPrices
	SeasonalPrices []SeasonalRate
}

// Setting categories as stored by the agency backend.
const (
	SettingDestination        = "destination"
	SettingPeriod             = "period"
	SettingTransportMain      = "transport_main"
	SettingTransportIntercity = "transport_intercity"
	SettingMeal               = "meal"
	SettingAgencyInfo         = "agency_info"
)

// Setting is one catalog option (meal, period, transport company, ...).
// Labels are unique within a category.
type Setting struct {
	ID       int64
	Category string
	Label    string
	Price    string // decimal string, "0" when the option is free
	Active   bool
}

// SettingsByCategory is the grouped shape the edit surface consumes.
type SettingsByCategory struct {
	Destinations []Setting
	Periods      []Setting
	Transports   []Setting
	Intercity    []Setting
	Meals        []Setting
}

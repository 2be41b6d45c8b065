package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"umrah_quotes/internal/domain"
)

// Dates travel as day/month/year strings, matching the legacy records.
const dateLayout = "02/01/2006"

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return t, err == nil
}

// Nights derives the stay length from a check-in/check-out pair. Missing
// or unparseable dates read as 0 nights; negative spans clamp to 0.
func Nights(checkIn, checkOut string) int {
	in, okIn := parseDate(checkIn)
	out, okOut := parseDate(checkOut)
	if !okIn || !okOut {
		return 0
	}
	n := int(math.Ceil(out.Sub(in).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// EditCheckIn sets a leg's check-in date and keeps the date pair
// consistent: if the new check-in lands on or after the existing
// check-out, the check-out shifts forward to preserve the previous stay
// length (minimum one night); a leg without a check-out gets one the
// next day. Nights are refreshed on all legs afterwards.
func EditCheckIn(q domain.Quote, city domain.City, newCheckIn string) domain.Quote {
	leg := q.Legs.For(city)
	if in, ok := parseDate(newCheckIn); ok {
		if out, hasOut := parseDate(leg.CheckOut); hasOut {
			if !in.Before(out) {
				dur := 1
				if oldIn, okOld := parseDate(leg.CheckIn); okOld {
					if d := int(out.Sub(oldIn).Hours() / 24); d > 1 {
						dur = d
					}
				}
				leg.CheckOut = in.AddDate(0, 0, dur).Format(dateLayout)
			}
		} else {
			leg.CheckOut = in.AddDate(0, 0, 1).Format(dateLayout)
		}
	}
	leg.CheckIn = newCheckIn
	q.Legs = q.Legs.With(city, clearStaleNights(leg))
	q, _ = refreshNights(q)
	return q
}

// EditCheckOut sets a leg's check-out date. A check-out on or before the
// leg's current check-in is rejected: the draft comes back unchanged with
// domain.ErrCheckOutNotAfterCheckIn.
func EditCheckOut(q domain.Quote, city domain.City, newCheckOut string) (domain.Quote, error) {
	leg := q.Legs.For(city)
	if out, ok := parseDate(newCheckOut); ok {
		if in, okIn := parseDate(leg.CheckIn); okIn && !out.After(in) {
			return q, domain.ErrCheckOutNotAfterCheckIn
		}
	}
	leg.CheckOut = newCheckOut
	q.Legs = q.Legs.With(city, clearStaleNights(leg))
	q, _ = refreshNights(q)
	return q, nil
}

// clearStaleNights zeroes the derived night count of an edited leg whose
// date pair no longer parses; refreshNights skips incomplete pairs and
// would otherwise leave the old count standing against garbage dates.
func clearStaleNights(leg domain.Leg) domain.Leg {
	_, okIn := parseDate(leg.CheckIn)
	_, okOut := parseDate(leg.CheckOut)
	if !okIn || !okOut {
		leg.Nights = "0"
	}
	return leg
}

// refreshNights rewrites the derived night count of every leg whose date
// pair is complete. Legs without both dates keep their hand-entered
// nights. Reports whether any leg changed.
func refreshNights(q domain.Quote) (domain.Quote, bool) {
	changed := false
	for _, c := range domain.Cities {
		leg := q.Legs.For(c)
		if _, okIn := parseDate(leg.CheckIn); !okIn {
			continue
		}
		if _, okOut := parseDate(leg.CheckOut); !okOut {
			continue
		}
		n := strconv.Itoa(Nights(leg.CheckIn, leg.CheckOut))
		if leg.Nights != n {
			leg.Nights = n
			q.Legs = q.Legs.With(c, leg)
			changed = true
		}
	}
	return q, changed
}

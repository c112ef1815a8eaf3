package flights

import (
	"net/url"
	"strconv"
)

// values builds the google_flights query parameters, filling in the
// original engine defaults for party size and trip type.
func (s *Input) values(currency string) url.Values {
	adults := s.Adults
	if adults == 0 {
		adults = 1
	}
	tripType := s.Type
	if tripType == 0 {
		tripType = RoundTrip
	}
	values := url.Values{}
	values.Set("departure_id", s.DepartureID)
	values.Set("arrival_id", s.ArrivalID)
	values.Set("outbound_date", s.OutboundDate)
	if s.ReturnDate != "" {
		values.Set("return_date", s.ReturnDate)
	}
	values.Set("currency", currency)
	values.Set("adults", strconv.Itoa(adults))
	values.Set("children", strconv.Itoa(s.Children))
	values.Set("infants_in_seat", strconv.Itoa(s.InfantsInSeat))
	values.Set("infants_on_lap", strconv.Itoa(s.InfantsOnLap))
	values.Set("stops", "1")
	values.Set("type", strconv.Itoa(tripType))
	return values
}

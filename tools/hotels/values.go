package hotels

import (
	"net/url"
	"strconv"
)

// values builds the google_hotels query parameters, filling in the original
// engine defaults for sorting, party size and rooms.
func (s *Input) values(currency string) url.Values {
	sortBy := s.SortBy
	if sortBy == "" {
		sortBy = SortByRating
	}
	adults := s.Adults
	if adults == 0 {
		adults = 1
	}
	rooms := s.Rooms
	if rooms == 0 {
		rooms = 1
	}
	values := url.Values{}
	values.Set("q", s.Query)
	values.Set("check_in_date", s.CheckInDate)
	values.Set("check_out_date", s.CheckOutDate)
	values.Set("sort_by", sortBy)
	values.Set("currency", currency)
	values.Set("adults", strconv.Itoa(adults))
	values.Set("children", strconv.Itoa(s.Children))
	values.Set("rooms", strconv.Itoa(rooms))
	if s.HotelClass != "" {
		values.Set("hotel_class", s.HotelClass)
	}
	return values
}

package hotels

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/voyagent/voyagent/serpapi"
)

const fixture = `{
  "properties": [
    {
      "name": "The Legian Seminyak",
      "type": "hotel",
      "description": "Refined beachfront resort with suites.",
      "link": "https://www.example.com/legian",
      "rate_per_night": {"lowest": "$425", "extracted_lowest": 425},
      "total_rate": {"lowest": "$2,550", "extracted_lowest": 2550},
      "overall_rating": 4.7,
      "reviews": 1213,
      "extracted_hotel_class": 5,
      "amenities": ["Free Wi-Fi", "Pool", "Spa"]
    },
    {
      "name": "Uma Karan",
      "type": "hotel",
      "rate_per_night": {"lowest": "$58", "extracted_lowest": 58},
      "overall_rating": 4.4,
      "reviews": 356,
      "extracted_hotel_class": 3
    }
  ]
}`

func startSearchServer(t *testing.T, params *url.Values, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if params != nil {
			*params = r.URL.Query()
		}
		w.Write([]byte(body))
	}))
}

func TestHotelSearch(t *testing.T) {
	var got url.Values
	srv := startSearchServer(t, &got, fixture)
	defer srv.Close()
	tool := New(serpapi.New("test-key", serpapi.WithBaseURL(srv.URL)))
	input := &Input{
		Query:        "Seminyak Bali Resorts",
		CheckInDate:  "2026-07-10",
		CheckOutDate: "2026-07-16",
		Adults:       2,
		HotelClass:   "4,5",
	}
	output := new(Output)
	if err := tool.Run(context.Background(), input, output); err != nil {
		t.Fatalf("Error running hotel search: %v", err)
	}
	expects := map[string]string{
		"engine":         "google_hotels",
		"q":              "Seminyak Bali Resorts",
		"check_in_date":  "2026-07-10",
		"check_out_date": "2026-07-16",
		"adults":         "2",
		"children":       "0",
		"rooms":          "1",
		"sort_by":        SortByRating,
		"hotel_class":    "4,5",
		"currency":       "USD",
	}
	for k, v := range expects {
		if got.Get(k) != v {
			t.Errorf("expect %s=%s, but got %s", k, v, got.Get(k))
		}
	}
	if len(output.Properties) != 2 {
		t.Fatalf("expect 2 properties, but got %d", len(output.Properties))
	}
	first := output.Properties[0]
	if first.Name != "The Legian Seminyak" {
		t.Errorf("expect The Legian Seminyak, but got %s", first.Name)
	}
	if first.RatePerNight == nil || first.RatePerNight.ExtractedLowest != 425 {
		t.Errorf("unexpected rate per night: %+v", first.RatePerNight)
	}
	if first.HotelClass != 5 {
		t.Errorf("expect hotel class 5, but got %d", first.HotelClass)
	}
	if len(first.Amenities) != 3 {
		t.Errorf("expect 3 amenities, but got %d", len(first.Amenities))
	}
}

func TestHotelSearchDefaults(t *testing.T) {
	var got url.Values
	srv := startSearchServer(t, &got, `{"properties":[]}`)
	defer srv.Close()
	tool := New(serpapi.New("test-key", serpapi.WithBaseURL(srv.URL)))
	input := &Input{
		Query:        "Kyoto",
		CheckInDate:  "2026-11-02",
		CheckOutDate: "2026-11-05",
	}
	if err := tool.Run(context.Background(), input, new(Output)); err != nil {
		t.Fatalf("Error running hotel search: %v", err)
	}
	if got.Get("adults") != "1" {
		t.Errorf("expect default adults 1, but got %s", got.Get("adults"))
	}
	if got.Get("rooms") != "1" {
		t.Errorf("expect default rooms 1, but got %s", got.Get("rooms"))
	}
	if got.Get("sort_by") != SortByRating {
		t.Errorf("expect default sort by rating, but got %s", got.Get("sort_by"))
	}
	if got.Has("hotel_class") {
		t.Error("expect empty hotel class to be omitted")
	}
}

func TestHotelSearchInvalidInput(t *testing.T) {
	srv := startSearchServer(t, nil, fixture)
	defer srv.Close()
	tool := New(serpapi.New("test-key", serpapi.WithBaseURL(srv.URL)))
	cases := []*Input{
		{CheckInDate: "2026-07-10", CheckOutDate: "2026-07-16"},
		{Query: "Bali", CheckOutDate: "2026-07-16"},
		{Query: "Bali", CheckInDate: "2026-07-10"},
		{Query: "Bali", CheckInDate: "July 10", CheckOutDate: "2026-07-16"},
	}
	for idx, input := range cases {
		if err := tool.Run(context.Background(), input, new(Output)); err == nil {
			t.Errorf("case %d: expect validation error", idx)
		}
	}
}

func TestHotelSearchMaxResults(t *testing.T) {
	var listings string
	for i := 0; i < 8; i++ {
		if i > 0 {
			listings += ","
		}
		listings += fmt.Sprintf(`{"name":"Hotel %d"}`, i)
	}
	srv := startSearchServer(t, nil, `{"properties":[`+listings+`]}`)
	defer srv.Close()
	tool := New(serpapi.New("test-key", serpapi.WithBaseURL(srv.URL)))
	output := new(Output)
	input := &Input{
		Query:        "Lisbon",
		CheckInDate:  "2026-05-01",
		CheckOutDate: "2026-05-04",
	}
	if err := tool.Run(context.Background(), input, output); err != nil {
		t.Fatalf("Error running hotel search: %v", err)
	}
	if len(output.Properties) != 5 {
		t.Errorf("expect 5 properties, but got %d", len(output.Properties))
	}
}

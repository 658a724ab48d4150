package types

import "strings"

// Page is one of the four dashboard views.
type Page string

const (
	PageHome       Page = "home"
	PagePollutants Page = "pollutants"
	PageWeather    Page = "weather"
	PageTrends     Page = "trends"
)

// Pages lists the navigation entries in sidebar order.
var Pages = []Page{PageHome, PagePollutants, PageWeather, PageTrends}

var pageLabels = map[Page]string{
	PageHome:       "Home",
	PagePollutants: "Pollutant Analysis",
	PageWeather:    "Weather Impact",
	PageTrends:     "Long-term Trends",
}

func (p Page) Label() string {
	return pageLabels[p]
}

func (p Page) Valid() bool {
	_, ok := pageLabels[p]
	return ok
}

// ParsePage accepts a page key ("trends") or its navigation label ("Long-term Trends").
func ParsePage(s string) (Page, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PageHome, true
	}
	p := Page(strings.ToLower(s))
	if p.Valid() {
		return p, true
	}
	for page, label := range pageLabels {
		if strings.EqualFold(label, s) {
			return page, true
		}
	}
	return PageHome, false
}

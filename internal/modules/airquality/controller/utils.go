package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"airquality-server/internal/modules/airquality/types"
)

// parsePageQuery resolves ?page=. Unknown values fall back to home and return
// a notice for the user.
func parsePageQuery(r *http.Request) (types.Page, string) {
	raw := r.URL.Query().Get("page")
	page, ok := types.ParsePage(raw)
	if !ok {
		return page, fmt.Sprintf("Unknown page %q, showing %s instead.", raw, page.Label())
	}
	return page, ""
}

// apiPage maps an /api/v1/{view} name to a page. "overview" is the home page.
func apiPage(name string) (types.Page, bool) {
	if name == "overview" {
		return types.PageHome, true
	}
	p := types.Page(name)
	if p == types.PageHome || !p.Valid() {
		return "", false
	}
	return p, true
}

func wantSeries(r *http.Request) (bool, error) {
	s := r.URL.Query().Get("series")
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.New("invalid 'series' (expected boolean)")
	}
	return v, nil
}

func statusFor(err error) int {
	if errors.Is(err, types.ErrDataUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

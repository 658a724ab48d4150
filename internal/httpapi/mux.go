package httpapi

import (
	"net/http"
)

func NewMux(dataset datasetCounter) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, dataset)
	return mux
}

package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/library-allocations/library/features/query/allocationhistory"
)

func (api *API) getHistory(w http.ResponseWriter, r *http.Request) {
	result, err := api.history.Handle(r.Context(), allocationhistory.BuildQuery(api.today()))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(result.Entries, historyResourceFrom))
}

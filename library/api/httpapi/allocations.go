package httpapi

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/allocatebookcopy"
	"github.com/AntonStoeckl/library-allocations/library/features/command/returnallocation"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocations"
)

const (
	queryParamBook     = "book"
	queryParamMember   = "member"
	queryParamReturned = "returned"
)

func (api *API) listAllocations(w http.ResponseWriter, r *http.Request) {
	query, err := api.allocationsQueryFrom(r)
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	result, err := api.allocations.Handle(r.Context(), query)
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(result.Allocations, allocationResourceFrom))
}

// allocationsQueryFrom reads the optional filters ?book=&member=&returned= of the listing.
func (api *API) allocationsQueryFrom(r *http.Request) (allocations.Query, error) {
	params := r.URL.Query()
	query := allocations.BuildQuery(api.today())

	if raw := params.Get(queryParamBook); raw != "" {
		bookID, err := core.ParseID("book", raw)
		if err != nil {
			return allocations.Query{}, err
		}

		query = query.ForBook(bookID)
	}

	if raw := params.Get(queryParamMember); raw != "" {
		memberID, err := core.ParseID("member", raw)
		if err != nil {
			return allocations.Query{}, err
		}

		query = query.ForMember(memberID)
	}

	if raw := params.Get(queryParamReturned); raw != "" {
		returned, err := strconv.ParseBool(raw)
		if err != nil {
			return allocations.Query{}, core.ValidationError("returned must be true or false, got %q", raw)
		}

		query = query.WithReturned(returned)
	}

	return query, nil
}

func (api *API) getAllocation(w http.ResponseWriter, r *http.Request) {
	allocationID, err := core.ParseID("allocation", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithAllocation(w, r, http.StatusOK, allocationID)
}

func (api *API) postAllocation(w http.ResponseWriter, r *http.Request) {
	var req allocationRequest
	if err := readJSON(r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}

	command, err := api.allocateCommandFrom(req)
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	if _, err = api.allocateBookCopy.Handle(r.Context(), command); err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithAllocation(w, r, http.StatusCreated, command.AllocationID)
}

func (api *API) allocateCommandFrom(req allocationRequest) (allocatebookcopy.Command, error) {
	bookID, err := core.ParseID("book", req.BookID)
	if err != nil {
		return allocatebookcopy.Command{}, err
	}

	memberID, err := core.ParseID("member", req.MemberID)
	if err != nil {
		return allocatebookcopy.Command{}, err
	}

	startDate, err := core.ParseDate(req.StartDate)
	if err != nil {
		return allocatebookcopy.Command{}, err
	}

	endDate, err := core.ParseDate(req.EndDate)
	if err != nil {
		return allocatebookcopy.Command{}, err
	}

	allocationID, err := api.newID()
	if err != nil {
		return allocatebookcopy.Command{}, err
	}

	return allocatebookcopy.BuildCommand(allocationID, bookID, memberID, startDate, endDate, api.clock()), nil
}

// deleteAllocation returns the allocated copy. The allocation itself stays in the history.
func (api *API) deleteAllocation(w http.ResponseWriter, r *http.Request) {
	allocationID, err := core.ParseID("allocation", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	if _, err = api.returnAllocation.Handle(r.Context(), returnallocation.BuildCommand(allocationID, api.clock())); err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithAllocation(w, r, http.StatusOK, allocationID)
}

func (api *API) respondWithAllocation(w http.ResponseWriter, r *http.Request, status int, allocationID uuid.UUID) {
	result, err := api.allocations.Handle(r.Context(), allocations.BuildQueryForAllocation(allocationID, api.today()))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, status, allocationResourceFrom(result.Allocations[0]))
}

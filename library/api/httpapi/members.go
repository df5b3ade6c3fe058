package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/editmember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/registermember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removemember"
	"github.com/AntonStoeckl/library-allocations/library/features/query/registeredmembers"
)

func (api *API) listMembers(w http.ResponseWriter, r *http.Request) {
	result, err := api.members.Handle(r.Context(), registeredmembers.BuildQuery())
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(result.Members, memberResourceFrom))
}

func (api *API) getMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := core.ParseID("member", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithMember(w, r, http.StatusOK, memberID)
}

func (api *API) postMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := readJSON(r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}

	memberID, err := api.newID()
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	command := registermember.BuildCommand(memberID, req.Name, req.email(), req.phone(), api.clock())
	if _, err = api.registerMember.Handle(r.Context(), command); err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithMember(w, r, http.StatusCreated, memberID)
}

func (api *API) putMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := core.ParseID("member", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	var req memberRequest
	if err = readJSON(r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}

	command := editmember.BuildCommand(memberID, req.Name, req.email(), req.phone(), api.clock())
	if _, err = api.editMember.Handle(r.Context(), command); err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithMember(w, r, http.StatusOK, memberID)
}

func (api *API) deleteMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := core.ParseID("member", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	if _, err = api.removeMember.Handle(r.Context(), removemember.BuildCommand(memberID, api.clock())); err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Msg: "Success"})
}

func (api *API) respondWithMember(w http.ResponseWriter, r *http.Request, status int, memberID uuid.UUID) {
	result, err := api.members.Handle(r.Context(), registeredmembers.BuildQueryForMember(memberID))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, status, memberResourceFrom(result.Members[0]))
}

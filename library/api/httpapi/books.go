package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/addbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/editbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removebook"
	"github.com/AntonStoeckl/library-allocations/library/features/query/booksincatalogue"
)

func (api *API) listBooks(w http.ResponseWriter, r *http.Request) {
	result, err := api.books.Handle(r.Context(), booksincatalogue.BuildQuery())
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapSlice(result.Books, bookResourceFrom))
}

func (api *API) getBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := core.ParseID("book", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithBook(w, r, http.StatusOK, bookID)
}

func (api *API) postBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := readJSON(r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}

	totalCopies, err := req.totalCopies()
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	bookID, err := api.newID()
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	command := addbook.BuildCommand(bookID, req.Name, req.Author, totalCopies, api.clock())
	if _, err = api.addBook.Handle(r.Context(), command); err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithBook(w, r, http.StatusCreated, bookID)
}

func (api *API) putBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := core.ParseID("book", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	var req bookRequest
	if err = readJSON(r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}

	totalCopies, err := req.totalCopies()
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	command := editbook.BuildCommand(bookID, req.Name, req.Author, totalCopies, api.clock())
	if _, err = api.editBook.Handle(r.Context(), command); err != nil {
		api.writeError(w, r, err)
		return
	}

	api.respondWithBook(w, r, http.StatusOK, bookID)
}

func (api *API) deleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := core.ParseID("book", r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	if _, err = api.removeBook.Handle(r.Context(), removebook.BuildCommand(bookID, api.clock())); err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Msg: "Success"})
}

func (api *API) respondWithBook(w http.ResponseWriter, r *http.Request, status int, bookID uuid.UUID) {
	result, err := api.books.Handle(r.Context(), booksincatalogue.BuildQueryForBook(bookID))
	if err != nil {
		api.writeError(w, r, err)
		return
	}

	writeJSON(w, status, bookResourceFrom(result.Books[0]))
}

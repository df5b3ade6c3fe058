package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/addbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/allocatebookcopy"
	"github.com/AntonStoeckl/library-allocations/library/features/command/editbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/editmember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/registermember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removebook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/removemember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/returnallocation"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocationhistory"
	"github.com/AntonStoeckl/library-allocations/library/features/query/allocations"
	"github.com/AntonStoeckl/library-allocations/library/features/query/booksincatalogue"
	"github.com/AntonStoeckl/library-allocations/library/features/query/registeredmembers"
	"github.com/AntonStoeckl/library-allocations/library/shell"
)

const defaultRequestTimeout = 30 * time.Second

// Pinger is implemented by event stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API holds the command and query handlers behind the HTTP routes.
type API struct {
	eventStore     shell.EventStore
	logger         shell.Logger
	clock          func() time.Time
	newID          func() (uuid.UUID, error)
	corsOrigins    []string
	requestTimeout time.Duration
	retryOptions   []shell.RetryOption

	addBook          addbook.CommandHandler
	editBook         editbook.CommandHandler
	removeBook       removebook.CommandHandler
	registerMember   registermember.CommandHandler
	editMember       editmember.CommandHandler
	removeMember     removemember.CommandHandler
	allocateBookCopy allocatebookcopy.CommandHandler
	returnAllocation returnallocation.CommandHandler

	books       booksincatalogue.QueryHandler
	members     registeredmembers.QueryHandler
	allocations allocations.QueryHandler
	history     allocationhistory.QueryHandler
}

// Option configures the API.
type Option func(*API)

// WithLogger sets the logger for request logs and for all handlers.
func WithLogger(logger shell.Logger) Option {
	return func(api *API) {
		api.logger = logger
	}
}

// WithClock sets the source of "now", used for OccurredAt and for the overdue calculation.
func WithClock(clock func() time.Time) Option {
	return func(api *API) {
		api.clock = clock
	}
}

// WithIDGenerator replaces the UUIDv7 generator for new books, members and allocations.
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(api *API) {
		api.newID = newID
	}
}

// WithCORSOrigins sets the origins that receive CORS headers. "*" allows any origin.
func WithCORSOrigins(origins ...string) Option {
	return func(api *API) {
		api.corsOrigins = origins
	}
}

// WithRequestTimeout bounds the time a single request may take.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(api *API) {
		api.requestTimeout = timeout
	}
}

// WithRetryOptions configures the retry on concurrency conflicts of all command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(api *API) {
		api.retryOptions = opts
	}
}

// NewAPI wires all command and query handlers onto the event store.
func NewAPI(eventStore shell.EventStore, opts ...Option) *API {
	api := &API{
		eventStore:     eventStore,
		logger:         slog.New(slog.DiscardHandler),
		clock:          time.Now,
		newID:          uuid.NewV7,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(api)
	}

	api.addBook = addbook.NewCommandHandler(eventStore,
		addbook.WithLogger(api.logger), addbook.WithRetryOptions(api.retryOptions...))
	api.editBook = editbook.NewCommandHandler(eventStore,
		editbook.WithLogger(api.logger), editbook.WithRetryOptions(api.retryOptions...))
	api.removeBook = removebook.NewCommandHandler(eventStore,
		removebook.WithLogger(api.logger), removebook.WithRetryOptions(api.retryOptions...))
	api.registerMember = registermember.NewCommandHandler(eventStore,
		registermember.WithLogger(api.logger), registermember.WithRetryOptions(api.retryOptions...))
	api.editMember = editmember.NewCommandHandler(eventStore,
		editmember.WithLogger(api.logger), editmember.WithRetryOptions(api.retryOptions...))
	api.removeMember = removemember.NewCommandHandler(eventStore,
		removemember.WithLogger(api.logger), removemember.WithRetryOptions(api.retryOptions...))
	api.allocateBookCopy = allocatebookcopy.NewCommandHandler(eventStore,
		allocatebookcopy.WithLogger(api.logger), allocatebookcopy.WithRetryOptions(api.retryOptions...))
	api.returnAllocation = returnallocation.NewCommandHandler(eventStore,
		returnallocation.WithLogger(api.logger), returnallocation.WithRetryOptions(api.retryOptions...))

	api.books = booksincatalogue.NewQueryHandler(eventStore, booksincatalogue.WithLogger(api.logger))
	api.members = registeredmembers.NewQueryHandler(eventStore, registeredmembers.WithLogger(api.logger))
	api.allocations = allocations.NewQueryHandler(eventStore, allocations.WithLogger(api.logger))
	api.history = allocationhistory.NewQueryHandler(eventStore, allocationhistory.WithLogger(api.logger))

	return api
}

// Handler returns the routed HTTP handler wrapped in the middleware chain.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()

	api.handleCollection(mux, "GET", "/books", api.listBooks)
	api.handleCollection(mux, "POST", "/books", api.postBook)
	mux.HandleFunc("GET /books/{id}", api.getBook)
	mux.HandleFunc("PUT /books/{id}", api.putBook)
	mux.HandleFunc("DELETE /books/{id}", api.deleteBook)

	api.handleCollection(mux, "GET", "/members", api.listMembers)
	api.handleCollection(mux, "POST", "/members", api.postMember)
	mux.HandleFunc("GET /members/{id}", api.getMember)
	mux.HandleFunc("PUT /members/{id}", api.putMember)
	mux.HandleFunc("DELETE /members/{id}", api.deleteMember)

	api.handleCollection(mux, "GET", "/allocations", api.listAllocations)
	api.handleCollection(mux, "POST", "/allocations", api.postAllocation)
	mux.HandleFunc("GET /allocations/{id}", api.getAllocation)
	mux.HandleFunc("DELETE /allocations/{id}", api.deleteAllocation)

	api.handleCollection(mux, "GET", "/history", api.getHistory)

	mux.HandleFunc("GET /healthz", api.healthz)

	return api.withRequestLog(api.withCORS(api.withTimeout(mux)))
}

// handleCollection routes both "/books" and "/books/".
func (api *API) handleCollection(mux *http.ServeMux, method string, path string, handler http.HandlerFunc) {
	mux.HandleFunc(method+" "+path, handler)
	mux.HandleFunc(method+" "+path+"/{$}", handler)
}

func (api *API) today() core.Date {
	return core.DateOf(api.clock())
}

func (api *API) healthz(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := api.eventStore.(Pinger); ok {
		if err := pinger.Ping(r.Context()); err != nil {
			api.logger.Error(logMsgHealthCheckFailed, logAttrError, err.Error())
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Detail: "storage unavailable"})

			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

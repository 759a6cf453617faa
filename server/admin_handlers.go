package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-storefront/apiclient"
	"github.com/jrsteele09/go-storefront/catalog"
)

// adminResource is the CRUD surface of one back-office collection.
type adminResource interface {
	list(w http.ResponseWriter, r *http.Request)
	get(w http.ResponseWriter, r *http.Request)
	create(w http.ResponseWriter, r *http.Request)
	update(w http.ResponseWriter, r *http.Request)
	remove(w http.ResponseWriter, r *http.Request)
}

type resourceHandler[T any] struct {
	resource *apiclient.Resource[T]
}

func (h resourceHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.resource.List(r.Context(), r.URL.Query())
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h resourceHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.resource.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h resourceHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&item); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Malformed request body.")
		return
	}
	created, err := h.resource.Create(r.Context(), item)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h resourceHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&item); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Malformed request body.")
		return
	}
	updated, err := h.resource.Update(r.Context(), r.PathValue("id"), item)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h resourceHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.resource.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// adminResources maps the {resource} path segment to its collection.
func adminResources(c *catalog.Services) map[string]adminResource {
	return map[string]adminResource{
		"products":        resourceHandler[catalog.Product]{c.Products},
		"categories":      resourceHandler[catalog.Category]{c.Categories},
		"brands":          resourceHandler[catalog.Brand]{c.Brands},
		"suppliers":       resourceHandler[catalog.Supplier]{c.Suppliers},
		"offers":          resourceHandler[catalog.Offer]{c.Offers},
		"currency":        resourceHandler[catalog.Currency]{c.Currency},
		"orders":          resourceHandler[catalog.Order]{c.Orders},
		"customers":       resourceHandler[catalog.Customer]{c.Customers},
		"stock-movements": resourceHandler[catalog.StockMovement]{c.StockMovements},
	}
}

// AdminHandler dispatches back-office CRUD by resource name and method.
func (s *Server) AdminHandler() http.HandlerFunc {
	resources := adminResources(s.catalog)

	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := resources[r.PathValue("resource")]
		if !ok {
			writeJSONError(w, http.StatusNotFound, "not_found", "Unknown resource.")
			return
		}

		hasID := r.PathValue("id") != ""
		switch {
		case r.Method == http.MethodGet && !hasID:
			res.list(w, r)
		case r.Method == http.MethodGet:
			res.get(w, r)
		case r.Method == http.MethodPost && !hasID:
			res.create(w, r)
		case r.Method == http.MethodPut && hasID:
			res.update(w, r)
		case r.Method == http.MethodDelete && hasID:
			res.remove(w, r)
		default:
			writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed.")
		}
	}
}

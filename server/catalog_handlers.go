package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-storefront/apiclient"
	"github.com/jrsteele09/go-storefront/catalog"
	"github.com/rs/zerolog/log"
)

// writeUpstreamError maps a backend failure onto the response. Client errors keep their
// status so callers can react to 401 and 404, everything else becomes 502.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.StatusCode)
		}
		writeJSONError(w, apiErr.StatusCode, "upstream_error", msg)
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("backend request failed")
	writeJSONError(w, http.StatusBadGateway, "upstream_unavailable", "The store is temporarily unavailable.")
}

func (s *Server) ProductsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := s.catalog.SearchProducts(r.Context(), r.URL.Query())
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}

func (s *Server) ProductHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := s.catalog.Products.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func (s *Server) CategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := s.catalog.Categories.List(r.Context(), nil)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func (s *Server) BrandsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := s.catalog.Brands.List(r.Context(), nil)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, brands)
	}
}

// MyOrdersHandler lists the signed-in customer's orders.
func (s *Server) MyOrdersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.catalog.MyOrders(r.Context())
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func (s *Server) CheckoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req catalog.CheckoutRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "Malformed checkout request.")
			return
		}
		if len(req.Items) == 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid_request", "The cart is empty.")
			return
		}
		for _, item := range req.Items {
			if item.ProductID == "" || item.Quantity <= 0 {
				writeJSONError(w, http.StatusBadRequest, "invalid_request", "Every item needs a product and a positive quantity.")
				return
			}
		}

		order, err := s.catalog.Checkout(r.Context(), req)
		if err != nil {
			writeUpstreamError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/service"
)

// tripRequest is the body of POST /api/trips and PUT /api/trips/{id}.
// Amounts may be sent as JSON numbers or strings.
type tripRequest struct {
	Date          flexString `json:"date"`
	OrderID       flexString `json:"orderId"`
	VehicleNumber flexString `json:"vehicleNumber"`
	From          flexString `json:"from"`
	To            flexString `json:"to"`
	Amount        flexString `json:"amount"`
	ExtraCharge   flexString `json:"extraCharge"`
	Remarks       flexString `json:"remarks"`
	Status        flexString `json:"status"`
}

func (b tripRequest) input() domain.TripInput {
	return domain.TripInput{
		Date:          string(b.Date),
		OrderID:       string(b.OrderID),
		VehicleNumber: string(b.VehicleNumber),
		From:          string(b.From),
		To:            string(b.To),
		Amount:        string(b.Amount),
		ExtraCharge:   string(b.ExtraCharge),
		Remarks:       string(b.Remarks),
		Status:        string(b.Status),
	}
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /api/trips.
type TripList struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	created, err := s.trips.Create(r.Context(), body.input())
	if err != nil {
		s.writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips.
// Supports ?date=, ?month= or ?from=&to= filters, ?q= search and ?page= and
// ?limit= paging (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params, err := bindListParams(r)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	page := domain.NewPaginationParams(params.Page, params.Limit)
	result, err := s.trips.List(r.Context(), service.ListQuery{
		Filter: params.filter(),
		Search: params.search(),
		Page:   page,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(result.Total))
	writeJSON(w, http.StatusOK, TripList{
		Data: result.Items,
		Pagination: Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: result.Total,
		},
	})
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	trip, err := s.trips.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), id, body.input())
	if err != nil {
		s.writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{id}.
// Deleting a trip that does not exist also returns 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusRequest is the body of PATCH /api/trips/{id}/status.
type statusRequest struct {
	Status domain.Status `json:"status"`
}

// SetTripStatus handles PATCH /api/trips/{id}/status.
func (s *Server) SetTripStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	var body statusRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	trip, err := s.trips.SetStatus(r.Context(), id, body.Status)
	if err != nil {
		s.writeServiceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

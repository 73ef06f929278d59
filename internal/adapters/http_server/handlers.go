package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/lily-0015/hotel-reservation-system/internal/adapters/observability"
	"github.com/lily-0015/hotel-reservation-system/internal/app"
	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

type Handlers struct{ S *app.Services }

var validate = validator.New()

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// MountHandlers wires the public routes. Availability and health stay
// open; everything that names a caller goes through Auth.
func (s *Server) MountHandlers(h *Handlers, jwtSecret []byte) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms/available", h.listAvailableRooms)

	s.mux.Group(func(r chi.Router) {
		r.Use(Auth(jwtSecret))
		r.Post("/v1/hotel", h.initHotel)
		r.Post("/v1/rooms", h.addRoom)
		r.Put("/v1/rooms/{id}", h.updateRoom)
		r.Delete("/v1/rooms/{id}", h.deleteRoom)
		r.Post("/v1/reservations", h.makeReservation)
		r.Post("/v1/reservations/{id}/checkout", h.checkOutAndPay)
	})
}

// ---- request/response shapes ----

type initHotelRequest struct {
	Name string `json:"name" validate:"required"`
}

type roomRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Price      string `json:"price" validate:"required"`
}

type reservationRequest struct {
	RoomID       string    `json:"room_id" validate:"required"`
	CheckInDate  time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate time.Time `json:"check_out_date" validate:"required"`
}

type checkoutRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// ---- handlers ----

func (h *Handlers) initHotel(w http.ResponseWriter, r *http.Request) {
	var req initHotelRequest
	if !decodeValid(w, r, &req) {
		return
	}
	caller, _ := CallerFrom(r.Context())
	id, err := h.S.Registry.Init(r.Context(), caller, req.Name)
	if err != nil {
		writeOpErr(w, "init_hotel", err)
		return
	}
	observability.ObserveOp("init_hotel", "ok")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) listAvailableRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.S.Rooms.ListAvailable(r.Context())
	if err != nil {
		writeOpErr(w, "get_available_rooms", err)
		return
	}
	observability.ObserveOp("get_available_rooms", "ok")

	etag, body := calcETagAndBody(map[string]any{"rooms": rooms})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write available rooms body")
	}
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeValid(w, r, &req) {
		return
	}
	caller, _ := CallerFrom(r.Context())
	id, err := h.S.Rooms.Add(r.Context(), caller, app.RoomPayload{RoomNumber: req.RoomNumber, Price: req.Price})
	if err != nil {
		writeOpErr(w, "add_room", err)
		return
	}
	observability.ObserveOp("add_room", "ok")
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if !decodeValid(w, r, &req) {
		return
	}
	caller, _ := CallerFrom(r.Context())
	id, err := h.S.Rooms.Update(r.Context(), caller, chi.URLParam(r, "id"), app.RoomPayload{RoomNumber: req.RoomNumber, Price: req.Price})
	if err != nil {
		writeOpErr(w, "update_room", err)
		return
	}
	observability.ObserveOp("update_room", "ok")
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	caller, _ := CallerFrom(r.Context())
	id := chi.URLParam(r, "id")
	if err := h.S.Rooms.Delete(r.Context(), caller, id); err != nil {
		writeOpErr(w, "delete_room", err)
		return
	}
	observability.ObserveOp("delete_room", "ok")
	writeJSON(w, http.StatusOK, map[string]string{
		"msg": fmt.Sprintf("Room of ID: %s removed successfully", id),
	})
}

func (h *Handlers) makeReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !decodeValid(w, r, &req) {
		return
	}
	caller, _ := CallerFrom(r.Context())
	conf, err := h.S.Reservations.Make(r.Context(), caller, app.ReservationPayload{
		RoomID:       req.RoomID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
	})
	if err != nil {
		writeOpErr(w, "make_reservation", err)
		return
	}
	observability.ObserveOp("make_reservation", "ok")
	writeJSON(w, http.StatusCreated, map[string]string{
		"id":          conf.ID,
		"room_number": conf.RoomNumber,
		"msg":         fmt.Sprintf("Your Reservation ID: %s for Room: %s", conf.ID, conf.RoomNumber),
	})
}

func (h *Handlers) checkOutAndPay(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !decodeValid(w, r, &req) {
		return
	}
	caller, _ := CallerFrom(r.Context())
	rec, err := h.S.Payments.CheckOutAndPay(r.Context(), caller, chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeOpErr(w, "check_out_and_pay", err)
		return
	}
	observability.ObserveOp("check_out_and_pay", "ok")
	writeJSON(w, http.StatusOK, map[string]any{
		"msg":    rec.Msg,
		"amount": json.Number(rec.Amount.String()),
	})
}

// ---- plumbing ----

func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "malformed JSON body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return false
	}
	return true
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusConflict, "Already Initialized"
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, "Not Authorized"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrNoneAvailable):
		return http.StatusNotFound, "None Available"
	case errors.Is(err, domain.ErrRoomUnavailable):
		return http.StatusConflict, "Room Unavailable"
	case errors.Is(err, domain.ErrAlreadyPaid):
		return http.StatusConflict, "Already Paid"
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, "Invalid Request"
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

func writeOpErr(w http.ResponseWriter, op string, err error) {
	status, title := statusFor(err)
	observability.ObserveOp(op, title)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("op", op).Msg("operation failed")
		detail = "" // don't leak internals
	}
	writeProblem(w, status, title, detail)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

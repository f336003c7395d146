package adaptor

import (
	"net/http"

	"popcorn-palace/internal/dto/request"
	"popcorn-palace/internal/usecase"
	"popcorn-palace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

func (h *ShowtimeHandler) showtimeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "showtimeId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid showtime ID", map[string]string{"showtimeId": err.Error()})
		return 0, false
	}
	return id, true
}

// CreateShowtime handles POST /showtimes
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime created successfully", showtime)
}

// GetShowtime handles GET /showtimes/{showtimeId}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := h.showtimeID(w, r)
	if !ok {
		return
	}

	showtime, err := h.service.GetShowtimeByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime retrieved successfully", showtime)
}

// UpdateShowtime handles POST /showtimes/update/{showtimeId}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := h.showtimeID(w, r)
	if !ok {
		return
	}

	var req request.ShowtimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /showtimes/{showtimeId}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := h.showtimeID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted successfully", nil)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/services"
)

type RideHandler struct {
	rides    *services.RideService
	bookings *services.BookingService
}

func NewRideHandler(rides *services.RideService, bookings *services.BookingService) *RideHandler {
	return &RideHandler{rides: rides, bookings: bookings}
}

func (h *RideHandler) Search(c *gin.Context) {
	filter, err := parseRideFilter(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	rides, err := h.rides.Search(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newRideResponses(rides)})
}

func (h *RideHandler) Get(c *gin.Context) {
	rideID, err := pathUUID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	ride, err := h.rides.GetRide(c.Request.Context(), rideID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRideResponse(ride))
}

func (h *RideHandler) ListMine(c *gin.Context) {
	rides, err := h.rides.ListDriverRides(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newRideResponses(rides)})
}

func (h *RideHandler) Publish(c *gin.Context) {
	var req services.PublishRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "body", Msg: "invalid JSON body"})
		return
	}

	ride, err := h.bookings.PublishRide(c.Request.Context(), mustActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRideResponse(ride))
}

func (h *RideHandler) Cancel(c *gin.Context) {
	rideID, err := pathUUID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	ride, err := h.bookings.CancelRide(c.Request.Context(), mustActor(c), rideID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRideResponse(ride))
}

func parseRideFilter(c *gin.Context) (domain.RideFilter, error) {
	filter := domain.RideFilter{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
	}

	if raw := c.Query("date"); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filter, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
		}
		start, end := domain.DayWindow(day)
		filter.From, filter.To = &start, &end
	}

	// An explicit window narrows the day window.
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.ValidationError{Field: "from", Msg: "must be RFC3339"}
		}
		if filter.From == nil || from.After(*filter.From) {
			filter.From = &from
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.ValidationError{Field: "to", Msg: "must be RFC3339"}
		}
		if filter.To == nil || to.Before(*filter.To) {
			filter.To = &to
		}
	}

	if raw := c.Query("seatsNeeded"); raw != "" {
		seats, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domain.ValidationError{Field: "seatsNeeded", Msg: "must be an integer"}
		}
		filter.MinSeats = seats
	}

	if raw := c.Query("maxPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, domain.ValidationError{Field: "maxPrice", Msg: "must be a number"}
		}
		filter.MaxPrice = &price
	}

	lat, lng, radius := c.Query("originLat"), c.Query("originLng"), c.Query("radiusKm")
	if lat != "" || lng != "" || radius != "" {
		near, err := parseGeoRadius(lat, lng, radius)
		if err != nil {
			return filter, err
		}
		filter.Near = near
	}

	return filter, nil
}

func parseGeoRadius(lat, lng, radius string) (*domain.GeoRadius, error) {
	if lat == "" || lng == "" || radius == "" {
		return nil, domain.ValidationError{Field: "originLat", Msg: "originLat, originLng and radiusKm must be given together"}
	}

	var near domain.GeoRadius
	var err error
	if near.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return nil, domain.ValidationError{Field: "originLat", Msg: "must be a number"}
	}
	if near.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return nil, domain.ValidationError{Field: "originLng", Msg: "must be a number"}
	}
	if near.RadiusKm, err = strconv.ParseFloat(radius, 64); err != nil {
		return nil, domain.ValidationError{Field: "radiusKm", Msg: "must be a number"}
	}
	return &near, nil
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.ValidationError{Field: name, Msg: "must be a UUID"}
	}
	return id, nil
}

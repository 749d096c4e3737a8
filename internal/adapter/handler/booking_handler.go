package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
	"github.com/srgjo27/carpool_booking/internal/core/services"
)

type BookingHandler struct {
	svc       *services.BookingService
	publisher ports.EventPublisher
	log       *logrus.Logger
}

func NewBookingHandler(svc *services.BookingService, publisher ports.EventPublisher, log *logrus.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, publisher: publisher, log: log}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "body", Msg: "invalid JSON body"})
		return
	}

	booking, err := h.svc.CreateBooking(c.Request.Context(), mustActor(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	h.publish(c.Request.Context(), domain.BookingEvent{
		BookingID: booking.ID,
		RideID:    booking.RideID,
		NewStatus: booking.Status,
	})

	c.JSON(http.StatusCreated, newBookingResponse(booking))
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.svc.ListPassengerBookings(c.Request.Context(), mustActor(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newBookingResponses(bookings)})
}

func (h *BookingHandler) ListForRide(c *gin.Context) {
	rideID, err := pathUUID(c, "rideId")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	bookings, err := h.svc.ListRideBookings(c.Request.Context(), mustActor(c), rideID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": newBookingResponses(bookings)})
}

func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, h.svc.AcceptBooking)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	h.transition(c, h.svc.RejectBooking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, h.svc.CancelBooking)
}

type transitionFunc func(context.Context, domain.Actor, uuid.UUID) (*services.BookingResult, error)

func (h *BookingHandler) transition(c *gin.Context, fn transitionFunc) {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	res, err := fn(c.Request.Context(), mustActor(c), bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if event, ok := res.Event(); ok {
		h.publish(c.Request.Context(), event)
	}

	c.JSON(http.StatusOK, TransitionResponse{
		Booking: newBookingResponse(res.Booking),
		Ride:    newRideResponse(res.Ride),
	})
}

// publish never fails the request; the state change is already committed.
func (h *BookingHandler) publish(ctx context.Context, event domain.BookingEvent) {
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"booking_id": event.BookingID,
			"ride_id":    event.RideID,
			"status":     event.NewStatus,
		}).Warn("failed to publish booking event")
	}
}

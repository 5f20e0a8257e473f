package handler

import (
	"github.com/julienschmidt/httprouter"
)

// Router bundles the bookings service handlers into a single route
// registrar for the application shell.
type Router struct {
	bookings     *BookingHandler
	availability *AvailabilityHandler
}

func NewRouter(bookings *BookingHandler, availability *AvailabilityHandler) *Router {
	return &Router{
		bookings:     bookings,
		availability: availability,
	}
}

func (rt *Router) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", rt.bookings.Create)
	router.GET("/api/v1/bookings", rt.bookings.List)
	router.GET("/api/v1/bookings/my", rt.bookings.ListMine)
	router.GET("/api/v1/bookings/id/:id", rt.bookings.GetByID)
	router.POST("/api/v1/bookings/id/:id/cancel", rt.bookings.Cancel)
	router.GET("/api/v1/availability", rt.availability.GetDay)
}

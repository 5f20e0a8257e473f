package handler

import (
	"github.com/julienschmidt/httprouter"
)

// Router bundles the courts service handlers into a single route registrar
// for the application shell.
type Router struct {
	venues *VenueHandler
	courts *CourtHandler
}

func NewRouter(venues *VenueHandler, courts *CourtHandler) *Router {
	return &Router{
		venues: venues,
		courts: courts,
	}
}

func (rt *Router) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/venues", rt.venues.Create)
	router.GET("/api/v1/venues", rt.venues.GetAll)
	router.GET("/api/v1/venues/id/:id", rt.venues.GetByID)

	router.POST("/api/v1/courts", rt.courts.Create)
	router.GET("/api/v1/courts", rt.courts.GetByVenue)
	router.GET("/api/v1/courts/id/:id", rt.courts.GetByID)
	router.PATCH("/api/v1/courts/id/:id", rt.courts.Update)
	router.DELETE("/api/v1/courts/id/:id", rt.courts.Deactivate)
}

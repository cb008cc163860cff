package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"
	"vidtube_server/socket"

	"github.com/gorilla/mux"
)

// RegisterSubscriptionRoutes sets up routes for subscriptions under /api/v1/subscriptions
func RegisterSubscriptionRoutes(r *mux.Router, toggles *services.ToggleService, projections *services.ProjectionService, relations services.RelationStore, users *services.UserService, hub *socket.Hub) {
	controller := controllers.NewSubscriptionController(toggles, projections, relations, users, hub)

	subscriptionRouter := r.PathPrefix("/api/v1/subscriptions").Subrouter()
	subscriptionRouter.HandleFunc("/c/{channelId}", controller.HandleToggleSubscription).Methods("POST")
	subscriptionRouter.HandleFunc("/c/{channelId}", controller.HandleChannelSubscribers).Methods("GET")
	subscriptionRouter.HandleFunc("/u/{subscriberId}", controller.HandleSubscribedChannels).Methods("GET")
}

package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"
	"vidtube_server/socket"

	"github.com/gorilla/mux"
)

// RegisterLikeRoutes sets up routes for like toggles under /api/v1/likes
func RegisterLikeRoutes(r *mux.Router, toggles *services.ToggleService, projections *services.ProjectionService, relations services.RelationStore, videos *services.VideoService, hub *socket.Hub) {
	controller := controllers.NewLikeController(toggles, projections, relations, videos, hub)

	likeRouter := r.PathPrefix("/api/v1/likes").Subrouter()
	likeRouter.HandleFunc("/toggle/v/{videoId}", controller.HandleToggleVideoLike).Methods("POST")
	likeRouter.HandleFunc("/toggle/c/{commentId}", controller.HandleToggleCommentLike).Methods("POST")
	likeRouter.HandleFunc("/toggle/t/{tweetId}", controller.HandleToggleTweetLike).Methods("POST")
	likeRouter.HandleFunc("/videos", controller.HandleLikedVideos).Methods("GET")
}

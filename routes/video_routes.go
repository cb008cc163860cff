package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"

	"github.com/gorilla/mux"
)

// RegisterVideoRoutes sets up routes for video operations under /api/v1/videos
func RegisterVideoRoutes(r *mux.Router, videoService *services.VideoService) {
	controller := controllers.NewVideoController(videoService)

	videoRouter := r.PathPrefix("/api/v1/videos").Subrouter()
	videoRouter.HandleFunc("", controller.HandleListVideos).Methods("GET")
	videoRouter.HandleFunc("", controller.HandlePublish).Methods("POST")
	videoRouter.HandleFunc("/toggle/publish/{videoId}", controller.HandleTogglePublish).Methods("PATCH")
	videoRouter.HandleFunc("/{videoId}", controller.HandleGetVideo).Methods("GET")
	videoRouter.HandleFunc("/{videoId}", controller.HandleUpdateVideo).Methods("PATCH")
	videoRouter.HandleFunc("/{videoId}", controller.HandleDeleteVideo).Methods("DELETE")
}

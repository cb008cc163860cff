package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"

	"github.com/gorilla/mux"
)

// RegisterCommentRoutes sets up routes for comment operations under /api/v1/comments
func RegisterCommentRoutes(r *mux.Router, commentService *services.CommentService) {
	controller := controllers.NewCommentController(commentService)

	commentRouter := r.PathPrefix("/api/v1/comments").Subrouter()
	commentRouter.HandleFunc("/c/{commentId}", controller.HandleUpdateComment).Methods("PATCH")
	commentRouter.HandleFunc("/c/{commentId}", controller.HandleDeleteComment).Methods("DELETE")
	commentRouter.HandleFunc("/{videoId}", controller.HandleListComments).Methods("GET")
	commentRouter.HandleFunc("/{videoId}", controller.HandleAddComment).Methods("POST")
}

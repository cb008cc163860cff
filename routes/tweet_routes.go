package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"

	"github.com/gorilla/mux"
)

// RegisterTweetRoutes sets up routes for tweet operations under /api/v1/tweets
func RegisterTweetRoutes(r *mux.Router, tweetService *services.TweetService) {
	controller := controllers.NewTweetController(tweetService)

	tweetRouter := r.PathPrefix("/api/v1/tweets").Subrouter()
	tweetRouter.HandleFunc("", controller.HandleCreateTweet).Methods("POST")
	tweetRouter.HandleFunc("/user/{userId}", controller.HandleListUserTweets).Methods("GET")
	tweetRouter.HandleFunc("/{tweetId}", controller.HandleUpdateTweet).Methods("PATCH")
	tweetRouter.HandleFunc("/{tweetId}", controller.HandleDeleteTweet).Methods("DELETE")
}

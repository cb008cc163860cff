package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"vidtube_server/middleware"
	"vidtube_server/models"
	"vidtube_server/routes"
	"vidtube_server/services"
	"vidtube_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Core relation components
	relationStore := services.NewDynamoRelationStore(dynamoService)
	projectionService := services.NewProjectionService(relationStore)
	toggleService := services.NewToggleService(relationStore)

	// Initialize Services
	tokenService := services.NewTokenService(
		os.Getenv("ACCESS_TOKEN_SECRET"),
		os.Getenv("REFRESH_TOKEN_SECRET"),
	)
	userService := &services.UserService{Dynamo: dynamoService, Tokens: tokenService, Projections: projectionService}
	videoService := &services.VideoService{Dynamo: dynamoService, Projections: projectionService, Users: userService}
	commentService := &services.CommentService{Dynamo: dynamoService, Projections: projectionService, Users: userService, Videos: videoService}
	tweetService := &services.TweetService{Dynamo: dynamoService, Projections: projectionService}
	playlistService := &services.PlaylistService{Dynamo: dynamoService, Videos: videoService}

	// Every toggle validates its target through the owning service.
	toggleService.Register(models.KindLikesVideo, services.EntityResolverFunc(videoService.Exists))
	toggleService.Register(models.KindLikesComment, services.EntityResolverFunc(commentService.Exists))
	toggleService.Register(models.KindLikesTweet, services.EntityResolverFunc(tweetService.Exists))
	toggleService.Register(models.KindSubscribesTo, services.EntityResolverFunc(userService.Exists))

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.Use(middleware.Auth(tokenService))

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to VidTube")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Engagement hub for live like/subscriber counts
	hub := socket.NewHub()
	go func() {
		if err := hub.Server().Serve(); err != nil {
			log.Printf("socket server error: %v", err)
		}
	}()
	defer hub.Server().Close()
	r.Handle("/socket.io/", hub.Server())

	// Register routes
	routes.RegisterUserRoutes(r, userService)
	routes.RegisterVideoRoutes(r, videoService)
	routes.RegisterCommentRoutes(r, commentService)
	routes.RegisterTweetRoutes(r, tweetService)
	routes.RegisterPlaylistRoutes(r, playlistService)
	routes.RegisterLikeRoutes(r, toggleService, projectionService, relationStore, videoService, hub)
	routes.RegisterSubscriptionRoutes(r, toggleService, projectionService, relationStore, userService, hub)
	routes.RegisterS3Routes(r)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

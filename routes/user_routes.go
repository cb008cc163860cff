package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for account and channel operations under /api/v1/users
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	userRouter := r.PathPrefix("/api/v1/users").Subrouter()
	userRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	userRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	userRouter.HandleFunc("/logout", controller.HandleLogout).Methods("POST")
	userRouter.HandleFunc("/refresh-token", controller.HandleRefreshToken).Methods("POST")
	userRouter.HandleFunc("/current-user", controller.HandleCurrentUser).Methods("GET")
	userRouter.HandleFunc("/c/{username}", controller.HandleChannelProfile).Methods("GET")
}

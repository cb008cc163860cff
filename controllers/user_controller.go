package controllers

import (
	"encoding/json"
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/services"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type UserController struct {
	UserService *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{UserService: service}
}

// HandleRegister creates a new account.
func (c *UserController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	user, err := c.UserService.Register(r.Context(), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, user, "user registered successfully")
}

// HandleLogin verifies credentials and sets the token cookies.
func (c *UserController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	user, accessToken, refreshToken, err := c.UserService.Login(r.Context(), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	setAuthCookies(w, accessToken, refreshToken)
	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "user logged in successfully")
}

// HandleLogout clears the stored refresh token and the cookies.
func (c *UserController) HandleLogout(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r.Context())
	if err := c.UserService.Logout(r.Context(), actorID); err != nil {
		utils.WriteError(w, err)
		return
	}

	clearAuthCookies(w)
	utils.WriteSuccess(w, http.StatusOK, nil, "user logged out")
}

// HandleRefreshToken rotates the token pair from the refresh cookie or body.
func (c *UserController) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}
	if refreshToken == "" {
		utils.WriteError(w, utils.ErrUnauthorized)
		return
	}

	accessToken, newRefreshToken, err := c.UserService.RefreshTokens(r.Context(), refreshToken)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	setAuthCookies(w, accessToken, newRefreshToken)
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"accessToken":  accessToken,
		"refreshToken": newRefreshToken,
	}, "access token refreshed")
}

// HandleCurrentUser returns the authenticated user's record.
func (c *UserController) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r.Context())
	if actorID == "" {
		utils.WriteError(w, utils.ErrUnauthorized)
		return
	}

	user, err := c.UserService.GetByID(r.Context(), actorID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if user == nil {
		utils.WriteError(w, utils.NotFound("user does not exist"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, user, "current user fetched successfully")
}

// HandleChannelProfile returns a channel page with subscription aggregates
// relative to the (possibly anonymous) viewer.
func (c *UserController) HandleChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	viewerID := middleware.ActorID(r.Context())

	profile, err := c.UserService.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, profile, "channel profile fetched successfully")
}

func setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

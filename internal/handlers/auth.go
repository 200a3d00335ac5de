package handlers

import (
	"errors"

	"todolist/internal/auth"
	"todolist/internal/dto"
	"todolist/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgLoggedIn         = "Logged in Successfully!"
	msgBadCredentials   = "Your Username/Password was incorrect."
	msgNoAccount        = "That account does not exist. Please sign up here."
	msgAlreadyLoggedIn  = "You are already logged in."
	msgAlreadySignedUp  = "You are already logged in!"
	msgEmptyPassword    = "Your password cannot be empty."
	msgUsernameTaken    = "That username is already taken."
	msgEmailTaken       = "That email is already registered."
	msgSignedUp         = "You are Signed Up!!!"
	msgLoggedOut        = "Logged Out Successfully!"
	msgAlreadyLoggedOut = "Already Logged Out!"
)

// AuthHandler handles login, signup and logout.
type AuthHandler struct {
	sessions *auth.Sessions
	users    *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Sessions, users *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users}
}

func (h *AuthHandler) LoginForm(c *gin.Context) Result {
	if _, ok := auth.CurrentUser(c); ok {
		return redirect(pathHome, msgAlreadyLoggedIn)
	}
	return render("login.html", gin.H{"title": "Log in"})
}

func (h *AuthHandler) Login(c *gin.Context) Result {
	if !hasFields(c, dto.LoginFields) {
		return badForm()
	}
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		return badForm()
	}

	u, err := h.users.Authenticate(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		return redirect(pathSignup, msgNoAccount)
	case errors.Is(err, service.ErrWrongPassword):
		return render("login.html", gin.H{"title": "Log in", "form_username": form.Username}, msgBadCredentials)
	case err != nil:
		return internalError(c, "authenticate", err)
	}
	if err := h.sessions.Start(c, u.ID); err != nil {
		return internalError(c, "start session", err)
	}
	return redirect(pathHome, msgLoggedIn)
}

func (h *AuthHandler) SignupForm(c *gin.Context) Result {
	if _, ok := auth.CurrentUser(c); ok {
		return redirect(pathHome, msgAlreadySignedUp)
	}
	return render("signup.html", gin.H{"title": "Sign up"})
}

func (h *AuthHandler) Signup(c *gin.Context) Result {
	if !hasFields(c, dto.SignupFields) {
		return badForm()
	}
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		return badForm()
	}

	u, err := h.users.Signup(c.Request.Context(), form.Username, form.Password, form.Email)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, service.ErrEmptyPassword):
			msg = msgEmptyPassword
		case errors.Is(err, service.ErrUsernameTaken):
			msg = msgUsernameTaken
		case errors.Is(err, service.ErrEmailTaken):
			msg = msgEmailTaken
		default:
			return internalError(c, "signup", err)
		}
		return render("signup.html", gin.H{
			"title":         "Sign up",
			"form_username": form.Username,
			"form_email":    form.Email,
		}, msg)
	}
	if err := h.sessions.Start(c, u.ID); err != nil {
		return internalError(c, "start session", err)
	}
	return redirect(pathHome, msgSignedUp)
}

func (h *AuthHandler) Logout(c *gin.Context) Result {
	if _, ok := auth.CurrentUser(c); !ok {
		return redirect(pathLogin, msgAlreadyLoggedOut)
	}
	if err := h.sessions.End(c); err != nil {
		return internalError(c, "end session", err)
	}
	return redirect(pathLogin, msgLoggedOut)
}

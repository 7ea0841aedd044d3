package handlers

import (
	"errors"
	"log"
	"net/http"

	"firetask-backend/internal/accounts"
	"firetask-backend/internal/firebase"
	"firetask-backend/internal/types"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	accounts *accounts.Service
}

func NewAuthHandler(service *accounts.Service) *AuthHandler {
	return &AuthHandler{accounts: service}
}

type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.Failed("All fields are required."))
		return
	}

	user, err := h.accounts.Register(ctx.Request.Context(), accounts.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})

	if err != nil {
		var signupErr *accounts.SignupError

		switch {
		case errors.Is(err, accounts.ErrFieldsRequired):
			ctx.JSON(http.StatusBadRequest, types.Failed("All fields are required."))
		case errors.Is(err, accounts.ErrInvalidEmail):
			ctx.JSON(http.StatusBadRequest, types.Failed("Enter a valid email address."))
		case errors.Is(err, accounts.ErrPasswordTooShort):
			ctx.JSON(http.StatusBadRequest, types.Failed("Password must be at least 8 characters long."))
		case errors.As(err, &signupErr):
			log.Printf("User signup failed: %v", signupErr.Err)

			if signupErr.FieldErrors != nil {
				ctx.JSON(http.StatusBadRequest, types.FailedWithData("User signup failed.", signupErr.FieldErrors))
			} else {
				ctx.JSON(http.StatusBadRequest, types.Failed("User signup failed."))
			}
		default:
			// Provider errors surface their message text verbatim.
			ctx.JSON(http.StatusBadRequest, types.Failed(err.Error()))
		}

		return
	}

	ctx.JSON(http.StatusCreated, types.Success("User created successfully.", types.NewUserResponse(user)))
}

func (h *AuthHandler) SignIn(ctx *gin.Context) {
	var req SignInRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, types.Failed("Invalid email or password."))
		return
	}

	result, err := h.accounts.Login(ctx.Request.Context(), req.Email, req.Password)

	if err != nil {
		switch {
		case errors.Is(err, firebase.ErrInvalidCredentials):
			ctx.JSON(http.StatusBadRequest, types.Failed("Invalid email or password."))
		case errors.Is(err, accounts.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, types.Failed("User does not exist."))
		default:
			log.Printf("Sign-in failed: %v", err)
			ctx.JSON(http.StatusInternalServerError, types.Failed("Internal server error."))
		}

		return
	}

	ctx.JSON(http.StatusOK, types.Success("User logged in successfully.", types.LoginResponse{
		FirebaseID:           result.Session.LocalID,
		FirebaseAccessToken:  result.Session.IDToken,
		FirebaseRefreshToken: result.Session.RefreshToken,
		FirebaseExpiresIn:    result.Session.ExpiresIn,
		FirebaseKind:         result.Session.Kind,
		UserData:             types.NewUserResponse(result.User),
	}))
}

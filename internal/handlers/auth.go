package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akashthakur2701/GitWrite/internal/middleware"
	"github.com/akashthakur2701/GitWrite/internal/models"
)

type AuthHandler struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthHandler(db *gorm.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userProjection(u *models.User) gin.H {
	return gin.H{"id": u.ID, "email": u.Email, "name": u.Name}
}

// Signup registers a new user and returns a bearer token.
// POST /api/v1/user/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED")
		return
	}

	var existing models.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		respondError(c, http.StatusConflict, "User with this email already exists", "USER_EXISTS")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		failService(c, err, "Internal server error during signup", "SIGNUP_FAILED")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		failService(c, err, "Internal server error during signup", "SIGNUP_FAILED")
		return
	}

	user := models.User{Email: req.Email, Password: string(hash), Name: req.Name}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(c, http.StatusConflict, "User with this email already exists", "USER_EXISTS")
			return
		}
		failService(c, err, "Internal server error during signup", "SIGNUP_FAILED")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user.ID)
	if err != nil {
		failService(c, err, "Internal server error during signup", "SIGNUP_FAILED")
		return
	}

	respondOK(c, "User created successfully", gin.H{
		"token": token,
		"user":  userProjection(&user),
	})
}

// Signin authenticates by email and password and returns a bearer token.
// POST /api/v1/user/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", "VALIDATION_FAILED")
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
			return
		}
		failService(c, err, "Internal server error during signin", "SIGNIN_FAILED")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS")
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, user.ID)
	if err != nil {
		failService(c, err, "Internal server error during signin", "SIGNIN_FAILED")
		return
	}

	respondOK(c, "Sign in successful", gin.H{
		"token": token,
		"user":  userProjection(&user),
	})
}

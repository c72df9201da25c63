package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"agencyportal/internal/domain"
	"agencyportal/internal/domain/models"
	"agencyportal/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	users := repositories.UserRepository{}
	user, hash, err := users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password")
		} else {
			respondError(c, http.StatusInternalServerError, "internal_error", "login failed")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong email or password")
		return
	}
	if user.Status != "active" {
		respondError(c, http.StatusForbidden, "account_disabled", "account is not active")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   user.ID,
		"agency_id": user.AgencyID,
		"role":      user.Role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(h.Env.JWTSecret))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Password      string `json:"password"`
}

// POST /api/auth/register creates the agency (pending until an admin
// activates it) together with its first portal user.
func (h Handler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.ContactPerson = strings.TrimSpace(req.ContactPerson)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.CompanyName == "" || req.Email == "" || len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "validation_error", "company name, email and a password of at least 8 characters are required")
		return
	}

	users := repositories.UserRepository{}
	exists, err := users.EmailExists(req.Email)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "registration failed")
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "email_taken", "email is already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "registration failed")
		return
	}

	agencies := repositories.AgencyRepository{}
	agencyID, err := agencies.Create(models.Agency{
		CompanyName:    req.CompanyName,
		ContactPerson:  req.ContactPerson,
		Email:          req.Email,
		Phone:          strings.TrimSpace(req.Phone),
		CommissionRate: h.Env.CommissionRate,
		Status:         models.AgencyPending,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "could not create agency")
		return
	}

	userID, err := users.Create(models.User{
		Name:     req.ContactPerson,
		Email:    req.Email,
		Role:     domain.RoleAgency,
		AgencyID: agencyID,
		Status:   "active",
	}, string(hash))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "could not create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "registration received, the account awaits activation",
		"agency_id": agencyID,
		"user_id":   userID,
	})
}

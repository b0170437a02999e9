package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jamesatitpong11/labflowadmin/internal/auth"
	"github.com/jamesatitpong11/labflowadmin/pkg/response"
)

const invalidCredentialsMessage = "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type userPayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var (
		user         userPayload
		passwordHash string
	)
	err := h.DB.QueryRow(ctx, `
		select id, username, password_hash, first_name, last_name, role
		from users
		where username = $1
	`, req.Username).Scan(&user.ID, &user.Username, &passwordHash, &user.FirstName, &user.LastName, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Error(w, http.StatusUnauthorized, invalidCredentialsMessage)
			return
		}
		h.Logger.Error("login lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		response.Error(w, http.StatusUnauthorized, invalidCredentialsMessage)
		return
	}

	token, err := auth.IssueAccessToken(user.ID, user.Username, h.Config.JWTSecret,
		time.Duration(h.Config.JWTExpirySeconds)*time.Second)
	if err != nil {
		h.Logger.Error("login token issue failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.Logger.Info("user logged in", zap.String("username", user.Username))
	response.Success(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	}, "Login successful")
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if req.Role == "" {
		req.Role = "เจ้าหน้าที่"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Logger.Error("register hash failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	var user userPayload
	err = h.DB.QueryRow(ctx, `
		insert into users (username, password_hash, first_name, last_name, role)
		values ($1, $2, $3, $4, $5)
		returning id, username, first_name, last_name, role
	`, req.Username, string(hash), req.FirstName, req.LastName, req.Role).
		Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Role)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Error(w, http.StatusConflict, "Username already exists")
			return
		}
		h.Logger.Error("register insert failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.Logger.Info("user registered", zap.String("username", user.Username))
	response.Success(w, http.StatusCreated, map[string]any{"user": user}, "User registered successfully")
}

// VerifyToken checks a token supplied in the request body so the frontend can
// validate a stored session without attaching it as a header.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		response.Error(w, http.StatusBadRequest, "Token is required")
		return
	}

	claims, err := auth.VerifyAccessToken(req.Token, h.Config.JWTSecret)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	userID, err := claims.UserIDInt()
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var user userPayload
	err = h.DB.QueryRow(ctx, `
		select id, username, first_name, last_name, role
		from users
		where id = $1
	`, userID).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		h.Logger.Error("verify lookup failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	response.Success(w, http.StatusOK, map[string]any{"user": user}, "Token is valid")
}

package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskmate/internal/middleware"
	"taskmate/internal/models"
	"taskmate/internal/services"
)

// CookieConfig controls the session cookies.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	authService services.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService services.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// @Summary      Регистрация
// @Description  Creates an account and sets the accessToken/refreshToken cookies
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.SignupRequest  true  "Signup data"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "auth.signup", err)
		return
	}
	user, session, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, "auth.signup", err, "Invalid user data")
		return
	}
	h.setSession(c, session)
	respond(c, http.StatusCreated, gin.H{"user": user})
}

// @Summary      Вход в систему
// @Description  Аутентифицирует пользователя и выставляет cookie с токенами
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, "auth.login", err)
		return
	}
	user, session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "auth.login", err, "Invalid email or password")
		return
	}
	h.setSession(c, session)
	respond(c, http.StatusOK, gin.H{"user": user})
}

// @Summary  Выход
// @Tags     Auth
// @Produce  json
// @Success  200  {object}  map[string]interface{}
// @Router   /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearCookie(c, middleware.AccessCookie)
	h.clearCookie(c, middleware.RefreshCookie)
	respond(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// @Summary      Обновить access token
// @Description  Reads the refreshToken cookie and reissues the accessToken cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refresh, _ := c.Cookie(middleware.RefreshCookie)
	user, access, err := h.authService.Refresh(c.Request.Context(), refresh)
	if err != nil {
		log.Printf("[auth][refresh] rejected: %v", err)
		respondError(c, "auth.refresh", err, "Invalid refresh token")
		return
	}
	h.setCookie(c, middleware.AccessCookie, access, h.cookies.AccessTTL)
	log.Printf("[auth][refresh][ok] user=%s", user.ID)
	respond(c, http.StatusOK, gin.H{"message": "Token refreshed"})
}

// @Summary   Текущий пользователь
// @Tags      Auth
// @Produce   json
// @Success   200  {object}  map[string]interface{}
// @Failure   401  {object}  map[string]interface{}
// @Router    /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) setSession(c *gin.Context, s *services.Session) {
	h.setCookie(c, middleware.AccessCookie, s.AccessToken, h.cookies.AccessTTL)
	h.setCookie(c, middleware.RefreshCookie, s.RefreshToken, h.cookies.RefreshTTL)
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

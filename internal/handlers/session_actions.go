package handlers

import (
	"net/http"

	"wiki_system/internal/session"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type navigateRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// createSession godoc
// @Summary      Start a session
// @Description  Creates an unauthenticated session in Login mode and returns its bearer token
// @Tags         session
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /sessions [post]
func (h *Handler) createSession(c *gin.Context) {
	s := h.sessions.Create()
	token, err := h.services.GenerateToken(s.ID())
	if err != nil {
		h.sessions.End(s.ID())
		h.logAndJSONError(c, err, "session_token_failed", "session", s.ID())
		return
	}
	if h.log != nil {
		h.log.Infow("session_created", "session", s.ID())
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "state": s.State()})
}

// getState godoc
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/session [get]
func (h *Handler) getState(c *gin.Context) {
	h.respondState(c, currentSession(c).State(), nil, "get_state_failed")
}

// endSession godoc
// @Summary      End the session
// @Tags         session
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/session [delete]
func (h *Handler) endSession(c *gin.Context) {
	s := currentSession(c)
	h.sessions.End(s.ID())
	if h.log != nil {
		h.log.Infow("session_ended", "session", s.ID())
	}
	c.Status(http.StatusNoContent)
}

// login godoc
// @Summary      Log in
// @Description  Authenticates the session; on success the mode becomes home
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      credentialsRequest  true  "Username and password"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/v1/session/login [post]
func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	st, err := h.controller.Login(c.Request.Context(), currentSession(c), req.Username, req.Password)
	h.respondState(c, st, err, "login_failed")
}

// signUp godoc
// @Summary      Sign up
// @Description  Registers a user and returns the session to the login form
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      credentialsRequest  true  "Username and password"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/v1/session/signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var req credentialsRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	st, err := h.controller.SignUp(c.Request.Context(), currentSession(c), req.Username, req.Password)
	h.respondState(c, st, err, "sign_up_failed")
}

// logout godoc
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/v1/session/logout [post]
func (h *Handler) logout(c *gin.Context) {
	st, err := h.controller.Logout(currentSession(c))
	h.respondState(c, st, err, "logout_failed")
}

// showLogin godoc
// @Summary      Switch to the login form
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/v1/session/show-login [post]
func (h *Handler) showLogin(c *gin.Context) {
	st, err := h.controller.ShowLogin(currentSession(c))
	h.respondState(c, st, err, "show_login_failed")
}

// showSignUp godoc
// @Summary      Switch to the sign-up form
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/v1/session/show-signup [post]
func (h *Handler) showSignUp(c *gin.Context) {
	st, err := h.controller.ShowSignUp(currentSession(c))
	h.respondState(c, st, err, "show_sign_up_failed")
}

// navigate godoc
// @Summary      Menu navigation
// @Description  Moves to home, browse_pages or create_page. Ignored while editing.
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      navigateRequest  true  "Target mode"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/v1/session/navigate [post]
func (h *Handler) navigate(c *gin.Context) {
	var req navigateRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	s := currentSession(c)
	target, err := session.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "state": s.State()})
		return
	}
	st, err := h.controller.Navigate(s, target)
	h.respondState(c, st, err, "navigate_failed")
}

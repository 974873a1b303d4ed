package handlers

import (
	"net/http"

	"wiki_system/internal/models"

	"github.com/gin-gonic/gin"
)

type createPageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type saveEditRequest struct {
	Content string `json:"content"`
}

// listPages godoc
// @Summary      Recent pages
// @Description  Pages ordered by last update, newest first
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.PageSummary
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/session/pages [get]
func (h *Handler) listPages(c *gin.Context) {
	pages, err := h.controller.ListPages(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, err, "list_pages_failed")
		return
	}
	if pages == nil {
		pages = []models.PageSummary{}
	}
	c.JSON(http.StatusOK, pages)
}

// getPage godoc
// @Summary      View a page
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        title  path      string  true  "Page title"
// @Success      200    {object}  models.Page
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/session/pages/{title} [get]
func (h *Handler) getPage(c *gin.Context) {
	title := c.Param("title")
	p, err := h.controller.ViewPage(c.Request.Context(), title)
	if err != nil {
		h.logAndJSONError(c, err, "get_page_failed", "title", title)
		return
	}
	c.JSON(http.StatusOK, p)
}

// createPage godoc
// @Summary      Create a page
// @Description  Creates a page authored by the logged-in user
// @Tags         pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      createPageRequest  true  "Title and content"
// @Success      201    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/v1/session/pages [post]
func (h *Handler) createPage(c *gin.Context) {
	var req createPageRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	st, err := h.controller.CreatePage(c.Request.Context(), currentSession(c), req.Title, req.Content)
	if err != nil {
		h.respondState(c, st, err, "create_page_failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": statusOK, "state": st})
}

// beginEdit godoc
// @Summary      Open a page for editing
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Param        title  path      string  true  "Page title"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Failure      404    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/v1/session/pages/{title}/edit [post]
func (h *Handler) beginEdit(c *gin.Context) {
	st, err := h.controller.BeginEdit(c.Request.Context(), currentSession(c), c.Param("title"))
	h.respondState(c, st, err, "begin_edit_failed")
}

// saveEdit godoc
// @Summary      Save the page being edited
// @Tags         pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      saveEditRequest  true  "New content"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]interface{}
// @Failure      409    {object}  map[string]interface{}
// @Router       /api/v1/session/edit/save [post]
func (h *Handler) saveEdit(c *gin.Context) {
	var req saveEditRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	st, err := h.controller.SaveEdit(c.Request.Context(), currentSession(c), req.Content)
	h.respondState(c, st, err, "save_edit_failed")
}

// cancelEdit godoc
// @Summary      Leave edit mode without saving
// @Tags         pages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/v1/session/edit/cancel [post]
func (h *Handler) cancelEdit(c *gin.Context) {
	st, err := h.controller.CancelEdit(currentSession(c))
	h.respondState(c, st, err, "cancel_edit_failed")
}

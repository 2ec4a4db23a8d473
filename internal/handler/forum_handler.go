package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fitsync/internal/model"
	"fitsync/internal/service"
)

// ForumHandler handles forum and vote endpoints.
type ForumHandler struct {
	forums service.ForumService
	votes  service.VoteService
	users  service.UserService
}

// NewForumHandler creates a new forum handler.
func NewForumHandler(forums service.ForumService, votes service.VoteService, users service.UserService) *ForumHandler {
	return &ForumHandler{forums: forums, votes: votes, users: users}
}

// ForumRequest represents a new forum post.
type ForumRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image" validate:"omitempty,url"`
}

// VoteRequest represents a vote on a forum post.
type VoteRequest struct {
	VoteType string `json:"vote_type" validate:"required,oneof=up down"`
}

// List godoc
// @Summary List forum posts
// @Tags forums
// @Produce json
// @Param page query int false "Zero-based page" default(0)
// @Param perPage query int false "Posts per page" default(6)
// @Success 200 {object} service.ForumPage
// @Failure 400 {object} errors.ErrorResponse
// @Router /forums [get]
func (h *ForumHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page", 0)
	if err != nil {
		return err
	}
	perPage, err := queryInt(c, "perPage", 0)
	if err != nil {
		return err
	}

	result, err := h.forums.List(c.Request().Context(), page, perPage)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Get a forum post
// @Tags forums
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.ForumPost
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /forums/{id} [get]
func (h *ForumHandler) Get(c echo.Context) error {
	post, err := h.forums.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Create godoc
// @Summary Write a forum post
// @Tags forums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ForumRequest true "Post"
// @Success 201 {object} model.ForumPost
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /forums [post]
func (h *ForumHandler) Create(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	var req ForumRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.GetUser(c.Request().Context(), claims.Email)
	if err != nil {
		return fail(err)
	}
	role, _ := c.Get("role").(model.Role)
	if role == "" {
		role = user.Role
	}

	post, err := h.forums.Create(c.Request().Context(), &model.ForumPost{
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.Image,
		AuthorName:  user.Name,
		AuthorEmail: user.Email,
		AuthorRole:  role,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// Vote godoc
// @Summary Vote on a forum post
// @Description Each user counts once per post; a repeat vote returns counted=false.
// @Tags forums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body VoteRequest true "Vote"
// @Success 200 {object} service.VoteResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /forums/{id}/votes [post]
func (h *ForumHandler) Vote(c echo.Context) error {
	claims, err := Principal(c)
	if err != nil {
		return err
	}
	var req VoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.votes.CastVote(c.Request().Context(), c.Param("id"), model.VoteType(req.VoteType), claims.Email)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Votes godoc
// @Summary Votes of a forum post
// @Tags forums
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.VoteRecord
// @Failure 400 {object} errors.ErrorResponse
// @Router /forums/{id}/votes [get]
func (h *ForumHandler) Votes(c echo.Context) error {
	votes, err := h.votes.GetVotes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, votes)
}

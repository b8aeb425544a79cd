package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tresoria/internal/errors"
	"tresoria/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name"`
	Color string `json:"color" binding:"omitempty,hex_color"`
}

// ListCategories handles the retrieval of all categories
// @Summary     List categories
// @Description Get all transaction categories for the company
// @Tags        categories
// @Produce     json
// @Success     200 {array} categoryResponse "List of categories"
// @Failure     500 {object} map[string]interface{} "Server error"
// @Router      /api/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCompanyCategories(c.Query("companyId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	responses := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, newCategoryResponse(&categories[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new transaction category; duplicate names come back as {error}
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     200 {object} categoryResponse "Created category or {error}"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Router      /api/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(req.CompanyID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// UpdateCategory handles updating a category's name and color
// @Summary     Update category
// @Description Update the name and color of an existing category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body UpdateCategoryRequest true "Updated category details"
// @Success     200 {object} categoryResponse "Updated category or {error}"
// @Failure     400 {object} map[string]interface{} "Invalid input"
// @Failure     404 {object} map[string]interface{} "Category not found"
// @Router      /api/categories [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(req.ID, req.Name, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(category))
}

package handlers

import (
	"net/http"

	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"` // income | expense
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type categoryUpdateRequest struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, categories"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/categories [get]
// @Security     BearerAuth
func (h *Handler) listCategories(c *gin.Context) {
	uid, _ := ownerID(c)
	categories, err := h.services.Categories.List(c.Request.Context(), uid)
	if err != nil {
		h.respondError(c, err, "categories_list_failed", "user_id", uid)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  categoryRequest  true  "Category payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/categories [post]
// @Security     BearerAuth
func (h *Handler) createCategory(c *gin.Context) {
	var input categoryRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	uid, _ := ownerID(c)
	category, err := h.services.Categories.Create(c.Request.Context(), uid, service.CategoryInput{
		Name:  input.Name,
		Type:  input.Type,
		Icon:  input.Icon,
		Color: input.Color,
	})
	if err != nil {
		h.respondError(c, err, "category_create_failed", "user_id", uid, "name", input.Name)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/categories/{id} [get]
// @Security     BearerAuth
func (h *Handler) getCategory(c *gin.Context) {
	uid, _ := ownerID(c)
	category, err := h.services.Categories.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "category_get_failed", "user_id", uid, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Category ID"
// @Param        body  body  categoryUpdateRequest  true  "Fields to change"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/categories/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateCategory(c *gin.Context) {
	var input categoryUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	uid, _ := ownerID(c)
	category, err := h.services.Categories.Update(c.Request.Context(), uid, c.Param("id"), service.CategoryUpdate{
		Name:  input.Name,
		Type:  input.Type,
		Icon:  input.Icon,
		Color: input.Color,
	})
	if err != nil {
		h.respondError(c, err, "category_update_failed", "user_id", uid, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// @Summary      Delete category
// @Description  Transactions referencing the category are kept and surface as "unknown category".
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/categories/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteCategory(c *gin.Context) {
	uid, _ := ownerID(c)
	category, err := h.services.Categories.Delete(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "category_delete_failed", "user_id", uid, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"inkwell-backend/internal/auth"
	"inkwell-backend/internal/database"
	"inkwell-backend/internal/models"
)

var postRepo *database.PostRepo

// InitPostRepo initializes the post repository
func InitPostRepo() {
	postRepo = database.NewPostRepo()
}

// listPostsHandler handles GET /api/posts
func listPostsHandler(c echo.Context) error {
	posts, err := postRepo.List()
	if err != nil {
		c.Logger().Error("list posts error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to list posts",
		})
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(http.StatusOK, posts)
}

// getPostHandler handles GET /api/posts/:id
func getPostHandler(c echo.Context) error {
	post, err := postRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "post not found",
			})
		}
		c.Logger().Error("get post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get post",
		})
	}

	return c.JSON(http.StatusOK, post)
}

// createPostHandler handles POST /api/posts
func createPostHandler(c echo.Context) error {
	user := auth.GetUserFromContext(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "title is required",
		})
	}

	post := &models.Post{
		AuthorID:    user.ID,
		Author:      user.Username,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	}

	if err := postRepo.Create(post); err != nil {
		c.Logger().Error("create post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to create post",
		})
	}

	return c.JSON(http.StatusCreated, post)
}

// updatePostHandler handles PUT /api/posts/:id
func updatePostHandler(c echo.Context) error {
	user := auth.GetUserFromContext(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
	}

	post, err := postRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "post not found",
			})
		}
		c.Logger().Error("get post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get post",
		})
	}

	if post.AuthorID != user.ID {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "not the author of this post",
		})
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "title is required",
		})
	}

	if err := postRepo.Update(post.ID, req.Title, req.Description, req.Body); err != nil {
		// The post can disappear between the ownership check and the write
		if errors.Is(err, database.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "post not found",
			})
		}
		c.Logger().Error("update post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to update post",
		})
	}

	updated, err := postRepo.GetByID(post.ID)
	if err != nil {
		c.Logger().Error("get post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get post",
		})
	}

	return c.JSON(http.StatusOK, updated)
}

// deletePostHandler handles DELETE /api/posts/:id
func deletePostHandler(c echo.Context) error {
	user := auth.GetUserFromContext(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "authentication required",
		})
	}

	post, err := postRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "post not found",
			})
		}
		c.Logger().Error("get post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to get post",
		})
	}

	if post.AuthorID != user.ID {
		return c.JSON(http.StatusForbidden, map[string]string{
			"error": "not the author of this post",
		})
	}

	if err := postRepo.Delete(post.ID); err != nil {
		if errors.Is(err, database.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "post not found",
			})
		}
		c.Logger().Error("delete post error: ", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to delete post",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "post deleted",
	})
}

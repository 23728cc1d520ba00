package posts

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/subratpandeyy/The-Wedding-Shades/media"
	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// OrphanedImageHeader names the asset left on the media host when a post
// could not be saved after its image was uploaded.
const OrphanedImageHeader = "X-Orphaned-Image-Id"

// ImageHost is the part of the media gateway the post handlers use.
type ImageHost interface {
	Upload(ctx context.Context, file io.Reader, mimeType string, size int64) (*media.Upload, error)
	Delete(ctx context.Context, publicID string) error
	PublicIDFromURL(raw string) (string, bool)
	MaxBytes() int64
}

type Handler struct {
	store  storage.PostStore
	images ImageHost
}

func New(store storage.PostStore, images ImageHost) *Handler {
	return &Handler{store: store, images: images}
}

// DeleteResult reports both halves of a delete. ImageCleanupSucceeded is
// absent when the post had no image.
type DeleteResult struct {
	Message               string       `json:"message"`
	Post                  *models.Post `json:"post"`
	PostDeleted           bool         `json:"postDeleted"`
	ImageCleanupSucceeded *bool        `json:"imageCleanupSucceeded,omitempty"`
}

// @Summary Create a new post
// @Description Create a post from JSON, or from multipart/form-data with an optional image file that is uploaded first
// @Tags posts
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param post body models.PostInput true "Post fields"
// @Security BearerAuth
// @Success 201 {object} models.Post
// @Failure 400 {object} utils.ErrorResponse "error: Invalid input"
// @Failure 401 {object} utils.ErrorResponse "error: Unauthorized"
// @Failure 413 {object} utils.ErrorResponse "error: File too large"
// @Failure 500 {object} utils.ErrorResponse "error: Failed to create post"
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		h.createWithImage(c)
		return
	}

	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	post, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		utils.SendAppError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

// createWithImage validates the fields, uploads the image, then saves the
// post. The two writes are not atomic: a failed save after a successful
// upload is reported through OrphanedImageHeader.
func (h *Handler) createWithImage(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		if utils.IsBodyTooLarge(err) {
			utils.SendAppError(c, media.FileTooLarge(h.images.MaxBytes()), "Failed to create post")
			return
		}
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := models.PostInput{
		Title:    formValue(form, "title"),
		Content:  formValue(form, "content"),
		ImageURL: formValue(form, "imageUrl"),
		Category: formValue(form, "category"),
	}
	if _, err := models.ValidateCreate(in); err != nil {
		utils.SendAppError(c, err, "Failed to create post")
		return
	}

	var uploaded *media.Upload
	if files := form.File["image"]; len(files) > 0 {
		uploaded, err = h.upload(c.Request.Context(), files[0])
		if err != nil {
			utils.SendAppError(c, err, "Failed to upload image")
			return
		}
		in.ImageURL = &uploaded.URL
	}

	post, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		if uploaded != nil {
			c.Header(OrphanedImageHeader, uploaded.PublicID)
			utils.LogWarn(err, "Post not saved, uploaded image "+uploaded.PublicID+" is orphaned")
		}
		utils.SendAppError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) upload(ctx context.Context, fh *multipart.FileHeader) (*media.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, utils.NewInternalError("Failed to read upload", err)
	}
	defer file.Close()

	return h.images.Upload(ctx, file, fh.Header.Get("Content-Type"), fh.Size)
}

func formValue(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// @Summary Get all posts
// @Description Retrieve posts newest first, optionally filtered by category
// @Tags posts
// @Produce json
// @Param category query string false "Filter by category (Wedding, Portraits, Events, Products)"
// @Param limit query int false "Maximum number of posts, default 50, at most 200"
// @Success 200 {array} models.Post
// @Failure 500 {object} utils.ErrorResponse "error: Failed to fetch posts"
// @Router /posts [get]
func (h *Handler) GetAllPosts(c *gin.Context) {
	filter := models.ListFilter{}

	if category := c.Query("category"); category != "" {
		filter.Category = models.Category(category)
		// nothing can be stored under an unknown category
		if !filter.Category.Valid() {
			c.JSON(http.StatusOK, []models.Post{})
			return
		}
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil {
		filter.Limit = limit
	}

	posts, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, posts)
}

// @Summary Get a post by ID
// @Description Retrieve a post by its ID
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} utils.ErrorResponse "error: Invalid post ID"
// @Failure 404 {object} utils.ErrorResponse "error: Post not found"
// @Failure 500 {object} utils.ErrorResponse "error: Failed to fetch post"
// @Router /posts/{id} [get]
func (h *Handler) GetPostByID(c *gin.Context) {
	post, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err, "Failed to fetch post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Update a post
// @Description Update the fields present in the body. Replacing imageUrl removes the previous image from the media host.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body models.PostInput true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Post
// @Failure 400 {object} utils.ErrorResponse "error: Invalid input"
// @Failure 401 {object} utils.ErrorResponse "error: Unauthorized"
// @Failure 404 {object} utils.ErrorResponse "error: Post not found"
// @Failure 500 {object} utils.ErrorResponse "error: Failed to update post"
// @Router /posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var in models.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	previousImage := ""
	if in.ImageURL != nil {
		previous, err := h.store.GetByID(ctx, id)
		if err != nil {
			utils.SendAppError(c, err, "Failed to update post")
			return
		}
		previousImage = previous.ImageURL
	}

	post, err := h.store.Update(ctx, id, in)
	if err != nil {
		utils.SendAppError(c, err, "Failed to update post")
		return
	}

	if previousImage != "" && previousImage != post.ImageURL {
		h.cleanupImage(ctx, post.ID, previousImage)
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Delete a post
// @Description Delete a post and try to remove its image from the media host. A failed image cleanup does not fail the delete.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} posts.DeleteResult
// @Failure 400 {object} utils.ErrorResponse "error: Invalid post ID"
// @Failure 401 {object} utils.ErrorResponse "error: Unauthorized"
// @Failure 404 {object} utils.ErrorResponse "error: Post not found"
// @Failure 500 {object} utils.ErrorResponse "error: Failed to delete post"
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	ctx := c.Request.Context()

	post, err := h.store.DeleteByID(ctx, c.Param("id"))
	if err != nil {
		utils.SendAppError(c, err, "Failed to delete post")
		return
	}

	result := DeleteResult{
		Message:     "Post deleted successfully",
		Post:        post,
		PostDeleted: true,
	}
	if post.ImageURL != "" {
		cleaned := h.cleanupImage(ctx, post.ID, post.ImageURL)
		result.ImageCleanupSucceeded = &cleaned
	}

	c.JSON(http.StatusOK, result)
}

// cleanupImage removes imageURL from the media host. Failures are logged
// and reported as false, never returned.
func (h *Handler) cleanupImage(ctx context.Context, postID, imageURL string) bool {
	fields := logrus.Fields{"post_id": postID, "image_url": imageURL}

	publicID, ok := h.images.PublicIDFromURL(imageURL)
	if !ok {
		utils.LogErrorWithFields(fields, errors.New("no public id in image url"), "Image cleanup skipped")
		return false
	}

	fields["public_id"] = publicID
	if err := h.images.Delete(ctx, publicID); err != nil {
		utils.LogErrorWithFields(fields, err, "Image cleanup failed")
		return false
	}

	utils.LogInfo("Deleted image " + publicID)
	return true
}

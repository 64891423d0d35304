package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/models/request_models"
	"jobboard/internal/services"
	"jobboard/pkg/middleware"
	"jobboard/pkg/utils"
)

type PostController struct {
	postService services.PostService
}

func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts godoc
// @Summary Blog posts
// @Description Paginated, newest first
// @Tags Posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Router /blogs [get]
func (p *PostController) ListPosts(c *gin.Context) {
	page, pageSize, err := utils.Paging(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	posts, err := p.postService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, posts, "Blogs")
}

// CreatePost godoc
// @Summary Publish a post
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CreatePostRequest true "Post payload"
// @Success 201 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /admin/posts [post]
func (p *PostController) CreatePost(c *gin.Context) {
	var req request_models.CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondBindError(c, err)
		return
	}

	adminID, _ := middleware.CurrentUserID(c)
	post, err := p.postService.Create(c.Request.Context(), adminID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, post, "Post created")
}

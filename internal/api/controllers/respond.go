package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard/pkg/utils"
)

// wantsJSON reports whether the caller is an API client rather than a
// browser form post.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}

// redirectOrJSON answers form posts with a 303 to target and API clients
// with the usual envelope.
func redirectOrJSON(c *gin.Context, target string, data interface{}, message string) {
	if wantsJSON(c) {
		utils.RespondSuccess(c, data, message)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

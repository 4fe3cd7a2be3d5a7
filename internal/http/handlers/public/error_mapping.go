package public

import (
	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

var draftCreateErrorRules = handlershared.ConcatMappedErrors(
	handlershared.CaptchaErrorRules,
	handlershared.PreorderErrorRules,
)

func respondPreorderError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, handlershared.PreorderErrorRules, response.CodeInternal, "error.preorder_fetch_failed")
}

func respondDraftCreateError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, draftCreateErrorRules, response.CodeInternal, "error.preorder_update_failed")
}

func respondCatalogError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, "error.product_fetch_failed")
}

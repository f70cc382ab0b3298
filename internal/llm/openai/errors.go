package openai

import (
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/ecoscan/internal/common"
)

// statusCode digs the HTTP status out of a go-openai error, 0 if none.
func statusCode(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// classify maps a failed chat-completion call onto an AppError. Rejected
// credentials become KindAuthentication; everything else is KindService.
// The provider's message is dropped for 401s since it can echo part of the key.
func classify(err error) *common.AppError {
	code := statusCode(err)
	if code == http.StatusUnauthorized {
		return common.NewAppError(common.KindAuthentication,
			"authentication with the chat-completion service failed: credential rejected",
			fmt.Errorf("%w: status %d", common.ErrUnauthorized, code))
	}
	if code != 0 {
		return common.NewAppError(common.KindService,
			fmt.Sprintf("chat-completion service returned status %d", code), err)
	}
	return common.NewAppError(common.KindService, "chat-completion request failed", err)
}

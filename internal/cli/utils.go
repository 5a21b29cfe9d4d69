package cli

import (
	"errors"

	"github.com/dmitrijs2005/gitpress/internal/common"
)

// friendlyError turns the typed errors coming out of the services into
// messages a person at the prompt can act on.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, common.ErrNotConfigured):
		return "Not configured: set owner and repository in the config file, then save a token with 'token'."
	case errors.Is(err, common.ErrUnauthorized):
		return "GitHub rejected the token. Save a fresh one with 'token'."
	case errors.Is(err, common.ErrNetwork):
		return "Network problem. Check the connection and try again."
	case errors.Is(err, common.ErrVersionConflict):
		return "The remote file changed underneath us. Refresh and try again."
	case errors.Is(err, common.ErrNotFound):
		return "Not found in the repository."
	case errors.Is(err, common.ErrTooLarge):
		return "Image is still too large after processing."
	default:
		return err.Error()
	}
}

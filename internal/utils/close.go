package utils

import (
	"io"

	"github.com/MrSnakeDoc/pokedex/internal/logger"
)

// CloseLogged closes c and logs a failure under name. Used in deferred
// shutdown paths where the error cannot be returned.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("Failed to close", logger.String("resource", name), logger.Error(err))
	}
}

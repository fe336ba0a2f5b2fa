package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
)

// bindStrictJSON decodes the request body into dst, rejecting fields outside
// the DTO. Updates accept only a closed set of fields, so an unknown key is a
// client error rather than something to silently drop.
func bindStrictJSON(c *gin.Context, dst interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

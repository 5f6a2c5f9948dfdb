package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseUintQuery 解析无符号整数查询参数
func parseUintQuery(c *gin.Context, key string) (uint, error) {
	v, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

package shared

import (
	"strconv"

	"github.com/blogicum/internal/constants"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 归一化分页参数。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultAdminPageSize
	}
	if pageSize > constants.MaxAdminPageSize {
		pageSize = constants.MaxAdminPageSize
	}
	return page, pageSize
}

// QueryPagination 读取 page/page_size 查询参数。
func QueryPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultAdminPageSize)))
	return NormalizePagination(page, pageSize)
}

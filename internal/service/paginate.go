package service

import (
	"errors"
	"strconv"
	"strings"
)

// Page 分页结果
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Paginate 对已排好序的集合分页。
// 页码无法解析或非正数时取第一页，超出范围时取最后一页，空集合返回 1/1 页。
func Paginate[T any](items []T, pageSize int, requested string) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	raw := strings.TrimSpace(requested)
	page, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-"):
		// 溢出的正数页码同样视为超出范围
		page = totalPages
	case err != nil || page < 1:
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		Page:       page,
		PageSize:   pageSize,
		Total:      int64(total),
		TotalPages: totalPages,
	}
}

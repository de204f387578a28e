package category

import (
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.ErrCategoryNotFound

	// ErrCategoryInUse 分类下仍有商品，不允许删除
	ErrCategoryInUse = apperrors.ErrCategoryInUse
)

package order

import (
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
)

// 领域错误别名，统一指向pkg/errors中的预定义错误，
// 保证接口层能按业务码映射响应
var (
	ErrOrderNotFound     = apperrors.ErrOrderNotFound
	ErrUnknownStatus     = apperrors.ErrUnknownStatus
	ErrInvalidTransition = apperrors.ErrInvalidTransition
	ErrPaymentPending    = apperrors.ErrPaymentPending
	ErrReturnExpired     = apperrors.ErrReturnExpired
	ErrEmptyCart         = apperrors.ErrEmptyCart
)

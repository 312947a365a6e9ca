// Package errors provides standardized error types for the storefront service.
// It defines common sentinel errors, error wrapping, and helper functions for
// error checking across the catalog, cart, and auth packages.
//
// Package errors 提供店铺服务的标准化错误类型。
// 它定义了常见的哨兵错误、错误包装以及用于目录、购物车和认证包的错误检查辅助函数。
package errors

import (
	"errors"
	"fmt"
)

// Standard errors that can be returned by the service layers.
// These provide consistent error types across the implementation.
//
// 服务层可能返回的标准错误。
// 这些提供了整个实现中一致的错误类型。
var (
	// ErrProductNotFound is returned when a product id is not in the catalog.
	// 当产品id不在目录中时返回ErrProductNotFound。
	ErrProductNotFound = errors.New("catalog: product not found")

	// ErrCatalogEmpty is returned when the product file contains no products.
	// 当产品文件不包含任何产品时返回ErrCatalogEmpty。
	ErrCatalogEmpty = errors.New("catalog: no products loaded")

	// ErrDuplicateProductID is returned when the product file repeats an id.
	// 当产品文件中的id重复时返回ErrDuplicateProductID。
	ErrDuplicateProductID = errors.New("catalog: duplicate product id")

	// ErrSessionNotFound is returned when a token has no stored session.
	// 当令牌没有对应的已存储会话时返回ErrSessionNotFound。
	ErrSessionNotFound = errors.New("auth: session not found")

	// ErrInvalidInput is returned when a request fails field validation.
	// 当请求未通过字段验证时返回ErrInvalidInput。
	ErrInvalidInput = errors.New("auth: invalid input")

	// ErrRelayFailed is returned when the contact endpoint rejects a message.
	// 当联系端点拒绝消息时返回ErrRelayFailed。
	ErrRelayFailed = errors.New("contact: relay failed")
)

// FieldError represents a validation error tied to a specific form field.
// It wraps ErrInvalidInput so errors.Is continues to match.
//
// FieldError 表示与特定表单字段相关的验证错误。
// 它包装了ErrInvalidInput，因此errors.Is仍然可以匹配。
type FieldError struct {
	Field   string // The form field that failed validation / 验证失败的表单字段
	Message string // Human-readable description / 可读的描述
}

// Error returns the error message. It implements the error interface.
// Error 返回错误消息。它实现了error接口。
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns ErrInvalidInput so callers can detect validation failures
// without inspecting the concrete type.
//
// Unwrap 返回ErrInvalidInput，使调用者无需检查具体类型即可检测验证失败。
func (e *FieldError) Unwrap() error {
	return ErrInvalidInput
}

// NewFieldError creates a new FieldError for the given field.
// NewFieldError 为给定字段创建一个新的FieldError。
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// Is reports whether err matches target, following wrapped errors.
// Is 报告err是否与target匹配，会跟随包装的错误。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// As 在err的错误链中查找第一个与target匹配的错误。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message while preserving the chain.
// Returns nil if err is nil.
//
// Wrap 在保留错误链的同时为err添加注释消息。如果err为nil则返回nil。
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

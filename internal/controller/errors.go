package controller

import (
	"errors"
	"net/http"

	"edutech_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// errorStatus 业务错误到 HTTP 状态码
var errorStatus = []struct {
	err    error
	status int
}{
	{util.ErrInvalidAnswers, http.StatusBadRequest},
	{util.ErrInvalidInput, http.StatusBadRequest},
	{util.ErrInvalidCredentials, http.StatusUnauthorized},
	{util.ErrInvalidAdminSecret, http.StatusForbidden},
	{util.ErrPermissionDenied, http.StatusForbidden},
	{util.ErrUserNotFound, http.StatusNotFound},
	{util.ErrUsernameTaken, http.StatusConflict},
	{util.ErrEmailInUse, http.StatusConflict},
}

// respondError 已知错误按表返回，其余记录日志并返回 500 和 fallback 信息
func respondError(ctx *gin.Context, err error, fallback string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			util.Error(ctx, e.status, e.err.Error())
			return
		}
	}
	util.LogInternalError(ctx, fallback, err)
}

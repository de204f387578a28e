package handler

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zhangxy/bookshop/internal/infrastructure/config"
	apperrors "github.com/zhangxy/bookshop/pkg/errors"
	"github.com/zhangxy/bookshop/pkg/response"
)

// UploadHandler 图片上传处理器（管理端，商品图片）
// 设计说明:
// 1. 文件落本地磁盘，经静态路由对外提供访问
// 2. 扩展名白名单 + 大小上限；文件名服务端生成，不信任原始文件名
type UploadHandler struct {
	cfg config.UploadConfig
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{cfg: cfg}
}

// 允许的图片扩展名
var allowedExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Upload 上传图片
// @Summary      上传图片
// @Description  商品图片上传，返回可访问的URL路径
// @Tags         管理后台
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "图片文件"
// @Success      200 {object} response.Response "上传成功"
// @Failure      400 {object} response.Response "文件类型或大小不合法"
// @Router       /admin/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "未找到上传文件")
		return
	}

	if file.Size > int64(h.cfg.MaxSizeMB)<<20 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams,
			fmt.Sprintf("文件大小超过%dMB限制", h.cfg.MaxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "不支持的文件类型")
		return
	}

	if err := os.MkdirAll(h.cfg.Dir, 0o755); err != nil {
		response.Error(c, apperrors.Wrap(err, "创建上传目录失败"))
		return
	}

	// 服务端生成文件名：时间戳+随机数，避免路径穿越和重名覆盖
	name := fmt.Sprintf("%d%06d%s", time.Now().UnixNano(), rand.Intn(1000000), ext)
	dst := filepath.Join(h.cfg.Dir, name)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		response.Error(c, apperrors.Wrap(err, "保存文件失败"))
		return
	}

	response.Success(c, gin.H{"url": h.cfg.PublicPath + "/" + name})
}

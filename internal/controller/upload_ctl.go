package controller

import (
	"io"
	"net/http"

	"shopnav_dev_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadController 图片上传（店铺 Logo、分区/商品/活动照片）
type UploadController struct {
	storage service.ImageStore
}

func NewUploadController(storage service.ImageStore) *UploadController {
	return &UploadController{storage: storage}
}

// 上传大小上限 5MB
const maxUploadSize = 5 << 20

// Upload 上传图片
// @Summary 上传图片
// @Description 返回公开访问 URL，由调用方写入对应实体的 photo/logo 字段
// @Tags Upload (文件上传)
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "图片文件"
// @Success 200 {object} map[string]string "{\"url\": 访问地址}"
// @Failure 400 {object} map[string]string "文件缺失或过大"
// @Router /api/uploads [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少文件"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件超过 5MB 上限"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取文件"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无法读取文件"})
		return
	}

	url, err := ctrl.storage.Upload(c.Request.Context(), data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "上传失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

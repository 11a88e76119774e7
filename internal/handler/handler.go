package handler

import (
	"reflect"
	"strconv"
	"strings"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/middleware"
	"Fishing_Forum/internal/storage"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// 校验错误里使用 json 字段名
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// userID 未登录时为 0
func userID(c *gin.Context) uint64 {
	return c.GetUint64(middleware.ContextUserIDKey)
}

// bind 按 Content-Type 绑定请求体，失败时直接写错误响应
func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		apperr.HandleError(c, apperr.FromBinding(err))
		return false
	}
	return true
}

// pathID 路径中的数字主键，非法时按不存在处理
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apperr.HandleError(c, apperr.NotFound("Not found."))
		return 0, false
	}
	return id, true
}

// queryInt 可选的整数查询参数，非法时写 400
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		apperr.HandleError(c, apperr.Field(name, "A valid integer is required."))
		return 0, false
	}
	return n, true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), binding.MIMEMultipartPOSTForm)
}

// absoluteURL 存储返回相对地址时按本次请求补全
func absoluteURL(c *gin.Context, store storage.FileStore) view.URLFunc {
	base := view.BaseURL(c.Request)
	return func(p string) string {
		return view.Absolute(base, store.URL(p))
	}
}

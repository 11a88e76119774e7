package handler

import (
	"net/http"

	"Fishing_Forum/internal/apperr"
	"Fishing_Forum/internal/service"
	"Fishing_Forum/internal/view"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	svc *service.ChatService
}

type SendMessageReq struct {
	Receiver uint64 `json:"receiver" form:"receiver" binding:"required"`
	Message  string `json:"message" form:"message" binding:"required"`
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Inbox 当前用户收发的全部消息
func (h *ChatHandler) Inbox(c *gin.Context) {
	list, err := h.svc.Inbox(c.Request.Context(), userID(c))
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Messages(list))
}

// Conversation sender 发给 receiver 的消息，按时间升序
func (h *ChatHandler) Conversation(c *gin.Context) {
	sender, ok := pathID(c, "sender")
	if !ok {
		return
	}
	receiver, ok := pathID(c, "receiver")
	if !ok {
		return
	}
	list, err := h.svc.Conversation(c.Request.Context(), userID(c), sender, receiver)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Messages(list))
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageReq
	if !bind(c, &req) {
		return
	}
	m, err := h.svc.Send(c.Request.Context(), userID(c), req.Receiver, req.Message)
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view.Message(*m))
}

func (h *ChatHandler) Users(c *gin.Context) {
	list, err := h.svc.Users(c.Request.Context(), userID(c))
	if err != nil {
		apperr.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view.Users(list))
}

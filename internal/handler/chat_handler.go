// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/internal/service"
	"portfolio-ai-go/pkg/log"
	"portfolio-ai-go/pkg/token"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 来源校验由 OriginGuard 统一负责
	},
}

// ChatHandler 负责处理聊天请求（REST 与 WebSocket 两种入口）。
type ChatHandler struct {
	chatService service.ChatService
	jwtManager  *token.JWTManager
	// 每连接停止标志
	stopFlags sync.Map // key: session pointer string, value: bool
}

// NewChatHandler 创建一个新的 ChatHandler。
func NewChatHandler(chatService service.ChatService, jwtManager *token.JWTManager) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		jwtManager:  jwtManager,
	}
}

// Chat 处理一次非流式聊天请求。
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), req)
	if err != nil {
		log.Errorf("处理聊天请求失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate response",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stream 处理一个传入的 WebSocket 连接，token 通过路径参数传入。
func (h *ChatHandler) Stream(c *gin.Context) {
	tokenString := c.Param("token")
	if _, err := h.jwtManager.VerifyToken(tokenString); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed", "message": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket 升级失败", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket 连接已建立")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Warnf("从 WebSocket 读取消息失败: %v", err)
			break
		}

		// 停止指令: {"type":"stop"}
		var ctrl struct {
			Type string `json:"type"`
		}
		if len(message) > 0 && message[0] == '{' {
			if err := json.Unmarshal(message, &ctrl); err == nil && ctrl.Type == "stop" {
				h.stopFlags.Store(sessionKey(conn), true)
				resp := map[string]interface{}{
					"type":      "stop",
					"status":    "stopped",
					"timestamp": time.Now().UnixMilli(),
				}
				b, _ := json.Marshal(resp)
				_ = conn.WriteMessage(websocket.TextMessage, b)
				continue
			}
		}

		// 普通消息：JSON 聊天请求，或退化为纯文本 prompt
		var req model.ChatRequest
		if err := json.Unmarshal(message, &req); err != nil || req.Prompt == "" {
			req = model.ChatRequest{Prompt: string(message)}
		}

		shouldStop := func() bool {
			v, ok := h.stopFlags.Load(sessionKey(conn))
			return ok && v.(bool)
		}
		// 清除旧标志
		h.stopFlags.Delete(sessionKey(conn))

		if err := h.chatService.StreamResponse(c.Request.Context(), req, conn, shouldStop); err != nil {
			log.Errorf("处理流式响应失败: %v", err)
			errResp := map[string]string{"error": "Failed to generate response"}
			b, _ := json.Marshal(errResp)
			_ = conn.WriteMessage(websocket.TextMessage, b)
			break
		}
	}
}

func sessionKey(conn *websocket.Conn) string {
	return fmt.Sprintf("%p", conn)
}

package controllers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	appwebsocket "plantillas-system/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub    *appwebsocket.Hub
	logger *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, logger: logger}
}

// ServeWs upgrades the connection and subscribes it to board updates.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("WebSocket: no se pudo actualizar la conexión", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, c.logger)
	if !c.hub.Add(client) {
		c.logger.Info("WebSocket: hub detenido, se rechaza la conexión")
		return conn.Close()
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("WebSocket: cliente conectado", zap.String("remote", ctx.RealIP()))
	return nil
}

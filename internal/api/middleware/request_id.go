package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID cabecera del identificador de la petición
const HeaderRequestID = "X-Request-ID"

// ContextRequestID clave del request id en el contexto de Gin
const ContextRequestID = "request_id"

// RequestID asigna un identificador a cada petición y lo devuelve en la
// respuesta. Si el cliente ya manda uno, se respeta.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(ContextRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

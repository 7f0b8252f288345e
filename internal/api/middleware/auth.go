package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
	"github.com/fichadoradamathias/Restaurante2/pkg/redis"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// Claves de la identidad autenticada en el contexto de Gin
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextOfficeID = "office_id"
	ContextClaims   = "claims"
)

// JWTAuth exige un access token válido en Authorization: Bearer.
// rdb puede ser nil; en ese caso no hay lista negra y el logout solo
// vale del lado del cliente.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, 40101, "falta la cabecera Authorization")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, 40102, "formato de Authorization inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(c, 40103, "el token expiró")
			} else {
				response.Unauthorized(c, 40104, "token inválido")
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 40104, "token inválido")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis caído no bloquea la operación del comedor
				logger.Warn("no se pudo consultar la lista negra de tokens", zap.Error(err))
			} else if blacklisted {
				response.Unauthorized(c, 40105, "la sesión fue cerrada")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		if claims.OfficeID != nil {
			c.Set(ContextOfficeID, *claims.OfficeID)
		}
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleAuth exige que el usuario autenticado tenga alguno de los roles dados
func RoleAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.Forbidden(c, 40301, "permisos insuficientes")
		c.Abort()
	}
}

// AdminOnly atajo para rutas exclusivas del administrador
func AdminOnly() gin.HandlerFunc {
	return RoleAuth(model.RoleAdmin)
}

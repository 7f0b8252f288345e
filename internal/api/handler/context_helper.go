package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fichadoradamathias/Restaurante2/internal/api/middleware"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
)

// currentUserID devuelve el id del usuario autenticado.
// Las rutas protegidas garantizan que está presente.
func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

// currentClaims devuelve las claims del token con el que se autenticó
// la petición, o nil fuera de rutas protegidas.
func currentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

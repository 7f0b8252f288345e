package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/service"
)

// Sweep finaliza de forma perezosa las semanas vencidas: en cada
// petición a la API se revisa si alguna semana abierta pasó su plazo y
// se la finaliza antes de atender la petición. No hay cron; el tráfico
// normal alcanza para que ninguna semana quede abierta de más.
//
// interval acota la frecuencia del barrido para no golpear la base en
// cada petición.
func Sweep(weekSvc *service.WeekService, interval time.Duration, logger *zap.Logger) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		lastRun time.Time
	)

	return func(c *gin.Context) {
		mu.Lock()
		due := time.Since(lastRun) >= interval
		if due {
			lastRun = time.Now()
		}
		mu.Unlock()

		if due {
			n, err := weekSvc.SweepOverdue(c.Request.Context())
			if err != nil {
				logger.Warn("barrido de semanas vencidas con error", zap.Error(err))
			} else if n > 0 {
				logger.Info("semanas vencidas finalizadas por barrido", zap.Int("count", n))
			}
		}

		c.Next()
	}
}

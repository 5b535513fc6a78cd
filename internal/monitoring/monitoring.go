// Package monitoring expone métricas del proceso y del host en /monitoring.
package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type SystemStats struct {
	// Proceso
	NumGoroutine int    `json:"num_goroutine"`
	Alloc        uint64 `json:"alloc_bytes"`
	Sys          uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`

	// Host
	TotalRAM        uint64                 `json:"total_ram"`
	AvailableRAM    uint64                 `json:"available_ram"`
	UsedRAMPercent  float64                `json:"used_ram_percent"`
	TotalCPUCores   int                    `json:"total_cpu_cores"`
	CPUUsagePercent []float64              `json:"cpu_usage_percent"`
	CPUTemperatures []host.TemperatureStat `json:"cpu_temperatures"`
}

type MonitoringStatus struct {
	Timestamp time.Time   `json:"timestamp"`
	MongoDB   string      `json:"mongodb"`
	System    SystemStats `json:"system"`
}

type Service interface {
	GetStatus(ctx context.Context) MonitoringStatus
}

type monitoringService struct {
	mongoClient *mongo.Client
}

// NewService crea el servicio de monitoreo; mongoClient puede ser nil.
func NewService(mongoClient *mongo.Client) Service {
	return &monitoringService{mongoClient: mongoClient}
}

func (s *monitoringService) GetStatus(ctx context.Context) MonitoringStatus {
	mongoStatus := "not configured"
	if s.mongoClient != nil {
		mongoStatus = "ok"
		if err := s.mongoClient.Ping(ctx, nil); err != nil {
			mongoStatus = "down"
		}
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	vMem, _ := mem.VirtualMemory()
	cpuPercent, _ := cpu.Percent(0, true)
	temps, _ := host.SensorsTemperatures()

	sysStats := SystemStats{
		NumGoroutine:    runtime.NumGoroutine(),
		Alloc:           memStats.Alloc,
		Sys:             memStats.Sys,
		NumGC:           memStats.NumGC,
		TotalCPUCores:   runtime.NumCPU(),
		CPUUsagePercent: cpuPercent,
		CPUTemperatures: temps,
	}
	if vMem != nil {
		sysStats.TotalRAM = vMem.Total
		sysStats.AvailableRAM = vMem.Available
		sysStats.UsedRAMPercent = vMem.UsedPercent
	}

	return MonitoringStatus{
		Timestamp: time.Now(),
		MongoDB:   mongoStatus,
		System:    sysStats,
	}
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/monitoring", h.GetMonitoringStatus)
}

func (h *Handler) GetMonitoringStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.GetStatus(c.Request.Context()))
}

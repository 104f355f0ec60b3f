package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	pdfPkg "pdf_toolkit/pdf"
)

// Config holds application configuration
type Config struct {
	Port               string        `yaml:"port"`
	MaxFileSize        int64         `yaml:"max_file_size"`
	TempDir            string        `yaml:"temp_dir"`
	GhostscriptBinary  string        `yaml:"ghostscript"`
	GhostscriptTimeout time.Duration `yaml:"gs_timeout"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`

	// Capabilities is resolved once at startup.
	Capabilities pdfPkg.Capabilities `yaml:"capabilities"`
	Logger       *logrus.Logger      `yaml:"-"`
}

// NewRouter builds the gin engine with logging, recovery and all routes.
func NewRouter(config *Config) *gin.Engine {
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(RequestLogger(config.Logger), gin.Recovery())
	r.MaxMultipartMemory = MultipartMemory

	SetupRoutes(r, config)
	return r
}

func SetupRoutes(r *gin.Engine, config *Config) {
	compressor := pdfPkg.NewCompressor(config.Capabilities, config.TempDir, config.GhostscriptTimeout, config.Logger)

	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/info", func(c *gin.Context) { HandleInfo(c, config) })
		apiGroup.POST("/merge", func(c *gin.Context) { HandleMerge(c, config) })
		apiGroup.POST("/compress", func(c *gin.Context) { HandleCompress(c, config, compressor) })
		apiGroup.POST("/insert", func(c *gin.Context) { HandleInsert(c, config) })
		apiGroup.POST("/insert/preview", func(c *gin.Context) { HandleInsertPreview(c, config) })
		apiGroup.POST("/split", func(c *gin.Context) { HandleSplit(c, config) })
		apiGroup.POST("/split-pages", func(c *gin.Context) { HandleSplitPages(c, config) })
		apiGroup.POST("/remove-pages", func(c *gin.Context) { HandleRemovePages(c, config) })
		apiGroup.POST("/watermark", func(c *gin.Context) { HandleWatermark(c, config) })
		apiGroup.GET("/capabilities", func(c *gin.Context) { HandleCapabilities(c, config) })
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})
}

// Package server exposes the upload/report HTTP surface over gin.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"rsouza/manifest-match/internal/basestore"
	"rsouza/manifest-match/internal/config"
	"rsouza/manifest-match/internal/logging"
	"rsouza/manifest-match/internal/manifest"
	"rsouza/manifest-match/internal/matcher"
	"rsouza/manifest-match/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server wires the parsing pipeline, the base repository and the latest
// match result into HTTP handlers.
type Server struct {
	cfg     *config.Config
	logger  logging.Logger
	parser  *manifest.Parser
	base    *basestore.Repository
	results *matcher.ResultHolder
	engine  *gin.Engine
}

// New assembles a Server from its collaborators. A nil parser gets the
// default rules.
func New(cfg *config.Config, base *basestore.Repository, parser *manifest.Parser, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if parser == nil {
		parser = manifest.NewParser(logger, nil)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		parser:  parser,
		base:    base,
		results: &matcher.ResultHolder{},
	}
	s.engine = s.buildEngine()
	return s
}

func (s *Server) buildEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/", s.handleIndex)
	engine.POST("/upload", s.handleUpload)
	engine.GET("/report.pdf", s.handleReport)

	return engine
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run loads the base eagerly and serves until the listener fails.
func (s *Server) Run() error {
	base := s.base.Load()
	s.logger.Info("Base table ready",
		logging.Field{Key: logging.FieldCount, Value: base.Len()})
	s.logger.Info("Listening",
		logging.Field{Key: logging.FieldAddr, Value: s.cfg.Server.Addr})
	return s.engine.Run(s.cfg.Server.Addr)
}

func (s *Server) handleIndex(c *gin.Context) {
	flash := popFlash(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"BaseCount": s.base.Load().Len(),
		"Flash":     flash,
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		setFlash(c, flashDanger, "No file was uploaded.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err := manifest.ValidateUploadName(fileHeader.Filename); err != nil {
		setFlash(c, flashDanger, err.Error())
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		setFlash(c, flashDanger, fmt.Sprintf("Error reading uploaded file: %v", err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close uploaded file")
		}
	}()

	daily, err := s.parser.Parse(file)
	if err != nil {
		// No partial result is stored on a failed parse.
		setFlash(c, flashDanger, fmt.Sprintf("Error reading daily file: %v", err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	repeats := matcher.Match(s.base.Load(), daily)
	s.results.Store(&matcher.Result{Repeats: repeats, DailyTotal: daily.Len()})

	s.logger.Info("Processed daily upload",
		logging.Field{Key: logging.FieldFile, Value: fileHeader.Filename},
		logging.Field{Key: logging.FieldRows, Value: daily.Len()},
		logging.Field{Key: logging.FieldCount, Value: len(repeats)})

	preview := repeats
	if limit := s.cfg.Server.PreviewRows; len(preview) > limit {
		preview = preview[:limit]
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"Total":   len(repeats),
		"Preview": preview,
		"Message": fmt.Sprintf("Processed. %d addresses already exist in the historical base.", len(repeats)),
	})
}

func (s *Server) handleReport(c *gin.Context) {
	result := s.results.Load()
	if result.Count() == 0 {
		setFlash(c, flashWarning, "No repeated records available. Upload the daily file first.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	opts := report.Options{
		Title:      s.cfg.Report.Title,
		SenderMax:  s.cfg.Report.SenderMax,
		AddressMax: s.cfg.Report.AddressMax,
		PostalMax:  s.cfg.Report.PostalMax,
	}
	data, err := report.Generate(result.Repeats, opts)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate PDF report")
		setFlash(c, flashDanger, fmt.Sprintf("Error generating report: %v", err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.Report.Filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

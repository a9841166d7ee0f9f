package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/internal/language"
	"scribe/internal/logging"
	"scribe/internal/services"
	"scribe/internal/subtitles"
	"scribe/internal/transcription"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	resp := StatusResponse{Version: s.version}
	if s.transcriber == nil {
		resp.Detail = "transcription disabled"
	} else {
		resp.Model = s.transcriber.Model()
		if err := s.transcriber.Ready(); err != nil {
			resp.Detail = err.Error()
		} else {
			resp.Ready = true
		}
	}
	if s.checkDeps != nil {
		resp.Dependencies = s.checkDeps()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, LanguagesResponse{Languages: language.Supported()})
}

func (s *Server) handleGenerateFromText(c *gin.Context) {
	var req GenerateFromTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: describeValidation(err)})
		return
	}

	format := s.resolveFormat(req.Format, s.cfg.Text.Format)
	ctx := services.WithPipeline(c.Request.Context(), "text")
	result, err := s.engine.FromText(ctx, subtitles.TextRequest{
		Text:      req.Text,
		Format:    format,
		Settings:  req.settings(s.cfg.TextSettings()),
		StartTime: req.StartTime,
	})
	if err != nil {
		s.respondError(c, "text", err)
		return
	}
	s.respondResult(c, "text", format, result)
}

func (s *Server) handleTranscribe(c *gin.Context) {
	if s.transcriber == nil {
		s.respondError(c, "speech", services.Wrap(services.ErrModelNotReady, "speech", "transcribe", "transcription disabled", nil))
		return
	}
	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: describeValidation(err)})
		return
	}

	s.metrics.inFlight.Inc()
	defer s.metrics.inFlight.Dec()

	format := s.resolveFormat(req.Format, s.cfg.Speech.Format)
	result, err := s.transcriber.Transcribe(c.Request.Context(), transcription.Request{
		MediaPath: req.FilePath,
		Language:  req.Language,
		Format:    format,
		Settings:  req.settings(s.cfg.SpeechSettings()),
	})
	if err != nil {
		s.respondError(c, "speech", err)
		return
	}
	s.respondResult(c, "speech", format, result)
}

func (s *Server) resolveFormat(requested, fallback string) subtitles.Format {
	if strings.TrimSpace(requested) == "" {
		requested = fallback
	}
	return subtitles.ParseFormat(requested)
}

func (s *Server) respondResult(c *gin.Context, pipeline string, format subtitles.Format, result subtitles.Result) {
	s.metrics.cues.WithLabelValues(pipeline, string(format)).Add(float64(result.SegmentCount))
	c.JSON(http.StatusOK, SubtitlesResponse{
		Success:      true,
		Subtitles:    result.Subtitles,
		Duration:     result.Duration,
		SegmentCount: result.SegmentCount,
		Language:     result.DetectedLanguage,
	})
}

func (s *Server) respondError(c *gin.Context, pipeline string, err error) {
	status := services.HTTPStatus(err)
	if status == http.StatusInternalServerError && errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	s.metrics.failures.WithLabelValues(pipeline, strconv.Itoa(status)).Inc()
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(c.Request.Context(), s.logger), "request failed", "request_failed",
			logging.String(logging.FieldPipeline, pipeline),
			logging.Int("status", status),
			logging.Error(err),
		)
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

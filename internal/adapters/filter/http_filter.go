package filter

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mikey/spamshield/internal/core"
	"github.com/mikey/spamshield/internal/form"
	"github.com/mikey/spamshield/internal/utils"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

const emptyBodyMessage = "Please paste the email content to analyze"

// AnalyzeRequest is the JSON payload of the analyze endpoint
type AnalyzeRequest struct {
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body" validate:"required"`
}

// pageData feeds the HTML template
type pageData struct {
	Sender  string
	Subject string
	Body    string
	Error   string
	Result  *core.SpamAnalysisResult
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type templateRenderer struct {
	tmpl *template.Template
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

// HTTPFilter serves the email check form and a JSON API
type HTTPFilter struct {
	service       *core.SpamFilterService
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	echo          *echo.Echo
	listenAddr    string
	resultDelay   time.Duration
	maxBodySize   int
	spamHeader    string
	scoreHeader   string
}

// NewHTTPFilter creates a new HTTP front end
func NewHTTPFilter(
	service *core.SpamFilterService,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
	listenAddr string,
	resultDelay time.Duration,
	maxBodySize int,
	spamHeader string,
	scoreHeader string,
) (*HTTPFilter, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &templateRenderer{tmpl: tmpl}
	e.Validator = &requestValidator{validate: validator.New()}

	f := &HTTPFilter{
		service:       service,
		logger:        logger,
		textProcessor: textProcessor,
		echo:          e,
		listenAddr:    listenAddr,
		resultDelay:   resultDelay,
		maxBodySize:   maxBodySize,
		spamHeader:    spamHeader,
		scoreHeader:   scoreHeader,
	}

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID))
			return nil
		},
	}))

	e.GET("/", f.showForm)
	e.POST("/", f.submitForm)
	e.POST("/reset", f.resetForm)
	e.POST("/api/v1/analyze", f.analyze)
	e.GET("/health", f.healthCheck)

	return f, nil
}

// Handler exposes the router, mainly for tests
func (f *HTTPFilter) Handler() http.Handler {
	return f.echo
}

// Start binds the listen address and serves in the background. Bind
// failures are returned to the caller.
func (f *HTTPFilter) Start() error {
	listener, err := net.Listen("tcp", f.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", f.listenAddr, err)
	}
	f.echo.Listener = listener

	f.logger.Info("HTTP filter starting", zap.String("address", listener.Addr().String()))

	go func() {
		if err := f.echo.Start(f.listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down
func (f *HTTPFilter) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return f.echo.Shutdown(ctx)
}

// ProcessEmail analyzes an email without going through HTTP
func (f *HTTPFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.SpamAnalysisResult, error) {
	fm := form.New(f.service, 0)
	fm.Sender, fm.Subject, fm.Body = f.clean(email.From), f.clean(email.Subject), f.clean(email.Body)
	return fm.Submit(ctx)
}

func (f *HTTPFilter) clean(s string) string {
	return f.textProcessor.ProcessText(s, f.maxBodySize)
}

func (f *HTTPFilter) showForm(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", pageData{})
}

func (f *HTTPFilter) resetForm(c echo.Context) error {
	fm := form.New(f.service, f.resultDelay)
	fm.Sender = c.FormValue("sender")
	fm.Subject = c.FormValue("subject")
	fm.Body = c.FormValue("body")
	fm.Reset()

	return c.Render(http.StatusOK, "index.html", pageData{
		Sender:  fm.Sender,
		Subject: fm.Subject,
		Body:    fm.Body,
	})
}

func (f *HTTPFilter) submitForm(c echo.Context) error {
	fm := form.New(f.service, f.resultDelay)
	fm.Sender = f.clean(c.FormValue("sender"))
	fm.Subject = f.clean(c.FormValue("subject"))
	fm.Body = f.clean(c.FormValue("body"))

	data := pageData{Sender: fm.Sender, Subject: fm.Subject, Body: fm.Body}

	result, err := fm.Submit(c.Request().Context())
	if errors.Is(err, form.ErrEmptyBody) {
		data.Error = emptyBodyMessage
		return c.Render(http.StatusUnprocessableEntity, "index.html", data)
	}
	if err != nil {
		f.logger.Error("Failed to analyze email", zap.Error(err), zap.String("sender", fm.Sender))
		return echo.NewHTTPError(http.StatusInternalServerError, "analysis failed")
	}

	f.logResult(fm.Sender, result)
	f.setVerdictHeaders(c, result)
	data.Result = result
	return c.Render(http.StatusOK, "index.html", data)
}

func (f *HTTPFilter) analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		f.logger.Debug("Failed to bind request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request payload",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"error": emptyBodyMessage,
		})
	}

	fm := form.New(f.service, 0)
	fm.Sender = f.clean(req.Sender)
	fm.Subject = f.clean(req.Subject)
	fm.Body = f.clean(req.Body)

	result, err := fm.Submit(c.Request().Context())
	if errors.Is(err, form.ErrEmptyBody) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"error": emptyBodyMessage,
		})
	}
	if err != nil {
		f.logger.Error("Failed to analyze email", zap.Error(err), zap.String("sender", fm.Sender))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "analysis failed",
		})
	}

	f.logResult(fm.Sender, result)
	f.setVerdictHeaders(c, result)
	return c.JSON(http.StatusOK, result)
}

func (f *HTTPFilter) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "spamshield",
	})
}

func (f *HTTPFilter) setVerdictHeaders(c echo.Context, result *core.SpamAnalysisResult) {
	h := c.Response().Header()
	if f.spamHeader != "" {
		h.Set(f.spamHeader, fmt.Sprintf("%t", f.service.IsSpam(result)))
	}
	if f.scoreHeader != "" {
		h.Set(f.scoreHeader, fmt.Sprintf("%d", result.Score))
	}
}

func (f *HTTPFilter) logResult(sender string, result *core.SpamAnalysisResult) {
	f.logger.Info("Processed email",
		zap.String("from", sender),
		zap.String("sender_domain", core.SenderDomain(sender)),
		zap.Bool("is_spam", result.IsSpam),
		zap.Int("score", result.Score),
		zap.String("source", result.Source),
		zap.String("processing_id", result.ProcessingID))
}

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// generationHandler serves screenshot analysis, content generation and history.
type generationHandler struct {
	generationService portssvc.GenerationSvcFacade
	maxUploadBytes    int64
}

func newGenerationHandler(gs portssvc.GenerationSvcFacade, maxUploadBytes int64) *generationHandler {
	return &generationHandler{generationService: gs, maxUploadBytes: maxUploadBytes}
}

func registerGenerationRoutes(rg *gin.RouterGroup, gs portssvc.GenerationSvcFacade, maxUploadBytes int64) {
	h := newGenerationHandler(gs, maxUploadBytes)

	generations := rg.Group("/generations")
	{
		generations.POST("/analyze", h.analyze)
		generations.POST("/generate", h.generate)
		generations.GET("", h.listGenerations)
		generations.GET("/:id", h.getGeneration)
	}
}

// analyze godoc
// @Summary Analyze a screenshot
// @Description Extracts the page structure (sections and text elements) from an uploaded screenshot.
// @Tags generations
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Screenshot image"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Security BearerAuth
// @Router /generations/analyze [post]
func (h *generationHandler) analyze(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.AbortUnauthorized(c, middleware.CredentialsErrorMessage)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleServiceError(c, apperrors.NewAppError(http.StatusRequestEntityTooLarge, "File too large", apperrors.ErrValidation), "Analyze")
			return
		}
		handleServiceError(c, apperrors.NewFieldError("file", "field required"), "Analyze")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		handleServiceError(c, apperrors.NewAppError(http.StatusRequestEntityTooLarge, "File too large", apperrors.ErrValidation), "Analyze")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		handleServiceError(c, err, "Analyze")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		handleServiceError(c, err, "Analyze")
		return
	}
	if len(image) > 0 && !strings.HasPrefix(http.DetectContentType(image), "image/") {
		handleServiceError(c, apperrors.NewFieldError("file", "must be an image"), "Analyze")
		return
	}

	analysis, err := h.generationService.Analyze(c.Request.Context(), userID, image)
	if err != nil {
		handleServiceError(c, err, "Analyze")
		return
	}

	logger.Info("Screenshot analyzed", slog.String("filename", fileHeader.Filename), slog.Int("bytes", len(image)))
	c.Data(http.StatusOK, "application/json; charset=utf-8", analysis)
}

// generate godoc
// @Summary Generate content
// @Description Writes page copy for a business from a page analysis and stores the result.
// @Tags generations
// @Accept multipart/form-data
// @Produce json
// @Param analysis_result formData string true "Analysis JSON object"
// @Param business_context formData string true "Business context JSON object"
// @Param page_type formData string false "Page type"
// @Param model formData string false "Model name" default(gemini)
// @Success 200 {object} dto.GenerationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Security BearerAuth
// @Router /generations/generate [post]
func (h *generationHandler) generate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.AbortUnauthorized(c, middleware.CredentialsErrorMessage)
		return
	}

	var form dto.GenerateContentForm
	if err := c.ShouldBind(&form); err != nil {
		handleBindError(c, err)
		return
	}

	generation, err := h.generationService.Generate(c.Request.Context(), userID, form)
	if err != nil {
		handleServiceError(c, err, "Generate")
		return
	}
	c.JSON(http.StatusOK, dto.ToGenerationResponse(generation))
}

// listGenerations godoc
// @Summary List generations
// @Description Lists the caller's generations, newest first.
// @Tags generations
// @Produce json
// @Param limit query int false "Page size" minimum(1) maximum(100) default(20)
// @Param next_token query string false "Token from the previous page"
// @Success 200 {object} dto.ListGenerationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Security BearerAuth
// @Router /generations [get]
func (h *generationHandler) listGenerations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.AbortUnauthorized(c, middleware.CredentialsErrorMessage)
		return
	}

	var params dto.ListGenerationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.generationService.ListGenerations(c.Request.Context(), userID, params)
	if err != nil {
		handleServiceError(c, err, "List generations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListGenerationsResponse(page))
}

// getGeneration godoc
// @Summary Get a generation
// @Tags generations
// @Produce json
// @Param id path string true "Generation ID"
// @Success 200 {object} dto.GenerationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /generations/{id} [get]
func (h *generationHandler) getGeneration(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.AbortUnauthorized(c, middleware.CredentialsErrorMessage)
		return
	}

	generation, err := h.generationService.GetGeneration(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "Get generation")
		return
	}
	c.JSON(http.StatusOK, dto.ToGenerationResponse(generation))
}

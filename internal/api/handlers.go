package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ieltslab/internal/ai"
	"ieltslab/internal/model"
	"ieltslab/internal/store"
	"ieltslab/internal/stt"
	"ieltslab/internal/utils"
)

const maxAudioBytes = 25 * 1024 * 1024

// Generator produces practice tests.
type Generator interface {
	Generate(ctx context.Context, testType, level string, numTasks int) ai.GenerateResult
}

// Grader scores submitted work.
type Grader interface {
	GradeWriting(ctx context.Context, essay string) (json.RawMessage, error)
	GradeSpeaking(ctx context.Context, transcript string) (json.RawMessage, error)
}

// Limiter caps test generation per client.
type Limiter interface {
	Allow(key string) bool
}

// Handler wires the HTTP surface to the store, the limiter and the AI
// collaborators.
type Handler struct {
	store     store.Store
	limiter   Limiter
	generator Generator
	grader    Grader
	stt       stt.Provider
	siteBase  string
}

func NewHandler(s store.Store, limiter Limiter, generator Generator, grader Grader, sttProvider stt.Provider, siteBase string) *Handler {
	return &Handler{
		store:     s,
		limiter:   limiter,
		generator: generator,
		grader:    grader,
		stt:       sttProvider,
		siteBase:  siteBase,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/order-test", h.orderTest)
		api.GET("/my-tests", h.myTests)
		api.GET("/test/:testId", h.getTest)
		api.POST("/test/:testId/submit", h.submitTest)
		api.GET("/job/:jobId", h.getJob)
		api.GET("/health", h.health)
	}
}

// health returns server liveness, no dependency checks
func (h *Handler) health(c *gin.Context) {
	utils.OK(c, gin.H{
		"now": time.Now().Format(time.RFC3339),
	})
}

// OrderTestRequest is the body of POST /api/order-test
type OrderTestRequest struct {
	TestType string `json:"testType" binding:"required"`
	Level    string `json:"level"`
	NumTasks int    `json:"numTasks"`
}

// orderTest generates a new test and records an order for it
func (h *Handler) orderTest(c *gin.Context) {
	var req OrderTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "testType is required")
		return
	}

	key := clientKey(c)
	if !h.limiter.Allow(key) {
		log.Printf("[OrderTest] quota exceeded for client %s", key)
		utils.Error(c, http.StatusTooManyRequests, "daily test limit reached, try again later")
		return
	}

	res := h.generator.Generate(c.Request.Context(), req.TestType, req.Level, req.NumTasks)
	if res.FallbackUsed {
		log.Printf("[OrderTest] generation fell back to the canned test (client %s)", key)
	}
	test := res.Test
	h.store.PutTest(test)

	order := &model.Order{
		OrderID:   uuid.NewString(),
		TestID:    test.TestID,
		Test:      test,
		Status:    model.OrderReady,
		CreatedAt: time.Now(),
		Type:      test.Type,
		Level:     test.Level,
		TestURL:   h.testURL(test.TestID),
	}
	h.store.PutOrder(order)

	log.Printf("[OrderTest] created order %s for test %s (type=%s, level=%s)",
		order.OrderID, test.TestID, test.Type, test.Level)

	utils.OK(c, gin.H{
		"orderId": order.OrderID,
		"testId":  test.TestID,
		"testUrl": order.TestURL,
	})
}

// myTests lists all orders, newest first
func (h *Handler) myTests(c *gin.Context) {
	orders := h.store.ListOrders()

	entries := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, gin.H{
			"orderId":   o.OrderID,
			"testId":    o.TestID,
			"type":      o.Type,
			"level":     o.Level,
			"status":    o.Status,
			"createdAt": o.CreatedAt,
			"testUrl":   h.testURL(o.TestID),
		})
	}

	utils.OK(c, gin.H{"tests": entries})
}

// getTest returns a stored test by id
func (h *Handler) getTest(c *gin.Context) {
	id := c.Param("testId")
	test, ok := h.store.GetTest(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "test not found")
		return
	}
	utils.OK(c, gin.H{"test": test})
}

// getJob returns a graded submission by id
func (h *Handler) getJob(c *gin.Context) {
	id := c.Param("jobId")
	job, ok := h.store.GetJob(id)
	if !ok {
		utils.Error(c, http.StatusNotFound, "job not found")
		return
	}
	utils.OK(c, gin.H{"job": job})
}

// SubmitRequest is the JSON body of a writing submission
type SubmitRequest struct {
	Answers []model.Answer `json:"answers" binding:"required,min=1"`
}

// submitTest accepts a submission for the test and grades it. Writing
// tests take a JSON answers body, speaking tests a multipart audio file.
func (h *Handler) submitTest(c *gin.Context) {
	testID := c.Param("testId")
	test, ok := h.store.GetTest(testID)
	if !ok {
		utils.Error(c, http.StatusNotFound, "test not found")
		return
	}

	switch test.Type {
	case model.TypeWriting:
		h.submitWriting(c, test)
	case model.TypeSpeaking:
		h.submitSpeaking(c, test)
	default:
		utils.Error(c, http.StatusBadRequest, "unsupported test type: "+test.Type)
	}
}

func (h *Handler) submitWriting(c *gin.Context, test *model.Test) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "answers are required")
		return
	}

	essay := strings.TrimSpace(req.Answers[0].AnswerText)
	if essay == "" {
		utils.Error(c, http.StatusBadRequest, "answer text cannot be empty")
		return
	}

	log.Printf("[Submit] grading writing submission for test %s (%d chars)", test.TestID, len(essay))

	result, err := h.grader.GradeWriting(c.Request.Context(), essay)
	if err != nil {
		log.Printf("[Submit] writing grading failed for test %s: %v", test.TestID, err)
		utils.Error(c, http.StatusInternalServerError, "grading failed: "+err.Error())
		return
	}

	h.finishSubmission(c, test, req.Answers, "", result)
}

func (h *Handler) submitSpeaking(c *gin.Context, test *model.Test) {
	file, err := c.FormFile("audio")
	if err != nil {
		// Clients are not consistent about the field name
		if file, err = c.FormFile("audio_file"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, "audio file is required")
				return
			}
		}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := []string{".m4a", ".mp3", ".wav", ".aac", ".ogg", ".webm", ".flac"}
	valid := false
	for _, allowed := range allowedExts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		utils.Error(c, http.StatusBadRequest, "unsupported audio format. Supported: m4a, mp3, wav, aac, ogg, webm, flac")
		return
	}

	if file.Size > maxAudioBytes {
		utils.Error(c, http.StatusBadRequest, "file size exceeds 25MB limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to read audio file: "+err.Error())
		return
	}
	defer src.Close()

	// Transcription is required input to grading, there is no fallback here.
	sttResult, err := h.stt.Transcribe(c.Request.Context(), src, file.Filename)
	if err != nil {
		log.Printf("[Submit] transcription failed for test %s (provider %s): %v",
			test.TestID, h.stt.Name(), err)
		utils.Error(c, http.StatusInternalServerError, "transcription failed: "+err.Error())
		return
	}

	log.Printf("[Submit] grading speaking submission for test %s (transcript %d chars)",
		test.TestID, len(sttResult.Transcript))

	result, err := h.grader.GradeSpeaking(c.Request.Context(), sttResult.Transcript)
	if err != nil {
		log.Printf("[Submit] speaking grading failed for test %s: %v", test.TestID, err)
		utils.Error(c, http.StatusInternalServerError, "grading failed: "+err.Error())
		return
	}

	h.finishSubmission(c, test, nil, sttResult.Transcript, result)
}

func (h *Handler) finishSubmission(c *gin.Context, test *model.Test, answers []model.Answer, transcript string, result json.RawMessage) {
	job := &model.Job{
		JobID:      uuid.NewString(),
		TestID:     test.TestID,
		Type:       test.Type,
		Answers:    answers,
		Transcript: transcript,
		Result:     result,
		CreatedAt:  time.Now(),
	}
	h.store.PutJob(job)

	graded := h.store.MarkOrdersGraded(test.TestID)
	log.Printf("[Submit] job %s stored for test %s, %d orders graded", job.JobID, test.TestID, graded)

	utils.OK(c, gin.H{
		"jobId":  job.JobID,
		"result": result,
	})
}

// testURL builds the shareable link for a test. An empty site base
// yields a relative URL.
func (h *Handler) testURL(testID string) string {
	base := strings.TrimRight(h.siteBase, "/")
	return base + "/test?testId=" + testID
}

// clientKey derives the rate-limit key for the caller: first hop of
// X-Forwarded-For, else the connection address, else a fixed sentinel.
func clientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

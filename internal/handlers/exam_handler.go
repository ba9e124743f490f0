package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/st-united/AICP-API-sub001/internal/services"
)

type ExamHandler struct {
	log        *zap.Logger
	answers    *services.AnswerService
	submission *services.SubmissionService
}

func NewExamHandler(log *zap.Logger, answers *services.AnswerService, submission *services.SubmissionService) *ExamHandler {
	return &ExamHandler{log: log, answers: answers, submission: submission}
}

type startExamRequest struct {
	UserID    uint `json:"userId" binding:"required"`
	ExamSetID uint `json:"examSetId" binding:"required"`
}

func (h *ExamHandler) StartExam(c *gin.Context) {
	var req startExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exam, err := h.answers.StartExam(req.UserID, req.ExamSetID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, exam)
}

type saveAnswerRequest struct {
	UserID            uint   `json:"userId" binding:"required"`
	QuestionID        uint   `json:"questionId" binding:"required"`
	SelectedOptionIDs []uint `json:"selectedOptionIds"`
	EssayText         string `json:"essayText"`
}

func (h *ExamHandler) SaveAnswer(c *gin.Context) {
	examID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req saveAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.answers.SaveAnswer(services.SaveAnswerInput{
		UserID:            req.UserID,
		ExamID:            examID,
		QuestionID:        req.QuestionID,
		SelectedOptionIDs: req.SelectedOptionIDs,
		EssayText:         req.EssayText,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer saved"})
}

func (h *ExamHandler) SubmitExam(c *gin.Context) {
	examID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.submission.Submit(examID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exam submitted"})
}

func (h *ExamHandler) GetResult(c *gin.Context) {
	examID, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})
		return
	}
	result, err := h.submission.Result(examID, uint(userID))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param + " parameter"})
		return 0, false
	}
	return uint(id), true
}

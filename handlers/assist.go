package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

const assistErrorText = "Error de conexión con IA."

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent"

type AssistRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

var assistClient = &http.Client{Timeout: 20 * time.Second}

// GenerateReply pre-fills a reply draft from a prompt. Every failure
// collapses to the same fixed string; the forum never depends on this
// endpoint succeeding.
func GenerateReply(c *gin.Context) {
	var req AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := currentUser(c); !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": generateText(req.Prompt)})
}

func generateText(prompt string) string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return assistErrorText
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return assistErrorText
	}

	resp, err := assistClient.Post(geminiEndpoint+"?key="+apiKey, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("GenerateReply request error: %v", err)
		return assistErrorText
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("GenerateReply status %d", resp.StatusCode)
		return assistErrorText
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return assistErrorText
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return assistErrorText
	}
	return out.Candidates[0].Content.Parts[0].Text
}

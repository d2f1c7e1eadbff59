package learningController

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/database"
	"lms/middleware"
	learning "lms/models/learning"
	services "lms/services/learning"
	"log"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// AskModuleTutor forwards a learner question about an unlocked module to the
// external text-generation API and stores the exchange. The tutor is scoped
// to the module's topics; everything else about the reply is the provider's
// business.
func AskModuleTutor(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	var module learning.Module
	if err := db.First(&module, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	unlocked, err := services.IsModuleUnlocked(db, user.ID, user.IsAdmin(), &module)
	if err != nil {
		return policyResponse(c, err)
	}
	if !unlocked {
		return policyResponse(c, services.ErrModuleLocked)
	}

	reqData, ok := c.Locals("validatedTutorQuestion").(*struct {
		Question string `json:"question"`
		Topic    string `json:"topic"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if config.AppConfig.TutorApiKey == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "The module tutor is not configured!", nil)
	}

	prompt := buildTutorPrompt(&module, reqData.Topic, reqData.Question)

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", config.AppConfig.TutorApiKey).
		SetBody(map[string]interface{}{
			"contents": []map[string]interface{}{
				{"parts": []map[string]string{{"text": prompt}}},
			},
		}).
		Post(config.AppConfig.TutorApiURL)
	if err != nil {
		log.Printf("Tutor API call failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The tutor is unavailable right now, please try again!", nil)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Tutor API error: %s", resp.String())
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The tutor is unavailable right now, please try again!", nil)
	}

	var genResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(resp.Body(), &genResp); err != nil || len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		log.Printf("Failed to parse tutor response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "The tutor returned an unusable answer, please try again!", nil)
	}
	answer := genResp.Candidates[0].Content.Parts[0].Text

	session := learning.ChatSession{
		UserID:   user.ID,
		ModuleID: &module.ID,
		Topic:    reqData.Topic,
		Question: reqData.Question,
		Response: answer,
	}
	db.Create(&session)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer generated!", fiber.Map{
		"answer":  answer,
		"session": session,
	})
}

// GetTutorHistory lists the caller's tutor exchanges for a module.
func GetTutorHistory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	var sessions []learning.ChatSession
	if err := database.Database.Db.
		Where("user_id = ? AND module_id = ?", user.ID, moduleID).
		Order("created_at desc").Limit(50).
		Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chat history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat history fetched successfully!", fiber.Map{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// DeleteTutorHistory clears the caller's tutor exchanges for a module.
func DeleteTutorHistory(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(int)

	result := database.Database.Db.
		Where("user_id = ? AND module_id = ?", user.ID, moduleID).
		Delete(&learning.ChatSession{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chat history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chat history deleted successfully!", fiber.Map{
		"deleted_count": result.RowsAffected,
	})
}

func buildTutorPrompt(module *learning.Module, topic, question string) string {
	var sb strings.Builder
	sb.WriteString("You are a patient tutor for the module \"")
	sb.WriteString(module.Title)
	sb.WriteString("\". Teach step by step and stay within these topics:\n")
	sb.WriteString(module.Topics)
	if topic != "" {
		sb.WriteString(fmt.Sprintf("\nThe learner is currently on the topic: %s", topic))
	}
	sb.WriteString("\n\nLearner question: ")
	sb.WriteString(question)
	return sb.String()
}

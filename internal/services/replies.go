package services

import (
	"fmt"

	"github.com/greenpass/greenpass-support/internal/models"
)

// Canned widget copy, keyed by conversation language. Vietnamese strings were
// provided by the GreenPass content team.

func welcomeText(lang models.Language) string {
	if lang == models.LangVI {
		return "Xin chào! Tôi là trợ lý GreenPass. Tôi có thể giúp gì cho bạn hôm nay?"
	}
	return "Hi! I'm the GreenPass assistant. How can I help you today?"
}

func languageSwitchText(lang models.Language) string {
	if lang == models.LangVI {
		return "Đã chuyển sang tiếng Việt. Tôi có thể giúp gì cho bạn?"
	}
	return "Switched to English. How can I help you?"
}

func escalationText(lang models.Language, ticketID string) string {
	if lang == models.LangVI {
		return fmt.Sprintf("Tôi đã chuyển cuộc trò chuyện này cho đội hỗ trợ. Mã yêu cầu của bạn là %s. Nhân viên sẽ phản hồi trong vòng 60 phút.", ticketID)
	}
	return fmt.Sprintf("I've handed this conversation to our support team. Your ticket reference is %s. A specialist will reply within 60 minutes.", ticketID)
}

func needMoreContextText(lang models.Language) string {
	if lang == models.LangVI {
		return "Tôi cần thêm thông tin để trả lời chính xác. Bạn có muốn nói chuyện với nhân viên hỗ trợ không?"
	}
	return "I need a bit more context to answer that properly. Would you like to talk to our support team?"
}

func aiApologyText(lang models.Language) string {
	if lang == models.LangVI {
		return "Xin lỗi, tôi đang gặp sự cố khi xử lý câu hỏi của bạn. Bạn có thể thử lại hoặc liên hệ đội hỗ trợ."
	}
	return "Sorry, I'm having trouble processing your question right now. Please try again, or reach out to our support team."
}

func sendFailureText() string {
	// Shown when persistence itself is failing, so language may be unknown;
	// the apology is bilingual by contract.
	return "Sorry, something went wrong on our side. Please try again. / Xin lỗi, đã có lỗi xảy ra. Vui lòng thử lại."
}

func escalateAction(lang models.Language) models.MessageAction {
	label := "Talk to support"
	if lang == models.LangVI {
		label = "Gặp nhân viên hỗ trợ"
	}
	return models.MessageAction{Type: models.ActionEscalate, Label: label}
}

func reservationsAction(lang models.Language) models.MessageAction {
	label := "View Reservations"
	if lang == models.LangVI {
		label = "Xem đặt chỗ"
	}
	return models.MessageAction{Type: models.ActionLink, Label: label, URL: "/reservations"}
}

func paymentsAction(lang models.Language) models.MessageAction {
	label := "View Payments"
	if lang == models.LangVI {
		label = "Xem thanh toán"
	}
	return models.MessageAction{Type: models.ActionLink, Label: label, URL: "/payments"}
}

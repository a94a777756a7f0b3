package chat

import (
	"strings"

	"github.com/magabrotheeeer/careconnect/internal/models"
)

type cannedReply struct {
	keyword string
	reply   string
}

// cannedReplies проверяются по порядку, побеждает первое совпадение.
var cannedReplies = []cannedReply{
	{"hello", "Hello! I'm the CareConnect health assistant. How can I help you today?"},
	{"hi", "Hi! I'm here to assist you with health-related questions. What can I help you with?"},
	{"appointment", "To book an appointment, please use the 'Appointments' section on our website or contact the health center directly."},
	{"book", "To schedule an appointment, please visit the Appointments section on our website."},
	{"emergency", "⚠️ If this is a medical emergency, please use the red emergency button or call 911 immediately!"},
	{"urgent", "⚠️ For urgent medical situations, please call 911 or use our emergency request feature right away!"},
	{"headache", "For a headache, I recommend resting in a quiet, dark room. Stay hydrated and consider over-the-counter pain relief. If the pain persists or worsens, please consult a doctor."},
	{"pain", "For persistent pain, I recommend scheduling an appointment with a healthcare provider. You can book through our appointment system."},
	{"help", "I can help you with: booking appointments, accessing medical records, answering general health questions, and emergency assistance. How can I assist you?"},
	{"records", "To access your medical records, please use the 'Medical Records' section in your dashboard."},
	{"doctor", "Our doctors are available for consultations. You can schedule an appointment through the Appointments section."},
}

const defaultCannedReply = "I'm currently in limited mode. I can provide general information. For appointments or medical records, please use the dedicated sections on our website. For urgent medical assistance, contact the health center directly."

// FallbackReply ответ без языковой модели по ключевым словам.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, c := range cannedReplies {
		if strings.Contains(lower, c.keyword) {
			return c.reply
		}
	}
	return defaultCannedReply
}

var urgentKeywords = []string{
	"emergency", "urgent", "chest pain", "difficulty breathing",
	"severe pain", "bleeding heavily", "unconscious", "suicide",
	"severe bleeding", "can't breathe",
}

const urgentRecommendation = "Please use the emergency request feature or call emergency services immediately."

// AnalyzeUrgency ищет в сообщении признаки экстренной ситуации.
func AnalyzeUrgency(message string) models.Urgency {
	lower := strings.ToLower(message)
	for _, k := range urgentKeywords {
		if strings.Contains(lower, k) {
			return models.Urgency{IsUrgent: true, Level: "high", Recommendation: urgentRecommendation}
		}
	}
	return models.Urgency{Level: "normal"}
}

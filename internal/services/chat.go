package services

import (
	"context"
	"strings"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"go.uber.org/zap"
)

// Generator внешний источник ответов чата, например языковая модель.
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// ChatService отвечает на сообщения покупателей
type ChatService struct {
	generator Generator
}

// NewChatService создает сервис чата. Без generator используются только заготовленные ответы.
func NewChatService(generator Generator) *ChatService {
	return &ChatService{generator: generator}
}

// Reply возвращает ответ на сообщение. Если внешний источник недоступен, отвечает по таблице ключевых слов.
func (c *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", newValidationError("Message is required")
	}

	if c.generator != nil {
		reply, err := c.generator.Generate(ctx, message)
		if err == nil && strings.TrimSpace(reply) != "" {
			return reply, nil
		}
		logger.Log.Warn("chat generator failed, using canned reply", zap.Error(err))
	}

	return CannedReply(message), nil
}

type cannedReply struct {
	keywords []string
	reply    string
}

// Порядок важен: срабатывает первая группа, ключевое слово которой встретилось в сообщении.
var cannedReplies = []cannedReply{
	{
		keywords: []string{"bestseller", "top", "popular"},
		reply: "Our bestsellers are:<br><br>• <strong>Velvet Rose</strong> (AED 199) - Romantic floral with amber<br>" +
			"• <strong>Midnight Oud</strong> (AED 249) - Rich oud with leather notes<br>" +
			"• <strong>Amber Horizon</strong> (AED 179) - Warm amber and citrus<br><br>" +
			"These are customer favorites and make excellent gifts too!",
	},
	{
		keywords: []string{"gift", "present"},
		reply: "Perfect gift suggestions:<br><br>• <strong>Golden Essence Set</strong> (AED 299) - Premium gift box with 3 mini fragrances<br>" +
			"• <strong>Velvet Rose</strong> - Classic and elegant<br>" +
			"• <strong>Noir Élixir Limited Edition</strong> (AED 150) - Exclusive scent<br><br>" +
			"All gifts come with complimentary wrapping and a handwritten note!",
	},
	{
		keywords: []string{"discount", "offer", "sale"},
		reply: "Current offers:<br><br>🎁 <strong>Buy 1 Get 1 Free</strong> on selected perfumes (limited time)<br>" +
			"🎁 <strong>Golden Gift Set</strong> - AED 299 with free delivery<br>" +
			"🎁 <strong>20% OFF</strong> with coupon code: DELUX20<br><br>" +
			"Check our \"Offers\" section for more details!",
	},
	{
		keywords: []string{"hour", "open", "close"},
		reply: "Our store hours:<br><br>🕙 <strong>Monday - Friday:</strong> 10:00 AM - 9:00 PM<br>" +
			"🕙 <strong>Saturday:</strong> 10:00 AM - 10:00 PM<br>" +
			"🕙 <strong>Sunday:</strong> 11:00 AM - 8:00 PM<br><br>" +
			"We're also available online 24/7 at deluxperfumes.com",
	},
	{
		keywords: []string{"track", "order", "delivery"},
		reply: "For order tracking:<br><br>1. Check your email for tracking information<br>" +
			"2. Visit \"My Orders\" in your account<br>" +
			"3. Contact support at info@deluxperfumes.com<br><br>" +
			"Delivery usually takes 2-3 business days in UAE.",
	},
	{
		keywords: []string{"recommend", "suggest"},
		reply: "Based on popular choices, I'd recommend:<br><br>🌸 <strong>For Her:</strong> Velvet Rose or Bloom Éclat<br>" +
			"🕶️ <strong>For Him:</strong> Midnight Oud or Noir Élixir<br>" +
			"✨ <strong>Unisex:</strong> Amber Horizon<br><br>" +
			"What type of scent are you looking for? Floral, woody, fresh, or oriental?",
	},
	{
		keywords: []string{"price", "cost", "aed"},
		reply: "Our price range:<br><br>• Regular perfumes: AED 79 - 150<br>" +
			"• Premium/Limited: AED 150 - 250<br>" +
			"• Gift sets: AED 120 - 299<br><br>" +
			"All prices include VAT. We offer free delivery on orders over AED 200!",
	},
}

const defaultCannedReply = "I'm here to help with all things Delux Perfumes! You can ask me about:<br><br>" +
	"• Perfume recommendations<br>• Current offers and discounts<br>• Store hours and location<br>" +
	"• Order tracking<br>• Gift suggestions<br><br>What would you like to know?"

// CannedReply подбирает заготовленный ответ по ключевым словам без учета регистра.
func CannedReply(message string) string {
	lower := strings.ToLower(message)

	for _, candidate := range cannedReplies {
		for _, keyword := range candidate.keywords {
			if strings.Contains(lower, keyword) {
				return candidate.reply
			}
		}
	}

	return defaultCannedReply
}

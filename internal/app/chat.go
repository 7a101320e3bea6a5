package router

import (
	"net/http"

	"github.com/Renal37/delux-perfumes/internal/middlewares"
	"github.com/Renal37/delux-perfumes/internal/models"
)

type chatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
}

// Chat отвечает на сообщение из виджета чата витрины.
func Chat(w http.ResponseWriter, r *http.Request) {
	message, ok := middlewares.GetParsedJSONData[models.ChatMessage](w, r)
	if !ok {
		return
	}

	chatService := middlewares.GetServiceFromContext[models.ChatService](w, r, middlewares.ChatServiceKey)
	if chatService == nil {
		return
	}

	var text string
	if message.Message != nil {
		text = *message.Message
	}

	reply, err := (*chatService).Reply(r.Context(), text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middlewares.EncodeJSONResponse(w, http.StatusOK, chatResponse{Success: true, Reply: reply})
}

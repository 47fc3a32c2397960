package telegram

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"menu-planner/internal/app"
	"menu-planner/internal/config"
	"menu-planner/internal/ingredient"
	"menu-planner/internal/mealgen"
	"menu-planner/internal/metrics"
	"menu-planner/internal/plan"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API and the meal-planning application.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, metricsStore *metrics.Store) (*Bot, error) {
	if cfg.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		app:          application,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if update.CallbackQuery.From.ID == b.cfg.TelegramAllowUserID {
			b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	now := time.Now()

	switch strings.TrimSpace(msg.Text) {
	case "/plan":
		b.handlePlanRequest(msg.Chat.ID, now)
	case "/menu":
		b.handleMenuRequest(msg.Chat.ID, now)
	case "/midi":
		b.handleSuggestRequest(msg.Chat.ID, now, ingredient.Midi)
	case "/soir":
		b.handleSuggestRequest(msg.Chat.ID, now, ingredient.Soir)
	case "/metrics":
		b.handleMetricsRequest(msg.Chat.ID)
	default:
		b.send(msg.Chat.ID, "Commands:\n/plan — generate this month's menus\n/menu — today's menu\n/midi, /soir — new suggestion for today\n/metrics — usage report")
	}
}

// handlePlanRequest generates the current month. When a plan already
// exists, the user picks the merge policy: fill only the empty days, or
// regenerate everything.
func (b *Bot) handlePlanRequest(chatID int64, now time.Time) {
	userID := b.cfg.DefaultUserID
	year, month := now.Year(), now.Month()

	if b.app.HasPlan(userID, year, month) {
		promptText := fmt.Sprintf("🗓️ A plan already exists for *%04d-%02d*.\nWhat would you like to do?", year, int(month))
		monthKey := fmt.Sprintf("%04d-%02d", year, int(month))

		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🧩 Fill empty days", "fill|"+monthKey),
				tgbotapi.NewInlineKeyboardButtonData("🔄 Replace everything", "replace|"+monthKey),
			),
		)

		msg := tgbotapi.NewMessage(chatID, promptText)
		msg.ParseMode = "Markdown"
		msg.ReplyMarkup = keyboard
		b.api.Send(msg)
		return
	}

	b.generateAndSendPlan(chatID, userID, year, month, plan.FillEmpty)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	parts := strings.Split(query.Data, "|") // "fill|2026-09" or "replace|2026-09"
	if len(parts) != 2 {
		return
	}

	mode, err := plan.ParseMergeMode(parts[0])
	if err != nil {
		return
	}
	var year, monthNum int
	if _, err := fmt.Sscanf(parts[1], "%d-%d", &year, &monthNum); err != nil {
		return
	}

	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, "🧑‍🍳 *Generating...*")
	edit.ParseMode = "Markdown"
	b.api.Send(edit)

	b.generateAndSendPlan(query.Message.Chat.ID, b.cfg.DefaultUserID, year, time.Month(monthNum), mode)
}

func (b *Bot) generateAndSendPlan(chatID int64, userID string, year int, month time.Month, mode plan.MergeMode) {
	log.Printf("Generating %s plan for %04d-%02d (user %s)", mode, year, int(month), userID)

	monthPlan, err := b.app.GenerateMonth(userID, year, month, mode)
	if err != nil {
		if errors.Is(err, app.ErrEmptyCatalog) {
			b.send(chatID, "🥕 Your ingredient catalog is empty. Import some ingredients first.")
			return
		}
		log.Printf("Error generating plan: %v", err)
		b.send(chatID, fmt.Sprintf("❌ Error generating plan: %v", err))
		return
	}

	text := formatMonthPlan(monthPlan, year, month)
	b.send(chatID, text)
}

// handleMenuRequest shows today's two meals.
func (b *Bot) handleMenuRequest(chatID int64, now time.Time) {
	monthPlan, err := b.app.ShowPlan(b.cfg.DefaultUserID, now.Year(), now.Month())
	if err != nil {
		log.Printf("Error loading plan: %v", err)
		b.send(chatID, "❌ Error loading the plan.")
		return
	}

	meals, ok := monthPlan[now.Day()]
	if !ok || (meals.Midi == "" && meals.Soir == "") {
		b.send(chatID, "📭 Nothing planned for today. Try /plan.")
		return
	}
	b.send(chatID, fmt.Sprintf("🍽 *Today*\n☀️ Midi: %s\n🌙 Soir: %s", orDash(meals.Midi), orDash(meals.Soir)))
}

// handleSuggestRequest regenerates today's slot. This is the strict path:
// when every composition is already on the plan the user gets an explicit
// "nothing new" answer, never a silent duplicate.
func (b *Bot) handleSuggestRequest(chatID int64, now time.Time, meal ingredient.MealType) {
	suggestion, err := b.app.SuggestMeal(b.cfg.DefaultUserID, now.Year(), now.Month(), now.Day(), meal)
	if err != nil {
		if errors.Is(err, mealgen.ErrNoSuggestion) {
			b.send(chatID, "🤷 No suggestion available — everything I can compose is already on your plan.")
			return
		}
		if errors.Is(err, app.ErrEmptyCatalog) {
			b.send(chatID, "🥕 Your ingredient catalog is empty. Import some ingredients first.")
			return
		}
		log.Printf("Error suggesting meal: %v", err)
		b.send(chatID, "❌ Error generating a suggestion.")
		return
	}
	b.send(chatID, fmt.Sprintf("✨ New *%s* for today: %s", string(meal), suggestion))
}

func (b *Bot) handleMetricsRequest(chatID int64) {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Generations*\n")
	if b.metricsStore == nil {
		sb.WriteString("_Metrics store disabled_\n")
	} else {
		usage, err := b.metricsStore.GetDailyUsage(7)
		if err != nil {
			b.send(chatID, "❌ Error fetching metrics.")
			return
		}
		if len(usage) == 0 {
			sb.WriteString("_No data yet_\n")
		}
		for _, d := range usage {
			sb.WriteString(fmt.Sprintf("• *%s*: %d runs, %d slots (%d duplicates kept)\n", d.Date, d.Runs, d.Slots, d.SoftDuplicates))
		}
	}

	health := metrics.GetSysHealth(b.cfg.DataDir)
	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataSize))

	b.send(chatID, sb.String())
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func formatMonthPlan(p plan.Plan, year int, month time.Month) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Menus %04d-%02d*\n\n", year, int(month)))
	for _, day := range p.Days() {
		meals := p[day]
		sb.WriteString(fmt.Sprintf("*%d*: ☀️ %s | 🌙 %s\n", day, orDash(meals.Midi), orDash(meals.Soir)))
	}
	return sb.String()
}

func orDash(meal string) string {
	if strings.TrimSpace(meal) == "" {
		return "—"
	}
	return meal
}

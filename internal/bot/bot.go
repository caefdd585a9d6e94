package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/hackerxuz77-cell/python-course-bot/internal/config"
	"github.com/hackerxuz77-cell/python-course-bot/internal/model"
	"github.com/hackerxuz77-cell/python-course-bot/internal/repository"
	"github.com/hackerxuz77-cell/python-course-bot/internal/service"
)

const (
	cbAssignTask         = "assign_task"
	cbSubscribersList    = "subscribers_list"
	cbUpcomingPayments   = "upcoming_payments"
	cbAdminBack          = "admin_back"
	cbUnderstoodReason   = "understand_reason"
	cbUnderstoodWarning  = "understand_warning"
	cbSelectUserPrefix   = "select_user_"
	cbViewTaskPrefix     = "view_task_"
	cbCompleteTaskPrefix = "complete_task_"
	cbReviewTaskPrefix   = "admin_review_task_"
	cbRatePrefix         = "rate_"
	cbAskReasonPrefix    = "ask_reason_"
	cbDailyReportPrefix  = "daily_report_"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputTaskText
	inputReason
	inputReport
)

// pendingInput tracks what free-text message the bot expects next from
// a given chat.
type pendingInput struct {
	kind       inputKind
	targetUser int64
	taskID     uint
}

// Bot wires the Telegram update loop to the course services.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	users     *repository.UserRepository
	reports   *repository.ReportRepository
	registry  *service.RegistryService
	broadcast *service.BroadcastService

	mu      sync.Mutex
	pending map[int64]pendingInput
}

func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	users *repository.UserRepository,
	reports *repository.ReportRepository,
	registry *service.RegistryService,
	broadcast *service.BroadcastService,
) *Bot {
	return &Bot{
		api:       api,
		cfg:       cfg,
		users:     users,
		reports:   reports,
		registry:  registry,
		broadcast: broadcast,
		pending:   make(map[int64]pendingInput),
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("[info] start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Printf("handle callback: %v", err)
			}
		case update.Message != nil:
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Printf("handle message: %v", err)
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if len(msg.NewChatMembers) > 0 {
		return b.registerMembers(ctx, msg)
	}
	if msg.From == nil {
		return nil
	}

	if msg.IsCommand() {
		if msg.Chat == nil || !msg.Chat.IsPrivate() {
			return nil
		}
		log.Printf("[info] command from %d: /%s", msg.From.ID, msg.Command())
		return b.handleCommand(ctx, msg)
	}

	if state, ok := b.getPending(msg.From.ID); ok {
		return b.handlePendingInput(ctx, msg, state)
	}

	return nil
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		if b.cfg.IsAdmin(msg.From.ID) {
			return b.sendAdminPanel(msg.Chat.ID)
		}
		return b.sendText(msg.Chat.ID, "Salom! Men Python kursi guruhi botiman. Guruhga qo'shiling va kodlashni o'rganing! 🐍")
	case "admin":
		if !b.cfg.IsAdmin(msg.From.ID) {
			return b.sendText(msg.Chat.ID, "❌ Sizga ruxsat yo'q!")
		}
		return b.sendAdminPanel(msg.Chat.ID)
	default:
		return nil
	}
}

// registerMembers stores every new group member and greets them with
// their subscription end date.
func (b *Bot) registerMembers(ctx context.Context, msg *tgbotapi.Message) error {
	for _, member := range msg.NewChatMembers {
		if member.IsBot {
			continue
		}

		now := time.Now()
		user := model.User{
			TelegramID:      member.ID,
			Username:        member.UserName,
			FirstName:       member.FirstName,
			LastName:        member.LastName,
			JoinedAt:        now,
			SubscriptionEnd: now.AddDate(0, b.cfg.SubscriptionMonths, 0),
		}
		if err := b.users.RegisterMember(ctx, &user); err != nil {
			log.Printf("register member %d: %v", member.ID, err)
			continue
		}

		welcome := fmt.Sprintf(
			"Assalomu alaykum %s! 🐍\n\nPython kursimizga xush kelibsiz!\n\nSizning obunangiz %s sanagacha amal qiladi.",
			member.FirstName, user.SubscriptionEnd.Format("2006-01-02"),
		)
		reply := tgbotapi.NewMessage(msg.Chat.ID, welcome)
		if _, err := b.api.Send(reply); err != nil {
			log.Printf("welcome %d: %v", member.ID, err)
		}
	}
	return nil
}

func (b *Bot) handlePendingInput(ctx context.Context, msg *tgbotapi.Message, state pendingInput) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	switch state.kind {
	case inputTaskText:
		b.clearPending(msg.From.ID)
		return b.assignTask(ctx, msg.Chat.ID, msg.From.ID, state.targetUser, text)
	case inputReason:
		b.clearPending(msg.From.ID)
		return b.attachReason(ctx, msg.Chat.ID, state.taskID, text)
	case inputReport:
		b.clearPending(msg.From.ID)
		report := model.DailyReport{
			UserID:    msg.From.ID,
			Text:      text,
			CreatedAt: time.Now(),
		}
		if err := b.reports.Append(ctx, &report); err != nil {
			return b.sendText(msg.Chat.ID, "❌ Hisobotni saqlab bo'lmadi. Keyinroq urinib ko'ring.")
		}
		return b.sendText(msg.Chat.ID, "✅ Hisobotingiz qabul qilindi! Rahmat!")
	default:
		return nil
	}
}

// assignTask creates the task and delivers it to the member. A
// delivery failure is reported to the admin; the task stays assigned.
func (b *Bot) assignTask(ctx context.Context, adminChatID, adminID, userID int64, text string) error {
	task, err := b.registry.Assign(ctx, userID, adminID, text)
	if err != nil {
		if errors.Is(err, service.ErrRecipientUnknown) {
			return b.sendText(adminChatID, "❌ Bu foydalanuvchi ro'yxatdan o'tmagan.")
		}
		return b.sendText(adminChatID, "❌ Vazifani saqlab bo'lmadi.")
	}

	log.Printf("[info] task assigned id=%d user=%d admin=%d", task.ID, userID, adminID)

	notice := tgbotapi.NewMessage(userID, fmt.Sprintf(
		"📋 Yangi uy vazifasi berildi!\n\n%s\n\nVazifani bajarish uchun %d soat vaqtingiz bor.",
		text, int(b.cfg.TaskDeadline.Hours()),
	))
	notice.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👀 Vazifani ko'rish", fmt.Sprintf("%s%d", cbViewTaskPrefix, task.ID)),
		),
	)
	if _, err := b.api.Send(notice); err != nil {
		log.Printf("deliver task %d to %d: %v", task.ID, userID, err)
		return b.sendText(adminChatID, "❌ Foydalanuvchiga xabar yuborib bo'lmadi. U botni ishga tushirmagan bo'lishi mumkin.")
	}
	return b.sendText(adminChatID, "✅ Vazifa muvaffaqiyatli yuborildi!")
}

// attachReason stores the admin's feedback; for a low rating this also
// records the penalty and, past the threshold, warns the member.
func (b *Bot) attachReason(ctx context.Context, adminChatID int64, taskID uint, reason string) error {
	task, err := b.registry.AttachFeedback(ctx, taskID, reason)
	if err != nil && !errors.Is(err, service.ErrDelivery) {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.sendText(adminChatID, "❌ Vazifa topilmadi.")
		}
		return b.sendText(adminChatID, "❌ Sababni saqlab bo'lmadi.")
	}
	partial := errors.Is(err, service.ErrDelivery)

	if sendErr := b.sendText(adminChatID, "✅ Sabab qabul qilindi!"); sendErr != nil {
		return sendErr
	}
	if partial {
		log.Printf("threshold notice undelivered for task %d: %v", taskID, err)
	}

	rating := 0
	if task.Rating != nil {
		rating = *task.Rating
	}
	notice := tgbotapi.NewMessage(task.UserID, fmt.Sprintf(
		"📝 Sizning vazifangiz bahosi sababi:\n\n%s\n\n%s", ratingText(rating), reason,
	))
	notice.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Tushundim", cbUnderstoodReason),
		),
	)
	if _, err := b.api.Send(notice); err != nil {
		log.Printf("deliver reason for task %d: %v", taskID, err)
	}
	return nil
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack: %v", err)
	}

	data := cb.Data

	switch {
	case data == cbAssignTask:
		return b.showUserPicker(ctx, cb)
	case data == cbSubscribersList:
		return b.showSubscribers(ctx, cb)
	case data == cbUpcomingPayments:
		return b.showUpcomingPayments(ctx, cb)
	case data == cbAdminBack:
		return b.editToAdminPanel(cb)
	case data == cbUnderstoodReason, data == cbUnderstoodWarning:
		return nil
	case strings.HasPrefix(data, cbSelectUserPrefix):
		userID, err := parseID(data, cbSelectUserPrefix)
		if err != nil {
			return nil
		}
		b.setPending(cb.From.ID, pendingInput{kind: inputTaskText, targetUser: userID})
		return b.editText(cb, "📝 Vazifa matnini yuboring:\n\n(Necha marta, qanday vazifa, qachongacha bajarsin)")
	case strings.HasPrefix(data, cbViewTaskPrefix):
		taskID, err := parseID(data, cbViewTaskPrefix)
		if err != nil {
			return nil
		}
		return b.showTask(ctx, cb, uint(taskID))
	case strings.HasPrefix(data, cbCompleteTaskPrefix):
		taskID, err := parseID(data, cbCompleteTaskPrefix)
		if err != nil {
			return nil
		}
		return b.completeTask(ctx, cb, uint(taskID))
	case strings.HasPrefix(data, cbReviewTaskPrefix):
		taskID, err := parseID(data, cbReviewTaskPrefix)
		if err != nil {
			return nil
		}
		return b.reviewTask(ctx, cb, uint(taskID))
	case strings.HasPrefix(data, cbRatePrefix):
		return b.rateTask(ctx, cb, data)
	case strings.HasPrefix(data, cbAskReasonPrefix):
		taskID, err := parseID(data, cbAskReasonPrefix)
		if err != nil {
			return nil
		}
		return b.askReason(ctx, cb, uint(taskID))
	case strings.HasPrefix(data, cbDailyReportPrefix):
		b.setPending(cb.From.ID, pendingInput{kind: inputReport})
		return b.editText(cb, "📖 Bugun nimalar o'rgandingiz? Hisobot yozing:")
	default:
		return nil
	}
}

func (b *Bot) showUserPicker(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if !b.cfg.IsAdmin(cb.From.ID) {
		return b.editText(cb, "❌ Sizga ruxsat yo'q!")
	}

	users, err := b.users.ListAll(ctx)
	if err != nil {
		return b.editText(cb, "❌ Foydalanuvchilarni olib bo'lmadi.")
	}
	if len(users) == 0 {
		return b.editText(cb, "❌ Hozircha obunachilar yo'q!")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, user := range users {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("👤 %s", user.FullName()),
				fmt.Sprintf("%s%d", cbSelectUserPrefix, user.TelegramID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Orqaga", cbAdminBack),
	))

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID,
		"Kimga vazifa bermoqchisiz?",
		tgbotapi.NewInlineKeyboardMarkup(rows...),
	)
	_, err = b.api.Send(edit)
	return err
}

func (b *Bot) showTask(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID uint) error {
	task, err := b.registry.Get(ctx, taskID)
	if err != nil {
		return b.editText(cb, "❌ Vazifa topilmadi.")
	}

	deadline := b.registry.DeadlineFor(task)
	text := fmt.Sprintf(
		"📋 Sizning vazifangiz:\n\n%s\n\n⏰ Vazifa berilgan vaqt: %s\n🕓 Vazifa muddati: %s",
		task.Text,
		task.AssignedAt.Format("2006-01-02 15:04"),
		deadline.Format("2006-01-02 15:04"),
	)

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID, text,
		tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Vazifani bajardim", fmt.Sprintf("%s%d", cbCompleteTaskPrefix, task.ID)),
			),
		),
	)
	_, err = b.api.Send(edit)
	return err
}

func (b *Bot) completeTask(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID uint) error {
	task, err := b.registry.Complete(ctx, taskID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyCompleted) {
			return b.editText(cb, "Vazifa allaqachon bajarilgan.")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return b.editText(cb, "❌ Vazifa topilmadi.")
		}
		return b.editText(cb, "❌ Xatolik yuz berdi. Keyinroq urinib ko'ring.")
	}

	log.Printf("[info] task completed id=%d user=%d", task.ID, task.UserID)

	if err := b.editText(cb, "✅ Vazifangiz qabul qilindi! Admin tekshiradi."); err != nil {
		return err
	}

	notice := tgbotapi.NewMessage(task.AdminID, fmt.Sprintf("📩 Yangi topshiriq keldi! Vazifa ID: %d", task.ID))
	notice.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Vazifani ko'rish", fmt.Sprintf("%s%d", cbReviewTaskPrefix, task.ID)),
		),
	)
	if _, err := b.api.Send(notice); err != nil {
		log.Printf("notify admin %d about task %d: %v", task.AdminID, task.ID, err)
	}
	return nil
}

func (b *Bot) reviewTask(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID uint) error {
	task, err := b.registry.Get(ctx, taskID)
	if err != nil {
		return b.editText(cb, "❌ Vazifa topilmadi.")
	}

	user, err := b.users.FindByID(ctx, task.UserID)
	if err != nil {
		return b.editText(cb, "❌ Foydalanuvchi topilmadi.")
	}

	completed := "—"
	if task.CompletedAt != nil {
		completed = task.CompletedAt.Format("2006-01-02 15:04")
	}
	text := fmt.Sprintf(
		"👤 Foydalanuvchi: %s\n📋 Vazifa: %s\n⏰ Berilgan vaqt: %s\n✅ Bajarilgan vaqt: %s",
		user.FullName(), task.Text,
		task.AssignedAt.Format("2006-01-02 15:04"), completed,
	)

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID, text,
		ratingKeyboard(task.ID),
	)
	_, err = b.api.Send(edit)
	return err
}

func (b *Bot) rateTask(ctx context.Context, cb *tgbotapi.CallbackQuery, data string) error {
	// rate_<rating>_<taskID>
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return nil
	}
	rating, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	taskID64, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return nil
	}

	task, err := b.registry.Rate(ctx, uint(taskID64), rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRated):
			return b.editText(cb, "Bu vazifa allaqachon baholangan.")
		case errors.Is(err, service.ErrTaskNotCompleted):
			return b.editText(cb, "Vazifa hali bajarilmagan.")
		case errors.Is(err, service.ErrInvalidRating):
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return b.editText(cb, "❌ Vazifa topilmadi.")
		default:
			return b.editText(cb, "❌ Bahoni saqlab bo'lmadi.")
		}
	}

	log.Printf("[info] task rated id=%d rating=%d", task.ID, rating)

	if err := b.editText(cb, fmt.Sprintf("✅ Baho berildi: %s", ratingText(rating))); err != nil {
		return err
	}

	notice := tgbotapi.NewMessage(task.UserID, fmt.Sprintf("📊 Sizning vazifangiz baholandi: %s", ratingText(rating)))
	notice.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Sababini bilish", fmt.Sprintf("%s%d", cbAskReasonPrefix, task.ID)),
		),
	)
	if _, err := b.api.Send(notice); err != nil {
		log.Printf("notify user %d about rating: %v", task.UserID, err)
	}
	return nil
}

// askReason forwards the member's request to the issuing admin, who
// replies with the feedback text.
func (b *Bot) askReason(ctx context.Context, cb *tgbotapi.CallbackQuery, taskID uint) error {
	task, err := b.registry.Get(ctx, taskID)
	if err != nil {
		return b.editText(cb, "❌ Vazifa topilmadi.")
	}

	b.setPending(task.AdminID, pendingInput{kind: inputReason, taskID: task.ID})

	prompt := tgbotapi.NewMessage(task.AdminID, fmt.Sprintf("📝 Vazifa #%d uchun baho sababini yozing:", task.ID))
	if _, err := b.api.Send(prompt); err != nil {
		log.Printf("prompt admin %d for reason: %v", task.AdminID, err)
		return b.editText(cb, "❌ So'rovni yuborib bo'lmadi.")
	}
	return b.editText(cb, "✅ So'rov adminga yuborildi. Javob tez orada keladi.")
}

func (b *Bot) showSubscribers(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if !b.cfg.IsAdmin(cb.From.ID) {
		return b.editText(cb, "❌ Sizga ruxsat yo'q!")
	}

	users, err := b.users.ListAll(ctx)
	if err != nil {
		return b.editText(cb, "❌ Ro'yxatni olib bo'lmadi.")
	}

	var builder strings.Builder
	builder.WriteString("👥 Obunachilar ro'yxati:\n\n")
	for _, user := range users {
		builder.WriteString(fmt.Sprintf("👤 %s\n", user.FullName()))
		builder.WriteString(fmt.Sprintf("   📅 Qo'shilgan: %s\n", user.JoinedAt.Format("2006-01-02")))
		builder.WriteString(fmt.Sprintf("   ⏰ Obuna tugashi: %s\n\n", user.SubscriptionEnd.Format("2006-01-02")))
	}

	return b.editWithBack(cb, strings.TrimSpace(builder.String()))
}

func (b *Bot) showUpcomingPayments(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if !b.cfg.IsAdmin(cb.From.ID) {
		return b.editText(cb, "❌ Sizga ruxsat yo'q!")
	}

	now := time.Now()
	users, err := b.broadcast.UpcomingPaymentsSweep(ctx, now)
	if err != nil {
		return b.editText(cb, "❌ Ro'yxatni olib bo'lmadi.")
	}

	var builder strings.Builder
	builder.WriteString("⏰ Yaqin to'lovchilar (3 kundan kam qolgan):\n\n")
	if len(users) == 0 {
		builder.WriteString("Hozircha yaqin to'lovchilar yo'q.")
	}
	for _, user := range users {
		daysLeft := int(user.SubscriptionEnd.Sub(now).Hours() / 24)
		builder.WriteString(fmt.Sprintf("👤 %s\n", user.FullName()))
		builder.WriteString(fmt.Sprintf("   📅 Obuna tugashi: %s\n", user.SubscriptionEnd.Format("2006-01-02")))
		builder.WriteString(fmt.Sprintf("   ⏰ Qolgan kun: %d kun\n\n", daysLeft))
	}

	return b.editWithBack(cb, strings.TrimSpace(builder.String()))
}

func (b *Bot) sendAdminPanel(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "🏛 Admin paneli:")
	msg.ReplyMarkup = adminPanelKeyboard()
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) editToAdminPanel(cb *tgbotapi.CallbackQuery) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID,
		"🏛 Admin paneli:", adminPanelKeyboard(),
	)
	_, err := b.api.Send(edit)
	return err
}

func adminPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Uy vazifasi berish", cbAssignTask),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 Obunachilar ro'yxati", cbSubscribersList),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏰ Yaqin to'lovchilar", cbUpcomingPayments),
		),
	)
}

func ratingKeyboard(taskID uint) tgbotapi.InlineKeyboardMarkup {
	btn := func(r int) tgbotapi.InlineKeyboardButton {
		return tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d ⭐", r),
			fmt.Sprintf("%s%d_%d", cbRatePrefix, r, taskID),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn(1), btn(2), btn(3)),
		tgbotapi.NewInlineKeyboardRow(btn(4), btn(5)),
	)
}

func ratingText(rating int) string {
	switch rating {
	case 1:
		return "1 - Qoniqarsiz"
	case 2:
		return "2 - Dars qilishga ishtiyoq yo'q"
	case 3:
		return "3 - Yaxshiroq intil"
	case 4:
		return "4 - Yaxshi"
	case 5:
		return "5 - A'lo"
	default:
		return strconv.Itoa(rating)
	}
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) editText(cb *tgbotapi.CallbackQuery, text string) error {
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	_, err := b.api.Send(edit)
	return err
}

func (b *Bot) editWithBack(cb *tgbotapi.CallbackQuery, text string) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID, text,
		tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Orqaga", cbAdminBack),
			),
		),
	)
	_, err := b.api.Send(edit)
	return err
}

func (b *Bot) getPending(userID int64) (pendingInput, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	state, ok := b.pending[userID]
	return state, ok
}

func (b *Bot) setPending(userID int64, state pendingInput) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[userID] = state
}

func (b *Bot) clearPending(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, userID)
}

func parseID(data, prefix string) (int64, error) {
	raw := strings.TrimPrefix(data, prefix)
	return strconv.ParseInt(raw, 10, 64)
}
